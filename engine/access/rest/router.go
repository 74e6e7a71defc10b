package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/verichain/verichain/engine/access/rest/middleware"
	"github.com/verichain/verichain/module"
)

type route struct {
	Name    string
	Method  string
	Pattern string
	Handler ApiHandlerFunc
	Status  int
}

var Routes = []route{{
	Method:  http.MethodPost,
	Pattern: "/contracts",
	Name:    "deployContract",
	Handler: DeployContract,
	Status:  http.StatusCreated,
}, {
	Method:  http.MethodGet,
	Pattern: "/contracts/{address}/state",
	Name:    "getContractState",
	Handler: GetContractState,
	Status:  http.StatusOK,
}, {
	Method:  http.MethodPost,
	Pattern: "/contracts/{address}/calls",
	Name:    "submitCall",
	Handler: SubmitCall,
	Status:  http.StatusOK,
}, {
	Method:  http.MethodGet,
	Pattern: "/transactions/{hash}",
	Name:    "getTransactionByHash",
	Handler: GetTransactionByHash,
	Status:  http.StatusOK,
}}

// NewRouter returns the router of the REST API. If gatherer is not nil, its
// metrics are exposed at /metrics.
func NewRouter(
	backend Backend,
	logger zerolog.Logger,
	config Config,
	restCollector module.RestMetrics,
	gatherer prometheus.Gatherer,
) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	v1SubRouter := router.PathPrefix("/v1").Subrouter()

	// common middlewares for all request
	v1SubRouter.Use(middleware.LoggingMiddleware(logger))
	v1SubRouter.Use(middleware.MetricsMiddleware(restCollector))

	for _, r := range Routes {
		h := NewHandler(logger, backend, r.Handler, r.Status)
		v1SubRouter.
			Methods(r.Method).
			Path(r.Pattern).
			Name(r.Name).
			Handler(h)
	}

	v1SubRouter.
		Methods(http.MethodGet).
		Path("/contracts/{address}/events").
		Name("subscribeEvents").
		Handler(NewEventStreamHandler(logger, backend, config))

	if gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return router
}

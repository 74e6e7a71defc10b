package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/verichain/verichain/emulator"
	"github.com/verichain/verichain/engine/access/rest/models"
)

// ApiHandlerFunc is a function that contains endpoint handling logic. It
// returns the response to encode, or an error mapped to an HTTP status.
type ApiHandlerFunc func(r *http.Request, backend Backend) (interface{}, error)

// Handler is custom http handler implementing custom handler function.
// Handler function allows easier handling of errors and responses as it
// wraps functionality for handling error and responses outside of endpoint handling.
type Handler struct {
	logger         zerolog.Logger
	backend        Backend
	apiHandlerFunc ApiHandlerFunc
	successStatus  int
}

func NewHandler(logger zerolog.Logger, backend Backend, handlerFunc ApiHandlerFunc, successStatus int) *Handler {
	return &Handler{
		logger:         logger,
		backend:        backend,
		apiHandlerFunc: handlerFunc,
		successStatus:  successStatus,
	}
}

// ServerHTTP function acts as a wrapper to each request providing common handling functionality
// such as logging, error handling, request decorators
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// create a logger
	errLog := h.logger.With().Str("request_url", r.URL.String()).Logger()

	response, err := h.apiHandlerFunc(r, h.backend)
	if err != nil {
		errorHandler(w, err, errLog)
		return
	}

	jsonResponse(w, h.successStatus, response, errLog)
}

// errorHandler maps err to an HTTP status and writes the error response.
func errorHandler(w http.ResponseWriter, err error, errorLogger zerolog.Logger) {
	var statusErr models.StatusError
	if errors.As(err, &statusErr) {
		if statusErr.Status() >= http.StatusInternalServerError {
			errorLogger.Error().Err(err).Msg("request failed")
		}
		errorResponse(w, statusErr.Status(), statusErr.UserMessage(), errorLogger)
		return
	}

	switch {
	case emulator.IsContractNotFoundError(err), emulator.IsTransactionNotFoundError(err):
		errorResponse(w, http.StatusNotFound, err.Error(), errorLogger)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		errorResponse(w, http.StatusServiceUnavailable, "request cancelled", errorLogger)
	default:
		errorLogger.Error().Err(err).Msg("unexpected error")
		errorResponse(w, http.StatusInternalServerError, "internal server error", errorLogger)
	}
}

// jsonResponse encodes the response payload and writes it with the given
// status.
func jsonResponse(w http.ResponseWriter, status int, response interface{}, errorLogger zerolog.Logger) {
	encoded, err := json.Marshal(response)
	if err != nil {
		errorLogger.Error().Err(err).Msg("failed to encode response")
		errorResponse(w, http.StatusInternalServerError, "error generating response", errorLogger)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	_, err = w.Write(encoded)
	if err != nil {
		errorLogger.Error().Err(err).Msg("failed to write response")
	}
}

// errorResponse sends an HTTP error response to the client with the given return code and a model error with the given
// response message in the response body
func errorResponse(w http.ResponseWriter, returnCode int, responseMessage string, logger zerolog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(returnCode)
	modelError := models.ModelError{
		Code:    int32(returnCode),
		Message: responseMessage,
	}
	encodedError, err := json.Marshal(modelError)
	if err != nil {
		logger.Error().Str("response_message", responseMessage).Msg("failed to json encode error message")
		return
	}
	_, err = w.Write(encodedError)
	if err != nil {
		logger.Error().Err(err).Msg("failed to send error response")
	}
}

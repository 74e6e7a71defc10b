package rest

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/verichain/verichain/engine/access/rest/models"
)

// GetTransactionByHash returns an applied transaction.
func GetTransactionByHash(r *http.Request, backend Backend) (interface{}, error) {
	hash := mux.Vars(r)["hash"]
	if hash == "" {
		return nil, models.NewBadRequestError(fmt.Errorf("missing transaction hash"))
	}

	tx, err := backend.Transaction(hash)
	if err != nil {
		return nil, err
	}

	var response models.Transaction
	response.Build(tx)
	return response, nil
}

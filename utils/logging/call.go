package logging

import (
	"github.com/rs/zerolog"

	"github.com/verichain/verichain/model/product"
)

// Call returns a logger carrying the circuit, contract and product of call.
func Call(log zerolog.Logger, call *product.Call) zerolog.Logger {
	return log.With().
		Str("circuit", call.Circuit.String()).
		Str("contract", call.Contract.String()).
		Str("product_id", call.Args.ProductID.String()).
		Logger()
}

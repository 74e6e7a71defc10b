package module

import (
	"context"

	otelTrace "go.opentelemetry.io/otel/trace"

	"github.com/verichain/verichain/model/product"
)

// Tracer starts spans for registry operations.
type Tracer interface {
	// StartOperationSpan starts a span for one attempt of a circuit operation
	// on a product. It returns the context carrying the span.
	StartOperationSpan(
		ctx context.Context,
		circuit product.CircuitID,
		productID product.ID,
		opts ...otelTrace.SpanStartOption,
	) (otelTrace.Span, context.Context)
}

package trace

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelTrace "go.opentelemetry.io/otel/trace"

	"github.com/verichain/verichain/model/product"
	"github.com/verichain/verichain/module"
)

const instrumentationName = "github.com/verichain/verichain"

var (
	_ module.Tracer = (*Tracer)(nil)
	_ module.Tracer = (*NoopTracer)(nil)
)

// Tracer creates spans through the globally registered otel provider.
type Tracer struct {
	tracer otelTrace.Tracer
}

func NewTracer() *Tracer {
	return &Tracer{tracer: otel.Tracer(instrumentationName)}
}

func (t *Tracer) StartOperationSpan(
	ctx context.Context,
	circuit product.CircuitID,
	productID product.ID,
	opts ...otelTrace.SpanStartOption,
) (otelTrace.Span, context.Context) {
	opts = append(opts, otelTrace.WithAttributes(
		attribute.String("circuit", circuit.String()),
		attribute.String("product_id", productID.String()),
	))
	ctx, span := t.tracer.Start(ctx, "registry."+circuit.String(), opts...)
	return span, ctx
}

// NoopTracer returns spans that record nothing.
type NoopTracer struct {
	tracer otelTrace.Tracer
}

func NewNoopTracer() *NoopTracer {
	return &NoopTracer{tracer: otelTrace.NewNoopTracerProvider().Tracer(instrumentationName)}
}

func (t *NoopTracer) StartOperationSpan(
	ctx context.Context,
	circuit product.CircuitID,
	_ product.ID,
	opts ...otelTrace.SpanStartOption,
) (otelTrace.Span, context.Context) {
	ctx, span := t.tracer.Start(ctx, "registry."+circuit.String(), opts...)
	return span, ctx
}

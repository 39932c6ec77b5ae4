package tracing

import (
	"context"
	"fmt"

	"github.com/charmops/tempo-operator/pkg/receiver"
	"github.com/charmops/tempo-operator/pkg/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "tempo-operator"

// SelfNeeds returns the receiver protocols the operator itself depends on:
// its own spans go to the Tempo it manages, over otlp_grpc. This set seeds
// every aggregation pass so self-tracing keeps working even with zero
// clients attached.
func SelfNeeds() types.ReceiverSet {
	return types.NewReceiverSet(types.ReceiverOTLPGRPC)
}

// SelfEndpoint is the local otlp_grpc target the exporter dials
func SelfEndpoint() string {
	return fmt.Sprintf("localhost:%d", receiver.Port(types.ReceiverOTLPGRPC))
}

// Setup wires a tracer provider that exports to the managed workload and
// installs it globally. Returns a shutdown function flushing pending spans.
// The export target is the workload this very operator manages, so spans
// buffer harmlessly while the workload is down or restarting.
func Setup(ctx context.Context) (func(context.Context) error, error) {
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithEndpoint(SelfEndpoint()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create otlp exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(serviceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)

	return provider.Shutdown, nil
}

// Tracer returns the operator's tracer. Span creation is explicit and
// opt-in at call sites; nothing is wrapped automatically.
func Tracer() trace.Tracer {
	return otel.Tracer(serviceName)
}

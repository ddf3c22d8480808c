package infra

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.uber.org/fx"

	"github.com/vila-abandonada/backend/internal/app/appconfig"
	"github.com/vila-abandonada/backend/internal/pkg/bininfo"
	"github.com/vila-abandonada/backend/internal/pkg/observability"
)

// TracingInit installs the global OpenTelemetry tracer provider. The otlp exporter
// reads its endpoint from the standard OTEL_EXPORTER_OTLP_* variables.
func TracingInit(lc fx.Lifecycle, conf *appconfig.Config) error {
	if !conf.TracingEnabled {
		return nil
	}

	opts := []tracesdk.TracerProviderOption{
		tracesdk.WithSampler(tracesdk.ParentBased(tracesdk.TraceIDRatioBased(conf.TracingSampleRate))),
		tracesdk.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(observability.ServiceName),
			semconv.ServiceVersionKey.String(bininfo.Version),
		)),
	}

	for _, name := range conf.TracingExporters {
		var (
			exporter tracesdk.SpanExporter
			err      error
		)
		switch name {
		case "otlp":
			exporter, err = otlptracegrpc.New(context.Background())
		case "stdout":
			exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
		default:
			return errors.Errorf("infra: tracing: unknown exporter %q", name)
		}
		if err != nil {
			return errors.Wrapf(err, "infra: tracing: failed to create %s exporter", name)
		}
		opts = append(opts, tracesdk.WithBatcher(exporter))
	}

	tp := tracesdk.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	log.Info().Strs("exporters", conf.TracingExporters).Msg("infra: tracing: enabled")

	lc.Append(fx.Hook{
		OnStop: tp.Shutdown,
	})

	return nil
}

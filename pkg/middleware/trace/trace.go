package trace

import (
	"context"
	"errors"
	"time"

	"github.com/scienceol/piwarmer/pkg/middleware/logger"
	"go.opentelemetry.io/contrib/instrumentation/host"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type InitConfig struct {
	ServiceName    string
	Version        string
	TraceEndpoint  string
	MetricEndpoint string
	Stdout         bool
}

var shutdowns []func(context.Context) error

// InitTrace installs the global tracer and meter providers. With no endpoint and
// Stdout off the otel no-op globals stay in place.
func InitTrace(ctx context.Context, conf *InitConfig) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))

	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(
		attribute.String("service.name", conf.ServiceName),
		attribute.String("service.version", conf.Version),
	))
	if err != nil {
		logger.Warnf(ctx, "merge otel resource err: %+v", err)
		res = resource.Default()
	}

	if err := initTracer(ctx, conf, res); err != nil {
		logger.Errorf(ctx, "init tracer err: %+v", err)
	}
	if err := initMeter(ctx, conf, res); err != nil {
		logger.Errorf(ctx, "init meter err: %+v", err)
	}
}

func initTracer(ctx context.Context, conf *InitConfig, res *resource.Resource) error {
	var exporter sdktrace.SpanExporter
	switch {
	case conf.Stdout:
		exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return err
		}
		exporter = exp
	case conf.TraceEndpoint != "":
		exp, err := otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(conf.TraceEndpoint),
			otlptracegrpc.WithInsecure())
		if err != nil {
			return err
		}
		exporter = exp
	default:
		return nil
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	shutdowns = append(shutdowns, tp.Shutdown)
	return nil
}

func initMeter(ctx context.Context, conf *InitConfig, res *resource.Resource) error {
	var exporter sdkmetric.Exporter
	switch {
	case conf.Stdout:
		exp, err := stdoutmetric.New()
		if err != nil {
			return err
		}
		exporter = exp
	case conf.MetricEndpoint != "":
		exp, err := otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(conf.MetricEndpoint),
			otlpmetricgrpc.WithInsecure())
		if err != nil {
			return err
		}
		exporter = exp
	default:
		return nil
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(30*time.Second))),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)
	shutdowns = append(shutdowns, mp.Shutdown)

	if err := runtime.Start(runtime.WithMeterProvider(mp)); err != nil {
		return err
	}
	return host.Start(host.WithMeterProvider(mp))
}

func CloseTrace() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var errs []error
	for _, shutdown := range shutdowns {
		errs = append(errs, shutdown(ctx))
	}
	shutdowns = nil
	if err := errors.Join(errs...); err != nil {
		logger.Errorf(ctx, "close trace err: %+v", err)
	}
}

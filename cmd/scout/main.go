package main

import (
	"context"
	"log/slog"
	"os"

	"scout/config"
	"scout/internal/compose"
	"scout/internal/delivery"
	"scout/internal/delivery/http"
	"scout/internal/delivery/http/handler"
	"scout/internal/dispatch"
	"scout/internal/domain/service"
	"scout/internal/infra/catalog"
	logs "scout/internal/infra/log"
	"scout/internal/infra/messaging"
	"scout/internal/infra/metrics"
	"scout/internal/infra/persistence/postgres"
	"scout/internal/infra/sms"
	"scout/internal/processor"
	"scout/internal/queue"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectCore(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startDispatcher,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		newRegistry,
		catalog.New,
	)
}

func newRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return registry
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewSubscriptionRepository,
			postgres.NewGeofenceRepository,
			postgres.NewDeviceRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			messaging.New,
			sms.New,
			newMetricsSink,
		),
	)
}

func newMetricsSink(registry *prometheus.Registry) service.MetricsSink {
	return metrics.NewPrometheusSink(registry)
}

func injectCore() fx.Option {
	return fx.Options(
		fx.Provide(
			queue.New,
			processor.New,
			dispatch.New,
			compose.New,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewProcessorSink,
			handler.NewIngestHandler,
			handler.NewPushHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// startDispatcher runs the queue consumer for the whole process lifetime.
// Closing the queue on stop lets it drain and exit.
func startDispatcher(lc fx.Lifecycle, dispatcher *dispatch.Dispatcher, notifications *queue.NotificationQueue) {
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				dispatcher.Run(context.Background())
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			notifications.Close()
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}

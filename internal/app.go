package internal

import (
	"context"
	"elevate/internal/controllers"
	"elevate/internal/notify"
	"elevate/internal/providers"
	"elevate/internal/query"
	"elevate/internal/snapshot/interfaces"
	"elevate/internal/storage"
	"elevate/internal/structures"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	WebServer *http.Server
}

// NewHandler assembles the API routes behind the metrics middleware plus the
// infrastructure endpoints.
func NewHandler(healthController *controllers.HealthController, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) http.Handler {
	apiMux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		apiMux.Handle(route.Url, route.Handler)
	}

	instrumentedAPI := providers.MetricsMiddleware(metrics, logger, apiMux)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", instrumentedAPI)
	return mux
}

func NewApp(handler http.Handler, scheduler interfaces.SchedulerInterface, backend storage.Backend, notifier *notify.ChangeNotifier, queries *query.Client, conf *structures.Config, logger providers.Logger) (*App, error) {
	logger.Infof(providers.TypeApp, "Starting %s", conf.AppName)
	err := scheduler.Restore()
	if err != nil {
		logger.Errorf(providers.TypeApp, "Restore error: %s", err)
	}

	detach := queries.Attach(notifier)
	defer detach()

	syncCtx, stopSync := context.WithCancel(context.Background())
	syncDone := make(chan struct{})
	go func() {
		defer close(syncDone)
		if err := notifier.Run(syncCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Errorf(providers.TypeSync, "Cross-context listener stopped: %s", err)
		}
	}()

	// Event streams end when the server shuts down.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()

	app := &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      handler,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
			BaseContext:  func(net.Listener) context.Context { return baseCtx },
		},
	}
	app.WebServer.RegisterOnShutdown(cancelBase)

	scheduler.Init()

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof(providers.TypeApp, "Listening HTTP clients on %s:%d", conf.WebServer.Host, conf.WebServer.Port)
		if err := app.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		stopSync()
		return nil, fmt.Errorf("server error: %w", err)
	}

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err = app.WebServer.Shutdown(ctx); err != nil {
		logger.Warnf(providers.TypeApp, "Shutdown: %s", err)
	}

	stopSync()
	<-syncDone
	if err = notifier.Close(); err != nil {
		logger.Warnf(providers.TypeSync, "Closing cross-context channel: %s", err)
	}

	err = scheduler.Persist()
	scheduler.Close()
	if err != nil {
		return nil, err
	}
	if err = backend.Close(); err != nil {
		return nil, err
	}
	logger.Infof(providers.TypeApp, "gracefully stopped")
	return app, nil
}

//go:build wireinject
// +build wireinject

package di

import (
	"elevate/internal"
	"elevate/internal/controllers"
	"elevate/internal/notify"
	"elevate/internal/providers"
	"elevate/internal/query"
	"elevate/internal/repository"
	"elevate/internal/services"
	"elevate/internal/snapshot"
	"elevate/internal/storage"
	"elevate/internal/structures"

	wire "github.com/google/wire"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		storage.NewBackend,
		notify.NewNotifier,
		wire.Bind(new(storage.Notifier), new(*notify.ChangeNotifier)),
		wire.Bind(new(notify.ChangeNotifierInterface), new(*notify.ChangeNotifier)),
		wire.Bind(new(controllers.NotifierStats), new(*notify.ChangeNotifier)),
		storage.NewRecordStore,
		repository.NewRepositories,

		query.DefaultBindings,
		query.NewClient,
		services.NewProgressService,

		snapshot.NewBackendScheduler,
		controllers.NewApiController,
		controllers.NewEventsController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewHandler,
		internal.NewApp,
	)

	return nil, nil
}

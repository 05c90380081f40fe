package editionsimulator

import (
	"log/slog"

	httpadapter "raspepix/contexts/finance-core/edition-simulator/adapters/http"
	"raspepix/contexts/finance-core/edition-simulator/adapters/memory"
	"raspepix/contexts/finance-core/edition-simulator/application"
	"raspepix/contexts/finance-core/edition-simulator/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Catalog    ports.Catalog
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:    deps.Repository,
		Catalog: deps.Catalog,
		Clock:   deps.Clock,
		IDGen:   deps.IDGen,
		Logger:  deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Catalog:    store,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}

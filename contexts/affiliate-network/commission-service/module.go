package commissionservice

import (
	"log/slog"

	httpadapter "raspepix/contexts/affiliate-network/commission-service/adapters/http"
	"raspepix/contexts/affiliate-network/commission-service/adapters/memory"
	"raspepix/contexts/affiliate-network/commission-service/application"
	"raspepix/contexts/affiliate-network/commission-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository    ports.Repository
	Editions      ports.EditionSource
	Deposits      ports.DepositSource
	PublicBaseURL string
	Logger        *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:          deps.Repository,
		Editions:      deps.Editions,
		Deposits:      deps.Deposits,
		PublicBaseURL: deps.PublicBaseURL,
		Logger:        deps.Logger,
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
		Editions:   store,
		Deposits:   store,
		Logger:     logger,
	})
	module.Store = store
	return module
}

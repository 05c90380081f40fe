package editionservice

import (
	"log/slog"

	httpadapter "raspepix/contexts/lottery-core/edition-service/adapters/http"
	"raspepix/contexts/lottery-core/edition-service/adapters/memory"
	randomadapter "raspepix/contexts/lottery-core/edition-service/adapters/random"
	"raspepix/contexts/lottery-core/edition-service/application"
	"raspepix/contexts/lottery-core/edition-service/application/workers"
	"raspepix/contexts/lottery-core/edition-service/ports"
)

type Module struct {
	Handler       httpadapter.Handler
	EditionCloser workers.EditionCloser
	OutboxRelay   workers.OutboxRelay
	Store         *memory.Store
}

type Dependencies struct {
	Editions  ports.Repository
	Tickets   ports.TicketRepository
	Sweep     ports.SweepRepository
	Outbox    ports.OutboxRepository
	Publisher ports.EventPublisher
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Numbers   ports.NumberSource
	BatchSize int
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	numbers := deps.Numbers
	if numbers == nil {
		numbers = randomadapter.Source{}
	}
	service := application.Service{
		Editions: deps.Editions,
		Tickets:  deps.Tickets,
		Clock:    deps.Clock,
		IDGen:    deps.IDGen,
		Numbers:  numbers,
		Logger:   deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		EditionCloser: workers.EditionCloser{
			Editions:  deps.Sweep,
			Clock:     deps.Clock,
			BatchSize: deps.BatchSize,
			Logger:    deps.Logger,
		},
		OutboxRelay: workers.OutboxRelay{
			Outbox:    deps.Outbox,
			Publisher: deps.Publisher,
			Clock:     deps.Clock,
			BatchSize: deps.BatchSize,
			Logger:    deps.Logger,
		},
	}
}

func NewInMemoryModule(publisher ports.EventPublisher, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Editions:  store,
		Tickets:   store,
		Sweep:     store,
		Outbox:    store,
		Publisher: publisher,
		Clock:     store,
		IDGen:     store,
		Logger:    logger,
	})
	module.Store = store
	return module
}

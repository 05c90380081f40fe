package httpserver

import (
	"log/slog"

	commissionservice "raspepix/contexts/affiliate-network/commission-service"
	editionsimulator "raspepix/contexts/finance-core/edition-simulator"
	editionservice "raspepix/contexts/lottery-core/edition-service"
	"raspepix/internal/platform/messaging"
)

func newTestServer() *Server {
	logger := slog.Default()
	bus, _ := messaging.NewBus(nil, logger)
	return New(
		commissionservice.NewInMemoryModule(logger),
		editionsimulator.NewInMemoryModule(logger),
		editionservice.NewInMemoryModule(bus, logger),
		logger,
		":0",
	)
}

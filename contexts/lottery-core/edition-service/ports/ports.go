package ports

import (
	"context"
	"time"

	"raspepix/contexts/lottery-core/edition-service/domain/entities"
	contractsv1 "raspepix/contracts/gen/events/v1"
)

type EditionFilter struct {
	Status entities.EditionStatus
}

type Repository interface {
	CreateEdition(ctx context.Context, edition entities.Edition) error
	GetEdition(ctx context.Context, editionID string) (entities.Edition, error)
	ListEditions(ctx context.Context, filter EditionFilter) ([]entities.Edition, error)
	// TransitionStatus updates the edition status and appends the outbox
	// envelope in the same transaction.
	TransitionStatus(
		ctx context.Context,
		editionID string,
		from entities.EditionStatus,
		to entities.EditionStatus,
		transitionedAt time.Time,
		envelope EventEnvelope,
	) error
	AttachWinningNumbers(ctx context.Context, editionID string, numbers []string, updatedAt time.Time) error
}

type TicketRepository interface {
	SaveInstantTickets(ctx context.Context, tickets []entities.InstantTicket) error
	ListInstantTickets(ctx context.Context, editionID string) ([]entities.InstantTicket, error)
	CountInstantTickets(ctx context.Context, editionID string) (int64, error)
}

type ClosedEdition struct {
	EditionID string
}

// SweepRepository closes active editions whose sales window has passed,
// appending the close event outbox row per edition.
type SweepRepository interface {
	CloseEditionsPastEnd(ctx context.Context, now time.Time, limit int) ([]ClosedEdition, error)
}

type EventEnvelope = contractsv1.Envelope

type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// NumberSource abstracts randomness so prize assignment is reproducible in
// tests.
type NumberSource interface {
	Intn(n int) int
	Int63n(n int64) int64
}

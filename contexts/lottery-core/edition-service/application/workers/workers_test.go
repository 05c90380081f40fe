package workers

import (
	"context"
	"testing"
	"time"

	"raspepix/contexts/lottery-core/edition-service/adapters/memory"
	"raspepix/contexts/lottery-core/edition-service/domain/entities"
	"raspepix/contexts/lottery-core/edition-service/ports"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type capturingPublisher struct {
	topics []string
	events []ports.EventEnvelope
}

func (p *capturingPublisher) Publish(_ context.Context, topic string, event ports.EventEnvelope) error {
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

func seedActiveEdition(store *memory.Store, editionID string, endsAt time.Time) {
	store.SeedEdition(entities.Edition{
		EditionID:            editionID,
		Name:                 "Edição " + editionID,
		Status:               entities.EditionStatusActive,
		StartsAt:             endsAt.Add(-30 * 24 * time.Hour),
		EndsAt:               endsAt,
		LotteryPrizeCentavos: 5_000_000,
	})
}

func TestEditionCloserClosesExpiredEditions(t *testing.T) {
	store := memory.NewStore()
	now := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	seedActiveEdition(store, "ed-expired", now.Add(-time.Hour))
	seedActiveEdition(store, "ed-running", now.Add(time.Hour))

	closer := EditionCloser{
		Editions: store,
		Clock:    fixedClock{now: now},
	}
	if err := closer.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}

	expired, err := store.GetEdition(context.Background(), "ed-expired")
	if err != nil {
		t.Fatalf("GetEdition: %v", err)
	}
	if expired.Status != entities.EditionStatusClosed {
		t.Fatalf("expected ed-expired closed, got %s", expired.Status)
	}
	if expired.ClosedAt == nil || !expired.ClosedAt.Equal(now) {
		t.Fatalf("expected ClosedAt %v, got %v", now, expired.ClosedAt)
	}

	running, err := store.GetEdition(context.Background(), "ed-running")
	if err != nil {
		t.Fatalf("GetEdition: %v", err)
	}
	if running.Status != entities.EditionStatusActive {
		t.Fatalf("expected ed-running still ativo, got %s", running.Status)
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListPendingOutbox: %v", err)
	}
	if len(pending) != 1 || pending[0].EventType != "edition.closed" {
		t.Fatalf("expected one pending edition.closed row, got %+v", pending)
	}
}

func TestEditionCloserIsIdempotentOnRerun(t *testing.T) {
	store := memory.NewStore()
	now := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	seedActiveEdition(store, "ed-expired", now.Add(-time.Hour))

	closer := EditionCloser{
		Editions: store,
		Clock:    fixedClock{now: now},
	}
	if err := closer.RunOnce(context.Background()); err != nil {
		t.Fatalf("first RunOnce: %v", err)
	}
	if err := closer.RunOnce(context.Background()); err != nil {
		t.Fatalf("second RunOnce: %v", err)
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListPendingOutbox: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected one outbox row after rerun, got %d", len(pending))
	}
}

func TestOutboxRelayPublishesAndMarks(t *testing.T) {
	store := memory.NewStore()
	now := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	seedActiveEdition(store, "ed-expired", now.Add(-time.Hour))

	closer := EditionCloser{
		Editions: store,
		Clock:    fixedClock{now: now},
	}
	if err := closer.RunOnce(context.Background()); err != nil {
		t.Fatalf("closer RunOnce: %v", err)
	}

	publisher := &capturingPublisher{}
	relay := OutboxRelay{
		Outbox:    store,
		Publisher: publisher,
		Clock:     fixedClock{now: now},
	}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay RunOnce: %v", err)
	}

	if len(publisher.events) != 1 {
		t.Fatalf("expected one published event, got %d", len(publisher.events))
	}
	if publisher.topics[0] != "edition.closed" {
		t.Fatalf("expected topic edition.closed, got %s", publisher.topics[0])
	}
	if publisher.events[0].PartitionKey != "ed-expired" {
		t.Fatalf("expected partition key ed-expired, got %s", publisher.events[0].PartitionKey)
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListPendingOutbox: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected no pending rows after relay, got %d", len(pending))
	}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay second RunOnce: %v", err)
	}
	if len(publisher.events) != 1 {
		t.Fatalf("expected no duplicate publish, got %d events", len(publisher.events))
	}
}

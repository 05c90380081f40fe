package postgresadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"raspepix/contexts/lottery-core/edition-service/domain/entities"
	domainerrors "raspepix/contexts/lottery-core/edition-service/domain/errors"
	"raspepix/contexts/lottery-core/edition-service/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateEdition(ctx context.Context, edition entities.Edition) error {
	row, err := editionModelFromEntity(edition)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrEditionAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repository) GetEdition(ctx context.Context, editionID string) (entities.Edition, error) {
	var row editionModel
	err := r.db.WithContext(ctx).
		Where("edition_id = ?", strings.TrimSpace(editionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Edition{}, domainerrors.ErrEditionNotFound
		}
		return entities.Edition{}, err
	}
	return row.toEntity()
}

func (r *Repository) ListEditions(ctx context.Context, filter ports.EditionFilter) ([]entities.Edition, error) {
	query := r.db.WithContext(ctx).Model(&editionModel{})
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var rows []editionModel
	if err := query.Order("starts_at ASC, edition_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]entities.Edition, 0, len(rows))
	for _, row := range rows {
		edition, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, edition)
	}
	return items, nil
}

func (r *Repository) TransitionStatus(
	ctx context.Context,
	editionID string,
	from entities.EditionStatus,
	to entities.EditionStatus,
	transitionedAt time.Time,
	envelope ports.EventEnvelope,
) error {
	at := transitionedAt.UTC()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row editionModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("edition_id = ?", strings.TrimSpace(editionID)).
			First(&row).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrEditionNotFound
			}
			return err
		}
		if entities.EditionStatus(row.Status) != from {
			return domainerrors.ErrInvalidStateTransition
		}

		updates := map[string]any{
			"status":     string(to),
			"updated_at": at,
		}
		switch to {
		case entities.EditionStatusActive:
			updates["activated_at"] = at
		case entities.EditionStatusClosed:
			updates["closed_at"] = at
		}
		if err := tx.Model(&editionModel{}).
			Where("edition_id = ?", row.EditionID).
			Updates(updates).
			Error; err != nil {
			return err
		}
		return insertOutboxEnvelopeTx(tx, envelope)
	})
}

func (r *Repository) AttachWinningNumbers(
	ctx context.Context,
	editionID string,
	numbers []string,
	updatedAt time.Time,
) error {
	payload, err := json.Marshal(numbers)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&editionModel{}).
		Where("edition_id = ?", strings.TrimSpace(editionID)).
		Updates(map[string]any{
			"winning_numbers": payload,
			"updated_at":      updatedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrEditionNotFound
	}
	return nil
}

func (r *Repository) SaveInstantTickets(ctx context.Context, tickets []entities.InstantTicket) error {
	if len(tickets) == 0 {
		return nil
	}
	rows := make([]instantTicketModel, 0, len(tickets))
	for _, ticket := range tickets {
		rows = append(rows, instantTicketModel{
			TicketID:           ticket.TicketID,
			EditionID:          ticket.EditionID,
			Number:             ticket.Number,
			IsPrized:           ticket.IsPrized,
			PrizeValueCentavos: ticket.PrizeValueCentavos,
			CreatedAt:          ticket.CreatedAt.UTC(),
		})
	}
	return r.db.WithContext(ctx).CreateInBatches(&rows, 500).Error
}

func (r *Repository) ListInstantTickets(ctx context.Context, editionID string) ([]entities.InstantTicket, error) {
	var rows []instantTicketModel
	err := r.db.WithContext(ctx).
		Where("edition_id = ?", strings.TrimSpace(editionID)).
		Order("number ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]entities.InstantTicket, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.InstantTicket{
			TicketID:           row.TicketID,
			EditionID:          row.EditionID,
			Number:             row.Number,
			IsPrized:           row.IsPrized,
			PrizeValueCentavos: row.PrizeValueCentavos,
			CreatedAt:          row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) CountInstantTickets(ctx context.Context, editionID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&instantTicketModel{}).
		Where("edition_id = ?", strings.TrimSpace(editionID)).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *Repository) CloseEditionsPastEnd(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]ports.ClosedEdition, error) {
	if limit <= 0 {
		limit = 100
	}
	timestamp := now.UTC()
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	results := make([]ports.ClosedEdition, 0)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []editionModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("status = ? AND ends_at < ?", string(entities.EditionStatusActive), timestamp).
			Order("ends_at ASC").
			Limit(limit).
			Find(&rows).
			Error; err != nil {
			return err
		}

		for _, row := range rows {
			if err := tx.Model(&editionModel{}).
				Where("edition_id = ?", row.EditionID).
				Updates(map[string]any{
					"status":     string(entities.EditionStatusClosed),
					"updated_at": timestamp,
					"closed_at":  timestamp,
				}).
				Error; err != nil {
				return err
			}

			envelope, err := editionEnvelopeFromMap(
				uuid.NewString(),
				"edition.closed",
				row.EditionID,
				timestamp,
				map[string]any{
					"edition_id": row.EditionID,
					"status":     string(entities.EditionStatusClosed),
					"reason":     "sales_window_ended",
				},
			)
			if err != nil {
				return err
			}
			if err := insertOutboxEnvelopeTx(tx, envelope); err != nil {
				return err
			}
			results = append(results, ports.ClosedEdition{EditionID: row.EditionID})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}

	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      append([]byte(nil), row.Payload...),
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrEditionNotFound
	}
	return nil
}

func insertOutboxEnvelopeTx(tx *gorm.DB, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	row := outboxModel{
		OutboxID:     strings.TrimSpace(envelope.EventID),
		EventType:    strings.TrimSpace(envelope.EventType),
		PartitionKey: strings.TrimSpace(envelope.PartitionKey),
		Payload:      payload,
		Status:       outboxStatusPending,
		CreatedAt:    envelope.OccurredAt.UTC(),
	}
	if row.OutboxID == "" {
		row.OutboxID = uuid.NewString()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	createResult := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "outbox_id"}},
		DoNothing: true,
	}).Create(&row)
	if createResult.Error != nil {
		return createResult.Error
	}
	if createResult.RowsAffected == 0 {
		var existing outboxModel
		if err := tx.Select("payload").Where("outbox_id = ?", row.OutboxID).First(&existing).Error; err != nil {
			return err
		}
		if !bytes.Equal(existing.Payload, row.Payload) {
			return domainerrors.ErrOutboxPayloadConflict
		}
	}
	return nil
}

func editionEnvelopeFromMap(
	eventID string,
	eventType string,
	editionID string,
	occurredAt time.Time,
	data map[string]any,
) (ports.EventEnvelope, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    "edition-service",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "edition_id",
		PartitionKey:     editionID,
		Data:             payload,
	}, nil
}

type editionModel struct {
	EditionID                    string     `gorm:"column:edition_id;primaryKey"`
	Name                         string     `gorm:"column:name"`
	Status                       string     `gorm:"column:status"`
	StartsAt                     time.Time  `gorm:"column:starts_at"`
	EndsAt                       time.Time  `gorm:"column:ends_at"`
	LotteryPrizeCentavos         int64      `gorm:"column:lottery_prize_centavos"`
	CostPlanID                   string     `gorm:"column:cost_plan_id"`
	TotalInstantTickets          int64      `gorm:"column:total_instant_tickets"`
	InstantPrizesToDistribute    int64      `gorm:"column:instant_prizes_to_distribute"`
	MinInstantPrizeValueCentavos int64      `gorm:"column:min_instant_prize_value_centavos"`
	MaxInstantPrizeValueCentavos int64      `gorm:"column:max_instant_prize_value_centavos"`
	WinningNumbers               []byte     `gorm:"column:winning_numbers;type:jsonb"`
	CreatedAt                    time.Time  `gorm:"column:created_at"`
	UpdatedAt                    time.Time  `gorm:"column:updated_at"`
	ActivatedAt                  *time.Time `gorm:"column:activated_at"`
	ClosedAt                     *time.Time `gorm:"column:closed_at"`
}

func (editionModel) TableName() string {
	return "editions"
}

func editionModelFromEntity(edition entities.Edition) (editionModel, error) {
	var winningNumbers []byte
	if len(edition.WinningNumbers) > 0 {
		payload, err := json.Marshal(edition.WinningNumbers)
		if err != nil {
			return editionModel{}, err
		}
		winningNumbers = payload
	}
	return editionModel{
		EditionID:                    strings.TrimSpace(edition.EditionID),
		Name:                         strings.TrimSpace(edition.Name),
		Status:                       string(edition.Status),
		StartsAt:                     edition.StartsAt.UTC(),
		EndsAt:                       edition.EndsAt.UTC(),
		LotteryPrizeCentavos:         edition.LotteryPrizeCentavos,
		CostPlanID:                   strings.TrimSpace(edition.CostPlanID),
		TotalInstantTickets:          edition.TotalInstantTickets,
		InstantPrizesToDistribute:    edition.InstantPrizesToDistribute,
		MinInstantPrizeValueCentavos: edition.MinInstantPrizeValueCentavos,
		MaxInstantPrizeValueCentavos: edition.MaxInstantPrizeValueCentavos,
		WinningNumbers:               winningNumbers,
		CreatedAt:                    edition.CreatedAt.UTC(),
		UpdatedAt:                    edition.UpdatedAt.UTC(),
		ActivatedAt:                  edition.ActivatedAt,
		ClosedAt:                     edition.ClosedAt,
	}, nil
}

func (row editionModel) toEntity() (entities.Edition, error) {
	var winningNumbers []string
	if len(row.WinningNumbers) > 0 {
		if err := json.Unmarshal(row.WinningNumbers, &winningNumbers); err != nil {
			return entities.Edition{}, err
		}
	}
	return entities.Edition{
		EditionID:                    row.EditionID,
		Name:                         row.Name,
		Status:                       entities.EditionStatus(row.Status),
		StartsAt:                     row.StartsAt.UTC(),
		EndsAt:                       row.EndsAt.UTC(),
		LotteryPrizeCentavos:         row.LotteryPrizeCentavos,
		CostPlanID:                   row.CostPlanID,
		TotalInstantTickets:          row.TotalInstantTickets,
		InstantPrizesToDistribute:    row.InstantPrizesToDistribute,
		MinInstantPrizeValueCentavos: row.MinInstantPrizeValueCentavos,
		MaxInstantPrizeValueCentavos: row.MaxInstantPrizeValueCentavos,
		WinningNumbers:               winningNumbers,
		CreatedAt:                    row.CreatedAt.UTC(),
		UpdatedAt:                    row.UpdatedAt.UTC(),
		ActivatedAt:                  row.ActivatedAt,
		ClosedAt:                     row.ClosedAt,
	}, nil
}

type instantTicketModel struct {
	TicketID           string    `gorm:"column:ticket_id;primaryKey"`
	EditionID          string    `gorm:"column:edition_id"`
	Number             int64     `gorm:"column:number"`
	IsPrized           bool      `gorm:"column:is_prized"`
	PrizeValueCentavos int64     `gorm:"column:prize_value_centavos"`
	CreatedAt          time.Time `gorm:"column:created_at"`
}

func (instantTicketModel) TableName() string {
	return "instant_tickets"
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "edition_outbox"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	domainerrors "raspepix/contexts/affiliate-network/commission-service/domain/errors"
	"raspepix/contexts/affiliate-network/commission-service/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
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

func (r *Repository) GetAffiliate(ctx context.Context, affiliateID string) (ports.Affiliate, error) {
	var row rosterRow
	err := r.db.WithContext(ctx).
		Table("affiliates").
		Select("affiliates.affiliate_id, affiliates.user_id, affiliates.referral_code, affiliates.commission_rate, affiliates.is_active, users.name, users.email").
		Joins("JOIN users ON users.user_id = affiliates.user_id").
		Where("affiliates.affiliate_id = ?", strings.TrimSpace(affiliateID)).
		Take(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Affiliate{}, domainerrors.ErrAffiliateNotFound
		}
		return ports.Affiliate{}, err
	}
	return row.toPort(), nil
}

func (r *Repository) ListAffiliates(ctx context.Context, filter ports.RosterFilter) ([]ports.Affiliate, error) {
	tx := r.db.WithContext(ctx).
		Table("affiliates").
		Select("affiliates.affiliate_id, affiliates.user_id, affiliates.referral_code, affiliates.commission_rate, affiliates.is_active, users.name, users.email").
		Joins("JOIN users ON users.user_id = affiliates.user_id")
	if term := strings.TrimSpace(filter.NameSearch); term != "" {
		tx = tx.Where("LOWER(users.name) LIKE ?", "%"+strings.ToLower(term)+"%")
	}

	var rows []rosterRow
	if err := tx.Order("affiliates.created_at ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]ports.Affiliate, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toPort())
	}
	return items, nil
}

func (r *Repository) UpdateCommissionRate(ctx context.Context, affiliateID string, rate float64) error {
	result := r.db.WithContext(ctx).
		Model(&affiliateModel{}).
		Where("affiliate_id = ?", strings.TrimSpace(affiliateID)).
		Updates(map[string]any{
			"commission_rate": rate,
			"updated_at":      time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrAffiliateNotFound
	}
	return nil
}

func (r *Repository) UpsertCommissionRates(ctx context.Context, affiliateIDs []string, rate float64) error {
	now := time.Now().UTC()
	rows := make([]affiliateModel, 0, len(affiliateIDs))
	for _, raw := range affiliateIDs {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		rows = append(rows, affiliateModel{
			AffiliateID:    id,
			CommissionRate: rate,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}
	if len(rows) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "affiliate_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"commission_rate": rate,
			"updated_at":      now,
		}),
	}).Create(&rows).Error
}

func (r *Repository) UpdateAllActiveCommissionRate(ctx context.Context, rate float64) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&affiliateModel{}).
		Where("is_active = ?", true).
		Updates(map[string]any{
			"commission_rate": rate,
			"updated_at":      time.Now().UTC(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *Repository) GetEditionWindow(ctx context.Context, editionID string) (ports.EditionWindow, error) {
	var row editionWindowRow
	err := r.db.WithContext(ctx).
		Table("editions").
		Select("edition_id, starts_at, ends_at").
		Where("edition_id = ?", strings.TrimSpace(editionID)).
		Take(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.EditionWindow{}, domainerrors.ErrEditionNotFound
		}
		return ports.EditionWindow{}, err
	}
	return ports.EditionWindow{
		EditionID: row.EditionID,
		StartsAt:  row.StartsAt,
		EndsAt:    row.EndsAt,
	}, nil
}

func (r *Repository) ListDepositsWithin(ctx context.Context, from time.Time, to time.Time) ([]ports.DepositTransaction, error) {
	var rows []transactionModel
	err := r.db.WithContext(ctx).
		Where("type = ? AND created_at >= ? AND created_at <= ?", transactionTypeDeposit, from, to).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]ports.DepositTransaction, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.DepositTransaction{
			TransactionID:  row.TransactionID,
			UserID:         row.UserID,
			AmountCentavos: row.AmountCentavos,
			Description:    row.Description,
			CreatedAt:      row.CreatedAt,
		})
	}
	return items, nil
}

const transactionTypeDeposit = "deposit"

type affiliateModel struct {
	AffiliateID    string    `gorm:"column:affiliate_id;primaryKey"`
	UserID         string    `gorm:"column:user_id"`
	ReferralCode   string    `gorm:"column:referral_code"`
	CommissionRate float64   `gorm:"column:commission_rate"`
	IsActive       bool      `gorm:"column:is_active"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (affiliateModel) TableName() string {
	return "affiliates"
}

type transactionModel struct {
	TransactionID  string    `gorm:"column:transaction_id;primaryKey"`
	UserID         string    `gorm:"column:user_id"`
	Type           string    `gorm:"column:type"`
	AmountCentavos int64     `gorm:"column:amount_centavos"`
	Description    string    `gorm:"column:description"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (transactionModel) TableName() string {
	return "transactions"
}

type rosterRow struct {
	AffiliateID    string  `gorm:"column:affiliate_id"`
	UserID         string  `gorm:"column:user_id"`
	ReferralCode   string  `gorm:"column:referral_code"`
	CommissionRate float64 `gorm:"column:commission_rate"`
	IsActive       bool    `gorm:"column:is_active"`
	Name           string  `gorm:"column:name"`
	Email          string  `gorm:"column:email"`
}

func (row rosterRow) toPort() ports.Affiliate {
	return ports.Affiliate{
		AffiliateID:    row.AffiliateID,
		UserID:         row.UserID,
		Name:           row.Name,
		Email:          row.Email,
		ReferralCode:   row.ReferralCode,
		CommissionRate: row.CommissionRate,
		IsActive:       row.IsActive,
	}
}

type editionWindowRow struct {
	EditionID string    `gorm:"column:edition_id"`
	StartsAt  time.Time `gorm:"column:starts_at"`
	EndsAt    time.Time `gorm:"column:ends_at"`
}

package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	domainerrors "raspepix/contexts/finance-core/edition-simulator/domain/errors"
	"raspepix/contexts/finance-core/edition-simulator/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
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

func (r *Repository) CreateCostPlan(ctx context.Context, plan ports.CostPlan) error {
	row, err := costPlanModelFromPort(plan)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrCostPlanAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repository) GetCostPlan(ctx context.Context, planID string) (ports.CostPlan, error) {
	var row costPlanModel
	err := r.db.WithContext(ctx).
		Where("plan_id = ?", strings.TrimSpace(planID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.CostPlan{}, domainerrors.ErrCostPlanNotFound
		}
		return ports.CostPlan{}, err
	}
	return row.toPort()
}

func (r *Repository) ListCostPlans(ctx context.Context) ([]ports.CostPlan, error) {
	var rows []costPlanModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]ports.CostPlan, 0, len(rows))
	for _, row := range rows {
		plan, err := row.toPort()
		if err != nil {
			return nil, err
		}
		items = append(items, plan)
	}
	return items, nil
}

func (r *Repository) UpdateCostPlan(ctx context.Context, plan ports.CostPlan) error {
	row, err := costPlanModelFromPort(plan)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&costPlanModel{}).
		Where("plan_id = ?", row.PlanID).
		Updates(map[string]any{
			"name":                  row.Name,
			"ticket_price_centavos": row.TicketPriceCentavos,
			"expected_tickets_sold": row.ExpectedTicketsSold,
			"rules":                 row.Rules,
			"extra_costs":           row.ExtraCosts,
			"updated_at":            row.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCostPlanNotFound
	}
	return nil
}

func (r *Repository) GetSimulationEdition(ctx context.Context, editionID string) (ports.SimulationEdition, error) {
	var row simulationEditionRow
	err := r.db.WithContext(ctx).
		Table("editions").
		Select("edition_id, lottery_prize_centavos, cost_plan_id").
		Where("edition_id = ?", strings.TrimSpace(editionID)).
		Take(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.SimulationEdition{}, domainerrors.ErrEditionNotFound
		}
		return ports.SimulationEdition{}, err
	}
	return ports.SimulationEdition{
		EditionID:            row.EditionID,
		LotteryPrizeCentavos: row.LotteryPrizeCentavos,
		CostPlanID:           row.CostPlanID,
	}, nil
}

func (r *Repository) ListScratchCards(ctx context.Context) ([]ports.SimulationScratchCard, error) {
	var rows []scratchCardRow
	err := r.db.WithContext(ctx).
		Table("scratch_cards").
		Select("card_id, edition_id, expected_sales_volume, instant_prizes_centavos").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]ports.SimulationScratchCard, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.SimulationScratchCard{
			CardID:                row.CardID,
			EditionID:             row.EditionID,
			ExpectedSalesVolume:   row.ExpectedSalesVolume,
			InstantPrizesCentavos: row.InstantPrizesCentavos,
		})
	}
	return items, nil
}

type costPlanModel struct {
	PlanID              string    `gorm:"column:plan_id;primaryKey"`
	Name                string    `gorm:"column:name"`
	TicketPriceCentavos int64     `gorm:"column:ticket_price_centavos"`
	ExpectedTicketsSold int64     `gorm:"column:expected_tickets_sold"`
	Rules               []byte    `gorm:"column:rules;type:jsonb"`
	ExtraCosts          []byte    `gorm:"column:extra_costs;type:jsonb"`
	CreatedAt           time.Time `gorm:"column:created_at"`
	UpdatedAt           time.Time `gorm:"column:updated_at"`
}

func (costPlanModel) TableName() string {
	return "cost_plans"
}

type costRulesPayload struct {
	CapitalizationFee     ports.CostRule `json:"capitalization_fee"`
	PaymentProcessorFee   ports.CostRule `json:"payment_processor_fee"`
	PhilanthropicDonation ports.CostRule `json:"philanthropic_donation"`
	InfluencerPayout      ports.CostRule `json:"influencer_payout"`
	AffiliatePayout       ports.CostRule `json:"affiliate_payout"`
	PaidTrafficSpend      ports.CostRule `json:"paid_traffic_spend"`
}

func costPlanModelFromPort(plan ports.CostPlan) (costPlanModel, error) {
	rules, err := json.Marshal(costRulesPayload{
		CapitalizationFee:     plan.CapitalizationFee,
		PaymentProcessorFee:   plan.PaymentProcessorFee,
		PhilanthropicDonation: plan.PhilanthropicDonation,
		InfluencerPayout:      plan.InfluencerPayout,
		AffiliatePayout:       plan.AffiliatePayout,
		PaidTrafficSpend:      plan.PaidTrafficSpend,
	})
	if err != nil {
		return costPlanModel{}, err
	}
	extras, err := json.Marshal(plan.ExtraCosts)
	if err != nil {
		return costPlanModel{}, err
	}
	return costPlanModel{
		PlanID:              strings.TrimSpace(plan.PlanID),
		Name:                strings.TrimSpace(plan.Name),
		TicketPriceCentavos: plan.TicketPriceCentavos,
		ExpectedTicketsSold: plan.ExpectedTicketsSold,
		Rules:               rules,
		ExtraCosts:          extras,
		CreatedAt:           plan.CreatedAt.UTC(),
		UpdatedAt:           plan.UpdatedAt.UTC(),
	}, nil
}

func (row costPlanModel) toPort() (ports.CostPlan, error) {
	var rules costRulesPayload
	if len(row.Rules) > 0 {
		if err := json.Unmarshal(row.Rules, &rules); err != nil {
			return ports.CostPlan{}, err
		}
	}
	var extras []ports.ExtraCost
	if len(row.ExtraCosts) > 0 {
		if err := json.Unmarshal(row.ExtraCosts, &extras); err != nil {
			return ports.CostPlan{}, err
		}
	}
	return ports.CostPlan{
		PlanID:                row.PlanID,
		Name:                  row.Name,
		TicketPriceCentavos:   row.TicketPriceCentavos,
		ExpectedTicketsSold:   row.ExpectedTicketsSold,
		CapitalizationFee:     rules.CapitalizationFee,
		PaymentProcessorFee:   rules.PaymentProcessorFee,
		PhilanthropicDonation: rules.PhilanthropicDonation,
		InfluencerPayout:      rules.InfluencerPayout,
		AffiliatePayout:       rules.AffiliatePayout,
		PaidTrafficSpend:      rules.PaidTrafficSpend,
		ExtraCosts:            extras,
		CreatedAt:             row.CreatedAt,
		UpdatedAt:             row.UpdatedAt,
	}, nil
}

type simulationEditionRow struct {
	EditionID            string `gorm:"column:edition_id"`
	LotteryPrizeCentavos int64  `gorm:"column:lottery_prize_centavos"`
	CostPlanID           string `gorm:"column:cost_plan_id"`
}

type scratchCardRow struct {
	CardID                string `gorm:"column:card_id"`
	EditionID             string `gorm:"column:edition_id"`
	ExpectedSalesVolume   int64  `gorm:"column:expected_sales_volume"`
	InstantPrizesCentavos int64  `gorm:"column:instant_prizes_centavos"`
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

package entities

import (
	"strings"
	"time"
)

type EditionStatus string

const (
	EditionStatusFuture EditionStatus = "futuro"
	EditionStatusActive EditionStatus = "ativo"
	EditionStatusClosed EditionStatus = "encerrado"
)

// Edition is one lottery cycle: a sales window, a capitalization-bond lottery
// prize and a pool of instant-prize scratch tickets.
type Edition struct {
	EditionID                    string
	Name                         string
	Status                       EditionStatus
	StartsAt                     time.Time
	EndsAt                       time.Time
	LotteryPrizeCentavos         int64
	CostPlanID                   string
	TotalInstantTickets          int64
	InstantPrizesToDistribute    int64
	MinInstantPrizeValueCentavos int64
	MaxInstantPrizeValueCentavos int64
	WinningNumbers               []string
	CreatedAt                    time.Time
	UpdatedAt                    time.Time
	ActivatedAt                  *time.Time
	ClosedAt                     *time.Time
}

func (e Edition) ValidateBasics() bool {
	return strings.TrimSpace(e.Name) != "" &&
		!e.StartsAt.IsZero() &&
		!e.EndsAt.IsZero() &&
		e.StartsAt.Before(e.EndsAt) &&
		e.LotteryPrizeCentavos >= 0 &&
		e.TotalInstantTickets >= 0 &&
		e.InstantPrizesToDistribute >= 0 &&
		e.InstantPrizesToDistribute <= e.TotalInstantTickets &&
		e.MinInstantPrizeValueCentavos >= 0 &&
		e.MinInstantPrizeValueCentavos <= e.MaxInstantPrizeValueCentavos
}

func (e Edition) CanActivate() bool {
	return e.Status == EditionStatusFuture
}

func (e Edition) CanClose() bool {
	return e.Status == EditionStatusActive
}

func IsSupportedStatus(value EditionStatus) bool {
	switch value {
	case EditionStatusFuture, EditionStatusActive, EditionStatusClosed:
		return true
	default:
		return false
	}
}

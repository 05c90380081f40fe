package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"raspepix/contexts/lottery-core/edition-service/application"
	"raspepix/contexts/lottery-core/edition-service/domain/entities"
	domainerrors "raspepix/contexts/lottery-core/edition-service/domain/errors"
	"raspepix/contexts/lottery-core/edition-service/ports"
	httptransport "raspepix/contexts/lottery-core/edition-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateEditionHandler(
	ctx context.Context,
	req httptransport.CreateEditionRequest,
) (httptransport.EditionResponse, error) {
	startsAt, err := parseTimestamp(req.StartsAt)
	if err != nil {
		return httptransport.EditionResponse{}, domainerrors.ErrInvalidEditionInput
	}
	endsAt, err := parseTimestamp(req.EndsAt)
	if err != nil {
		return httptransport.EditionResponse{}, domainerrors.ErrInvalidEditionInput
	}

	edition, err := h.Service.CreateEdition(ctx, entities.Edition{
		Name:                         req.Name,
		StartsAt:                     startsAt,
		EndsAt:                       endsAt,
		LotteryPrizeCentavos:         req.LotteryPrizeCentavos,
		CostPlanID:                   req.CostPlanID,
		TotalInstantTickets:          req.TotalInstantTickets,
		InstantPrizesToDistribute:    req.InstantPrizesToDistribute,
		MinInstantPrizeValueCentavos: req.MinInstantPrizeValueCentavos,
		MaxInstantPrizeValueCentavos: req.MaxInstantPrizeValueCentavos,
	})
	if err != nil {
		return httptransport.EditionResponse{}, err
	}
	return httptransport.EditionResponse{Status: "success", Edition: editionToDTO(edition)}, nil
}

func (h Handler) GetEditionHandler(ctx context.Context, editionID string) (httptransport.EditionResponse, error) {
	edition, err := h.Service.GetEdition(ctx, editionID)
	if err != nil {
		return httptransport.EditionResponse{}, err
	}
	return httptransport.EditionResponse{Status: "success", Edition: editionToDTO(edition)}, nil
}

func (h Handler) ListEditionsHandler(ctx context.Context, status string) (httptransport.EditionListResponse, error) {
	editions, err := h.Service.ListEditions(ctx, ports.EditionFilter{
		Status: entities.EditionStatus(status),
	})
	if err != nil {
		return httptransport.EditionListResponse{}, err
	}
	resp := httptransport.EditionListResponse{
		Status:   "success",
		Editions: make([]httptransport.EditionDTO, 0, len(editions)),
	}
	for _, edition := range editions {
		resp.Editions = append(resp.Editions, editionToDTO(edition))
	}
	return resp, nil
}

func (h Handler) ActivateEditionHandler(ctx context.Context, editionID string) (httptransport.EditionResponse, error) {
	edition, err := h.Service.ActivateEdition(ctx, editionID)
	if err != nil {
		return httptransport.EditionResponse{}, err
	}
	return httptransport.EditionResponse{Status: "success", Edition: editionToDTO(edition)}, nil
}

func (h Handler) CloseEditionHandler(ctx context.Context, editionID string) (httptransport.EditionResponse, error) {
	edition, err := h.Service.CloseEdition(ctx, editionID)
	if err != nil {
		return httptransport.EditionResponse{}, err
	}
	return httptransport.EditionResponse{Status: "success", Edition: editionToDTO(edition)}, nil
}

func (h Handler) GenerateInstantPrizesHandler(
	ctx context.Context,
	editionID string,
) (httptransport.InstantPrizeResponse, error) {
	tickets, err := h.Service.GenerateInstantPrizes(ctx, editionID)
	if err != nil {
		return httptransport.InstantPrizeResponse{}, err
	}
	return httptransport.InstantPrizeResponse{
		Status:  "success",
		Summary: summarizeTickets(tickets),
	}, nil
}

func (h Handler) ImportWinningNumbersHandler(
	ctx context.Context,
	editionID string,
	req httptransport.ImportWinningNumbersRequest,
) (httptransport.EditionResponse, error) {
	edition, err := h.Service.ImportWinningNumbers(ctx, editionID, req.Numbers)
	if err != nil {
		return httptransport.EditionResponse{}, err
	}
	return httptransport.EditionResponse{Status: "success", Edition: editionToDTO(edition)}, nil
}

func editionToDTO(edition entities.Edition) httptransport.EditionDTO {
	dto := httptransport.EditionDTO{
		EditionID:                    edition.EditionID,
		Name:                         edition.Name,
		Status:                       string(edition.Status),
		StartsAt:                     edition.StartsAt.UTC().Format(time.RFC3339),
		EndsAt:                       edition.EndsAt.UTC().Format(time.RFC3339),
		LotteryPrizeCentavos:         edition.LotteryPrizeCentavos,
		CostPlanID:                   edition.CostPlanID,
		TotalInstantTickets:          edition.TotalInstantTickets,
		InstantPrizesToDistribute:    edition.InstantPrizesToDistribute,
		MinInstantPrizeValueCentavos: edition.MinInstantPrizeValueCentavos,
		MaxInstantPrizeValueCentavos: edition.MaxInstantPrizeValueCentavos,
		WinningNumbers:               edition.WinningNumbers,
	}
	if edition.ActivatedAt != nil {
		dto.ActivatedAt = edition.ActivatedAt.UTC().Format(time.RFC3339)
	}
	if edition.ClosedAt != nil {
		dto.ClosedAt = edition.ClosedAt.UTC().Format(time.RFC3339)
	}
	return dto
}

func summarizeTickets(tickets []entities.InstantTicket) httptransport.InstantPrizeSummaryDTO {
	summary := httptransport.InstantPrizeSummaryDTO{
		TotalTickets: int64(len(tickets)),
	}
	for _, ticket := range tickets {
		if !ticket.IsPrized {
			continue
		}
		summary.PrizedTickets++
		summary.TotalPrizesCentavos += ticket.PrizeValueCentavos
		if summary.MinPrizeValueCentavos == 0 || ticket.PrizeValueCentavos < summary.MinPrizeValueCentavos {
			summary.MinPrizeValueCentavos = ticket.PrizeValueCentavos
		}
		if ticket.PrizeValueCentavos > summary.MaxPrizeValueCentavos {
			summary.MaxPrizeValueCentavos = ticket.PrizeValueCentavos
		}
	}
	return summary
}

func parseTimestamp(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, value)
}

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	commissionerrors "raspepix/contexts/affiliate-network/commission-service/domain/errors"
	commissionhttp "raspepix/contexts/affiliate-network/commission-service/transport/http"
)

func (s *Server) handleAffiliatePerformance(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	editionID := query.Get("edition_id")
	if editionID == "" {
		writeCommissionError(w, http.StatusBadRequest, "missing_edition_id", "edition_id query parameter is required")
		return
	}

	resp, err := s.commissions.Handler.PerformanceHandler(r.Context(), editionID, query.Get("search"))
	if err != nil {
		writeCommissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAffiliatePerformanceReport(w http.ResponseWriter, r *http.Request) {
	editionID := r.URL.Query().Get("edition_id")
	if editionID == "" {
		writeCommissionError(w, http.StatusBadRequest, "missing_edition_id", "edition_id query parameter is required")
		return
	}

	report, err := s.commissions.Handler.PerformanceReportHandler(r.Context(), editionID)
	if err != nil {
		writeCommissionDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="afiliados-`+editionID+`.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(report)
}

func (s *Server) handleSetCommissionRate(w http.ResponseWriter, r *http.Request) {
	affiliateID := r.PathValue("affiliate_id")

	var req commissionhttp.SetRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCommissionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.commissions.Handler.SetRateHandler(r.Context(), affiliateID, req)
	if err != nil {
		writeCommissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSetCommissionRatesBulk(w http.ResponseWriter, r *http.Request) {
	var req commissionhttp.SetRatesBulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCommissionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.commissions.Handler.SetRatesBulkHandler(r.Context(), req)
	if err != nil {
		writeCommissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSetAllActiveCommissionRate(w http.ResponseWriter, r *http.Request) {
	var req commissionhttp.SetRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCommissionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.commissions.Handler.SetAllActiveRateHandler(r.Context(), req)
	if err != nil {
		writeCommissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReferralQR(w http.ResponseWriter, r *http.Request) {
	affiliateID := r.PathValue("affiliate_id")
	png, err := s.commissions.Handler.ReferralQRHandler(r.Context(), affiliateID)
	if err != nil {
		writeCommissionDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func writeCommissionError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, commissionhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeCommissionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, commissionerrors.ErrEditionNotFound):
		writeCommissionError(w, http.StatusNotFound, "edition_not_found", err.Error())
	case errors.Is(err, commissionerrors.ErrAffiliateNotFound):
		writeCommissionError(w, http.StatusNotFound, "affiliate_not_found", err.Error())
	case errors.Is(err, commissionerrors.ErrInvalidCommissionRate):
		writeCommissionError(w, http.StatusBadRequest, "invalid_commission_rate", err.Error())
	case errors.Is(err, commissionerrors.ErrNoAffiliateIDs):
		writeCommissionError(w, http.StatusBadRequest, "no_affiliate_ids", err.Error())
	case errors.Is(err, commissionerrors.ErrUpstreamFetch):
		writeCommissionError(w, http.StatusBadGateway, "upstream_fetch_failed", err.Error())
	default:
		writeCommissionError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	simulatorerrors "raspepix/contexts/finance-core/edition-simulator/domain/errors"
	simulatorhttp "raspepix/contexts/finance-core/edition-simulator/transport/http"
)

func (s *Server) handleSimulateEdition(w http.ResponseWriter, r *http.Request) {
	var req simulatorhttp.SimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSimulatorError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if req.EditionID == "" {
		writeSimulatorError(w, http.StatusBadRequest, "missing_edition_id", "edition_id is required")
		return
	}

	resp, err := s.simulator.Handler.SimulateHandler(r.Context(), req)
	if err != nil {
		writeSimulatorDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateCostPlan(w http.ResponseWriter, r *http.Request) {
	var req simulatorhttp.CostPlanDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSimulatorError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.simulator.Handler.CreateCostPlanHandler(r.Context(), req)
	if err != nil {
		writeSimulatorDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListCostPlans(w http.ResponseWriter, r *http.Request) {
	resp, err := s.simulator.Handler.ListCostPlansHandler(r.Context())
	if err != nil {
		writeSimulatorDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCostPlan(w http.ResponseWriter, r *http.Request) {
	planID := r.PathValue("plan_id")
	resp, err := s.simulator.Handler.GetCostPlanHandler(r.Context(), planID)
	if err != nil {
		writeSimulatorDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateCostPlan(w http.ResponseWriter, r *http.Request) {
	planID := r.PathValue("plan_id")

	var req simulatorhttp.CostPlanDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSimulatorError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.simulator.Handler.UpdateCostPlanHandler(r.Context(), planID, req)
	if err != nil {
		writeSimulatorDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeSimulatorError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, simulatorhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeSimulatorDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, simulatorerrors.ErrCostPlanNotFound):
		writeSimulatorError(w, http.StatusNotFound, "cost_plan_not_found", err.Error())
	case errors.Is(err, simulatorerrors.ErrEditionNotFound):
		writeSimulatorError(w, http.StatusNotFound, "edition_not_found", err.Error())
	case errors.Is(err, simulatorerrors.ErrCostPlanAlreadyExists):
		writeSimulatorError(w, http.StatusConflict, "cost_plan_already_exists", err.Error())
	case errors.Is(err, simulatorerrors.ErrInvalidCostPlan):
		writeSimulatorError(w, http.StatusBadRequest, "invalid_cost_plan", err.Error())
	default:
		writeSimulatorError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

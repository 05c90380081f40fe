package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	editionerrors "raspepix/contexts/lottery-core/edition-service/domain/errors"
	editionhttp "raspepix/contexts/lottery-core/edition-service/transport/http"
)

func (s *Server) handleCreateEdition(w http.ResponseWriter, r *http.Request) {
	var req editionhttp.CreateEditionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEditionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.editions.Handler.CreateEditionHandler(r.Context(), req)
	if err != nil {
		writeEditionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListEditions(w http.ResponseWriter, r *http.Request) {
	resp, err := s.editions.Handler.ListEditionsHandler(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeEditionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetEdition(w http.ResponseWriter, r *http.Request) {
	resp, err := s.editions.Handler.GetEditionHandler(r.Context(), r.PathValue("edition_id"))
	if err != nil {
		writeEditionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleActivateEdition(w http.ResponseWriter, r *http.Request) {
	resp, err := s.editions.Handler.ActivateEditionHandler(r.Context(), r.PathValue("edition_id"))
	if err != nil {
		writeEditionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCloseEdition(w http.ResponseWriter, r *http.Request) {
	resp, err := s.editions.Handler.CloseEditionHandler(r.Context(), r.PathValue("edition_id"))
	if err != nil {
		writeEditionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGenerateInstantPrizes(w http.ResponseWriter, r *http.Request) {
	resp, err := s.editions.Handler.GenerateInstantPrizesHandler(r.Context(), r.PathValue("edition_id"))
	if err != nil {
		writeEditionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleImportWinningNumbers(w http.ResponseWriter, r *http.Request) {
	var req editionhttp.ImportWinningNumbersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEditionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.editions.Handler.ImportWinningNumbersHandler(r.Context(), r.PathValue("edition_id"), req)
	if err != nil {
		writeEditionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeEditionError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, editionhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeEditionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, editionerrors.ErrEditionNotFound):
		writeEditionError(w, http.StatusNotFound, "edition_not_found", err.Error())
	case errors.Is(err, editionerrors.ErrEditionAlreadyExists):
		writeEditionError(w, http.StatusConflict, "edition_already_exists", err.Error())
	case errors.Is(err, editionerrors.ErrInvalidEditionInput):
		writeEditionError(w, http.StatusBadRequest, "invalid_edition_input", err.Error())
	case errors.Is(err, editionerrors.ErrInvalidStateTransition):
		writeEditionError(w, http.StatusConflict, "invalid_state_transition", err.Error())
	case errors.Is(err, editionerrors.ErrEditionClosed):
		writeEditionError(w, http.StatusConflict, "edition_closed", err.Error())
	case errors.Is(err, editionerrors.ErrInstantPrizesGenerated):
		writeEditionError(w, http.StatusConflict, "instant_prizes_already_generated", err.Error())
	case errors.Is(err, editionerrors.ErrNoWinningNumbers):
		writeEditionError(w, http.StatusBadRequest, "no_winning_numbers", err.Error())
	default:
		writeEditionError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

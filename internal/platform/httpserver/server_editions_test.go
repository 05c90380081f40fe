package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	editionhttp "raspepix/contexts/lottery-core/edition-service/transport/http"
)

func createEdition(t *testing.T, server *Server) string {
	t.Helper()

	body := []byte(`{
		"name": "Edição 12",
		"starts_at": "2025-07-01T00:00:00Z",
		"ends_at": "2025-07-31T23:59:59Z",
		"lottery_prize_centavos": 10000000,
		"cost_plan_id": "plan-1",
		"total_instant_tickets": 10,
		"instant_prizes_to_distribute": 3,
		"min_instant_prize_value_centavos": 100,
		"max_instant_prize_value_centavos": 500
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/editions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create edition: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	var resp editionhttp.EditionResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Edition.Status != "futuro" {
		t.Fatalf("expected new edition futuro, got %s", resp.Edition.Status)
	}
	return resp.Edition.EditionID
}

func postEditionAction(t *testing.T, server *Server, editionID string, action string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/editions/"+editionID+"/"+action, nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	return rr
}

func TestCreateEditionRejectsInvalidWindow(t *testing.T) {
	server := newTestServer()

	body := []byte(`{
		"name": "Edição quebrada",
		"starts_at": "2025-07-31T00:00:00Z",
		"ends_at": "2025-07-01T00:00:00Z",
		"lottery_prize_centavos": 1000
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/editions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestEditionLifecycle(t *testing.T) {
	server := newTestServer()
	editionID := createEdition(t, server)

	if rr := postEditionAction(t, server, editionID, "activate"); rr.Code != http.StatusOK {
		t.Fatalf("activate: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if rr := postEditionAction(t, server, editionID, "activate"); rr.Code != http.StatusConflict {
		t.Fatalf("double activate: expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}
	if rr := postEditionAction(t, server, editionID, "close"); rr.Code != http.StatusOK {
		t.Fatalf("close: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/editions/"+editionID, nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var resp editionhttp.EditionResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Edition.Status != "encerrado" {
		t.Fatalf("expected encerrado, got %s", resp.Edition.Status)
	}
}

func TestListEditionsByStatus(t *testing.T) {
	server := newTestServer()
	editionID := createEdition(t, server)
	if rr := postEditionAction(t, server, editionID, "activate"); rr.Code != http.StatusOK {
		t.Fatalf("activate: expected 200, got %d", rr.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/editions?status=ativo", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var resp editionhttp.EditionListResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Editions) != 1 || resp.Editions[0].EditionID != editionID {
		t.Fatalf("unexpected filtered editions: %+v", resp.Editions)
	}
}

func TestGenerateInstantPrizesEndpoint(t *testing.T) {
	server := newTestServer()
	editionID := createEdition(t, server)

	rr := postEditionAction(t, server, editionID, "instant-prizes")
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	var resp editionhttp.InstantPrizeResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Summary.TotalTickets != 10 || resp.Summary.PrizedTickets != 3 {
		t.Fatalf("unexpected summary: %+v", resp.Summary)
	}
	if resp.Summary.MinPrizeValueCentavos < 100 || resp.Summary.MaxPrizeValueCentavos > 500 {
		t.Fatalf("prize values outside bounds: %+v", resp.Summary)
	}

	if rr := postEditionAction(t, server, editionID, "instant-prizes"); rr.Code != http.StatusConflict {
		t.Fatalf("second generation: expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestImportWinningNumbersEndpoint(t *testing.T) {
	server := newTestServer()
	editionID := createEdition(t, server)

	body := []byte(`{"numbers": ["012345", "678901"]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/editions/"+editionID+"/winning-numbers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var resp editionhttp.EditionResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Edition.WinningNumbers) != 2 {
		t.Fatalf("expected 2 winning numbers, got %v", resp.Edition.WinningNumbers)
	}
}

func TestImportWinningNumbersRejectedAfterClose(t *testing.T) {
	server := newTestServer()
	editionID := createEdition(t, server)
	if rr := postEditionAction(t, server, editionID, "activate"); rr.Code != http.StatusOK {
		t.Fatalf("activate: expected 200, got %d", rr.Code)
	}
	if rr := postEditionAction(t, server, editionID, "close"); rr.Code != http.StatusOK {
		t.Fatalf("close: expected 200, got %d", rr.Code)
	}

	body := []byte(`{"numbers": ["012345"]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/editions/"+editionID+"/winning-numbers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestGetEditionNotFound(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/editions/missing", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

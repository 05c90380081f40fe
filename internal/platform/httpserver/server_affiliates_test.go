package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	commissionports "raspepix/contexts/affiliate-network/commission-service/ports"
	commissionhttp "raspepix/contexts/affiliate-network/commission-service/transport/http"
)

func seedCommissionFixture(server *Server) {
	store := server.commissions.Store
	store.SeedEdition(commissionports.EditionWindow{
		EditionID: "ed-1",
		StartsAt:  time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		EndsAt:    time.Date(2025, 7, 31, 23, 59, 59, 0, time.UTC),
	})
	store.SeedAffiliate(commissionports.Affiliate{
		AffiliateID:    "aff-1",
		UserID:         "user-1",
		Name:           "Marina Costa",
		ReferralCode:   "MARINA10",
		CommissionRate: 10,
		IsActive:       true,
	})
	store.SeedDeposit(commissionports.DepositTransaction{
		TransactionID:  "tx-1",
		UserID:         "user-9",
		AmountCentavos: 20_000,
		Description:    "MARINA10",
		CreatedAt:      time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC),
	})
}

func TestAffiliatePerformanceRequiresEditionID(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/affiliates/performance", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestAffiliatePerformanceUnknownEdition(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/affiliates/performance?edition_id=missing", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestAffiliatePerformanceSuccess(t *testing.T) {
	server := newTestServer()
	seedCommissionFixture(server)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/affiliates/performance?edition_id=ed-1", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var resp commissionhttp.PerformanceResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "success" {
		t.Fatalf("expected status success, got %s", resp.Status)
	}
	if len(resp.Affiliates) != 1 {
		t.Fatalf("expected 1 affiliate, got %d", len(resp.Affiliates))
	}
	record := resp.Affiliates[0]
	if record.TotalDepositedCentavos != 20_000 {
		t.Fatalf("expected 20000 centavos deposited, got %d", record.TotalDepositedCentavos)
	}
	if record.CommissionCentavos != 2_000 {
		t.Fatalf("expected 2000 centavos commission, got %d", record.CommissionCentavos)
	}
	if resp.KPIs.TotalCommissionsCentavos != 2_000 {
		t.Fatalf("expected KPI commissions 2000, got %d", resp.KPIs.TotalCommissionsCentavos)
	}
}

func TestAffiliatePerformanceReportContentType(t *testing.T) {
	server := newTestServer()
	seedCommissionFixture(server)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/affiliates/performance/report.xlsx?edition_id=ed-1", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("Content-Type"); !strings.Contains(got, "spreadsheetml") {
		t.Fatalf("unexpected content type %q", got)
	}
	if rr.Body.Len() == 0 {
		t.Fatal("expected a non-empty workbook body")
	}
}

func TestSetCommissionRateValidation(t *testing.T) {
	server := newTestServer()
	seedCommissionFixture(server)

	body := []byte(`{"rate": 150}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/affiliates/aff-1/commission-rate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestSetCommissionRateUnknownAffiliate(t *testing.T) {
	server := newTestServer()

	body := []byte(`{"rate": 12.5}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/affiliates/missing/commission-rate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestSetCommissionRatesBulkRequiresIDs(t *testing.T) {
	server := newTestServer()

	body := []byte(`{"affiliate_ids": [], "rate": 10}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/affiliates/commission-rate/bulk", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestSetAllActiveCommissionRate(t *testing.T) {
	server := newTestServer()
	seedCommissionFixture(server)

	body := []byte(`{"rate": 7.5}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/affiliates/commission-rate/all-active", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var resp commissionhttp.SetRateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.UpdatedCount != 1 {
		t.Fatalf("expected 1 updated affiliate, got %d", resp.UpdatedCount)
	}
}

func TestReferralQRReturnsPNG(t *testing.T) {
	server := newTestServer()
	seedCommissionFixture(server)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/affiliates/aff-1/referral-qr", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("Content-Type"); got != "image/png" {
		t.Fatalf("expected image/png, got %q", got)
	}
	if rr.Body.Len() == 0 {
		t.Fatal("expected a non-empty PNG body")
	}
}

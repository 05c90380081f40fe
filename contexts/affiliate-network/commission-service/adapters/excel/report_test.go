package exceladapter

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"raspepix/contexts/affiliate-network/commission-service/ports"
)

func TestBuildPerformanceReport(t *testing.T) {
	payload, err := BuildPerformanceReport("ed_2024_01",
		[]ports.PerformanceRecord{{
			AffiliateID:            "aff_1",
			Name:                   "Marina Costa",
			IsActive:               true,
			CommissionRate:         10,
			DirectReferrals:        1,
			TotalDepositedCentavos: 20000,
			CommissionCentavos:     2000,
		}},
		ports.PerformanceKPIs{
			TotalActiveAffiliates:    1,
			TotalReferrals:           1,
			TotalDepositedCentavos:   20000,
			TotalCommissionsCentavos: 2000,
		},
	)
	if err != nil {
		t.Fatalf("build report failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("generated workbook is not readable: %v", err)
	}
	defer f.Close()

	name, err := f.GetCellValue(sheetName, "A2")
	if err != nil {
		t.Fatalf("read cell failed: %v", err)
	}
	if name != "Marina Costa" {
		t.Fatalf("expected affiliate name in A2, got %q", name)
	}

	deposited, err := f.GetCellValue(sheetName, "E2")
	if err != nil {
		t.Fatalf("read cell failed: %v", err)
	}
	if deposited != "R$ 200,00" {
		t.Fatalf("expected formatted deposit, got %q", deposited)
	}
}

package exceladapter

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"raspepix/contexts/affiliate-network/commission-service/ports"
	"raspepix/internal/shared/money"
)

const sheetName = "Afiliados"

// BuildPerformanceReport renders the affiliate performance view as an xlsx
// workbook for the admin back-office download.
func BuildPerformanceReport(
	editionID string,
	records []ports.PerformanceRecord,
	kpis ports.PerformanceKPIs,
) ([]byte, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"Afiliado", "Ativo", "Taxa (%)", "Indicações", "Depositado", "Comissão"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, err
		}
	}

	rowIndex := 2
	for _, record := range records {
		active := "não"
		if record.IsActive {
			active = "sim"
		}
		values := []any{
			record.Name,
			active,
			record.CommissionRate,
			record.DirectReferrals,
			money.FormatBRL(record.TotalDepositedCentavos),
			money.FormatBRL(record.CommissionCentavos),
		}
		for i, value := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, rowIndex)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, err
			}
		}
		rowIndex++
	}

	footer := []any{
		fmt.Sprintf("Edição %s - %d afiliados ativos", editionID, kpis.TotalActiveAffiliates),
		"",
		"",
		kpis.TotalReferrals,
		money.FormatBRL(kpis.TotalDepositedCentavos),
		money.FormatBRL(kpis.TotalCommissionsCentavos),
	}
	for i, value := range footer {
		cell, err := excelize.CoordinatesToCellName(i+1, rowIndex+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, value); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/xuri/excelize/v2"
)

const sheetLeads = "Leads"

var leadExportHeaders = []string{"Received", "Name", "Phone", "Email", "Source", "Status", "Message", "Contacted"}

// BuildLeadWorkbook renders leads into an xlsx workbook with a single "Leads" sheet
func BuildLeadWorkbook(leads []LeadView) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetLeads); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	for i, header := range leadExportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetLeads, cell, header)
	}
	f.SetCellStyle(sheetLeads, "A1", "H1", headerStyle)
	f.SetColWidth(sheetLeads, "A", "F", 20)
	f.SetColWidth(sheetLeads, "G", "G", 50)
	f.SetColWidth(sheetLeads, "H", "H", 20)

	for i, lead := range leads {
		row := i + 2
		contacted := ""
		if lead.ContactedAt != nil {
			contacted = lead.ContactedAt.Format("2006-01-02 15:04")
		}
		values := []interface{}{
			lead.CreatedAt.Format("2006-01-02 15:04"),
			lead.Name,
			lead.Phone,
			lead.Email,
			lead.Source,
			lead.Status,
			lead.Message,
			contacted,
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(sheetLeads, cell, &values); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row %d: %w", row, err)
		}
	}

	return f, nil
}

// LeadWorkbookBytes renders leads and serializes the workbook
func LeadWorkbookBytes(leads []LeadView) ([]byte, error) {
	f, err := BuildLeadWorkbook(leads)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportLeads writes the leads received on day (in day's location) to storage
func ExportLeads(ctx context.Context, leads *LeadService, storage StorageProvider, day time.Time) (*StorageResult, error) {
	start, end := DayBounds(day)
	rows, err := leads.ListLeads(ctx, LeadFilters{Since: start, Until: end})
	if err != nil {
		return nil, err
	}

	data, err := LeadWorkbookBytes(rows)
	if err != nil {
		return nil, err
	}

	key := GenerateLeadExportKey(start)
	result, err := storage.UploadReader(ctx, bytes.NewReader(data), key, ContentTypeXLSX, int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to store lead export: %w", err)
	}

	log.Printf("[INFO] Exported %d leads to %s (%s)", len(rows), key, storage.Name())
	return result, nil
}

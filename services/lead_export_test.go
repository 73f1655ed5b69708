package services

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"dental_care_app_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLeadWorkbookBytes(t *testing.T) {
	contacted := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	data, err := LeadWorkbookBytes([]LeadView{
		{
			CreatedAt:   time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC),
			Name:        "Priya",
			Phone:       "9876543210",
			Source:      "inline",
			Status:      "contacted",
			Message:     "Tooth pain",
			ContactedAt: &contacted,
		},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetLeads}, f.GetSheetList())

	rows, err := f.GetRows(sheetLeads)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, leadExportHeaders, rows[0])
	assert.Equal(t, "2024-03-05 10:30", rows[1][0])
	assert.Equal(t, "Priya", rows[1][1])
	assert.Equal(t, "9876543210", rows[1][2])
	assert.Equal(t, "Tooth pain", rows[1][6])
	assert.Equal(t, "2024-03-05 12:00", rows[1][7])
}

func TestLeadWorkbookBytes_Empty(t *testing.T) {
	data, err := LeadWorkbookBytes(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetLeads)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestExportLeads(t *testing.T) {
	db := setupLeadTestDB(t)
	svc := NewLeadService(db, nil)
	storage := NewLocalStorage(t.TempDir())
	ctx := context.Background()
	day := time.Date(2024, 3, 5, 23, 30, 0, 0, time.UTC)

	seedLead(t, db, nil, "Priya", models.LeadSourceInline, time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC))
	seedLead(t, db, nil, "Yesterday", models.LeadSourceModal, time.Date(2024, 3, 4, 22, 0, 0, 0, time.UTC))

	result, err := ExportLeads(ctx, svc, storage, day)
	require.NoError(t, err)
	assert.Equal(t, "exports/leads/2024/03/leads_2024-03-05.xlsx", result.Key)

	reader, contentType, err := storage.Get(ctx, result.Key)
	require.NoError(t, err)
	defer reader.Close()
	assert.Equal(t, ContentTypeXLSX, contentType)

	data, err := io.ReadAll(reader)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetLeads)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Priya", rows[1][1])
}

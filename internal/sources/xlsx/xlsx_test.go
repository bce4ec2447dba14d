package xlsx_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/agentstation/kolmap/internal/sources/xlsx"
	"github.com/agentstation/kolmap/pkg/errors"
	"github.com/agentstation/kolmap/pkg/schema"
	"github.com/agentstation/kolmap/pkg/table"
)

func writeWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "kol_master"))
	require.NoError(t, f.SetSheetRow("kol_master", "A1", &[]any{"Name", "Area", "KOL_ID", "Latitude", "Serial No"}))
	require.NoError(t, f.SetSheetRow("kol_master", "A2", &[]any{" Dr. Kim ", "Asia", 12, 37.56, "00123"}))
	require.NoError(t, f.SetSheetRow("kol_master", "A3", &[]any{"", "", nil, nil, ""}))
	require.NoError(t, f.SetSheetRow("kol_master", "A4", &[]any{"Dr. Lee", "Europe"}))

	_, err := f.NewSheet("activity_log")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("activity_log", "A1", &[]any{"Name", "Date", "Status"}))
	require.NoError(t, f.SetSheetRow("activity_log", "A2", &[]any{"Dr. Kim", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), "done"}))
	require.NoError(t, f.SetSheetRow("activity_log", "A3", &[]any{"Dr. Kim", "2025-02-01", "wip"}))

	path := filepath.Join(t.TempDir(), "kol.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestFetchTable(t *testing.T) {
	src := xlsx.New(writeWorkbook(t))
	assert.Equal(t, "xlsx", src.Name())

	raw, err := src.FetchTable(context.Background(), "kol_master")
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Area", "KOL_ID", "Latitude", "Serial No"}, raw.Headers)
	require.Equal(t, 2, raw.Len(), "blank rows are skipped")

	first := raw.Rows[0]
	assert.Equal(t, " Dr. Kim ", first["Name"])
	assert.Equal(t, 12.0, first["KOL_ID"])
	assert.InDelta(t, 37.56, first["Latitude"], 1e-9)
	assert.Equal(t, "00123", first["Serial No"], "text cells keep leading zeros")
	assert.NotContains(t, raw.Rows[1], "KOL_ID")
}

func TestFetchTableHeadersBelowBlankRow(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", "contract_tasks"))
	require.NoError(t, f.SetSheetRow("contract_tasks", "A2", &[]any{"Name", "Contract_End", "Times"}))
	require.NoError(t, f.SetSheetRow("contract_tasks", "A3", &[]any{"Dr. Kim", "2025-12-31", 4}))
	path := filepath.Join(t.TempDir(), "offset.xlsx")
	require.NoError(t, f.SaveAs(path))

	raw, err := xlsx.New(path).FetchTable(context.Background(), "contract_tasks")
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Contract_End", "Times"}, raw.Headers)
	require.Equal(t, 1, raw.Len())
	assert.Equal(t, "Dr. Kim", raw.Rows[0]["Name"])
	assert.Equal(t, 4.0, raw.Rows[0]["Times"], "cells are typed from their own sheet row")
}

func TestFetchTableDatesSurviveNormalization(t *testing.T) {
	src := xlsx.New(writeWorkbook(t))
	raw, err := src.FetchTable(context.Background(), "activity_log")
	require.NoError(t, err)

	n, _ := schema.Normalize(raw, table.KindActivity)
	acts := schema.Activities(n)
	require.Len(t, acts, 2)
	assert.Equal(t, time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), acts[0].Date)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), acts[1].Date)
}

func TestFetchTableMissingSheet(t *testing.T) {
	src := xlsx.New(writeWorkbook(t))
	_, err := src.FetchTable(context.Background(), "contract_tasks")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestFetchTableMissingFile(t *testing.T) {
	src := xlsx.New(filepath.Join(t.TempDir(), "nope.xlsx"))
	_, err := src.FetchTable(context.Background(), "kol_master")
	require.Error(t, err)
	assert.True(t, errors.IsSourceUnavailable(err))
}

func TestSheets(t *testing.T) {
	src := xlsx.New(writeWorkbook(t))
	sheets, err := src.Sheets()
	require.NoError(t, err)
	assert.Equal(t, []string{"kol_master", "activity_log"}, sheets)
}

func TestFetchTableCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := xlsx.New("unused.xlsx").FetchTable(ctx, "kol_master")
	assert.ErrorIs(t, err, context.Canceled)
}

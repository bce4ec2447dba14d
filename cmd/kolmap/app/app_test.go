package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/agentstation/kolmap/internal/sources/yamlfile"
	"github.com/agentstation/kolmap/pkg/constants"
	"github.com/agentstation/kolmap/pkg/errors"
	"github.com/agentstation/kolmap/pkg/logging"
	"github.com/agentstation/kolmap/pkg/pipeline"
	"github.com/agentstation/kolmap/pkg/schema"
)

func testConfig() *Config {
	return &Config{
		Source:       SourceSample,
		MasterTab:    constants.DefaultMasterTab,
		ContractTab:  constants.DefaultContractTab,
		ActivityTab:  constants.DefaultActivityTab,
		FetchTimeout: constants.DefaultFetchTimeout,
		Format:       "json",
		LogOutput:    "discard",
	}
}

func newTestApp(t *testing.T, cfg *Config) *App {
	t.Helper()
	logger := zerolog.Nop()
	app, err := New("1.0.0", "abc123", "2026-01-01", "test", WithConfig(cfg), WithLogger(&logger))
	require.NoError(t, err)
	return app
}

func TestApp_New(t *testing.T) {
	app := newTestApp(t, testConfig())

	assert.Equal(t, "1.0.0", app.Version())
	assert.Equal(t, "abc123", app.Commit())
	assert.Equal(t, "2026-01-01", app.Date())
	assert.Equal(t, "test", app.BuiltBy())
	assert.Equal(t, "json", app.OutputFormat())
	assert.NotNil(t, app.Logger())
	assert.NotNil(t, app.Config())
}

func TestApp_LoadSample(t *testing.T) {
	app := newTestApp(t, testConfig())

	result, err := app.Load(context.Background())
	require.NoError(t, err)

	stats := result.Metadata.Stats
	assert.Equal(t, 7, stats.MasterRows)
	assert.Equal(t, 6, stats.Entities)
	assert.Equal(t, []string{"Dr. Alice Moreau"}, stats.DuplicateNames)
	assert.Equal(t, 11, stats.Activity.Input)
	assert.Equal(t, 1, stats.Activity.Duplicates)
	assert.Equal(t, 1, stats.Activity.DroppedDates)
	assert.Equal(t, 1, stats.Activity.Unmatched)
	assert.Len(t, result.Activity, 9)

	alice, ok := result.Entity("Dr. Alice Moreau")
	require.True(t, ok)
	assert.Equal(t, "France", alice.Country)
	assert.Equal(t, int64(1), alice.KOLID)
	assert.Equal(t, "2026-12-31", alice.ContractEnd.Format(time.DateOnly))
	assert.Equal(t, "6", alice.Times)
	assert.True(t, alice.HasLocation())

	carol, ok := result.Entity("Dr. Carol Smith")
	require.True(t, ok)
	assert.True(t, carol.ContractEnd.IsZero())
	assert.Equal(t, "https://docs.example.com/carol.pdf", carol.PDFLink)

	for _, r := range result.Activity {
		if r.Name == "Dr. Bruno Costa" && r.Task == "Workshop" {
			assert.True(t, r.WarningFlag)
			assert.False(t, r.DelayedFlag)
			assert.Equal(t, "On Progress", r.StatusNorm)
			assert.Equal(t, "LATAM", r.Area)
		}
	}
}

func TestApp_LoaderSingleton(t *testing.T) {
	app := newTestApp(t, testConfig())

	const goroutines = 20
	var wg sync.WaitGroup
	loaders := make([]any, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			l, err := app.Loader(context.Background())
			assert.NoError(t, err)
			loaders[idx] = l
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		assert.Same(t, loaders[0], loaders[i])
	}
}

func TestApp_WithLoader(t *testing.T) {
	logging.DisableLoggingForTest(t)

	path := filepath.Join(t.TempDir(), "dataset.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`tables:
  people:
    headers: [Full Name, Sales Area]
    rows:
      - {Full Name: Dr. Lee, Sales Area: Europe}
  deals:
    headers: [Name, Contract_End]
    rows: []
  log:
    headers: [Name, Date, Task]
    rows:
      - {Name: Dr. Lee, Date: "2026-03-01", Task: Lecture}
`), 0o600))

	loader, err := pipeline.NewLoader(yamlfile.New(path), pipeline.WithTabs("people", "deals", "log"))
	require.NoError(t, err)

	logger := zerolog.Nop()
	app, err := New("dev", "", "", "", WithConfig(testConfig()), WithLogger(&logger), WithLoader(loader))
	require.NoError(t, err)

	result, err := app.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Master, 1)
	assert.Equal(t, "Dr. Lee", result.Master[0].Name)
	assert.Equal(t, "Europe", result.Master[0].Area)
	require.Len(t, result.Activity, 1)
	assert.Equal(t, "Europe", result.Activity[0].Area)
}

func TestApp_SourceErrors(t *testing.T) {
	cfg := testConfig()
	cfg.Source = SourceXLSX
	_, err := newTestApp(t, cfg).Loader(context.Background())
	assert.ErrorIs(t, err, errors.ErrNotConfigured)

	cfg = testConfig()
	cfg.Source = "csv"
	_, err = newTestApp(t, cfg).Loader(context.Background())
	assert.True(t, errors.IsValidationError(err))

	cfg = testConfig()
	cfg.Source = SourceYAML
	_, err = newTestApp(t, cfg).Loader(context.Background())
	assert.ErrorIs(t, err, errors.ErrNotConfigured)
}

func TestApp_LoadWorkbookWithCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kol.xlsx")
	writeWorkbook(t, path)

	cfg := testConfig()
	cfg.Source = ""
	cfg.Workbook = path
	cfg.CacheTTL = time.Minute
	app := newTestApp(t, cfg)

	result, err := app.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Master, 1)
	assert.Equal(t, "Dr. Kim", result.Master[0].Name)
	require.Len(t, app.caches, 1)
	assert.Equal(t, 3, app.caches[0].ItemCount())

	require.NoError(t, app.Shutdown(context.Background()))
	assert.Nil(t, app.caches)
}

func TestApp_ExecuteLoad(t *testing.T) {
	app := newTestApp(t, testConfig())

	root := app.createRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"load", "master", "--tag", "LATAM", "-o", "json", "--log-level", "error"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	var entities []schema.Entity
	require.NoError(t, json.Unmarshal(out.Bytes(), &entities))
	names := make([]string, len(entities))
	for i, e := range entities {
		names[i] = e.Name
	}
	assert.ElementsMatch(t, []string{"Dr. Bruno Costa"}, names)
}

func TestApp_ExecuteVersion(t *testing.T) {
	app := newTestApp(t, testConfig())

	root := app.createRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version", "-v"})
	require.NoError(t, root.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "kolmap 1.0.0")
	assert.Contains(t, out.String(), "abc123")
}

func TestApp_AuthStatusOptionalWithoutGoogle(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

	app := newTestApp(t, testConfig())
	assert.Equal(t, "optional", app.AuthStatus().State.String())
}

func writeWorkbook(t *testing.T, path string) {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheets := map[string][][]any{
		constants.DefaultMasterTab:   {{"Name", "Area", "KOL_ID"}, {"Dr. Kim", "Europe", 3}},
		constants.DefaultContractTab: {{"Name", "Contract_Start", "Contract_End", "Times"}, {"Dr. Kim", "2026-01-01", "2026-12-31", "4"}},
		constants.DefaultActivityTab: {{"Name", "Date", "Task", "Status"}, {"Dr. Kim", "2026-02-03", "Lecture", "done"}},
	}
	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

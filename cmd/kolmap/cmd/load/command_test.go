package load

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/kolmap/internal/appcontext"
	"github.com/agentstation/kolmap/pkg/activity"
	"github.com/agentstation/kolmap/pkg/errors"
	"github.com/agentstation/kolmap/pkg/pipeline"
	"github.com/agentstation/kolmap/pkg/schema"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testResult() *pipeline.Result {
	return &pipeline.Result{
		Master: []schema.Entity{
			{Name: "Dr. Kim", Area: "Europe"},
			{Name: "Dr. Lee", Area: "LATAM"},
		},
		Contracts: []schema.Contract{
			{Name: "Dr. Kim", End: day(2026, 12, 31), Times: "6"},
			{Name: "Dr. Kim", End: day(2025, 12, 31), Times: "4"},
			{Name: "Dr. Lee", End: day(2026, 5, 31)},
		},
		Activity: activity.Records{
			{Name: "Dr. Kim", Date: day(2026, 1, 5), Task: "Lecture", StatusNorm: "Done"},
			{Name: "Dr. Lee", Date: day(2026, 2, 1), Task: "Webinar", StatusNorm: "On Progress", WarningFlag: true},
			{Name: "Dr. Kim", Date: day(2026, 3, 1), Task: "Video", StatusNorm: "Planned", DelayedFlag: true},
		},
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := &appcontext.Mock{
		LoadFunc: func(context.Context) (*pipeline.Result, error) { return testResult(), nil },
	}
	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLoadMaster(t *testing.T) {
	out, err := run(t, "master", "--tag", "LATAM")
	require.NoError(t, err)

	var entities []schema.Entity
	require.NoError(t, json.Unmarshal([]byte(out), &entities))
	require.Len(t, entities, 1)
	assert.Equal(t, "Dr. Lee", entities[0].Name)
}

func TestLoadContractHistory(t *testing.T) {
	out, err := run(t, "contract", "--name", " Dr. Kim ")
	require.NoError(t, err)

	var rows []schema.Contract
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "4", rows[0].Times)
	assert.Equal(t, "6", rows[1].Times)
}

func TestLoadActivitySorted(t *testing.T) {
	out, err := run(t, "activity", "--sort", "alert", "--limit", "2")
	require.NoError(t, err)

	var records []activity.Record
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "Webinar", records[0].Task)
	assert.Equal(t, "Video", records[1].Task)

	out, err = run(t, "activity", "--sort", "newest")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	assert.Equal(t, "Video", records[0].Task)
}

func TestLoadErrors(t *testing.T) {
	_, err := run(t, "people")
	assert.Error(t, err)

	_, err = run(t, "activity", "--sort", "oldest")
	assert.Error(t, err)

	app := &appcontext.Mock{
		LoadFunc: func(context.Context) (*pipeline.Result, error) {
			return nil, errors.NewLoadError("kol_master", errors.ErrSourceUnavailable)
		},
	}
	cmd := NewCommand(app)
	cmd.SetArgs([]string{"master"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	err = cmd.ExecuteContext(context.Background())
	assert.True(t, errors.IsLoadFailure(err))
}

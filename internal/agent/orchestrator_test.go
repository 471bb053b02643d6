package agent

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anjy7/ascendo/internal/bus"
	"github.com/anjy7/ascendo/internal/icp"
	"github.com/anjy7/ascendo/internal/model"
	"github.com/anjy7/ascendo/internal/scrape"
	"github.com/anjy7/ascendo/internal/state"
)

func newOrchestrator(source scrape.Source) *Orchestrator {
	return NewOrchestrator(Config{
		Bus:        bus.New(nil),
		Source:     source,
		Criteria:   icp.DefaultCriteria(),
		Thresholds: icp.DefaultThresholds(),
		Logger:     nil,
	})
}

func TestOrchestrator_DemoRun(t *testing.T) {
	o := newOrchestrator(scrape.EmptySource{})
	st := state.New("https://fieldserviceusa.example.com")

	summary, err := o.Run(context.Background(), st, RunOptions{Demo: true})
	require.NoError(t, err)

	assert.False(t, summary.NoData)
	assert.Equal(t, state.StatusComplete, st.Status)
	assert.Equal(t, 10, summary.Stats.Companies)
	assert.Equal(t, 10, summary.Stats.Results)

	// Every demo company has a speaker, so none can stay unscored.
	for _, r := range st.Results() {
		assert.NotEmpty(t, r.CompanyName)
		assert.GreaterOrEqual(t, r.EffectiveScore(), 0)
		assert.LessOrEqual(t, r.EffectiveScore(), 100)
		assert.NotEmpty(t, r.FitLevel)
	}

	assert.ElementsMatch(t, []string{"pre-enrich", "pre-validate"}, st.Checkpoints())
}

func TestOrchestrator_NoData(t *testing.T) {
	o := newOrchestrator(scrape.EmptySource{})
	st := state.New("https://example.com/empty")

	summary, err := o.Run(context.Background(), st, RunOptions{})
	require.NoError(t, err)

	assert.True(t, summary.NoData)
	assert.Equal(t, state.StatusComplete, st.Status)
	assert.Empty(t, st.Results())
}

type failingSource struct{}

func (failingSource) Fetch(context.Context, string) (*model.ConferenceData, error) {
	return nil, errors.New("site unreachable")
}

func TestOrchestrator_ScrapeFailureRecordedNotFatal(t *testing.T) {
	o := newOrchestrator(failingSource{})
	st := state.New("https://example.com/broken")

	summary, err := o.Run(context.Background(), st, RunOptions{})
	require.NoError(t, err, "a failed scrape is reported through the summary, not an error")

	assert.True(t, summary.NoData)
	require.Len(t, st.Errors, 1)
	assert.Contains(t, st.Errors[0], "scrape: site unreachable")
}

func TestOrchestrator_AttendeeFileMerge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "attendees.txt")
	content := "Jane Doe, VP of Field Service, Summit Manufacturing\n" +
		"Raj Patel, Director of Operations, Northwind Energy\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	o := newOrchestrator(scrape.EmptySource{})
	st := state.New("https://example.com/conf")

	summary, err := o.Run(context.Background(), st, RunOptions{AttendeeFile: path})
	require.NoError(t, err)

	assert.False(t, summary.NoData, "attendee file alone is enough to run the pipeline")
	assert.Equal(t, 2, summary.Stats.Attendees)
	assert.Equal(t, 2, summary.Stats.Results)

	r, ok := st.Result("Summit Manufacturing")
	require.True(t, ok)
	assert.Greater(t, r.EffectiveScore(), 0)
}

func TestOrchestrator_MissingAttendeeFileRecorded(t *testing.T) {
	o := newOrchestrator(scrape.EmptySource{})
	st := state.New("https://example.com/conf")

	summary, err := o.Run(context.Background(), st, RunOptions{AttendeeFile: "/does/not/exist.txt"})
	require.NoError(t, err)

	assert.True(t, summary.NoData)
	require.NotEmpty(t, st.Errors)
}

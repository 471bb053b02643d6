package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anjy7/ascendo/internal/model"
)

func TestCheckpointRestore_RollsBack(t *testing.T) {
	s := New("https://example.com")
	s.Conference = conferenceFixture()
	s.AddScoreResult(model.ScoreResult{CompanyName: "Acme Industrial", Score: 85, FitLevel: model.FitHigh})
	s.SetStatus(StatusInProgress)

	s.CreateCheckpoint("pre-validate")

	s.AddScoreResult(model.ScoreResult{CompanyName: "Borealis Robotics", Score: 40})
	s.AddScoreResult(model.ScoreResult{CompanyName: "acme industrial", Score: 10, FitLevel: model.FitLow})
	s.AddError("validator: boom")
	s.SetStatus(StatusComplete)

	require.True(t, s.RestoreCheckpoint("pre-validate"))

	assert.Equal(t, StatusInProgress, s.Status)
	assert.Empty(t, s.Errors)
	results := s.Results()
	require.Len(t, results, 1)
	assert.Equal(t, 85, results[0].Score)

	// The index is rebuilt: upserts after restore still find the company.
	s.AddScoreResult(model.ScoreResult{CompanyName: "ACME INDUSTRIAL", Score: 90})
	require.Len(t, s.Results(), 1)
}

func TestCheckpointIsolation_LaterMutationsDoNotLeakIn(t *testing.T) {
	s := New("")
	size := 100
	s.Conference = &model.ConferenceData{
		Companies: []model.Company{{Name: "Acme", Size: &size}},
	}
	final := 55
	s.AddScoreResult(model.ScoreResult{CompanyName: "Acme", Score: 40, FinalScore: &final})

	s.CreateCheckpoint("cp")

	// Mutate everything reachable from the live state.
	*s.Conference.Companies[0].Size = 9999
	s.Conference.Companies[0].Name = "Renamed"
	r, _ := s.Result("Acme")
	*r.FinalScore = 0

	require.True(t, s.RestoreCheckpoint("cp"))

	assert.Equal(t, "Acme", s.Conference.Companies[0].Name)
	assert.Equal(t, 100, *s.Conference.Companies[0].Size)
	restored, ok := s.Result("Acme")
	require.True(t, ok)
	require.NotNil(t, restored.FinalScore)
	assert.Equal(t, 55, *restored.FinalScore)
}

func TestCheckpoint_RestorableTwice(t *testing.T) {
	s := New("")
	s.AddScoreResult(model.ScoreResult{CompanyName: "Acme", Score: 70})
	s.CreateCheckpoint("cp")

	s.AddScoreResult(model.ScoreResult{CompanyName: "Other", Score: 10})
	require.True(t, s.RestoreCheckpoint("cp"))
	require.Len(t, s.Results(), 1)

	s.AddScoreResult(model.ScoreResult{CompanyName: "Another", Score: 20})
	require.True(t, s.RestoreCheckpoint("cp"))
	assert.Len(t, s.Results(), 1)
}

func TestCheckpoint_OverwriteAndMissing(t *testing.T) {
	s := New("")
	s.AddScoreResult(model.ScoreResult{CompanyName: "Acme", Score: 70})
	s.CreateCheckpoint("cp")

	s.AddScoreResult(model.ScoreResult{CompanyName: "Other", Score: 10})
	s.CreateCheckpoint("cp") // replaces under the same name

	require.True(t, s.RestoreCheckpoint("cp"))
	assert.Len(t, s.Results(), 2)

	assert.False(t, s.RestoreCheckpoint("never-created"))
	assert.ElementsMatch(t, []string{"cp"}, s.Checkpoints())
}

package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anjy7/ascendo/internal/model"
)

func conferenceFixture() *model.ConferenceData {
	size := 5000
	return &model.ConferenceData{
		URL: "https://example.com/conf",
		Companies: []model.Company{
			{Name: "Acme Industrial", Industry: "Manufacturing", Size: &size, SizeCategory: "Enterprise", Source: model.SourceLogo},
		},
		Speakers: []model.Speaker{
			{Name: "Jane Doe", Title: "VP of Service Operations", Company: "Acme Industrial"},
			{Name: "Sam Lee", Title: "CTO", Company: "Borealis Robotics"},
		},
		Attendees: []model.Attendee{
			{Name: "Pat Kim", Title: "Field Service Manager", Company: "ACME INDUSTRIAL"},
			{Name: "Ana Ruiz", Title: "Director of Operations", Company: "Cobalt Services"},
		},
	}
}

func TestAddScoreResult_UpsertsCaseInsensitively(t *testing.T) {
	s := New("https://example.com")

	s.AddScoreResult(model.ScoreResult{CompanyName: "Acme Industrial", Score: 40})
	s.AddScoreResult(model.ScoreResult{CompanyName: "Borealis Robotics", Score: 60})
	s.AddScoreResult(model.ScoreResult{CompanyName: "ACME INDUSTRIAL", Score: 85, FitLevel: model.FitHigh})

	results := s.Results()
	require.Len(t, results, 2)
	// Replacement keeps the slot the company was first discovered in.
	assert.Equal(t, "ACME INDUSTRIAL", results[0].CompanyName)
	assert.Equal(t, 85, results[0].Score)
	assert.Equal(t, "Borealis Robotics", results[1].CompanyName)

	got, ok := s.Result("acme industrial")
	require.True(t, ok)
	assert.Equal(t, 85, got.Score)

	_, ok = s.Result("Unknown Co")
	assert.False(t, ok)
}

func TestResults_ReturnsCopy(t *testing.T) {
	s := New("")
	s.AddScoreResult(model.ScoreResult{CompanyName: "Acme", Score: 50})

	out := s.Results()
	out[0].Score = 0

	got, _ := s.Result("Acme")
	assert.Equal(t, 50, got.Score)
}

func TestCompanyNames_DedupesAcrossSections(t *testing.T) {
	s := New("")
	s.Conference = conferenceFixture()

	names := s.CompanyNames()
	// First-seen spelling wins; order is companies, speakers, attendees.
	assert.Equal(t, []string{"Acme Industrial", "Borealis Robotics", "Cobalt Services"}, names)
}

func TestCompanyNames_NoConference(t *testing.T) {
	assert.Nil(t, New("").CompanyNames())
}

func TestCompanyDetails_MergesContacts(t *testing.T) {
	s := New("")
	s.Conference = conferenceFixture()

	d := s.CompanyDetails("acme industrial")
	assert.Equal(t, "Manufacturing", d.Industry)
	assert.Equal(t, "Enterprise", d.SizeCategory)
	require.NotNil(t, d.Size)
	assert.Equal(t, 5000, *d.Size)
	require.Len(t, d.Speakers, 1)
	assert.Equal(t, "Jane Doe", d.Speakers[0].Name)
	require.Len(t, d.Attendees, 1)
	assert.Equal(t, "Pat Kim", d.Attendees[0].Name)
	assert.Len(t, d.Contacts(), 2)
}

func TestCompanyDetails_UnknownCompany(t *testing.T) {
	s := New("")
	s.Conference = conferenceFixture()

	d := s.CompanyDetails("Nowhere Inc")
	assert.Equal(t, "Nowhere Inc", d.Name)
	assert.Empty(t, d.Industry)
	assert.Empty(t, d.Contacts())
}

func TestStats(t *testing.T) {
	s := New("https://example.com/conf")
	s.Conference = conferenceFixture()
	s.SetStatus(StatusComplete)
	s.AddError("enrich: timeout")

	final := 55
	s.AddScoreResult(model.ScoreResult{CompanyName: "Acme Industrial", Score: 85, FitLevel: model.FitHigh})
	s.AddScoreResult(model.ScoreResult{CompanyName: "Borealis Robotics", Score: 40, FitLevel: model.FitMedium, Disputed: true, FinalScore: &final})

	st := s.Stats()
	assert.Equal(t, StatusComplete, st.Status)
	assert.Equal(t, 2, st.Speakers)
	assert.Equal(t, 2, st.Attendees)
	assert.Equal(t, 1, st.Companies)
	assert.Equal(t, 2, st.Results)
	assert.Equal(t, 1, st.Errors)
	assert.Equal(t, 1, st.Disputed)
	assert.Equal(t, 1, st.FitCounts[model.FitHigh])
	assert.Equal(t, 1, st.FitCounts[model.FitMedium])
}

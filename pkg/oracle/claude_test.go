package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anjy7/ascendo/internal/icp"
	"github.com/anjy7/ascendo/internal/model"
)

// mockMessenger returns canned responses and records what it was asked.
type mockMessenger struct {
	response string
	err      error
	systems  []string
	users    []string
}

func (m *mockMessenger) CreateMessage(_ context.Context, system, user string) (string, error) {
	m.systems = append(m.systems, system)
	m.users = append(m.users, user)
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func newTestClaude(m Messenger) *Claude {
	return NewClaude("test-key", "test-model", WithMessenger(m), WithRateLimit(1000, 1000))
}

func TestScoreCompany(t *testing.T) {
	mock := &mockMessenger{response: `{
		"score": 85, "fit_level": "High",
		"industry_score": 30, "title_score": 25, "department_score": 20,
		"size_score": 0, "speaker_bonus": 10,
		"reasoning": "Strong industrial fit"
	}`}
	c := newTestClaude(mock)

	v, err := c.ScoreCompany(context.Background(),
		model.CompanyDetails{Name: "Acme Industrial", Industry: "Manufacturing"},
		icp.DefaultCriteria())

	require.NoError(t, err)
	assert.Equal(t, 85, v.Score)
	assert.Equal(t, model.FitHigh, v.FitLevel)
	assert.Equal(t, "Strong industrial fit", v.Reasoning)

	// The request payload carries both the company and the criteria.
	require.Len(t, mock.users, 1)
	var req map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(mock.users[0]), &req))
	assert.Contains(t, req, "company")
	assert.Contains(t, req, "icp_criteria")
}

func TestScoreCompany_ClampsAndDefaults(t *testing.T) {
	c := newTestClaude(&mockMessenger{response: `{"score": 250, "reasoning": "x"}`})

	v, err := c.ScoreCompany(context.Background(), model.CompanyDetails{Name: "A"}, icp.DefaultCriteria())
	require.NoError(t, err)
	assert.Equal(t, 100, v.Score)
	assert.Equal(t, model.FitLow, v.FitLevel, "missing fit level defaults low")
}

func TestScoreCompany_JSONEmbeddedInProse(t *testing.T) {
	c := newTestClaude(&mockMessenger{
		response: "Here is my assessment:\n{\"score\": 60, \"fit_level\": \"Medium\", \"reasoning\": \"ok\"}\nLet me know if you need more.",
	})

	v, err := c.ScoreCompany(context.Background(), model.CompanyDetails{Name: "A"}, icp.DefaultCriteria())
	require.NoError(t, err)
	assert.Equal(t, 60, v.Score)
	assert.Equal(t, model.FitMedium, v.FitLevel)
}

func TestScoreCompany_Errors(t *testing.T) {
	t.Run("transport error propagates", func(t *testing.T) {
		c := newTestClaude(&mockMessenger{err: errors.New("api down")})
		_, err := c.ScoreCompany(context.Background(), model.CompanyDetails{Name: "A"}, icp.DefaultCriteria())
		require.Error(t, err)
	})

	t.Run("no JSON in response", func(t *testing.T) {
		c := newTestClaude(&mockMessenger{response: "I cannot score this company."})
		_, err := c.ScoreCompany(context.Background(), model.CompanyDetails{Name: "A"}, icp.DefaultCriteria())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no JSON")
	})

	t.Run("malformed JSON", func(t *testing.T) {
		c := newTestClaude(&mockMessenger{response: `{"score": }`})
		_, err := c.ScoreCompany(context.Background(), model.CompanyDetails{Name: "A"}, icp.DefaultCriteria())
		require.Error(t, err)
	})
}

func TestEnrichCompany(t *testing.T) {
	count := 1200
	resp, _ := json.Marshal(model.Enrichment{
		Industry:              "Medical Devices",
		SizeEstimate:          "1000-5000",
		EmployeeCountEstimate: &count,
		Headquarters:          "Boston, MA",
		Confidence:            "high",
	})
	c := newTestClaude(&mockMessenger{response: string(resp)})

	e, err := c.EnrichCompany(context.Background(), "Medline", model.CompanyDetails{Name: "Medline"})
	require.NoError(t, err)
	assert.Equal(t, "Medical Devices", e.Industry)
	require.NotNil(t, e.EmployeeCountEstimate)
	assert.Equal(t, 1200, *e.EmployeeCountEstimate)
}

func TestReviewScore_ClampsSuggestion(t *testing.T) {
	c := newTestClaude(&mockMessenger{
		response: `{"should_dispute": true, "reason": "undervalued", "suggested_score": 140}`,
	})

	v, err := c.ReviewScore(context.Background(),
		model.ScoreResult{CompanyName: "A", Score: 40},
		model.CompanyDetails{Name: "A"})
	require.NoError(t, err)
	assert.True(t, v.ShouldDispute)
	require.NotNil(t, v.SuggestedScore)
	assert.Equal(t, 100, *v.SuggestedScore)
}

func TestResolveDispute(t *testing.T) {
	c := newTestClaude(&mockMessenger{
		response: `{"final_score": 55, "final_fit_level": "Medium", "explanation": "reviewer was right"}`,
	})

	suggested := 55
	r, err := c.ResolveDispute(context.Background(),
		model.ScoreResult{CompanyName: "A", Score: 40},
		model.Dispute{CompanyName: "A", Reason: "too low", SuggestedScore: &suggested},
		model.CompanyDetails{Name: "A"})
	require.NoError(t, err)
	assert.Equal(t, 55, r.FinalScore)
	assert.Equal(t, model.FitMedium, r.FinalFitLevel)
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"bare object", `{"a":1}`, `{"a":1}`, false},
		{"prose wrapped", `sure: {"a":1} done`, `{"a":1}`, false},
		{"nested braces", `{"a":{"b":2}}`, `{"a":{"b":2}}`, false},
		{"no braces", "nothing here", "", true},
		{"reversed braces", "}{", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSON(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0, clampScore(-5))
	assert.Equal(t, 0, clampScore(0))
	assert.Equal(t, 73, clampScore(73))
	assert.Equal(t, 100, clampScore(100))
	assert.Equal(t, 100, clampScore(101))
}

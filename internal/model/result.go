package model

// FitLevel is the coarse ICP bucket derived from a numeric score.
type FitLevel string

const (
	FitHigh   FitLevel = "High"
	FitMedium FitLevel = "Medium"
	FitLow    FitLevel = "Low"
)

// Thresholds are the two ordered cut points that map a score to a FitLevel.
type Thresholds struct {
	High   int `json:"high" yaml:"high" mapstructure:"high"`
	Medium int `json:"medium" yaml:"medium" mapstructure:"medium"`
}

// FitFor maps a score to its fit level.
func (t Thresholds) FitFor(score int) FitLevel {
	switch {
	case score >= t.High:
		return FitHigh
	case score >= t.Medium:
		return FitMedium
	default:
		return FitLow
	}
}

// ScoreResult is the ICP verdict for one company. Exactly one result exists
// per company name at any time; a later write replaces the earlier one.
type ScoreResult struct {
	CompanyName     string   `json:"company_name"`
	Score           int      `json:"score"` // 0-100
	FitLevel        FitLevel `json:"fit_level"`
	Reasoning       string   `json:"reasoning"`
	IndustryScore   int      `json:"industry_score"`
	TitleScore      int      `json:"title_score"`
	DepartmentScore int      `json:"department_score"`
	SizeScore       int      `json:"size_score"`
	SpeakerBonus    int      `json:"speaker_bonus"`
	ScoredBy        string   `json:"scored_by,omitempty"`
	Disputed        bool     `json:"disputed"`
	DisputeReason   string   `json:"dispute_reason,omitempty"`
	FinalScore      *int     `json:"final_score,omitempty"`
}

// EffectiveScore is the score display and export use: the dispute-resolved
// final score when present, the original otherwise.
func (r ScoreResult) EffectiveScore() int {
	if r.FinalScore != nil {
		return *r.FinalScore
	}
	return r.Score
}

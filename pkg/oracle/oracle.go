// Package oracle defines the optional LLM capability the pipeline consults
// before falling back to rule-based logic, plus a Claude-backed
// implementation. Every call must fail closed: callers treat any error as
// "no oracle opinion" and never let it crash the run.
package oracle

import (
	"context"

	"github.com/anjy7/ascendo/internal/icp"
	"github.com/anjy7/ascendo/internal/model"
)

// ScoreVerdict is a full scoring breakdown from the oracle.
type ScoreVerdict struct {
	Score           int            `json:"score"`
	FitLevel        model.FitLevel `json:"fit_level"`
	IndustryScore   int            `json:"industry_score"`
	TitleScore      int            `json:"title_score"`
	DepartmentScore int            `json:"department_score"`
	SizeScore       int            `json:"size_score"`
	SpeakerBonus    int            `json:"speaker_bonus"`
	Reasoning       string         `json:"reasoning"`
}

// ReviewVerdict is the oracle's second opinion on an existing score.
type ReviewVerdict struct {
	ShouldDispute  bool   `json:"should_dispute"`
	Reason         string `json:"reason"`
	SuggestedScore *int   `json:"suggested_score"`
}

// Resolution is the oracle's arbitration of a dispute. FinalScore is adopted
// verbatim by the resolver.
type Resolution struct {
	FinalScore    int            `json:"final_score"`
	FinalFitLevel model.FitLevel `json:"final_fit_level"`
	Explanation   string         `json:"explanation"`
}

// Oracle is the external scoring/enrichment capability. All methods are
// idempotent-safe to retry.
type Oracle interface {
	ScoreCompany(ctx context.Context, details model.CompanyDetails, criteria icp.Criteria) (*ScoreVerdict, error)
	EnrichCompany(ctx context.Context, name string, known model.CompanyDetails) (*model.Enrichment, error)
	ReviewScore(ctx context.Context, result model.ScoreResult, details model.CompanyDetails) (*ReviewVerdict, error)
	ResolveDispute(ctx context.Context, original model.ScoreResult, dispute model.Dispute, details model.CompanyDetails) (*Resolution, error)
}

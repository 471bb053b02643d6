package icp

import (
	"fmt"
	"strings"

	"github.com/anjy7/ascendo/internal/model"
)

// seniorTitles are the leadership keywords a quality review looks for.
var seniorTitles = []string{"SVP", "VP", "Chief", "Director", "President", "Head of"}

// fieldServiceKeywords mark contacts in the service/aftermarket organization.
var fieldServiceKeywords = []string{"field service", "service", "aftermarket", "support"}

// Review is a quality reviewer's verdict on an existing score.
type Review struct {
	CompanyName    string `json:"company_name"`
	ShouldDispute  bool   `json:"should_dispute"`
	Reason         string `json:"reason,omitempty"`
	SuggestedScore *int   `json:"suggested_score,omitempty"`
}

// ReviewScore applies the deterministic under/over-scoring checks in strict
// priority order; the first matching rule wins and later rules are not
// evaluated. An empty verdict confirms the score as-is.
func ReviewScore(result model.ScoreResult, details model.CompanyDetails) Review {
	review := Review{CompanyName: result.CompanyName}
	score := result.Score
	contacts := details.Contacts()

	// Rule 1: companies with contacts should not score this low.
	if len(contacts) > 0 && score < 60 {
		review.ShouldDispute = true
		review.Reason = fmt.Sprintf("Company has %d contact(s) but score is only %d", len(contacts), score)
		review.SuggestedScore = intPtr(min(score+15, 85))
		return review
	}

	// Rule 2: senior leadership present suggests under-scoring.
	if hasTitleKeyword(contacts, seniorTitles) && score < 70 {
		review.ShouldDispute = true
		review.Reason = fmt.Sprintf("Company has senior-level contact but score is %d", score)
		review.SuggestedScore = intPtr(min(score+20, 90))
		return review
	}

	// Rule 3: field-service leadership is the core ICP signal.
	if hasTitleKeyword(contacts, fieldServiceKeywords) && score < 75 {
		review.ShouldDispute = true
		review.Reason = fmt.Sprintf("Company has Field Service leadership but score is %d", score)
		review.SuggestedScore = intPtr(min(score+15, 92))
		return review
	}

	// Rule 4: high score with no contacts and no evidence is over-scoring.
	if score >= 80 && len(contacts) == 0 && weakEvidence(result.Reasoning) {
		review.ShouldDispute = true
		review.Reason = fmt.Sprintf("High score (%d) with insufficient evidence", score)
		review.SuggestedScore = intPtr(max(score-15, 50))
		return review
	}

	return review
}

func hasTitleKeyword(contacts []model.Contact, keywords []string) bool {
	for _, c := range contacts {
		title := strings.ToLower(c.Title)
		for _, kw := range keywords {
			if strings.Contains(title, strings.ToLower(kw)) {
				return true
			}
		}
	}
	return false
}

func weakEvidence(reasoning string) bool {
	r := strings.ToLower(reasoning)
	return strings.Contains(r, "unknown") || strings.Contains(r, "insufficient")
}

func intPtr(v int) *int { return &v }

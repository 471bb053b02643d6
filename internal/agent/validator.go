package agent

import (
	"context"

	"go.uber.org/zap"

	"github.com/anjy7/ascendo/internal/bus"
	"github.com/anjy7/ascendo/internal/icp"
	"github.com/anjy7/ascendo/internal/model"
	"github.com/anjy7/ascendo/internal/resolve"
	"github.com/anjy7/ascendo/internal/state"
	"github.com/anjy7/ascendo/pkg/oracle"
)

// ValidatorName is the validator's bus address.
const ValidatorName = "ICPValidatorAgent"

// Validator scores companies against the ICP and owns the dispute state
// machine: a score it produced moves Scored -> Disputed -> Resolved as the
// quality reviewer challenges it over the bus.
type Validator struct {
	base
	oracle     oracle.Oracle
	criteria   icp.Criteria
	thresholds model.Thresholds
	maxDelta   int

	// pending tracks validations by folded company name so dispute and
	// enrichment messages can find them after Process has moved on.
	pending map[string]model.ScoreResult

	// st is the state of the run in flight; dispute resolutions write the
	// revised record back through it.
	st *state.State
}

// NewValidator creates the validator and registers it on the bus. maxDelta
// bounds the oracle-free dispute acceptance rule; pass 0 for the default.
func NewValidator(b *bus.Bus, orc oracle.Oracle, criteria icp.Criteria, thresholds model.Thresholds, maxDelta int, log *zap.Logger) *Validator {
	if maxDelta <= 0 {
		maxDelta = icp.DefaultMaxDisputeDelta
	}
	v := &Validator{
		base:       newBase(ValidatorName, b, log),
		oracle:     orc,
		criteria:   criteria,
		thresholds: thresholds,
		maxDelta:   maxDelta,
		pending:    make(map[string]model.ScoreResult),
	}
	v.register(v.Handle)
	return v
}

// Process validates every known company against the ICP.
func (v *Validator) Process(ctx context.Context, st *state.State) error {
	v.st = st
	names := st.CompanyNames()
	if len(names) == 0 {
		v.log.Warn("no companies to validate")
		return nil
	}

	v.log.Info("validating companies", zap.Int("count", len(names)))

	for _, name := range names {
		details := st.CompanyDetails(name)

		// Ask the enricher for anything it has; merge a returned industry
		// into the working copy when ours is blank.
		if resp := v.send(EnricherName, model.MessageRequest, model.EnrichRequest{
			CompanyName: name,
			Known:       details,
		}); resp != nil {
			if enriched, ok := resp.Payload.(model.EnrichResult); ok {
				if details.Industry == "" && enriched.Data.Industry != "Unknown" {
					details.Industry = enriched.Data.Industry
				}
			}
		}

		result := v.score(ctx, details)
		v.pending[resolve.Fold(name)] = result
		st.AddScoreResult(result)

		// Medium-or-better scores get flagged for quality review; the
		// review response itself is advisory here, the quality phase
		// raises any disputes for real.
		if result.Score >= v.thresholds.Medium {
			v.send(QualityName, model.MessageRequest, model.ReviewRequest{
				CompanyName: name,
				Result:      result,
				Details:     details,
			})
		}
	}

	stats := st.Stats()
	v.log.Info("validation complete",
		zap.Int("high", stats.FitCounts[model.FitHigh]),
		zap.Int("medium", stats.FitCounts[model.FitMedium]),
		zap.Int("low", stats.FitCounts[model.FitLow]),
	)

	v.send(OrchestratorName, model.MessageResponse, model.PhaseComplete{
		Phase: "validation",
		Counts: map[string]int{
			"total":      len(names),
			"high_fit":   stats.FitCounts[model.FitHigh],
			"medium_fit": stats.FitCounts[model.FitMedium],
			"low_fit":    stats.FitCounts[model.FitLow],
		},
	})
	return nil
}

// Handle answers validation requests, enrichment updates, and disputes.
func (v *Validator) Handle(msg model.Message) *model.Message {
	switch p := msg.Payload.(type) {
	case model.ValidateRequest:
		result := v.score(context.Background(), p.Details)
		return v.reply(msg, model.MessageResponse, model.ValidateResult{Result: result})

	case model.Dispute:
		return v.resolveDispute(msg, p)

	case model.EnrichResult:
		v.applyEnrichment(p)
	}
	return nil
}

// score runs the oracle with rule-based fallback. Fit level is always
// recomputed from the thresholds so it stays a pure function of the score.
func (v *Validator) score(ctx context.Context, details model.CompanyDetails) model.ScoreResult {
	if v.oracle != nil {
		verdict, err := v.oracle.ScoreCompany(ctx, details, v.criteria)
		if err == nil {
			return model.ScoreResult{
				CompanyName:     details.Name,
				Score:           verdict.Score,
				FitLevel:        v.thresholds.FitFor(verdict.Score),
				Reasoning:       verdict.Reasoning,
				IndustryScore:   verdict.IndustryScore,
				TitleScore:      verdict.TitleScore,
				DepartmentScore: verdict.DepartmentScore,
				SizeScore:       verdict.SizeScore,
				SpeakerBonus:    verdict.SpeakerBonus,
				ScoredBy:        v.name,
			}
		}
		v.log.Debug("oracle scoring failed, using rules",
			zap.String("company", details.Name), zap.Error(err))
	}

	result := icp.Score(details, v.criteria, v.thresholds)
	result.ScoredBy = v.name
	return result
}

// resolveDispute drives Scored -> Disputed -> Resolved for one company. The
// revised record replaces the state entry; the response tells the reviewer
// whether the suggestion was accepted. Keeping the original score is a
// normal outcome, not an error.
func (v *Validator) resolveDispute(msg model.Message, dispute model.Dispute) *model.Message {
	key := resolve.Fold(dispute.CompanyName)
	original, ok := v.pending[key]
	if !ok {
		v.log.Warn("dispute for unknown company", zap.String("company", dispute.CompanyName))
		return nil
	}

	v.log.Info("dispute received",
		zap.String("company", dispute.CompanyName),
		zap.String("reason", dispute.Reason),
	)

	revised := original
	revised.Disputed = true
	revised.DisputeReason = dispute.Reason

	var final int
	resolved := false
	if v.oracle != nil {
		details := model.CompanyDetails{Name: original.CompanyName}
		if v.st != nil {
			details = v.st.CompanyDetails(original.CompanyName)
		}
		resolution, err := v.oracle.ResolveDispute(context.Background(), original, dispute, details)
		if err == nil {
			final = resolution.FinalScore
			revised.Reasoning = original.Reasoning + " | Dispute resolved: " + resolution.Explanation
			resolved = true
		} else {
			v.log.Debug("oracle dispute resolution failed, using delta rule",
				zap.String("company", original.CompanyName), zap.Error(err))
		}
	}
	if !resolved {
		final, _ = icp.ResolveSuggestion(original.Score, dispute.SuggestedScore, v.maxDelta)
	}

	revised.FinalScore = &final
	revised.FitLevel = v.thresholds.FitFor(final)

	v.pending[key] = revised
	if v.st != nil {
		v.st.AddScoreResult(revised)
	}

	return v.reply(msg, model.MessageResponse, model.DisputeResolved{
		CompanyName:   original.CompanyName,
		OriginalScore: original.Score,
		RevisedScore:  final,
		Accepted:      final != original.Score,
	})
}

// applyEnrichment folds late enrichment data into a pending validation. A
// confirmed industry match adds the industry weight it originally missed.
func (v *Validator) applyEnrichment(enriched model.EnrichResult) {
	key := resolve.Fold(enriched.CompanyName)
	result, ok := v.pending[key]
	if !ok || result.IndustryScore > 0 {
		return
	}

	industry := enriched.Data.Industry
	if industry == "" || industry == "Unknown" {
		return
	}

	probe := model.CompanyDetails{Name: enriched.CompanyName, Industry: industry}
	rescored := icp.Score(probe, v.criteria, v.thresholds)
	if rescored.IndustryScore == 0 {
		return
	}

	result.IndustryScore = rescored.IndustryScore
	result.Score += rescored.IndustryScore
	result.Reasoning += "; Industry confirmed: " + industry
	result.FitLevel = v.thresholds.FitFor(result.EffectiveScore())

	v.pending[key] = result
	if v.st != nil {
		v.st.AddScoreResult(result)
	}
}

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

// QualityName is the quality reviewer's bus address.
const QualityName = "QualityAgent"

// resolutionRecord tracks how a raised dispute ended.
type resolutionRecord struct {
	Review        icp.Review
	Accepted      bool
	OriginalScore int
	RevisedScore  int
}

// Quality re-examines every score for under- and over-scoring and raises
// disputes with the validator. The four deterministic rules always run
// first; the oracle only gets a say when they are silent.
type Quality struct {
	base
	oracle     oracle.Oracle
	thresholds model.Thresholds
	reviews    map[string]resolutionRecord
}

// NewQuality creates the reviewer and registers it on the bus.
func NewQuality(b *bus.Bus, orc oracle.Oracle, thresholds model.Thresholds, log *zap.Logger) *Quality {
	q := &Quality{
		base:       newBase(QualityName, b, log),
		oracle:     orc,
		thresholds: thresholds,
		reviews:    make(map[string]resolutionRecord),
	}
	q.register(q.Handle)
	return q
}

// Process reviews every score result and disputes the ones that look wrong.
func (q *Quality) Process(ctx context.Context, st *state.State) error {
	results := st.Results()
	if len(results) == 0 {
		q.log.Warn("no score results to review")
		return nil
	}

	q.log.Info("reviewing scores", zap.Int("count", len(results)))

	disputes, confirmations := 0, 0
	for _, result := range results {
		details := st.CompanyDetails(result.CompanyName)
		review := q.review(ctx, result, details)
		q.reviews[resolve.Fold(result.CompanyName)] = resolutionRecord{Review: review}

		if !review.ShouldDispute {
			confirmations++
			continue
		}
		disputes++

		q.log.Info("disputing score",
			zap.String("company", result.CompanyName),
			zap.Int("score", result.Score),
			zap.String("reason", review.Reason),
		)
		q.send(ValidatorName, model.MessageDispute, model.Dispute{
			CompanyName:    result.CompanyName,
			Reason:         review.Reason,
			SuggestedScore: review.SuggestedScore,
		})
	}

	q.log.Info("review complete",
		zap.Int("confirmed", confirmations),
		zap.Int("disputed", disputes),
	)

	q.send(OrchestratorName, model.MessageResponse, model.PhaseComplete{
		Phase: "quality_review",
		Counts: map[string]int{
			"total_reviewed": len(results),
			"confirmed":      confirmations,
			"disputed":       disputes,
		},
	})
	return nil
}

// Handle answers review requests and records dispute resolutions.
func (q *Quality) Handle(msg model.Message) *model.Message {
	switch p := msg.Payload.(type) {
	case model.ReviewRequest:
		review := q.review(context.Background(), p.Result, p.Details)
		if review.ShouldDispute {
			return q.reply(msg, model.MessageDispute, model.Dispute{
				CompanyName:    p.CompanyName,
				Reason:         review.Reason,
				SuggestedScore: review.SuggestedScore,
			})
		}
		return q.reply(msg, model.MessageConfirm, model.ScoreConfirmed{CompanyName: p.CompanyName})

	case model.DisputeResolved:
		key := resolve.Fold(p.CompanyName)
		record := q.reviews[key]
		record.Accepted = p.Accepted
		record.OriginalScore = p.OriginalScore
		record.RevisedScore = p.RevisedScore
		q.reviews[key] = record

		outcome := "rejected"
		if p.Accepted {
			outcome = "accepted"
		}
		q.log.Info("dispute settled",
			zap.String("company", p.CompanyName),
			zap.String("outcome", outcome),
			zap.Int("revised_score", p.RevisedScore),
		)
	}
	return nil
}

// review applies the deterministic rules first; when they confirm the score
// and an oracle is present, scores at or above the medium threshold get a
// nuanced second opinion. Only the oracle's dispute verdict is adopted — it
// never overrides a deterministic dispute.
func (q *Quality) review(ctx context.Context, result model.ScoreResult, details model.CompanyDetails) icp.Review {
	review := icp.ReviewScore(result, details)
	if review.ShouldDispute {
		return review
	}

	if q.oracle != nil && result.Score >= q.thresholds.Medium {
		verdict, err := q.oracle.ReviewScore(ctx, result, details)
		if err != nil {
			q.log.Debug("oracle review failed, keeping rule verdict",
				zap.String("company", result.CompanyName), zap.Error(err))
			return review
		}
		if verdict.ShouldDispute {
			return icp.Review{
				CompanyName:    result.CompanyName,
				ShouldDispute:  true,
				Reason:         verdict.Reason,
				SuggestedScore: verdict.SuggestedScore,
			}
		}
	}
	return review
}

package agent

import (
	"context"

	"go.uber.org/zap"

	"github.com/anjy7/ascendo/internal/bus"
	"github.com/anjy7/ascendo/internal/icp"
	"github.com/anjy7/ascendo/internal/model"
	"github.com/anjy7/ascendo/internal/scrape"
	"github.com/anjy7/ascendo/internal/state"
	"github.com/anjy7/ascendo/pkg/oracle"
)

// OrchestratorName is the orchestrator's bus address.
const OrchestratorName = "OrchestratorAgent"

// RunOptions carries the optional extra inputs for one pipeline run.
type RunOptions struct {
	// Demo substitutes the fixed demo dataset for a live scrape.
	Demo bool
	// AttendeeFile is a text/PDF-derived attendee list merged after scrape.
	AttendeeFile string
	// OCRFile is an OCR text dump merged after scrape.
	OCRFile string
}

// Summary is what a run hands back to the caller.
type Summary struct {
	Stats  state.Stats
	NoData bool
}

// Orchestrator owns the child agents and sequences the five phases:
// scrape, attendee merge, enrich, validate, quality review. Each phase only
// proceeds when the previous one produced at least one company; a run with
// no scraped data halts early with a user-facing explanation, not an error.
type Orchestrator struct {
	base
	source    scrape.Source
	enricher  *Enricher
	validator *Validator
	quality   *Quality
}

// Config assembles an orchestrator.
type Config struct {
	Bus        *bus.Bus
	Source     scrape.Source
	Oracle     oracle.Oracle // nil runs rule-based only
	Criteria   icp.Criteria
	Thresholds model.Thresholds
	MaxDelta   int
	Logger     *zap.Logger
}

// NewOrchestrator builds the orchestrator and its child agents, registering
// everything on the bus.
func NewOrchestrator(cfg Config) *Orchestrator {
	o := &Orchestrator{
		base:      newBase(OrchestratorName, cfg.Bus, cfg.Logger),
		source:    cfg.Source,
		enricher:  NewEnricher(cfg.Bus, cfg.Oracle, cfg.Logger),
		validator: NewValidator(cfg.Bus, cfg.Oracle, cfg.Criteria, cfg.Thresholds, cfg.MaxDelta, cfg.Logger),
		quality:   NewQuality(cfg.Bus, cfg.Oracle, cfg.Thresholds, cfg.Logger),
	}
	o.register(o.Handle)
	return o
}

// Run executes the full pipeline against the given state.
func (o *Orchestrator) Run(ctx context.Context, st *state.State, opts RunOptions) (*Summary, error) {
	o.log.Info("pipeline starting", zap.String("url", st.URL), zap.Bool("demo", opts.Demo))
	st.SetStatus(state.StatusInProgress)

	// Phase 1: scrape.
	source := o.source
	if opts.Demo {
		source = scrape.DemoSource{}
	}
	conference, err := source.Fetch(ctx, st.URL)
	if err != nil {
		o.log.Error("scrape failed", zap.Error(err))
		st.AddError("scrape: " + err.Error())
	} else {
		st.Conference = conference
	}

	// Phase 1b/1c: merge attendee lists from OCR and text/PDF dumps.
	o.mergeAttendeeFile(st, opts.OCRFile, model.SourceOCRAttendee)
	o.mergeAttendeeFile(st, opts.AttendeeFile, model.SourcePDFAttendee)

	if st.Conference == nil || len(st.Conference.Companies) == 0 {
		o.log.Warn("no companies scraped, pipeline cannot continue",
			zap.String("url", st.URL))
		st.SetStatus(state.StatusComplete)
		return &Summary{Stats: st.Stats(), NoData: true}, nil
	}

	o.send(model.Broadcast, model.MessageStatus, model.PhaseComplete{
		Phase: "scrape",
		Counts: map[string]int{
			"speakers":  len(st.Conference.Speakers),
			"attendees": len(st.Conference.Attendees),
			"companies": len(st.Conference.Companies),
		},
	})

	// Phase 2: enrich. Checkpoint first so a broken enrichment can be
	// rolled back by hand in debugging sessions.
	st.CreateCheckpoint("pre-enrich")
	Execute(ctx, o.enricher, o.bus, st)

	// Phase 3: validate.
	st.CreateCheckpoint("pre-validate")
	Execute(ctx, o.validator, o.bus, st)

	// Phase 4: quality review, gated on validation output.
	if len(st.Results()) > 0 {
		Execute(ctx, o.quality, o.bus, st)
	} else {
		o.log.Warn("validation produced no results, skipping quality review")
	}

	st.SetStatus(state.StatusComplete)
	stats := st.Stats()
	o.log.Info("pipeline complete",
		zap.Int("results", stats.Results),
		zap.Int("high", stats.FitCounts[model.FitHigh]),
		zap.Int("medium", stats.FitCounts[model.FitMedium]),
		zap.Int("low", stats.FitCounts[model.FitLow]),
		zap.Int("disputed", stats.Disputed),
		zap.Int("errors", stats.Errors),
	)
	return &Summary{Stats: stats}, nil
}

// Handle logs status traffic from child agents.
func (o *Orchestrator) Handle(msg model.Message) *model.Message {
	switch p := msg.Payload.(type) {
	case model.PhaseComplete:
		fields := []zap.Field{zap.String("agent", msg.Sender)}
		for k, v := range p.Counts {
			fields = append(fields, zap.Int(k, v))
		}
		o.log.Info(p.Kind(), fields...)

	case model.AgentError:
		o.log.Error("agent reported error",
			zap.String("agent", p.Agent),
			zap.String("error", p.Err),
		)
	}
	return nil
}

func (o *Orchestrator) mergeAttendeeFile(st *state.State, path string, source model.CompanySource) {
	if path == "" {
		return
	}
	attendees, err := scrape.LoadAttendeeFile(path)
	if err != nil {
		o.log.Warn("attendee file load failed", zap.String("path", path), zap.Error(err))
		st.AddError("attendee merge: " + err.Error())
		return
	}
	if len(attendees) == 0 {
		return
	}
	if st.Conference == nil {
		st.Conference = &model.ConferenceData{URL: st.URL}
	}
	added := scrape.MergeAttendees(st.Conference, attendees, source)
	o.log.Info("attendee list merged",
		zap.String("path", path),
		zap.Int("attendees", len(attendees)),
		zap.Int("new_companies", added),
	)
}

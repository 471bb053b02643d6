package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/anjy7/ascendo/internal/agent"
	"github.com/anjy7/ascendo/internal/bus"
	"github.com/anjy7/ascendo/internal/icp"
	"github.com/anjy7/ascendo/internal/scrape"
	"github.com/anjy7/ascendo/internal/state"
	"github.com/anjy7/ascendo/internal/store"
	"github.com/anjy7/ascendo/pkg/oracle"
	"github.com/anjy7/ascendo/pkg/salesforce"
)

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		return store.NewSQLite(cfg.Store.DatabaseURL)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, &store.PoolConfig{
			MaxConns: cfg.Store.Pool.MaxConns,
			MinConns: cfg.Store.Pool.MinConns,
		})
	default:
		return nil, eris.Errorf("cmd: unsupported store driver %q", cfg.Store.Driver)
	}
}

func initSalesforce() (salesforce.Client, error) {
	return salesforce.Connect(salesforce.Creds{
		LoginURL: cfg.Salesforce.LoginURL,
		Username: cfg.Salesforce.Username,
		ClientID: cfg.Salesforce.ClientID,
		KeyPath:  cfg.Salesforce.KeyPath,
	})
}

// loadProfile resolves the scoring profile: a YAML file when configured,
// the built-in defaults otherwise.
func loadProfile() (*icp.Profile, error) {
	if cfg.ICP.ProfilePath != "" {
		return icp.LoadProfile(cfg.ICP.ProfilePath)
	}
	return &icp.Profile{
		Criteria:   icp.DefaultCriteria(),
		Thresholds: icp.DefaultThresholds(),
	}, nil
}

// newOracle builds the Claude-backed oracle, or returns nil when no API key
// is configured so the pipeline falls back to rule-based scoring.
func newOracle() oracle.Oracle {
	if cfg.Anthropic.Key == "" {
		return nil
	}
	return oracle.NewClaude(cfg.Anthropic.Key, cfg.Anthropic.Model)
}

// newSource picks the scrape source for a run. A configured capture file
// replays a saved scrape; otherwise live scraping is unavailable and the
// empty source makes the run halt with a no-data explanation unless the
// caller asked for demo data.
func newSource(demo bool) scrape.Source {
	if demo {
		return scrape.DemoSource{}
	}
	if cfg.Scrape.CaptureFile != "" {
		return scrape.FileSource{Path: cfg.Scrape.CaptureFile}
	}
	return scrape.EmptySource{}
}

// qualify assembles a fresh bus and agent set, then runs the full pipeline
// for one conference URL. Agents hold per-run state, so nothing here is
// shared between runs.
func qualify(ctx context.Context, url string, opts agent.RunOptions) (*state.State, *agent.Summary, error) {
	profile, err := loadProfile()
	if err != nil {
		return nil, nil, err
	}

	log := zap.L().Named("pipeline")
	orch := agent.NewOrchestrator(agent.Config{
		Bus:        bus.New(log),
		Source:     newSource(opts.Demo),
		Oracle:     newOracle(),
		Criteria:   profile.Criteria,
		Thresholds: profile.Thresholds,
		MaxDelta:   cfg.ICP.MaxDisputeDelta,
		Logger:     log,
	})

	st := state.New(url)
	summary, err := orch.Run(ctx, st, opts)
	if err != nil {
		return st, nil, err
	}
	return st, summary, nil
}

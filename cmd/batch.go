package main

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/anjy7/ascendo/internal/agent"
	"github.com/anjy7/ascendo/internal/model"
	"github.com/anjy7/ascendo/internal/store"
	"github.com/anjy7/ascendo/pkg/notion"
)

var batchLimit int

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Qualify all queued conferences from Notion",
	Long: `Pull conferences marked Queued from the Notion lead database and run
the qualification pipeline for each, up to batch.max_concurrent_runs in
parallel. Each conference is marked Complete or Failed in Notion as it
finishes; one failure does not stop the batch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("batch"); err != nil {
			return err
		}

		ctx := cmd.Context()
		log := zap.L().Named("batch")

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		nc := notion.NewClient(cfg.Notion.Token)
		leads, err := notion.QueryQueuedConferences(ctx, nc, cfg.Notion.LeadDB)
		if err != nil {
			return err
		}
		if batchLimit > 0 && len(leads) > batchLimit {
			leads = leads[:batchLimit]
		}
		if len(leads) == 0 {
			fmt.Println("No queued conferences found.")
			return nil
		}
		log.Info("batch started",
			zap.Int("leads", len(leads)),
			zap.Int("concurrency", cfg.Batch.MaxConcurrentRuns))

		succeeded, failed := processBatch(ctx, leads, st, nc, log)
		fmt.Printf("Batch complete: %d succeeded, %d failed of %d\n",
			succeeded, failed, len(leads))
		return nil
	},
}

func processBatch(ctx context.Context, leads []notion.ConferenceLead, st store.Store, nc notion.Client, log *zap.Logger) (int64, int64) {
	var succeeded, failed atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Batch.MaxConcurrentRuns)

	for _, lead := range leads {
		g.Go(func() error {
			if err := qualifyLead(ctx, lead, st); err != nil {
				failed.Add(1)
				log.Error("conference failed",
					zap.String("name", lead.Name),
					zap.String("url", lead.URL),
					zap.Error(err))
				if markErr := notion.MarkLeadStatus(ctx, nc, lead.PageID, "Failed"); markErr != nil {
					log.Error("mark failed status", zap.Error(markErr))
				}
				return nil // one bad conference must not abort the batch
			}
			succeeded.Add(1)
			if markErr := notion.MarkLeadStatus(ctx, nc, lead.PageID, "Complete"); markErr != nil {
				log.Error("mark complete status", zap.Error(markErr))
			}
			return nil
		})
	}
	_ = g.Wait()
	return succeeded.Load(), failed.Load()
}

func qualifyLead(ctx context.Context, lead notion.ConferenceLead, st store.Store) error {
	run, err := st.CreateRun(ctx, lead.URL)
	if err != nil {
		return err
	}
	if err := st.UpdateRunStatus(ctx, run.ID, model.RunStatusRunning); err != nil {
		return err
	}

	pipelineState, summary, err := qualify(ctx, lead.URL, agent.RunOptions{})
	if err != nil {
		if failErr := st.FailRun(ctx, run.ID, err.Error()); failErr != nil {
			zap.L().Error("mark run failed", zap.Error(failErr))
		}
		return err
	}
	if summary.NoData {
		if err := st.FailRun(ctx, run.ID, "no conference data found"); err != nil {
			return err
		}
		return eris.Errorf("no conference data found for %s", lead.URL)
	}
	return st.SaveResults(ctx, run.ID, pipelineState.Results())
}

func init() {
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "process at most this many conferences (0 = all)")
	rootCmd.AddCommand(batchCmd)
}

package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/anjy7/ascendo/internal/agent"
	"github.com/anjy7/ascendo/internal/export"
	"github.com/anjy7/ascendo/internal/model"
	"github.com/anjy7/ascendo/pkg/salesforce"
)

var (
	runURL          string
	runDemo         bool
	runAttendeeFile string
	runOCRFile      string
	runOutput       string
	runXLSX         bool
	runPushSF       bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Qualify a single conference",
	Long: `Run the full pipeline for one conference: scrape (or replay/demo),
merge attendee files, enrich, score, review, and export the results to CSV
or XLSX. High-fit leads can optionally be pushed to Salesforce.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("run"); err != nil {
			return err
		}
		if runURL == "" && !runDemo {
			return eris.New("either --url or --demo is required")
		}

		ctx := cmd.Context()
		log := zap.L().Named("run")

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		run, err := st.CreateRun(ctx, runURL)
		if err != nil {
			return err
		}
		if err := st.UpdateRunStatus(ctx, run.ID, model.RunStatusRunning); err != nil {
			return err
		}
		log.Info("run started", zap.String("run_id", run.ID), zap.String("url", runURL))

		pipelineState, summary, err := qualify(ctx, runURL, agent.RunOptions{
			Demo:         runDemo,
			AttendeeFile: runAttendeeFile,
			OCRFile:      runOCRFile,
		})
		if err != nil {
			if failErr := st.FailRun(ctx, run.ID, err.Error()); failErr != nil {
				log.Error("mark run failed", zap.Error(failErr))
			}
			return err
		}

		if summary.NoData {
			if err := st.FailRun(ctx, run.ID, "no conference data found"); err != nil {
				return err
			}
			fmt.Println("No speakers or attendees found. Provide --demo, an attendee file, or a capture file.")
			return nil
		}

		if err := st.SaveResults(ctx, run.ID, pipelineState.Results()); err != nil {
			return err
		}

		outPath := runOutput
		if outPath == "" {
			outPath = defaultOutputPath(runXLSX)
		}
		if runXLSX {
			err = export.WriteXLSX(pipelineState, outPath)
		} else {
			err = export.WriteCSV(pipelineState, outPath)
		}
		if err != nil {
			return err
		}

		fmt.Print(export.FormatSummary(pipelineState))
		fmt.Printf("\nRun %s complete. Results written to %s\n", run.ID, outPath)

		if runPushSF {
			sf, err := initSalesforce()
			if err != nil {
				return err
			}
			pushed, err := salesforce.PushHighFitLeads(ctx, sf, pipelineState)
			if err != nil {
				return err
			}
			fmt.Printf("Pushed %d high-fit leads to Salesforce", pushed.Pushed)
			if len(pushed.Failed) > 0 {
				fmt.Printf(" (%d failed)", len(pushed.Failed))
			}
			fmt.Println()
		}
		return nil
	},
}

func defaultOutputPath(xlsx bool) string {
	ext := "csv"
	if xlsx {
		ext = "xlsx"
	}
	name := fmt.Sprintf("icp_results_%s.%s", time.Now().Format("20060102_150405"), ext)
	return filepath.Join("output", name)
}

func init() {
	runCmd.Flags().StringVar(&runURL, "url", "", "conference URL to qualify")
	runCmd.Flags().BoolVar(&runDemo, "demo", false, "use the built-in demo dataset instead of scraping")
	runCmd.Flags().StringVar(&runAttendeeFile, "attendee-file", "", "text file with an attendee list to merge")
	runCmd.Flags().StringVar(&runOCRFile, "ocr-text", "", "OCR text dump with attendees to merge")
	runCmd.Flags().StringVar(&runOutput, "output", "", "output file path (default output/icp_results_<timestamp>)")
	runCmd.Flags().BoolVar(&runXLSX, "xlsx", false, "write XLSX instead of CSV")
	runCmd.Flags().BoolVar(&runPushSF, "push-salesforce", false, "push high-fit leads to Salesforce")
	rootCmd.AddCommand(runCmd)
}

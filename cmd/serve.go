package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/anjy7/ascendo/internal/agent"
	"github.com/anjy7/ascendo/internal/model"
	"github.com/anjy7/ascendo/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the qualification webhook API",
	Long: `Start an HTTP server exposing a webhook that queues qualification
runs. Runs execute asynchronously; poll GET /runs/{id} for results.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		log := zap.L().Named("serve")
		mux := http.NewServeMux()

		mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})

		mux.HandleFunc("POST /webhook/qualify", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				URL  string `json:"url"`
				Demo bool   `json:"demo"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "invalid JSON body", http.StatusBadRequest)
				return
			}
			if req.URL == "" && !req.Demo {
				http.Error(w, "url is required", http.StatusBadRequest)
				return
			}

			run, err := st.CreateRun(r.Context(), req.URL)
			if err != nil {
				log.Error("create run", zap.Error(err))
				http.Error(w, "failed to create run", http.StatusInternalServerError)
				return
			}

			go func() {
				runCtx := context.Background()
				if err := executeRun(runCtx, st, run.ID, req.URL, req.Demo); err != nil {
					log.Error("webhook run failed",
						zap.String("run_id", run.ID), zap.Error(err))
				}
			}()

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusAccepted)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"run_id": run.ID,
				"status": string(run.Status),
			})
		})

		mux.HandleFunc("GET /runs/{id}", func(w http.ResponseWriter, r *http.Request) {
			run, err := st.GetRun(r.Context(), r.PathValue("id"))
			if err != nil {
				http.Error(w, "run not found", http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(run)
		})

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
			Handler: mux,
		}

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error("shutdown", zap.Error(err))
			}
		}()

		log.Info("server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		log.Info("server stopped")
		return nil
	},
}

func executeRun(ctx context.Context, st store.Store, runID, url string, demo bool) error {
	if err := st.UpdateRunStatus(ctx, runID, model.RunStatusRunning); err != nil {
		return err
	}
	pipelineState, summary, err := qualify(ctx, url, agent.RunOptions{Demo: demo})
	if err != nil {
		if failErr := st.FailRun(ctx, runID, err.Error()); failErr != nil {
			return failErr
		}
		return err
	}
	if summary.NoData {
		return st.FailRun(ctx, runID, "no conference data found")
	}
	return st.SaveResults(ctx, runID, pipelineState.Results())
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/anjy7/ascendo/internal/model"
	"github.com/anjy7/ascendo/internal/state"
)

type fitCount struct {
	level model.FitLevel
	count int
}

// fitCounts returns the fit buckets in display order, High first.
func fitCounts(stats state.Stats) []fitCount {
	return []fitCount{
		{model.FitHigh, stats.FitCounts[model.FitHigh]},
		{model.FitMedium, stats.FitCounts[model.FitMedium]},
		{model.FitLow, stats.FitCounts[model.FitLow]},
	}
}

// FormatSummary renders the end-of-run report: fit bucket counts with the
// top companies in each, then the top high-fit leads with their reasoning.
func FormatSummary(st *state.State) string {
	results := st.Results()
	if len(results) == 0 {
		return "No results to report.\n"
	}

	byFit := make(map[model.FitLevel][]model.ScoreResult)
	for _, r := range results {
		byFit[r.FitLevel] = append(byFit[r.FitLevel], r)
	}
	for _, bucket := range byFit {
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].EffectiveScore() > bucket[j].EffectiveScore()
		})
	}

	var sb strings.Builder
	sb.WriteString("ICP Validation Results\n")
	sb.WriteString("======================\n")
	for _, fc := range fitCounts(st.Stats()) {
		fmt.Fprintf(&sb, "%-6s %3d  %s\n", fc.level, fc.count, topNames(byFit[fc.level], 3))
	}

	high := byFit[model.FitHigh]
	if len(high) > 0 {
		sb.WriteString("\nTop High-Fit Leads:\n")
		for i, r := range high {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&sb, "  %d. %s (Score: %d)\n", i+1, r.CompanyName, r.EffectiveScore())
			fmt.Fprintf(&sb, "     %s\n", truncate(r.Reasoning, 100))
		}
	}

	stats := st.Stats()
	if stats.Disputed > 0 {
		fmt.Fprintf(&sb, "\nDisputed and resolved: %d\n", stats.Disputed)
	}
	if stats.Errors > 0 {
		fmt.Fprintf(&sb, "Errors: %d\n", stats.Errors)
	}
	return sb.String()
}

func topNames(bucket []model.ScoreResult, n int) string {
	if len(bucket) == 0 {
		return "None"
	}
	if len(bucket) > n {
		bucket = bucket[:n]
	}
	names := make([]string, len(bucket))
	for i, r := range bucket {
		names[i] = r.CompanyName
	}
	return strings.Join(names, ", ")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// Package export writes scored leads to CSV and XLSX and renders the
// run summary.
package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/anjy7/ascendo/internal/model"
	"github.com/anjy7/ascendo/internal/resolve"
	"github.com/anjy7/ascendo/internal/state"
)

// leadColumns defines the ordered lead CSV output columns.
var leadColumns = []string{
	"Name",
	"Title",
	"Company",
	"Type",
	"Industry",
	"ICP Score",
	"ICP Fit",
	"Reasoning",
}

// WriteCSV writes one row per known person plus one row per company that has
// no known contacts.
func WriteCSV(st *state.State, outputPath string) error {
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrap(err, "export: create output dir")
		}
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return eris.Wrap(err, "export: create file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(leadColumns); err != nil {
		return eris.Wrap(err, "export: write header")
	}

	for _, row := range buildRows(st) {
		if err := w.Write(row); err != nil {
			return eris.Wrap(err, "export: write row")
		}
	}

	if err := w.Error(); err != nil {
		return eris.Wrap(err, "export: flush")
	}
	return nil
}

// buildRows flattens a run into lead rows: speakers first, then attendees,
// then companies with no named contacts.
func buildRows(st *state.State) [][]string {
	conference := st.Conference
	if conference == nil {
		return nil
	}

	results := make(map[string]model.ScoreResult)
	for _, r := range st.Results() {
		results[resolve.Fold(r.CompanyName)] = r
	}

	var rows [][]string
	withContacts := make(map[string]bool)

	for _, s := range conference.Speakers {
		icp, ok := results[resolve.Fold(s.Company)]
		rows = append(rows, []string{
			s.Name,
			s.Title,
			s.Company,
			"Speaker",
			primaryReason(icp, ok),
			scoreCell(icp, ok),
			fitCell(icp, ok),
			reasoningCell(icp, ok),
		})
		withContacts[resolve.Fold(s.Company)] = true
	}

	for _, a := range conference.Attendees {
		icp, ok := results[resolve.Fold(a.Company)]
		rows = append(rows, []string{
			a.Name,
			a.Title,
			a.Company,
			"Attendee",
			"",
			scoreCell(icp, ok),
			fitCell(icp, ok),
			reasoningCell(icp, ok),
		})
		withContacts[resolve.Fold(a.Company)] = true
	}

	for _, c := range conference.Companies {
		if withContacts[resolve.Fold(c.Name)] {
			continue
		}
		icp, ok := results[resolve.Fold(c.Name)]
		rows = append(rows, []string{
			"",
			"",
			c.Name,
			"Logo/Sponsor",
			c.Industry,
			scoreCell(icp, ok),
			fitCell(icp, ok),
			reasoningCell(icp, ok),
		})
	}

	return rows
}

func scoreCell(r model.ScoreResult, ok bool) string {
	if !ok {
		return ""
	}
	return strconv.Itoa(r.EffectiveScore())
}

func fitCell(r model.ScoreResult, ok bool) string {
	if !ok {
		return ""
	}
	return string(r.FitLevel)
}

func reasoningCell(r model.ScoreResult, ok bool) string {
	if !ok {
		return ""
	}
	return r.Reasoning
}

// primaryReason is the first clause of the reasoning, used as a cheap
// industry hint in the speaker rows.
func primaryReason(r model.ScoreResult, ok bool) string {
	if !ok {
		return ""
	}
	reason, _, _ := strings.Cut(r.Reasoning, ";")
	return strings.TrimSpace(reason)
}

package salesforce

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/anjy7/ascendo/internal/model"
	"github.com/anjy7/ascendo/internal/state"
)

// PushResult summarizes a lead push.
type PushResult struct {
	Pushed int
	Failed []string
}

// PushHighFitLeads inserts one Lead per high-fit company from a completed
// run. The primary contact is the first known speaker, falling back to the
// first attendee; companies with no contacts are pushed with the company name
// only.
func PushHighFitLeads(ctx context.Context, c Client, st *state.State) (*PushResult, error) {
	var records []map[string]any
	var companies []string

	for _, r := range st.Results() {
		if r.FitLevel != model.FitHigh {
			continue
		}
		details := st.CompanyDetails(r.CompanyName)
		records = append(records, leadRecord(r, details))
		companies = append(companies, r.CompanyName)
	}
	if len(records) == 0 {
		return &PushResult{}, nil
	}

	results, err := c.InsertCollection(ctx, "Lead", records)
	if err != nil {
		return nil, eris.Wrap(err, "sf: push leads")
	}

	out := &PushResult{}
	for i, res := range results {
		if res.Success {
			out.Pushed++
			continue
		}
		name := "unknown"
		if i < len(companies) {
			name = companies[i]
		}
		out.Failed = append(out.Failed, fmt.Sprintf("%s: %s", name, strings.Join(res.Errors, "; ")))
	}
	return out, nil
}

func leadRecord(r model.ScoreResult, details model.CompanyDetails) map[string]any {
	record := map[string]any{
		"Company":     r.CompanyName,
		"LastName":    "Unknown",
		"LeadSource":  "Conference",
		"Rating":      "Hot",
		"Description": fmt.Sprintf("ICP score %d (%s). %s", r.EffectiveScore(), r.FitLevel, r.Reasoning),
	}

	if details.Industry != "" {
		record["Industry"] = details.Industry
	}
	if details.Size != nil {
		record["NumberOfEmployees"] = *details.Size
	}

	contacts := details.Contacts()
	if len(contacts) == 0 {
		return record
	}
	first, last := splitName(contacts[0].Name)
	if first != "" {
		record["FirstName"] = first
	}
	if last != "" {
		record["LastName"] = last
	}
	if contacts[0].Title != "" {
		record["Title"] = contacts[0].Title
	}
	return record
}

// splitName splits a full name into first and last on the final space.
func splitName(full string) (string, string) {
	full = strings.TrimSpace(full)
	if full == "" {
		return "", ""
	}
	idx := strings.LastIndex(full, " ")
	if idx < 0 {
		return "", full
	}
	return full[:idx], full[idx+1:]
}

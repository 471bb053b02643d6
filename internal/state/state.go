// Package state holds the single mutable document that flows through a
// pipeline run: scraped conference data, per-company score results, errors,
// and named checkpoints for rollback.
package state

import (
	"time"

	"github.com/anjy7/ascendo/internal/model"
	"github.com/anjy7/ascendo/internal/resolve"
)

// Status is the lifecycle of a pipeline run.
type Status string

const (
	StatusInitialized Status = "initialized"
	StatusInProgress  Status = "in_progress"
	StatusComplete    Status = "complete"
)

// State is mutated by exactly one phase at a time; runs are sequential so no
// locking is needed. Concurrent pipeline runs each get their own State.
type State struct {
	URL          string
	Status       Status
	CurrentAgent string
	Conference   *model.ConferenceData
	Errors       []string
	StartedAt    time.Time

	// results keep discovery order; index maps folded company name to slot.
	results []model.ScoreResult
	index   map[string]int

	checkpoints map[string]*snapshot
}

// New creates a fresh state for one run.
func New(url string) *State {
	return &State{
		URL:         url,
		Status:      StatusInitialized,
		StartedAt:   time.Now(),
		index:       make(map[string]int),
		checkpoints: make(map[string]*snapshot),
	}
}

// SetStatus updates the run status.
func (s *State) SetStatus(status Status) { s.Status = status }

// SetCurrentAgent records which agent is executing.
func (s *State) SetCurrentAgent(name string) { s.CurrentAgent = name }

// AddError records an agent-level failure. Errors never abort the run.
func (s *State) AddError(err string) { s.Errors = append(s.Errors, err) }

// AddScoreResult upserts by company name, case-insensitively. A later write
// for the same company replaces the record in place, preserving the slot it
// was first discovered in — callers iterate results in discovery order.
func (s *State) AddScoreResult(r model.ScoreResult) {
	key := resolve.Fold(r.CompanyName)
	if i, ok := s.index[key]; ok {
		s.results[i] = r
		return
	}
	s.index[key] = len(s.results)
	s.results = append(s.results, r)
}

// Results returns score results in discovery order. The slice is a copy; the
// records are values, so callers cannot mutate state through it.
func (s *State) Results() []model.ScoreResult {
	return append([]model.ScoreResult(nil), s.results...)
}

// Result looks up a company's score result case-insensitively.
func (s *State) Result(companyName string) (model.ScoreResult, bool) {
	i, ok := s.index[resolve.Fold(companyName)]
	if !ok {
		return model.ScoreResult{}, false
	}
	return s.results[i], true
}

// CompanyNames returns the de-duplicated union of company names from the
// explicit company list, speaker affiliations, and attendee affiliations.
// Dedup is case-insensitive; the first-seen spelling wins. Order follows
// discovery: companies, then speakers, then attendees.
func (s *State) CompanyNames() []string {
	if s.Conference == nil {
		return nil
	}

	var names []string
	seen := make(map[string]bool)
	add := func(name string) {
		if name == "" {
			return
		}
		key := resolve.Fold(name)
		if seen[key] {
			return
		}
		seen[key] = true
		names = append(names, name)
	}

	for _, c := range s.Conference.Companies {
		add(c.Name)
	}
	for _, sp := range s.Conference.Speakers {
		add(sp.Company)
	}
	for _, a := range s.Conference.Attendees {
		add(a.Company)
	}
	return names
}

// CompanyDetails merges the company record with every speaker and attendee
// whose affiliation matches, case-insensitively. Pure projection: it never
// mutates state, and the returned value shares nothing mutable with it.
func (s *State) CompanyDetails(companyName string) model.CompanyDetails {
	details := model.CompanyDetails{Name: companyName}
	if s.Conference == nil {
		return details
	}

	for _, c := range s.Conference.Companies {
		if resolve.SameCompany(c.Name, companyName) {
			details.Industry = c.Industry
			details.SizeCategory = c.SizeCategory
			details.Headquarters = c.Headquarters
			details.Website = c.Website
			details.Description = c.Description
			details.Source = c.Source
			if c.Size != nil {
				size := *c.Size
				details.Size = &size
			}
			break
		}
	}

	for _, sp := range s.Conference.Speakers {
		if resolve.SameCompany(sp.Company, companyName) {
			details.Speakers = append(details.Speakers, model.Contact{Name: sp.Name, Title: sp.Title})
		}
	}
	for _, a := range s.Conference.Attendees {
		if resolve.SameCompany(a.Company, companyName) {
			details.Attendees = append(details.Attendees, model.Contact{Name: a.Name, Title: a.Title})
		}
	}
	return details
}

// Stats summarizes the current run for logging and the final report.
type Stats struct {
	URL       string                 `json:"url"`
	Status    Status                 `json:"status"`
	Speakers  int                    `json:"speakers"`
	Attendees int                    `json:"attendees"`
	Companies int                    `json:"companies"`
	Results   int                    `json:"results"`
	FitCounts map[model.FitLevel]int `json:"fit_counts"`
	Errors    int                    `json:"errors"`
	Disputed  int                    `json:"disputed"`
	Elapsed   time.Duration          `json:"elapsed"`
}

// Stats aggregates counts over the current state. Fit counts use the
// effective score so resolved disputes land in their final bucket.
func (s *State) Stats() Stats {
	st := Stats{
		URL:       s.URL,
		Status:    s.Status,
		Results:   len(s.results),
		Errors:    len(s.Errors),
		FitCounts: make(map[model.FitLevel]int),
		Elapsed:   time.Since(s.StartedAt),
	}
	if s.Conference != nil {
		st.Speakers = len(s.Conference.Speakers)
		st.Attendees = len(s.Conference.Attendees)
		st.Companies = len(s.Conference.Companies)
	}
	for _, r := range s.results {
		st.FitCounts[r.FitLevel]++
		if r.Disputed {
			st.Disputed++
		}
	}
	return st
}

package state

import (
	"github.com/anjy7/ascendo/internal/model"
	"github.com/anjy7/ascendo/internal/resolve"
)

// snapshot is a deep copy of everything a restore needs to put back. It
// shares no mutable substructure with the live state or other snapshots.
type snapshot struct {
	status     Status
	conference *model.ConferenceData
	errors     []string
	results    []model.ScoreResult
}

// CreateCheckpoint takes a named deep snapshot of the current state. Taking a
// checkpoint under an existing name replaces it.
func (s *State) CreateCheckpoint(name string) {
	s.checkpoints[name] = &snapshot{
		status:     s.Status,
		conference: cloneConference(s.Conference),
		errors:     append([]string(nil), s.Errors...),
		results:    cloneResults(s.results),
	}
}

// RestoreCheckpoint rolls the state back to a named checkpoint. Restoring
// copies again, so the checkpoint stays intact and can be restored twice.
// Returns false if no checkpoint has that name.
func (s *State) RestoreCheckpoint(name string) bool {
	cp, ok := s.checkpoints[name]
	if !ok {
		return false
	}

	s.Status = cp.status
	s.Conference = cloneConference(cp.conference)
	s.Errors = append([]string(nil), cp.errors...)
	s.results = cloneResults(cp.results)

	s.index = make(map[string]int, len(s.results))
	for i, r := range s.results {
		s.index[resolve.Fold(r.CompanyName)] = i
	}
	return true
}

// Checkpoints lists the names of existing checkpoints.
func (s *State) Checkpoints() []string {
	names := make([]string, 0, len(s.checkpoints))
	for name := range s.checkpoints {
		names = append(names, name)
	}
	return names
}

func cloneConference(c *model.ConferenceData) *model.ConferenceData {
	if c == nil {
		return nil
	}
	out := *c
	out.Speakers = append([]model.Speaker(nil), c.Speakers...)
	out.Attendees = append([]model.Attendee(nil), c.Attendees...)
	out.Companies = make([]model.Company, len(c.Companies))
	for i, co := range c.Companies {
		out.Companies[i] = cloneCompany(co)
	}
	return &out
}

func cloneCompany(c model.Company) model.Company {
	out := c
	if c.Size != nil {
		size := *c.Size
		out.Size = &size
	}
	out.Speakers = append([]string(nil), c.Speakers...)
	out.Attendees = append([]string(nil), c.Attendees...)
	return out
}

func cloneResults(rs []model.ScoreResult) []model.ScoreResult {
	out := make([]model.ScoreResult, len(rs))
	for i, r := range rs {
		out[i] = r
		if r.FinalScore != nil {
			final := *r.FinalScore
			out[i].FinalScore = &final
		}
	}
	return out
}

package scrape

import (
	"context"
	"time"

	"github.com/anjy7/ascendo/internal/model"
)

// DemoSource serves a fixed Field Service USA speaker list so the enrich,
// validate, and quality-review phases can run without a live scrape.
type DemoSource struct{}

// Fetch returns the demo dataset.
func (DemoSource) Fetch(_ context.Context, url string) (*model.ConferenceData, error) {
	return &model.ConferenceData{
		URL:            url,
		ConferenceName: "Field Service USA (Demo Data)",
		Speakers:       demoSpeakers(),
		Companies:      demoCompanies(),
		ScrapedAt:      time.Now(),
	}, nil
}

func demoSpeakers() []model.Speaker {
	return []model.Speaker{
		{Name: "Haroon Abbu", Title: "SVP, Digital, Data & Analytics", Company: "Bell + Howell"},
		{Name: "Adam Gloss", Title: "SVP, Service", Company: "McKinstry"},
		{Name: "Joseph Lang", Title: "VP Service Technology", Company: "Comfort Systems USA"},
		{Name: "Patrick Van Wert", Title: "VP Aftermarket", Company: "Tennant Co."},
		{Name: "Thomas Shanks", Title: "Director of Operations", Company: "TK Elevator"},
		{Name: "Alban Cambournac", Title: "VP Consulting & Digital Services", Company: "Schneider Electric"},
		{Name: "Chris Westlake", Title: "VP Life Sciences Technical Services", Company: "Genpact"},
		{Name: "Jessica Murillo", Title: "COO, Technology Lifecycle Services", Company: "IBM"},
		{Name: "Michelle Vaccarello", Title: "VP North America Services", Company: "Diebold Nixdorf"},
		{Name: "Nick Cribb", Title: "President & CEO", Company: "Sam Service Inc"},
	}
}

func demoCompanies() []model.Company {
	return []model.Company{
		{Name: "Bell + Howell", Industry: "Industrial Automation", Source: model.SourceSpeaker, Speakers: []string{"Haroon Abbu"}},
		{Name: "McKinstry", Industry: "Building Services", Source: model.SourceSpeaker, Speakers: []string{"Adam Gloss"}},
		{Name: "Comfort Systems USA", Industry: "HVAC", Source: model.SourceSpeaker, Speakers: []string{"Joseph Lang"}},
		{Name: "Tennant Co.", Industry: "Manufacturing", Source: model.SourceSpeaker, Speakers: []string{"Patrick Van Wert"}},
		{Name: "TK Elevator", Industry: "Elevator/Escalator", Source: model.SourceSpeaker, Speakers: []string{"Thomas Shanks"}},
		{Name: "Schneider Electric", Industry: "Energy/Automation", Source: model.SourceSpeaker, Speakers: []string{"Alban Cambournac"}},
		{Name: "Genpact", Industry: "Professional Services", Source: model.SourceSpeaker, Speakers: []string{"Chris Westlake"}},
		{Name: "IBM", Industry: "Technology", Source: model.SourceSpeaker, Speakers: []string{"Jessica Murillo"}},
		{Name: "Diebold Nixdorf", Industry: "Financial Services Tech", Source: model.SourceSpeaker, Speakers: []string{"Michelle Vaccarello"}},
		{Name: "Sam Service Inc", Industry: "Field Service", Source: model.SourceSpeaker, Speakers: []string{"Nick Cribb"}},
	}
}

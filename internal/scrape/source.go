// Package scrape defines the boundary to the scraper collaborator. The
// coordination core only needs the ConferenceData shape; how a source
// obtains it (live crawl, fixture, cached file) is its own business.
package scrape

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/rotisserie/eris"

	"github.com/anjy7/ascendo/internal/model"
)

// Source produces the scrape result a pipeline run starts from.
type Source interface {
	Fetch(ctx context.Context, url string) (*model.ConferenceData, error)
}

// FileSource reads a previously captured scrape result from a JSON file,
// useful for replaying runs without hitting the conference site.
type FileSource struct {
	Path string
}

// Fetch loads the capture. The url argument overrides the stored URL so
// replays attribute to the run's target.
func (f FileSource) Fetch(_ context.Context, url string) (*model.ConferenceData, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, eris.Wrapf(err, "scrape: read capture %s", f.Path)
	}

	var conference model.ConferenceData
	if err := json.Unmarshal(data, &conference); err != nil {
		return nil, eris.Wrap(err, "scrape: parse capture")
	}
	if url != "" {
		conference.URL = url
	}
	if conference.ScrapedAt.IsZero() {
		conference.ScrapedAt = time.Now()
	}
	return &conference, nil
}

// EmptySource returns no data for any URL. It stands in for a live scraper
// in builds that have none wired, exercising the pipeline's no-data path.
type EmptySource struct{}

// Fetch always reports an empty scrape.
func (EmptySource) Fetch(_ context.Context, url string) (*model.ConferenceData, error) {
	return &model.ConferenceData{URL: url, ScrapedAt: time.Now()}, nil
}

package scrape

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anjy7/ascendo/internal/model"
)

func TestFileSource(t *testing.T) {
	capture := model.ConferenceData{
		URL:            "https://original.example.com",
		ConferenceName: "Field Service USA",
		Speakers:       []model.Speaker{{Name: "Jane Doe", Company: "Acme Industrial"}},
		Companies:      []model.Company{{Name: "Acme Industrial", Industry: "Manufacturing"}},
		ScrapedAt:      time.Now().UTC().Truncate(time.Second),
	}
	data, err := json.Marshal(capture)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "capture.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	got, err := FileSource{Path: path}.Fetch(context.Background(), "https://replay.example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://replay.example.com", got.URL, "replay attributes to the run's target URL")
	assert.Equal(t, "Field Service USA", got.ConferenceName)
	require.Len(t, got.Companies, 1)
	assert.Equal(t, "Acme Industrial", got.Companies[0].Name)
}

func TestFileSource_Errors(t *testing.T) {
	_, err := FileSource{Path: "/nonexistent/capture.json"}.Fetch(context.Background(), "")
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	_, err = FileSource{Path: path}.Fetch(context.Background(), "")
	require.Error(t, err)
}

func TestEmptySource(t *testing.T) {
	got, err := EmptySource{}.Fetch(context.Background(), "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", got.URL)
	assert.Empty(t, got.Companies)
	assert.False(t, got.ScrapedAt.IsZero())
}

func TestDemoSource(t *testing.T) {
	got, err := DemoSource{}.Fetch(context.Background(), "https://example.com/demo")
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/demo", got.URL)
	assert.Len(t, got.Speakers, 10)
	assert.Len(t, got.Companies, 10)

	// Every speaker's affiliation has a company record.
	byName := make(map[string]bool)
	for _, c := range got.Companies {
		byName[c.Name] = true
		assert.Equal(t, model.SourceSpeaker, c.Source)
	}
	for _, sp := range got.Speakers {
		assert.True(t, byName[sp.Company], sp.Company)
	}
}

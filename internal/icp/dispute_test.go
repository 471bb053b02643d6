package icp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveSuggestion(t *testing.T) {
	tests := []struct {
		name         string
		original     int
		suggested    *int
		maxDelta     int
		wantFinal    int
		wantAccepted bool
	}{
		{"nil suggestion keeps original", 40, nil, 20, 40, false},
		{"within delta accepted", 40, intp(55), 20, 55, true},
		{"at delta boundary accepted", 40, intp(60), 20, 60, true},
		{"beyond delta rejected", 40, intp(61), 20, 40, false},
		{"downward within delta", 80, intp(65), 20, 65, true},
		{"downward beyond delta", 80, intp(50), 20, 80, false},
		{"equal suggestion is not an acceptance", 40, intp(40), 20, 40, false},
		{"zero delta only allows identical", 40, intp(41), 0, 40, false},
		{"wider configured delta", 40, intp(75), 40, 75, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			final, accepted := ResolveSuggestion(tt.original, tt.suggested, tt.maxDelta)
			assert.Equal(t, tt.wantFinal, final)
			assert.Equal(t, tt.wantAccepted, accepted)
		})
	}
}

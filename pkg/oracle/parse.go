package oracle

import (
	"strings"

	"github.com/rotisserie/eris"
)

// extractJSON finds the JSON object in a model response. Claude is told to
// answer with JSON only but sometimes wraps it in prose, so take the widest
// brace window.
func extractJSON(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < 0 || end <= start {
		return "", eris.Errorf("oracle: no JSON in response: %s", truncate(text, 200))
	}
	return text[start : end+1], nil
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

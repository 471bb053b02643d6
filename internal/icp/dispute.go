package icp

// DefaultMaxDisputeDelta bounds how far a suggested score may move the
// original without oracle arbitration. Configurable; the value is a
// carried-over business rule, not a verified requirement.
const DefaultMaxDisputeDelta = 20

// ResolveSuggestion is the oracle-free dispute resolution rule: accept the
// suggested score only if it differs from the original by at most maxDelta
// points, otherwise keep the original. Returns the final score and whether
// the suggestion was accepted. A nil suggestion keeps the original.
func ResolveSuggestion(original int, suggested *int, maxDelta int) (final int, accepted bool) {
	if suggested == nil {
		return original, false
	}
	if delta := *suggested - original; delta > maxDelta || delta < -maxDelta {
		return original, false
	}
	return *suggested, *suggested != original
}

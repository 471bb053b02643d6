// Package resolve normalizes company names so records from logos, speaker
// bios, and attendee exports match up despite formatting differences.
package resolve

import (
	"regexp"
	"strings"
)

// legalSuffixes lists common legal entity suffixes stripped during
// normalization. Attendee exports tend to carry them, speaker bios don't.
var legalSuffixes = []string{
	" LLC", " L.L.C.",
	" INC", " INC.", " INCORPORATED",
	" CORP", " CORP.", " CORPORATION",
	" LTD", " LTD.", " LIMITED",
	" LP", " L.P.",
	" LLP", " L.L.P.",
	" CO", " CO.",
	" PLC", " P.L.C.",
	" GMBH",
	" SA", " S.A.",
}

var multiSpaceRe = regexp.MustCompile(`\s{2,}`)

// Fold returns the case-insensitive lookup key for a company name. This is
// the key the pipeline state and exports dedupe on.
func Fold(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// SameCompany reports whether two names refer to the same company after
// folding.
func SameCompany(a, b string) bool {
	return Fold(a) == Fold(b)
}

// Normalize standardizes a company name for fuzzy matching across sources:
// uppercase, legal suffix stripped, punctuation removed, spaces collapsed.
func Normalize(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	name = strings.ToUpper(name)

	for _, suffix := range legalSuffixes {
		if strings.HasSuffix(name, suffix) {
			name = strings.TrimSuffix(name, suffix)
			break
		}
	}

	name = strings.NewReplacer(
		",", "",
		".", "",
		"'", "",
		"\"", "",
		"&", "AND",
		"-", " ",
	).Replace(name)

	name = multiSpaceRe.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

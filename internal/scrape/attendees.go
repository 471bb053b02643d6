package scrape

import (
	"bufio"
	"bytes"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"

	"github.com/anjy7/ascendo/internal/model"
	"github.com/anjy7/ascendo/internal/resolve"
)

// LoadAttendeeFile reads an attendee list from a text export (OCR output,
// PDF-to-text dump, or a plain list). Conference attendee exports come from
// all kinds of tooling, so non-UTF-8 files are decoded by charset label and
// UTF-16 byte-order marks are handled.
//
// Line formats accepted, comma- or tab-separated:
//
//	Name, Title, Company
//	Name, Company
//	Company
//
// Single-field lines are treated as bare company names.
func LoadAttendeeFile(path string) ([]model.Attendee, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "scrape: read attendee file %s", path)
	}

	text, err := decodeText(data)
	if err != nil {
		return nil, eris.Wrapf(err, "scrape: decode attendee file %s", path)
	}

	return ParseAttendees(text), nil
}

// ParseAttendees extracts attendee records from list-shaped text.
func ParseAttendees(text string) []model.Attendee {
	var attendees []model.Attendee

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		sep := ","
		if strings.Contains(line, "\t") {
			sep = "\t"
		}
		fields := strings.Split(line, sep)
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		switch len(fields) {
		case 1:
			if fields[0] != "" {
				attendees = append(attendees, model.Attendee{Company: fields[0]})
			}
		case 2:
			attendees = append(attendees, model.Attendee{Name: fields[0], Company: fields[1]})
		default:
			attendees = append(attendees, model.Attendee{
				Name:    fields[0],
				Title:   fields[1],
				Company: strings.Join(fields[2:], " "),
			})
		}
	}
	return attendees
}

// MergeAttendees appends attendees to the conference and creates company
// records for affiliations not seen before. Dedup is on the normalized
// company name so "IBM Corp." merges into an existing "IBM".
func MergeAttendees(conference *model.ConferenceData, attendees []model.Attendee, source model.CompanySource) int {
	known := make(map[string]bool, len(conference.Companies))
	for _, c := range conference.Companies {
		known[resolve.Normalize(c.Name)] = true
	}

	added := 0
	for _, a := range attendees {
		conference.Attendees = append(conference.Attendees, a)
		if a.Company == "" {
			continue
		}
		key := resolve.Normalize(a.Company)
		if known[key] {
			continue
		}
		known[key] = true
		conference.Companies = append(conference.Companies, model.Company{
			Name:   a.Company,
			Source: source,
		})
		added++
	}
	return added
}

// decodeText converts raw file bytes to UTF-8. BOM-tagged UTF-16 is decoded
// directly; anything else that is not valid UTF-8 is retried as
// windows-1252, the usual culprit for spreadsheet exports.
func decodeText(data []byte) (string, error) {
	if bytes.HasPrefix(data, []byte{0xFF, 0xFE}) || bytes.HasPrefix(data, []byte{0xFE, 0xFF}) {
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		out, err := dec.Bytes(data)
		if err != nil {
			return "", eris.Wrap(err, "utf-16 decode")
		}
		return string(out), nil
	}

	if utf8.Valid(data) {
		return string(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})), nil
	}

	enc, err := htmlindex.Get("windows-1252")
	if err != nil {
		return "", eris.Wrap(err, "lookup windows-1252")
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", eris.Wrap(err, "windows-1252 decode")
	}
	return string(out), nil
}

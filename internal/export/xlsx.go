package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/anjy7/ascendo/internal/state"
)

// WriteXLSX writes the same lead rows as WriteCSV plus a second sheet with
// the run summary counts.
func WriteXLSX(st *state.State, outputPath string) error {
	f := xlsx.NewFile()

	leads, err := f.AddSheet("Leads")
	if err != nil {
		return eris.Wrap(err, "export: add leads sheet")
	}

	header := leads.AddRow()
	for _, col := range leadColumns {
		header.AddCell().SetString(col)
	}
	for _, row := range buildRows(st) {
		r := leads.AddRow()
		for _, cell := range row {
			r.AddCell().SetString(cell)
		}
	}

	summary, err := f.AddSheet("Summary")
	if err != nil {
		return eris.Wrap(err, "export: add summary sheet")
	}
	stats := st.Stats()
	for _, kv := range []struct {
		label string
		value int
	}{
		{"Speakers", stats.Speakers},
		{"Attendees", stats.Attendees},
		{"Companies", stats.Companies},
		{"Scored", stats.Results},
		{"Disputed", stats.Disputed},
		{"Errors", stats.Errors},
	} {
		r := summary.AddRow()
		r.AddCell().SetString(kv.label)
		r.AddCell().SetInt(kv.value)
	}
	for _, fc := range fitCounts(stats) {
		r := summary.AddRow()
		r.AddCell().SetString(string(fc.level) + " Fit")
		r.AddCell().SetInt(fc.count)
	}

	if err := f.Save(outputPath); err != nil {
		return eris.Wrap(err, "export: save xlsx")
	}
	return nil
}

package model

import "time"

// CompanySource records where a company record came from.
type CompanySource string

const (
	SourceLogo        CompanySource = "logo"
	SourceSpeaker     CompanySource = "speaker"
	SourceAttendee    CompanySource = "attendee"
	SourceOCRAttendee CompanySource = "ocr_attendee"
	SourcePDFAttendee CompanySource = "pdf_attendee"
)

// Speaker is a conference speaker.
type Speaker struct {
	Name         string `json:"name"`
	Title        string `json:"title,omitempty"`
	Company      string `json:"company,omitempty"`
	Bio          string `json:"bio,omitempty"`
	SessionTitle string `json:"session_title,omitempty"`
	LinkedInURL  string `json:"linkedin_url,omitempty"`
}

// Attendee is a conference attendee.
type Attendee struct {
	Name    string `json:"name"`
	Title   string `json:"title,omitempty"`
	Company string `json:"company,omitempty"`
}

// Company is an organization extracted from conference data. Name is the
// unique key, matched case-insensitively.
type Company struct {
	Name         string        `json:"name"`
	Industry     string        `json:"industry,omitempty"`
	Size         *int          `json:"size,omitempty"` // employee count
	SizeCategory string        `json:"size_category,omitempty"`
	Headquarters string        `json:"headquarters,omitempty"`
	Website      string        `json:"website,omitempty"`
	Description  string        `json:"description,omitempty"`
	Source       CompanySource `json:"source,omitempty"`
	Speakers     []string      `json:"speakers,omitempty"`
	Attendees    []string      `json:"attendees,omitempty"`
}

// ConferenceData is everything a scrape produced for one conference.
type ConferenceData struct {
	URL            string     `json:"url"`
	ConferenceName string     `json:"conference_name,omitempty"`
	Date           string     `json:"date,omitempty"`
	Location       string     `json:"location,omitempty"`
	Speakers       []Speaker  `json:"speakers,omitempty"`
	Attendees      []Attendee `json:"attendees,omitempty"`
	Companies      []Company  `json:"companies,omitempty"`
	ScrapedAt      time.Time  `json:"scraped_at"`
}

// Contact is a person associated with a company, as seen by scoring.
type Contact struct {
	Name  string `json:"name"`
	Title string `json:"title,omitempty"`
}

// CompanyDetails merges a company record with every contact whose affiliation
// matches. It is a pure projection built by the pipeline state; scoring and
// review read it and never write through it.
type CompanyDetails struct {
	Name         string        `json:"name"`
	Industry     string        `json:"industry,omitempty"`
	Size         *int          `json:"size,omitempty"`
	SizeCategory string        `json:"size_category,omitempty"`
	Headquarters string        `json:"headquarters,omitempty"`
	Website      string        `json:"website,omitempty"`
	Description  string        `json:"description,omitempty"`
	Source       CompanySource `json:"source,omitempty"`
	Speakers     []Contact     `json:"speakers,omitempty"`
	Attendees    []Contact     `json:"attendees,omitempty"`
}

// Contacts returns all known people for the company, speakers first.
func (d CompanyDetails) Contacts() []Contact {
	out := make([]Contact, 0, len(d.Speakers)+len(d.Attendees))
	out = append(out, d.Speakers...)
	out = append(out, d.Attendees...)
	return out
}

// Enrichment is additional company data produced by the enricher.
type Enrichment struct {
	Industry              string `json:"industry,omitempty"`
	SizeEstimate          string `json:"size_estimate,omitempty"`
	EmployeeCountEstimate *int   `json:"employee_count_estimate,omitempty"`
	Headquarters          string `json:"headquarters,omitempty"`
	Description           string `json:"description,omitempty"`
	Confidence            string `json:"confidence,omitempty"`
}

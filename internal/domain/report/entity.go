package report

import "strings"

// Person is one roster member as returned by the backend. The optional
// status fields carry the person's currently recorded exception, which
// pre-fills the submission form.
type Person struct {
	ID         string `json:"id"`
	Rank       string `json:"rank"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Department string `json:"department"`
	Status     string `json:"status,omitempty"`
	Details    string `json:"details,omitempty"`
	StartDate  string `json:"start_date,omitempty"`
	EndDate    string `json:"end_date,omitempty"`
}

// DisplayName concatenates rank and name the way reports print them.
func (p Person) DisplayName() string {
	return strings.TrimSpace(strings.Join([]string{p.Rank, p.FirstName, p.LastName}, " "))
}

// StatusEntry is one status line for one person. A non-sentinel status
// requires both dates before it can be reviewed or submitted.
type StatusEntry struct {
	Status    string `json:"status"`
	Details   string `json:"details"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// PersonRow is the in-memory form row for one person. Entries never drops
// below one element: a person with no exception keeps a single sentinel
// entry.
type PersonRow struct {
	PersonnelID string        `json:"personnel_id"`
	DisplayName string        `json:"personnel_name"`
	Entries     []StatusEntry `json:"entries"`
}

// ReviewItem is one flattened, read-only line of the pre-submission
// review, and also the wire shape of a submitted report item.
type ReviewItem struct {
	PersonnelID   string `json:"personnel_id"`
	PersonnelName string `json:"personnel_name"`
	Status        string `json:"status"`
	Details       string `json:"details"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
}

// Submission is the atomic report posted to the backend. ReportID is set
// only when updating a previously submitted report.
type Submission struct {
	ReportID   string       `json:"id,omitempty"`
	Department string       `json:"department"`
	Items      []ReviewItem `json:"items"`
}

// Section is the visible half of the submission pane.
type Section string

const (
	SectionForm   Section = "form"
	SectionReview Section = "review"
)

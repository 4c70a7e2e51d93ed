package directory

import "github.com/rosterhq/roster-console/internal/domain/report"

// PersonnelInput is the editable personnel profile. An empty ID means a
// new record.
type PersonnelInput struct {
	ID         string `json:"id,omitempty"`
	Rank       string `json:"rank"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Department string `json:"department"`
}

// UserInput is the editable console account. Password is only sent when
// set; updates with an empty password keep the existing one.
type UserInput struct {
	ID          string `json:"id,omitempty"`
	Username    string `json:"username"`
	Password    string `json:"password,omitempty"`
	Role        string `json:"role"`
	Department  string `json:"department"`
	DisplayName string `json:"display_name"`
}

// PersonnelDetails is one person's profile together with their recorded
// status history.
type PersonnelDetails struct {
	Person  report.Person       `json:"person"`
	History []report.ReviewItem `json:"history"`
}

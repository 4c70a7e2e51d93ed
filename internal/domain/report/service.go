package report

import "context"

// FormService is the status submission form model: an explicit in-memory
// row list that the local UI reads from and mutates. The rows are the
// source of truth; rendering is a pure projection of them.
type FormService interface {
	// Render rebuilds the rows for a department's roster. Pre-fill comes
	// from the roster's recorded statuses, or from the editing context
	// when one is pending, which consumes it.
	Render(dept string, roster []Person)

	// Rows returns a copy of the current rows in roster order.
	Rows() []PersonRow

	// Section reports which half of the submission pane is visible.
	Section() Section

	// BackToForm returns from the review to the editable form.
	BackToForm()

	// AddEntry appends a blank status entry to a person's row.
	AddEntry(personnelID string) error

	// RemoveEntry deletes one entry; removing the last entry restores the
	// sentinel so the row never disappears.
	RemoveEntry(personnelID string, index int) error

	// UpdateEntry replaces one entry's fields. Setting the sentinel
	// status clears details and dates.
	UpdateEntry(personnelID string, index int, entry StatusEntry) error

	// SetAllSentinel sets every entry to the sentinel and clears all
	// details and dates: the "everyone present" fast path.
	SetAllSentinel()

	// Review validates all rows and returns the flattened non-sentinel
	// items. An empty result is valid and means "all present".
	Review() ([]ReviewItem, error)

	// Submit re-scans the rows, posts the complete roster (sentinel rows
	// included as explicit present records) and returns the pane the UI
	// should navigate to next.
	Submit(ctx context.Context) (SubmitResult, error)

	// Lock marks the form read-only because the department has already
	// submitted; Render lifts the lock on the next load.
	Lock(submittedAt string)
	Locked() (string, bool)
}

// SubmitResult reports a successful submission.
type SubmitResult struct {
	Message string `json:"message"`
	NextTab string `json:"next_tab"`
}

package statusform

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rosterhq/roster-console/internal/domain/identity"
	"github.com/rosterhq/roster-console/internal/domain/report"
	"github.com/rosterhq/roster-console/internal/gateway"
)

// MessageSink is the non-blocking message surface submissions report to.
type MessageSink interface {
	Show(text string, success bool)
}

// StatusFormService owns the submission form's row list. Handlers mutate
// the rows through it and the local UI renders whatever Rows returns; no
// state ever lives only in the rendered output.
type StatusFormService struct {
	mu      sync.Mutex
	variant report.Variant
	caller  gateway.Caller
	ids     identity.Service
	editing *report.EditingHolder
	msgs    MessageSink
	logger  *slog.Logger

	dept       string
	rows       []report.PersonRow
	section    report.Section
	editingID  string
	lockedAt   string
	locked     bool
	submitting bool
}

func NewStatusFormService(
	variant report.Variant,
	caller gateway.Caller,
	ids identity.Service,
	editing *report.EditingHolder,
	msgs MessageSink,
	logger *slog.Logger,
) *StatusFormService {
	return &StatusFormService{
		variant: variant,
		caller:  caller,
		ids:     ids,
		editing: editing,
		msgs:    msgs,
		logger:  logger,
		section: report.SectionForm,
	}
}

// Render rebuilds the row list for one department's roster. A pending
// editing context takes precedence over the roster's recorded statuses
// and is consumed here; its report id rides along until the next submit.
func (s *StatusFormService) Render(dept string, roster []report.Person) {
	editCtx, hasEdit := s.editing.Peek()
	if hasEdit {
		s.editing.Clear()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.dept = dept
	s.section = report.SectionForm
	s.locked = false
	s.lockedAt = ""
	s.editingID = ""
	if hasEdit {
		s.editingID = editCtx.ReportID
	}

	s.rows = make([]report.PersonRow, 0, len(roster))
	for _, p := range roster {
		row := report.PersonRow{
			PersonnelID: p.ID,
			DisplayName: p.DisplayName(),
		}
		if hasEdit {
			for _, item := range editCtx.Items {
				if item.PersonnelID != p.ID || item.Status == s.variant.Sentinel {
					continue
				}
				row.Entries = append(row.Entries, report.StatusEntry{
					Status:    item.Status,
					Details:   item.Details,
					StartDate: item.StartDate,
					EndDate:   item.EndDate,
				})
			}
		} else if p.Status != "" && p.Status != s.variant.Sentinel {
			row.Entries = append(row.Entries, report.StatusEntry{
				Status:    p.Status,
				Details:   p.Details,
				StartDate: p.StartDate,
				EndDate:   p.EndDate,
			})
		}
		if len(row.Entries) == 0 {
			row.Entries = []report.StatusEntry{s.sentinelEntry()}
		}
		s.rows = append(s.rows, row)
	}
}

func (s *StatusFormService) Rows() []report.PersonRow {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]report.PersonRow, len(s.rows))
	for i, row := range s.rows {
		out[i] = row
		out[i].Entries = append([]report.StatusEntry(nil), row.Entries...)
	}
	return out
}

func (s *StatusFormService) Section() report.Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.section
}

func (s *StatusFormService) BackToForm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.section = report.SectionForm
}

func (s *StatusFormService) AddEntry(personnelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.findRow(personnelID)
	if row == nil {
		return report.ErrUnknownPersonnel
	}
	row.Entries = append(row.Entries, s.sentinelEntry())
	return nil
}

func (s *StatusFormService) RemoveEntry(personnelID string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.findRow(personnelID)
	if row == nil {
		return report.ErrUnknownPersonnel
	}
	if index < 0 || index >= len(row.Entries) {
		return report.ErrUnknownEntry
	}
	row.Entries = append(row.Entries[:index], row.Entries[index+1:]...)

	// A person never disappears from the form; an emptied row falls back
	// to the sentinel.
	if len(row.Entries) == 0 {
		row.Entries = []report.StatusEntry{s.sentinelEntry()}
	}
	return nil
}

func (s *StatusFormService) UpdateEntry(personnelID string, index int, entry report.StatusEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.findRow(personnelID)
	if row == nil {
		return report.ErrUnknownPersonnel
	}
	if index < 0 || index >= len(row.Entries) {
		return report.ErrUnknownEntry
	}
	if !s.variant.Allows(entry.Status) {
		return report.ErrUnknownStatus
	}
	if entry.Status == s.variant.Sentinel {
		entry = s.sentinelEntry()
	}
	row.Entries[index] = entry
	return nil
}

func (s *StatusFormService) SetAllSentinel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.rows {
		for j := range s.rows[i].Entries {
			s.rows[i].Entries[j] = s.sentinelEntry()
		}
	}
}

// Review validates every row and flattens the non-sentinel entries. The
// first entry missing either date aborts the whole review so the user is
// told exactly what is required.
func (s *StatusFormService) Review() ([]report.ReviewItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.rows) == 0 {
		return nil, report.ErrEmptyRoster
	}

	items := make([]report.ReviewItem, 0)
	for _, row := range s.rows {
		for _, entry := range row.Entries {
			if entry.Status == s.variant.Sentinel {
				continue
			}
			if entry.StartDate == "" || entry.EndDate == "" {
				return nil, fmt.Errorf("%w (%s)", report.ErrDatesRequired, row.DisplayName)
			}
			items = append(items, report.ReviewItem{
				PersonnelID:   row.PersonnelID,
				PersonnelName: row.DisplayName,
				Status:        entry.Status,
				Details:       entry.Details,
				StartDate:     entry.StartDate,
				EndDate:       entry.EndDate,
			})
		}
	}

	s.section = report.SectionReview
	return items, nil
}

// Submit re-scans the rows rather than reusing the review list: the
// review is a preview, not a transactional lock. Every person appears in
// the outgoing report, sentinel rows as explicit present records.
func (s *StatusFormService) Submit(ctx context.Context) (report.SubmitResult, error) {
	s.mu.Lock()
	if s.locked {
		s.mu.Unlock()
		return report.SubmitResult{}, report.ErrFormLocked
	}
	if s.submitting {
		s.mu.Unlock()
		return report.SubmitResult{}, report.ErrSubmitInProgress
	}
	if len(s.rows) == 0 {
		s.mu.Unlock()
		return report.SubmitResult{}, report.ErrEmptyRoster
	}
	if s.dept == "" {
		s.mu.Unlock()
		return report.SubmitResult{}, report.ErrDepartmentRequired
	}
	s.submitting = true

	sub := report.Submission{
		ReportID:   s.editingID,
		Department: s.dept,
		Items:      s.flattenLocked(),
	}
	s.mu.Unlock()

	// Re-enabled on every outcome so a failed call can be retried.
	defer func() {
		s.mu.Lock()
		s.submitting = false
		s.mu.Unlock()
	}()

	env, err := s.caller.Call(ctx, s.variant.SubmitAction, map[string]any{"report": sub})
	if err != nil {
		s.msgs.Show(err.Error(), false)
		return report.SubmitResult{}, err
	}
	if !env.OK() {
		s.msgs.Show(env.Message, false)
		return report.SubmitResult{}, &gateway.AppError{Action: s.variant.SubmitAction, Message: env.Message}
	}

	s.mu.Lock()
	s.editingID = ""
	s.section = report.SectionForm
	s.mu.Unlock()
	s.editing.Clear()

	isAdmin := false
	if id, ok := s.ids.Current(); ok {
		isAdmin = id.IsAdmin()
	}
	next := s.variant.SubmitTab
	if isAdmin {
		next = s.variant.DashboardTab
	}

	s.msgs.Show(env.Message, true)
	return report.SubmitResult{Message: env.Message, NextTab: next}, nil
}

func (s *StatusFormService) Lock(submittedAt string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locked = true
	s.lockedAt = submittedAt
}

func (s *StatusFormService) Locked() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lockedAt, s.locked
}

// EditingReportID exposes the pending update target, if any.
func (s *StatusFormService) EditingReportID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editingID
}

// flattenLocked builds the complete outgoing item list. Callers hold the
// lock.
func (s *StatusFormService) flattenLocked() []report.ReviewItem {
	items := make([]report.ReviewItem, 0, len(s.rows))
	for _, row := range s.rows {
		exceptional := 0
		for _, entry := range row.Entries {
			if entry.Status == s.variant.Sentinel {
				continue
			}
			exceptional++
			items = append(items, report.ReviewItem{
				PersonnelID:   row.PersonnelID,
				PersonnelName: row.DisplayName,
				Status:        entry.Status,
				Details:       entry.Details,
				StartDate:     entry.StartDate,
				EndDate:       entry.EndDate,
			})
		}
		if exceptional == 0 {
			items = append(items, report.ReviewItem{
				PersonnelID:   row.PersonnelID,
				PersonnelName: row.DisplayName,
				Status:        s.variant.Sentinel,
			})
		}
	}
	return items
}

func (s *StatusFormService) sentinelEntry() report.StatusEntry {
	return report.StatusEntry{Status: s.variant.Sentinel}
}

func (s *StatusFormService) findRow(personnelID string) *report.PersonRow {
	for i := range s.rows {
		if s.rows[i].PersonnelID == personnelID {
			return &s.rows[i]
		}
	}
	return nil
}

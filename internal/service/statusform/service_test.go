package statusform

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosterhq/roster-console/internal/domain/identity"
	"github.com/rosterhq/roster-console/internal/domain/report"
	"github.com/rosterhq/roster-console/internal/gateway"
)

type recordedCall struct {
	Action  string
	Payload map[string]any
}

type fakeCaller struct {
	mu      sync.Mutex
	calls   []recordedCall
	respond func(action string, payload map[string]any) (*gateway.Envelope, error)
}

func (f *fakeCaller) Call(_ context.Context, action string, payload map[string]any) (*gateway.Envelope, error) {
	f.mu.Lock()
	f.calls = append(f.calls, recordedCall{Action: action, Payload: payload})
	f.mu.Unlock()
	if f.respond != nil {
		return f.respond(action, payload)
	}
	return &gateway.Envelope{Status: gateway.StatusSuccess, Message: "ok"}, nil
}

func (f *fakeCaller) recorded() []recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedCall(nil), f.calls...)
}

type fakeIdentity struct {
	id identity.Identity
	ok bool
}

func (f *fakeIdentity) Restore() (identity.Identity, error) {
	if !f.ok {
		return identity.Identity{}, identity.ErrNotLoggedIn
	}
	return f.id, nil
}

func (f *fakeIdentity) Current() (identity.Identity, bool) { return f.id, f.ok }

func (f *fakeIdentity) Login(context.Context, string, string) (identity.Identity, error) {
	return f.id, nil
}

func (f *fakeIdentity) Logout(context.Context) error { return nil }

type fakeMessages struct {
	mu    sync.Mutex
	shown []string
}

func (f *fakeMessages) Show(text string, _ bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shown = append(f.shown, text)
}

func newTestForm(t *testing.T, variant report.Variant, caller *fakeCaller, isAdmin bool) (*StatusFormService, *report.EditingHolder) {
	t.Helper()
	role := identity.RoleMember
	if isAdmin {
		role = identity.RoleAdmin
	}
	ids := &fakeIdentity{id: identity.Identity{Username: "tester", Role: role, Department: "ops"}, ok: true}
	editing := &report.EditingHolder{}
	form := NewStatusFormService(variant, caller, ids, editing, &fakeMessages{}, slog.Default())
	return form, editing
}

func testRoster() []report.Person {
	return []report.Person{
		{ID: "p1", Rank: "SGT", FirstName: "Alice", LastName: "Able", Department: "ops"},
		{ID: "p2", Rank: "CPL", FirstName: "Bob", LastName: "Baker", Department: "ops"},
		{ID: "p3", Rank: "PVT", FirstName: "Cara", LastName: "Cole", Department: "ops"},
	}
}

func TestStatusFormService_Render_SentinelRows(t *testing.T) {
	form, _ := newTestForm(t, report.Weekly(), &fakeCaller{}, false)
	form.Render("ops", testRoster())

	rows := form.Rows()
	require.Len(t, rows, 3)
	for _, row := range rows {
		require.Len(t, row.Entries, 1)
		assert.Equal(t, "none", row.Entries[0].Status)
		assert.Empty(t, row.Entries[0].StartDate)
	}
	assert.Equal(t, report.SectionForm, form.Section())
}

func TestStatusFormService_Render_PrefillsRecordedStatus(t *testing.T) {
	form, _ := newTestForm(t, report.Weekly(), &fakeCaller{}, false)
	roster := testRoster()
	roster[1].Status = "study"
	roster[1].Details = "language course"
	roster[1].StartDate = "2026-09-01"
	roster[1].EndDate = "2026-09-05"
	form.Render("ops", roster)

	rows := form.Rows()
	assert.Equal(t, "study", rows[1].Entries[0].Status)
	assert.Equal(t, "language course", rows[1].Entries[0].Details)
}

func TestStatusFormService_RemoveEntry_LastEntryRestoresSentinel(t *testing.T) {
	form, _ := newTestForm(t, report.Weekly(), &fakeCaller{}, false)
	form.Render("ops", testRoster())

	require.NoError(t, form.UpdateEntry("p1", 0, report.StatusEntry{
		Status: "vacation-leave", StartDate: "2026-09-01", EndDate: "2026-09-07",
	}))
	require.NoError(t, form.RemoveEntry("p1", 0))

	rows := form.Rows()
	require.Len(t, rows[0].Entries, 1)
	assert.Equal(t, "none", rows[0].Entries[0].Status)
}

func TestStatusFormService_AddEntry_UnknownPersonnel(t *testing.T) {
	form, _ := newTestForm(t, report.Weekly(), &fakeCaller{}, false)
	form.Render("ops", testRoster())

	err := form.AddEntry("ghost")
	assert.ErrorIs(t, err, report.ErrUnknownPersonnel)
}

func TestStatusFormService_UpdateEntry_RejectsUnknownStatus(t *testing.T) {
	form, _ := newTestForm(t, report.Weekly(), &fakeCaller{}, false)
	form.Render("ops", testRoster())

	err := form.UpdateEntry("p1", 0, report.StatusEntry{Status: "on-duty"})
	assert.ErrorIs(t, err, report.ErrUnknownStatus)
}

func TestStatusFormService_UpdateEntry_SentinelClearsFields(t *testing.T) {
	form, _ := newTestForm(t, report.Weekly(), &fakeCaller{}, false)
	form.Render("ops", testRoster())

	require.NoError(t, form.UpdateEntry("p1", 0, report.StatusEntry{
		Status: "absent", Details: "unexcused", StartDate: "2026-09-01", EndDate: "2026-09-02",
	}))
	require.NoError(t, form.UpdateEntry("p1", 0, report.StatusEntry{
		Status: "none", Details: "stale", StartDate: "2026-09-01", EndDate: "2026-09-02",
	}))

	entry := form.Rows()[0].Entries[0]
	assert.Equal(t, "none", entry.Status)
	assert.Empty(t, entry.Details)
	assert.Empty(t, entry.StartDate)
	assert.Empty(t, entry.EndDate)
}

func TestStatusFormService_SetAllSentinel(t *testing.T) {
	form, _ := newTestForm(t, report.Daily(), &fakeCaller{}, false)
	form.Render("ops", testRoster())

	require.NoError(t, form.UpdateEntry("p1", 0, report.StatusEntry{
		Status: "study", StartDate: "2026-09-01", EndDate: "2026-09-05",
	}))
	require.NoError(t, form.AddEntry("p2"))
	form.SetAllSentinel()

	for _, row := range form.Rows() {
		for _, entry := range row.Entries {
			assert.Equal(t, "on-duty", entry.Status)
			assert.Empty(t, entry.Details)
			assert.Empty(t, entry.StartDate)
		}
	}
}

func TestStatusFormService_Review_RequiresDates(t *testing.T) {
	form, _ := newTestForm(t, report.Weekly(), &fakeCaller{}, false)
	form.Render("ops", testRoster())

	require.NoError(t, form.UpdateEntry("p2", 0, report.StatusEntry{Status: "personal-leave"}))

	_, err := form.Review()
	require.ErrorIs(t, err, report.ErrDatesRequired)
	assert.Contains(t, err.Error(), "Bob")

	// A failed review never flips the visible section.
	assert.Equal(t, report.SectionForm, form.Section())
}

func TestStatusFormService_Review_FlattensNonSentinel(t *testing.T) {
	form, _ := newTestForm(t, report.Weekly(), &fakeCaller{}, false)
	form.Render("ops", testRoster())

	require.NoError(t, form.UpdateEntry("p1", 0, report.StatusEntry{
		Status: "personal-leave", StartDate: "2026-09-01", EndDate: "2026-09-03",
	}))
	require.NoError(t, form.AddEntry("p1"))
	require.NoError(t, form.UpdateEntry("p1", 1, report.StatusEntry{
		Status: "study", StartDate: "2026-09-04", EndDate: "2026-09-06",
	}))

	items, err := form.Review()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].PersonnelID)
	assert.Equal(t, "personal-leave", items[0].Status)
	assert.Equal(t, "study", items[1].Status)
	assert.Equal(t, report.SectionReview, form.Section())
}

func TestStatusFormService_Review_AllPresentIsValid(t *testing.T) {
	form, _ := newTestForm(t, report.Weekly(), &fakeCaller{}, false)
	form.Render("ops", testRoster())

	items, err := form.Review()
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, report.SectionReview, form.Section())
}

func TestStatusFormService_Submit_IncludesWholeRoster(t *testing.T) {
	caller := &fakeCaller{}
	form, _ := newTestForm(t, report.Daily(), caller, false)
	form.Render("ops", testRoster())

	require.NoError(t, form.UpdateEntry("p2", 0, report.StatusEntry{
		Status: "official-duty", StartDate: "2026-09-01", EndDate: "2026-09-01",
	}))

	result, err := form.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tab-submit-status-daily", result.NextTab)

	calls := caller.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, "submit_daily_status_report", calls[0].Action)

	sub, ok := calls[0].Payload["report"].(report.Submission)
	require.True(t, ok)
	assert.Equal(t, "ops", sub.Department)
	require.Len(t, sub.Items, 3)

	statuses := map[string]string{}
	for _, item := range sub.Items {
		statuses[item.PersonnelID] = item.Status
	}
	assert.Equal(t, "on-duty", statuses["p1"])
	assert.Equal(t, "official-duty", statuses["p2"])
	assert.Equal(t, "on-duty", statuses["p3"])
}

func TestStatusFormService_Submit_OneLeaveRestPresent(t *testing.T) {
	caller := &fakeCaller{}
	form, _ := newTestForm(t, report.Weekly(), caller, false)
	form.Render("ops", []report.Person{
		{ID: "a", FirstName: "Ann", LastName: "Archer", Department: "ops"},
		{ID: "b", FirstName: "Ben", LastName: "Brook", Department: "ops"},
	})

	require.NoError(t, form.UpdateEntry("a", 0, report.StatusEntry{
		Status: "personal-leave", Details: "family", StartDate: "2026-09-01", EndDate: "2026-09-03",
	}))

	items, err := form.Review()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].PersonnelID)

	_, err = form.Submit(context.Background())
	require.NoError(t, err)

	sub := caller.recorded()[0].Payload["report"].(report.Submission)
	require.Len(t, sub.Items, 2)
	assert.Equal(t, "personal-leave", sub.Items[0].Status)
	assert.Equal(t, "none", sub.Items[1].Status)
	assert.Equal(t, "b", sub.Items[1].PersonnelID)
}

func TestStatusFormService_Submit_AdminNavigatesToDashboard(t *testing.T) {
	caller := &fakeCaller{}
	form, _ := newTestForm(t, report.Weekly(), caller, true)
	form.Render("ops", testRoster())

	result, err := form.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tab-dashboard", result.NextTab)
}

func TestStatusFormService_Submit_EditCarriesReportID(t *testing.T) {
	caller := &fakeCaller{}
	form, editing := newTestForm(t, report.Weekly(), caller, false)

	editing.Set(report.EditingContext{
		ReportID: "rep-42",
		Items: []report.ReviewItem{
			{PersonnelID: "p1", Status: "study", StartDate: "2026-09-01", EndDate: "2026-09-05"},
		},
	})
	form.Render("ops", testRoster())

	// The editing context is consumed at render time.
	_, pending := editing.Peek()
	assert.False(t, pending)
	assert.Equal(t, "rep-42", form.EditingReportID())
	assert.Equal(t, "study", form.Rows()[0].Entries[0].Status)

	_, err := form.Submit(context.Background())
	require.NoError(t, err)

	sub := caller.recorded()[0].Payload["report"].(report.Submission)
	assert.Equal(t, "rep-42", sub.ReportID)

	// A successful submit ends the edit; the next one creates a report.
	assert.Empty(t, form.EditingReportID())
}

func TestStatusFormService_Submit_BackendRejection(t *testing.T) {
	caller := &fakeCaller{respond: func(string, map[string]any) (*gateway.Envelope, error) {
		return &gateway.Envelope{Status: gateway.StatusError, Message: "Report already exists"}, nil
	}}
	form, _ := newTestForm(t, report.Weekly(), caller, false)
	form.Render("ops", testRoster())

	_, err := form.Submit(context.Background())
	var appErr *gateway.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Report already exists", appErr.Message)

	// The form stays editable for a retry.
	_, err = form.Submit(context.Background())
	require.Error(t, err)
	calls := caller.recorded()
	assert.Len(t, calls, 2)
}

func TestStatusFormService_Submit_TransportFailureAllowsRetry(t *testing.T) {
	failing := true
	caller := &fakeCaller{respond: func(string, map[string]any) (*gateway.Envelope, error) {
		if failing {
			return nil, gateway.ErrTransport
		}
		return &gateway.Envelope{Status: gateway.StatusSuccess, Message: "ok"}, nil
	}}
	form, _ := newTestForm(t, report.Weekly(), caller, false)
	form.Render("ops", testRoster())

	_, err := form.Submit(context.Background())
	require.True(t, errors.Is(err, gateway.ErrTransport))

	failing = false
	_, err = form.Submit(context.Background())
	require.NoError(t, err)
}

func TestStatusFormService_Submit_LockedForm(t *testing.T) {
	form, _ := newTestForm(t, report.Daily(), &fakeCaller{}, false)
	form.Render("ops", testRoster())
	form.Lock("2026-08-29 06:00")

	_, err := form.Submit(context.Background())
	assert.ErrorIs(t, err, report.ErrFormLocked)

	at, locked := form.Locked()
	assert.True(t, locked)
	assert.Equal(t, "2026-08-29 06:00", at)

	// A fresh render lifts the lock.
	form.Render("ops", testRoster())
	_, locked = form.Locked()
	assert.False(t, locked)
}

func TestStatusFormService_Submit_EmptyRoster(t *testing.T) {
	form, _ := newTestForm(t, report.Weekly(), &fakeCaller{}, false)

	_, err := form.Submit(context.Background())
	assert.ErrorIs(t, err, report.ErrEmptyRoster)
}

func TestStatusFormService_Rows_ReturnsCopies(t *testing.T) {
	form, _ := newTestForm(t, report.Weekly(), &fakeCaller{}, false)
	form.Render("ops", testRoster())

	rows := form.Rows()
	rows[0].Entries[0].Status = "absent"

	assert.Equal(t, "none", form.Rows()[0].Entries[0].Status)
}

func TestStatusFormService_SubmissionWireShape(t *testing.T) {
	sub := report.Submission{
		Department: "ops",
		Items: []report.ReviewItem{
			{PersonnelID: "p1", PersonnelName: "SGT Alice Able", Status: "none"},
		},
	}
	raw, err := json.Marshal(sub)
	require.NoError(t, err)

	// An unset report id stays off the wire entirely.
	assert.NotContains(t, string(raw), `"id"`)
}

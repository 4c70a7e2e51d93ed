package panes

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosterhq/roster-console/internal/domain/report"
	"github.com/rosterhq/roster-console/internal/gateway"
)

type fakeForm struct {
	renderedDept   string
	renderedRoster []report.Person
	lockedAt       string
	locked         bool
}

func (f *fakeForm) Render(dept string, roster []report.Person) {
	f.renderedDept = dept
	f.renderedRoster = roster
}

func (f *fakeForm) Lock(submittedAt string) {
	f.locked = true
	f.lockedAt = submittedAt
}

func successEnvelope(fields map[string]string) *gateway.Envelope {
	data := make(map[string]json.RawMessage, len(fields))
	for k, v := range fields {
		data[k] = json.RawMessage(v)
	}
	return &gateway.Envelope{Status: gateway.StatusSuccess, Data: data}
}

func TestWeeklyRegistry_SubmissionRendererFiltersByDepartment(t *testing.T) {
	view := NewViewStore()
	form := &fakeForm{}
	reg := WeeklyRegistry(RegistryDeps{
		View: view,
		Form: form,
		Dept: func() string { return "ops" },
	})

	entry := reg["pane-submit-status"]
	require.Equal(t, "list_personnel", entry.Action)
	assert.True(t, entry.FetchAll)
	assert.True(t, entry.DeptFilter)

	env := successEnvelope(map[string]string{
		"personnel": `[
			{"id":"p1","first_name":"Alice","last_name":"Able","department":"ops"},
			{"id":"p2","first_name":"Bob","last_name":"Baker","department":"logistics"},
			{"id":"p3","first_name":"Cara","last_name":"Cole","department":"ops"}
		]`,
	})
	require.NoError(t, entry.Render(context.Background(), env))

	assert.Equal(t, "ops", form.renderedDept)
	require.Len(t, form.renderedRoster, 2)
	assert.Equal(t, "p1", form.renderedRoster[0].ID)
	assert.Equal(t, "p3", form.renderedRoster[1].ID)

	// The raw snapshot is kept for the UI as well.
	_, ok := view.Get("pane-submit-status")
	assert.True(t, ok)
}

func TestDailyRegistry_SubmissionStatusLocksForm(t *testing.T) {
	view := NewViewStore()
	form := &fakeForm{}
	reg := DailyRegistry(RegistryDeps{
		View: view,
		Form: form,
		Dept: func() string { return "ops" },
	})

	entry := reg["pane-submit-status-daily"]
	require.Equal(t, "get_personnel_for_daily_report", entry.Action)

	env := successEnvelope(map[string]string{
		"personnel":         `[{"id":"p1","first_name":"Alice","last_name":"Able","department":"ops"}]`,
		"submission_status": `{"submitted":true,"submitted_at":"2026-08-29 06:00"}`,
	})
	require.NoError(t, entry.Render(context.Background(), env))

	assert.True(t, form.locked)
	assert.Equal(t, "2026-08-29 06:00", form.lockedAt)
}

func TestDailyRegistry_UnsubmittedLeavesFormUnlocked(t *testing.T) {
	form := &fakeForm{}
	reg := DailyRegistry(RegistryDeps{
		View: NewViewStore(),
		Form: form,
		Dept: func() string { return "ops" },
	})

	env := successEnvelope(map[string]string{
		"personnel":         `[]`,
		"submission_status": `{"submitted":false}`,
	})
	require.NoError(t, reg["pane-submit-status-daily"].Render(context.Background(), env))

	assert.False(t, form.locked)
}

func TestViewStore_PutGetReset(t *testing.T) {
	view := NewViewStore()

	_, ok := view.Get("pane-dashboard")
	assert.False(t, ok)

	view.Put("pane-dashboard", successEnvelope(map[string]string{"summary": `{"total":12}`}))
	got, ok := view.Get("pane-dashboard")
	require.True(t, ok)
	assert.Contains(t, got.Fields, "summary")
	assert.False(t, got.UpdatedAt.IsZero())

	view.Reset()
	_, ok = view.Get("pane-dashboard")
	assert.False(t, ok)
}

func TestRegistryFor_VariantSelection(t *testing.T) {
	deps := RegistryDeps{View: NewViewStore(), Form: &fakeForm{}, Dept: func() string { return "" }}

	weekly := RegistryFor(report.Weekly(), deps)
	_, ok := weekly["pane-submit-status"]
	assert.True(t, ok)

	daily := RegistryFor(report.Daily(), deps)
	_, ok = daily["pane-submit-status-daily"]
	assert.True(t, ok)
	_, ok = daily["pane-submit-status"]
	assert.False(t, ok)
}

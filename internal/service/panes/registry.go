package panes

import (
	"context"

	"github.com/rosterhq/roster-console/internal/domain/panes"
	"github.com/rosterhq/roster-console/internal/domain/report"
	"github.com/rosterhq/roster-console/internal/gateway"
)

// FormSink is what the submission-pane renderers need from the form
// service.
type FormSink interface {
	Render(dept string, roster []report.Person)
	Lock(submittedAt string)
}

// RegistryDeps carries everything the renderer closures bind to. Dept
// resolves the effective department at render time, after any admin
// selection.
type RegistryDeps struct {
	View *ViewStore
	Form FormSink
	Dept func() string
}

// storeOnly snapshots the response for the UI without further decoding.
func storeOnly(view *ViewStore, paneID string) panes.Renderer {
	return func(_ context.Context, env *gateway.Envelope) error {
		view.Put(paneID, env)
		return nil
	}
}

// submissionRenderer feeds the roster into the form. The backend already
// scopes members to their own department; an admin's roster is filtered
// down to the department selected in the console.
func submissionRenderer(d RegistryDeps, paneID string) panes.Renderer {
	return func(_ context.Context, env *gateway.Envelope) error {
		d.View.Put(paneID, env)

		var roster []report.Person
		if err := env.Field("personnel", &roster); err != nil {
			return err
		}

		dept := d.Dept()
		if dept != "" {
			filtered := roster[:0]
			for _, p := range roster {
				if p.Department == dept {
					filtered = append(filtered, p)
				}
			}
			roster = filtered
		}
		d.Form.Render(dept, roster)

		if env.HasField("submission_status") {
			var status struct {
				Submitted   bool   `json:"submitted"`
				SubmittedAt string `json:"submitted_at"`
			}
			if err := env.Field("submission_status", &status); err != nil {
				return err
			}
			if status.Submitted {
				d.Form.Lock(status.SubmittedAt)
			}
		}
		return nil
	}
}

// WeeklyRegistry lays out the weekly reporting page: dashboard and
// active-status summaries, the submission form, the history and report
// browsers, and the admin directory panes.
func WeeklyRegistry(d RegistryDeps) panes.Registry {
	return panes.Registry{
		"pane-dashboard": {
			Action: "get_dashboard_summary",
			Render: storeOnly(d.View, "pane-dashboard"),
		},
		"pane-active-statuses": {
			Action: "get_active_statuses",
			Render: storeOnly(d.View, "pane-active-statuses"),
		},
		"pane-submit-status": {
			Action:     "list_personnel",
			Render:     submissionRenderer(d, "pane-submit-status"),
			FetchAll:   true,
			DeptFilter: true,
		},
		"pane-history": {
			Action:     "get_submission_history",
			Render:     storeOnly(d.View, "pane-history"),
			HasPage:    true,
			DeptFilter: true,
		},
		"pane-reports": {
			Action:  "get_status_reports",
			Render:  storeOnly(d.View, "pane-reports"),
			HasPage: true,
		},
		"pane-archive": {
			Action:  "get_archived_reports",
			Render:  storeOnly(d.View, "pane-archive"),
			HasPage: true,
		},
		"pane-personnel": {
			Action:    "list_personnel",
			Render:    storeOnly(d.View, "pane-personnel"),
			HasSearch: true,
			HasPage:   true,
		},
		"pane-users": {
			Action:    "list_users",
			Render:    storeOnly(d.View, "pane-users"),
			HasSearch: true,
			HasPage:   true,
		},
	}
}

// DailyRegistry lays out the daily muster page. The submission pane's
// action also reports whether the department already submitted today,
// which locks the form.
func DailyRegistry(d RegistryDeps) panes.Registry {
	return panes.Registry{
		"pane-dashboard-daily": {
			Action: "get_daily_dashboard_summary",
			Render: storeOnly(d.View, "pane-dashboard-daily"),
		},
		"pane-persistent-statuses": {
			Action: "get_all_persistent_statuses",
			Render: storeOnly(d.View, "pane-persistent-statuses"),
		},
		"pane-submit-status-daily": {
			Action:     "get_personnel_for_daily_report",
			Render:     submissionRenderer(d, "pane-submit-status-daily"),
			DeptFilter: true,
		},
		"pane-history-daily": {
			Action:     "get_daily_submission_history",
			Render:     storeOnly(d.View, "pane-history-daily"),
			HasPage:    true,
			DeptFilter: true,
		},
		"pane-reports-daily": {
			Action:  "get_daily_reports",
			Render:  storeOnly(d.View, "pane-reports-daily"),
			HasPage: true,
		},
	}
}

// RegistryFor resolves the registry matching a configured variant.
func RegistryFor(v report.Variant, d RegistryDeps) panes.Registry {
	if v.Name == "daily" {
		return DailyRegistry(d)
	}
	return WeeklyRegistry(d)
}

package panes

import "context"

// Controller is the tab/pane activation state machine. Exactly one tab is
// active and exactly its pane is visible after every activation.
type Controller interface {
	// ActivateTab selects a tab. Re-activating the active tab leaves
	// visibility alone and issues a fresh load (manual refresh). Unknown
	// identifiers are logged no-ops.
	ActivateTab(ctx context.Context, tabID string)

	// LoadPane issues one backend call for the pane and dispatches the
	// response to its renderer. Unknown identifiers are logged no-ops.
	LoadPane(ctx context.Context, paneID string)

	// ActiveTab reports the currently active tab, if any.
	ActiveTab() string

	// VisiblePane reports the pane paired with the active tab.
	VisiblePane() string

	// SetSearch updates a pane's search term, resets its page to 1 and
	// reloads it.
	SetSearch(ctx context.Context, paneID, term string)

	// SetPage moves a pane to the given page and reloads it.
	SetPage(ctx context.Context, paneID string, page int)

	// SetDepartment records the admin-selected department and reloads the
	// submission pane so the form re-renders for the new roster.
	SetDepartment(ctx context.Context, dept string)

	// Department returns the department submissions are filed for: the
	// admin-selected one, or the identity's own.
	Department() string

	// BeginEdit fetches a previously submitted report and re-opens the
	// submission pane pre-filled with its items.
	BeginEdit(ctx context.Context, reportID string) error
}

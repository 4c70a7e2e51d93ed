package panes

import (
	"context"

	"github.com/rosterhq/roster-console/internal/gateway"
)

const (
	// Tab and pane identifiers pair 1:1 through these prefixes: the tab
	// "tab-history" controls the pane "pane-history".
	TabPrefix  = "tab-"
	PanePrefix = "pane-"
)

// PaneFor maps a tab identifier to its pane identifier. An identifier
// without the tab prefix maps to the empty string.
func PaneFor(tabID string) string {
	if len(tabID) <= len(TabPrefix) || tabID[:len(TabPrefix)] != TabPrefix {
		return ""
	}
	return PanePrefix + tabID[len(TabPrefix):]
}

// TabFor is the inverse of PaneFor.
func TabFor(paneID string) string {
	if len(paneID) <= len(PanePrefix) || paneID[:len(PanePrefix)] != PanePrefix {
		return ""
	}
	return TabPrefix + paneID[len(PanePrefix):]
}

// Renderer projects a successful backend envelope into view state. It runs
// only when the response still belongs to the latest load for its pane.
type Renderer func(ctx context.Context, env *gateway.Envelope) error

// Entry describes how one pane loads its data. Entries are defined at
// startup and never mutated.
type Entry struct {
	// Action is the backend action name issued on every load.
	Action string

	// Render receives the successful response.
	Render Renderer

	// FetchAll asks the backend for the unpaginated data set.
	FetchAll bool

	// HasSearch includes the pane's current search term in the payload.
	HasSearch bool

	// HasPage includes the pane's current page number in the payload.
	HasPage bool

	// DeptFilter includes the admin-selected department in the payload
	// when the current identity is an admin.
	DeptFilter bool
}

// Registry maps pane identifiers to their load configuration.
type Registry map[string]Entry

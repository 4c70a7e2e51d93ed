package panes

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rosterhq/roster-console/internal/domain/identity"
	"github.com/rosterhq/roster-console/internal/domain/panes"
	"github.com/rosterhq/roster-console/internal/domain/report"
	"github.com/rosterhq/roster-console/internal/gateway"
)

// MessageSink is the non-blocking message surface load failures go to.
type MessageSink interface {
	Show(text string, success bool)
}

// ControllerService drives tab activation and pane loading. State
// transitions happen under one mutex, the Go rendition of the page's
// single event loop; backend calls run outside it so the UI stays
// responsive while a load is pending.
type ControllerService struct {
	mu       sync.Mutex
	registry panes.Registry
	caller   gateway.Caller
	ids      identity.Service
	editing  *report.EditingHolder
	variant  report.Variant
	msgs     MessageSink
	logger   *slog.Logger

	activeTab string
	adminDept string
	searches  map[string]string
	pages     map[string]int

	// tokens implements latest-request-wins: a response renders only
	// while its token is still the newest issued for that pane.
	tokens map[string]uuid.UUID
}

func NewControllerService(
	caller gateway.Caller,
	ids identity.Service,
	editing *report.EditingHolder,
	variant report.Variant,
	msgs MessageSink,
	logger *slog.Logger,
) *ControllerService {
	return &ControllerService{
		caller:   caller,
		ids:      ids,
		editing:  editing,
		variant:  variant,
		msgs:     msgs,
		logger:   logger,
		searches: make(map[string]string),
		pages:    make(map[string]int),
		tokens:   make(map[string]uuid.UUID),
	}
}

// SetRegistry installs the pane registry. Renderers close over services
// built after the controller, so the registry arrives in a second step
// during wiring; it is never mutated afterwards.
func (c *ControllerService) SetRegistry(registry panes.Registry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.registry = registry
}

func (c *ControllerService) ActivateTab(ctx context.Context, tabID string) {
	paneID := panes.PaneFor(tabID)

	c.mu.Lock()
	if _, ok := c.registry[paneID]; !ok {
		c.mu.Unlock()
		c.logger.Debug("ignoring unknown tab", slog.String("tab", tabID))
		return
	}

	// Re-clicking the active tab is a manual refresh: visibility and
	// pagination stay put, only the data reloads.
	if c.activeTab == tabID {
		c.mu.Unlock()
		c.LoadPane(ctx, paneID)
		return
	}

	leavingPane := panes.PaneFor(c.activeTab)
	c.activeTab = tabID
	c.pages[paneID] = 1
	c.mu.Unlock()

	// Navigating away from the submission pane abandons any pending
	// edit; a later visit starts a fresh report.
	if leavingPane == panes.PaneFor(c.variant.SubmitTab) {
		c.editing.Clear()
	}

	c.LoadPane(ctx, paneID)
}

func (c *ControllerService) ActiveTab() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeTab
}

func (c *ControllerService) VisiblePane() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return panes.PaneFor(c.activeTab)
}

func (c *ControllerService) LoadPane(ctx context.Context, paneID string) {
	c.mu.Lock()
	entry, ok := c.registry[paneID]
	if !ok {
		c.mu.Unlock()
		c.logger.Debug("ignoring unknown pane", slog.String("pane", paneID))
		return
	}

	token := uuid.New()
	c.tokens[paneID] = token
	payload := c.buildPayloadLocked(paneID, entry)
	c.mu.Unlock()

	env, err := c.caller.Call(ctx, entry.Action, payload)
	if err != nil {
		// The previously rendered pane stays as it was.
		c.msgs.Show(err.Error(), false)
		return
	}

	c.mu.Lock()
	latest := c.tokens[paneID] == token
	c.mu.Unlock()
	if !latest {
		c.logger.Debug("discarding superseded pane response",
			slog.String("pane", paneID), slog.String("action", entry.Action))
		return
	}

	if !env.OK() {
		if env.Message != "" {
			c.msgs.Show(env.Message, false)
		}
		return
	}

	if entry.Render == nil {
		return
	}
	if err := entry.Render(ctx, env); err != nil {
		c.logger.Warn("pane render failed",
			slog.String("pane", paneID), slog.Any("error", err))
	}
}

func (c *ControllerService) SetSearch(ctx context.Context, paneID, term string) {
	c.mu.Lock()
	if _, ok := c.registry[paneID]; !ok {
		c.mu.Unlock()
		return
	}
	c.searches[paneID] = term
	c.pages[paneID] = 1
	c.mu.Unlock()
	c.LoadPane(ctx, paneID)
}

func (c *ControllerService) SetPage(ctx context.Context, paneID string, page int) {
	if page < 1 {
		page = 1
	}
	c.mu.Lock()
	if _, ok := c.registry[paneID]; !ok {
		c.mu.Unlock()
		return
	}
	c.pages[paneID] = page
	c.mu.Unlock()
	c.LoadPane(ctx, paneID)
}

func (c *ControllerService) SetDepartment(ctx context.Context, dept string) {
	c.mu.Lock()
	c.adminDept = dept
	c.mu.Unlock()

	// Re-rendering for the new department discards unsaved row edits for
	// the previous one. Accepted contract; see the submission form docs.
	c.LoadPane(ctx, panes.PaneFor(c.variant.SubmitTab))
}

func (c *ControllerService) Department() string {
	c.mu.Lock()
	adminDept := c.adminDept
	c.mu.Unlock()

	id, ok := c.ids.Current()
	if !ok {
		return ""
	}
	if id.IsAdmin() && adminDept != "" {
		return adminDept
	}
	return id.Department
}

// BeginEdit fetches a submitted report and routes the user to the
// submission pane with its items staged as the pre-fill source.
func (c *ControllerService) BeginEdit(ctx context.Context, reportID string) error {
	env, err := c.caller.Call(ctx, c.variant.EditAction, map[string]any{"id": reportID})
	if err != nil {
		c.msgs.Show(err.Error(), false)
		return err
	}
	if !env.OK() || !env.HasField("report") {
		msg := env.Message
		if msg == "" {
			msg = "Could not fetch the report for editing"
		}
		c.msgs.Show(msg, false)
		return &gateway.AppError{Action: c.variant.EditAction, Message: msg}
	}

	var editCtx report.EditingContext
	if err := env.Field("report", &editCtx); err != nil {
		return err
	}
	c.editing.Set(editCtx)

	c.ActivateTab(ctx, c.variant.SubmitTab)
	return nil
}

// buildPayloadLocked assembles the load payload from the entry's flags
// and the pane's pagination/search state. Callers hold the lock.
func (c *ControllerService) buildPayloadLocked(paneID string, entry panes.Entry) map[string]any {
	payload := map[string]any{}
	if entry.FetchAll {
		payload["fetchAll"] = true
	}
	if entry.HasSearch {
		payload["searchTerm"] = c.searches[paneID]
	}
	if entry.HasPage {
		page := c.pages[paneID]
		if page < 1 {
			page = 1
		}
		payload["page"] = page
	}
	if entry.DeptFilter {
		if id, ok := c.ids.Current(); ok && id.IsAdmin() && c.adminDept != "" {
			payload["department"] = c.adminDept
		}
	}
	return payload
}

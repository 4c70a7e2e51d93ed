package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rosterhq/roster-console/internal/domain/identity"
	domainpanes "github.com/rosterhq/roster-console/internal/domain/panes"
	"github.com/rosterhq/roster-console/internal/domain/report"
	"github.com/rosterhq/roster-console/internal/handler/http/response"
	"github.com/rosterhq/roster-console/internal/pkg/messages"
	"github.com/rosterhq/roster-console/internal/service/panes"
)

type ConsoleHandler interface {
	ActivateTab(w http.ResponseWriter, r *http.Request)
	State(w http.ResponseWriter, r *http.Request)
	PaneView(w http.ResponseWriter, r *http.Request)
	SetSearch(w http.ResponseWriter, r *http.Request)
	SetPage(w http.ResponseWriter, r *http.Request)
	SetDepartment(w http.ResponseWriter, r *http.Request)
	BeginEdit(w http.ResponseWriter, r *http.Request)
}

type ConsoleHandlerImpl struct {
	ctrl domainpanes.Controller
	form report.FormService
	ids  identity.Service
	view *panes.ViewStore
	msgs *messages.Log
}

func NewConsoleHandler(
	ctrl domainpanes.Controller,
	form report.FormService,
	ids identity.Service,
	view *panes.ViewStore,
	msgs *messages.Log,
) ConsoleHandler {
	return &ConsoleHandlerImpl{ctrl: ctrl, form: form, ids: ids, view: view, msgs: msgs}
}

// consoleState is the polling snapshot the UI projects its chrome from:
// which pane is visible, which form section, any lock, and the drained
// message queue.
type consoleState struct {
	ActiveTab   string             `json:"active_tab"`
	VisiblePane string             `json:"visible_pane"`
	Department  string             `json:"department"`
	Section     string             `json:"section"`
	Locked      bool               `json:"locked"`
	LockedAt    string             `json:"locked_at,omitempty"`
	Messages    []messages.Message `json:"messages"`
}

// ActivateTab implements ConsoleHandler.
func (h *ConsoleHandlerImpl) ActivateTab(w http.ResponseWriter, r *http.Request) {
	tabID := chi.URLParam(r, "tabID")

	h.ctrl.ActivateTab(r.Context(), tabID)

	// Unknown tabs are no-ops upstream; the response always reflects the
	// resulting state so the UI can converge on it.
	h.writeState(w)
}

// State implements ConsoleHandler.
func (h *ConsoleHandlerImpl) State(w http.ResponseWriter, r *http.Request) {
	h.writeState(w)
}

// PaneView implements ConsoleHandler.
func (h *ConsoleHandlerImpl) PaneView(w http.ResponseWriter, r *http.Request) {
	paneID := chi.URLParam(r, "paneID")

	view, ok := h.view.Get(paneID)
	if !ok {
		response.NotFound(w, "No data loaded for this pane yet")
		return
	}
	response.Success(w, view)
}

// SetSearch implements ConsoleHandler.
func (h *ConsoleHandlerImpl) SetSearch(w http.ResponseWriter, r *http.Request) {
	paneID := chi.URLParam(r, "paneID")

	var req struct {
		Term string `json:"term"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SetSearch decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	h.ctrl.SetSearch(r.Context(), paneID, req.Term)
	h.writeState(w)
}

// SetPage implements ConsoleHandler.
func (h *ConsoleHandlerImpl) SetPage(w http.ResponseWriter, r *http.Request) {
	paneID := chi.URLParam(r, "paneID")

	var req struct {
		Page int `json:"page"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SetPage decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	h.ctrl.SetPage(r.Context(), paneID, req.Page)
	h.writeState(w)
}

// SetDepartment implements ConsoleHandler.
func (h *ConsoleHandlerImpl) SetDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ids.Current()
	if !ok {
		response.HandleError(w, identity.ErrNotLoggedIn)
		return
	}
	if !id.IsAdmin() {
		response.Forbidden(w, "Only administrators can switch departments")
		return
	}

	var req struct {
		Department string `json:"department"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SetDepartment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	h.ctrl.SetDepartment(r.Context(), req.Department)
	h.writeState(w)
}

// BeginEdit implements ConsoleHandler.
func (h *ConsoleHandlerImpl) BeginEdit(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "reportID")

	if err := h.ctrl.BeginEdit(r.Context(), reportID); err != nil {
		slog.Error("BeginEdit service error", "error", err, "report_id", reportID)
		response.HandleError(w, err)
		return
	}
	h.writeState(w)
}

func (h *ConsoleHandlerImpl) writeState(w http.ResponseWriter) {
	lockedAt, locked := h.form.Locked()
	response.Success(w, consoleState{
		ActiveTab:   h.ctrl.ActiveTab(),
		VisiblePane: h.ctrl.VisiblePane(),
		Department:  h.ctrl.Department(),
		Section:     string(h.form.Section()),
		Locked:      locked,
		LockedAt:    lockedAt,
		Messages:    h.msgs.Drain(),
	})
}

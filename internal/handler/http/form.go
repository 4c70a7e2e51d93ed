package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rosterhq/roster-console/internal/domain/panes"
	"github.com/rosterhq/roster-console/internal/domain/report"
	"github.com/rosterhq/roster-console/internal/handler/http/response"
)

type FormHandler interface {
	Rows(w http.ResponseWriter, r *http.Request)
	AddEntry(w http.ResponseWriter, r *http.Request)
	RemoveEntry(w http.ResponseWriter, r *http.Request)
	UpdateEntry(w http.ResponseWriter, r *http.Request)
	SetAllSentinel(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
	BackToForm(w http.ResponseWriter, r *http.Request)
	Submit(w http.ResponseWriter, r *http.Request)
}

type FormHandlerImpl struct {
	form report.FormService
	ctrl panes.Controller
}

func NewFormHandler(form report.FormService, ctrl panes.Controller) FormHandler {
	return &FormHandlerImpl{form: form, ctrl: ctrl}
}

type entryRequest struct {
	Index int                `json:"index"`
	Entry report.StatusEntry `json:"entry"`
}

// Rows implements FormHandler.
func (h *FormHandlerImpl) Rows(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]any{
		"rows":    h.form.Rows(),
		"section": h.form.Section(),
	})
}

// AddEntry implements FormHandler.
func (h *FormHandlerImpl) AddEntry(w http.ResponseWriter, r *http.Request) {
	personnelID := chi.URLParam(r, "personnelID")

	if err := h.form.AddEntry(personnelID); err != nil {
		slog.Error("AddEntry service error", "error", err, "personnel_id", personnelID)
		response.HandleError(w, err)
		return
	}
	response.Success(w, h.form.Rows())
}

// RemoveEntry implements FormHandler.
func (h *FormHandlerImpl) RemoveEntry(w http.ResponseWriter, r *http.Request) {
	personnelID := chi.URLParam(r, "personnelID")

	var req struct {
		Index int `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RemoveEntry decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.form.RemoveEntry(personnelID, req.Index); err != nil {
		slog.Error("RemoveEntry service error", "error", err, "personnel_id", personnelID)
		response.HandleError(w, err)
		return
	}
	response.Success(w, h.form.Rows())
}

// UpdateEntry implements FormHandler.
func (h *FormHandlerImpl) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	personnelID := chi.URLParam(r, "personnelID")

	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateEntry decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.form.UpdateEntry(personnelID, req.Index, req.Entry); err != nil {
		slog.Error("UpdateEntry service error", "error", err, "personnel_id", personnelID)
		response.HandleError(w, err)
		return
	}
	response.Success(w, h.form.Rows())
}

// SetAllSentinel implements FormHandler.
func (h *FormHandlerImpl) SetAllSentinel(w http.ResponseWriter, r *http.Request) {
	h.form.SetAllSentinel()
	response.Success(w, h.form.Rows())
}

// Review implements FormHandler.
func (h *FormHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	items, err := h.form.Review()
	if err != nil {
		slog.Error("Review service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, map[string]any{
		"items":   items,
		"section": h.form.Section(),
	})
}

// BackToForm implements FormHandler.
func (h *FormHandlerImpl) BackToForm(w http.ResponseWriter, r *http.Request) {
	h.form.BackToForm()
	response.Success(w, map[string]any{"section": h.form.Section()})
}

// Submit implements FormHandler.
func (h *FormHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	result, err := h.form.Submit(r.Context())
	if err != nil {
		slog.Error("Submit service error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Successful submissions navigate away from the form; the controller
	// activates the next tab so the follow-up load happens server-side.
	if result.NextTab != "" {
		h.ctrl.ActivateTab(r.Context(), result.NextTab)
	}

	slog.Info("Status report submitted", "next_tab", result.NextTab)
	response.SuccessWithMessage(w, result.Message, result)
}

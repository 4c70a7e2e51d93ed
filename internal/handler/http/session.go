package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rosterhq/roster-console/internal/domain/identity"
	"github.com/rosterhq/roster-console/internal/domain/report"
	"github.com/rosterhq/roster-console/internal/handler/http/response"
	"github.com/rosterhq/roster-console/internal/pkg/uisession"
	"github.com/rosterhq/roster-console/internal/pkg/validator"
)

type SessionHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Current(w http.ResponseWriter, r *http.Request)
}

// SessionLifecycle is what login and logout do besides the backend
// round-trip: arm or disarm the inactivity watchdog and drop cached
// view state.
type SessionLifecycle struct {
	OnLogin  func(ctx identity.Identity)
	OnLogout func()
}

type SessionHandlerImpl struct {
	ids       identity.Service
	ui        uisession.Service
	variant   report.Variant
	lifecycle SessionLifecycle
}

func NewSessionHandler(ids identity.Service, ui uisession.Service, variant report.Variant, lifecycle SessionLifecycle) SessionHandler {
	return &SessionHandlerImpl{ids: ids, ui: ui, variant: variant, lifecycle: lifecycle}
}

// identityView is the identity as exposed to the browser. The backend
// token never appears here.
type identityView struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	Department  string `json:"department"`
	DisplayName string `json:"display_name"`
	StartTab    string `json:"start_tab"`
	Variant     string `json:"variant"`
}

func (h *SessionHandlerImpl) view(id identity.Identity) identityView {
	return identityView{
		ID:          id.ID,
		Username:    id.Username,
		Role:        string(id.Role),
		Department:  id.Department,
		DisplayName: id.DisplayName,
		StartTab:    h.variant.StartTab(id.IsAdmin()),
		Variant:     h.variant.Name,
	}
}

func (h *SessionHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	var errs validator.ValidationErrors
	if validator.IsEmpty(req.Username) {
		errs = append(errs, validator.ValidationError{Field: "username", Message: "Username is required"})
	}
	if validator.IsEmpty(req.Password) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "Password is required"})
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	id, err := h.ids.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	cookie, err := h.ui.IssueCookie(id.Username)
	if err != nil {
		slog.Error("Login cookie error", "error", err)
		response.InternalServerError(w, "Could not establish a session")
		return
	}
	http.SetCookie(w, cookie)

	if h.lifecycle.OnLogin != nil {
		h.lifecycle.OnLogin(id)
	}

	slog.Info("User logged in", "username", id.Username)
	response.SuccessWithMessage(w, "Logged in", h.view(id))
}

func (h *SessionHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	// Logout never fails from the browser's point of view: the remote
	// revocation is best effort and the local record is always cleared.
	if err := h.ids.Logout(r.Context()); err != nil {
		slog.Warn("Logout remote revocation failed", "error", err)
	}

	if h.lifecycle.OnLogout != nil {
		h.lifecycle.OnLogout()
	}

	http.SetCookie(w, h.ui.ExpireCookie())
	response.SuccessWithMessage(w, "Logged out", nil)
}

func (h *SessionHandlerImpl) Current(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ids.Current()
	if !ok {
		response.HandleError(w, identity.ErrNotLoggedIn)
		return
	}
	response.Success(w, h.view(id))
}

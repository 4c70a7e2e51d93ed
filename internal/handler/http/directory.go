package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rosterhq/roster-console/internal/domain/directory"
	"github.com/rosterhq/roster-console/internal/handler/http/response"
)

type DirectoryHandler interface {
	SavePersonnel(w http.ResponseWriter, r *http.Request)
	DeletePersonnel(w http.ResponseWriter, r *http.Request)
	PersonnelDetails(w http.ResponseWriter, r *http.Request)
	SaveUser(w http.ResponseWriter, r *http.Request)
	DeleteUser(w http.ResponseWriter, r *http.Request)
}

type DirectoryHandlerImpl struct {
	dir directory.Service
}

func NewDirectoryHandler(dir directory.Service) DirectoryHandler {
	return &DirectoryHandlerImpl{dir: dir}
}

// SavePersonnel implements DirectoryHandler.
func (h *DirectoryHandlerImpl) SavePersonnel(w http.ResponseWriter, r *http.Request) {
	var req directory.PersonnelInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SavePersonnel decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	msg, err := h.dir.SavePersonnel(r.Context(), req)
	if err != nil {
		slog.Error("SavePersonnel service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, msg, nil)
}

// DeletePersonnel implements DirectoryHandler.
func (h *DirectoryHandlerImpl) DeletePersonnel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "personnelID")

	msg, err := h.dir.DeletePersonnel(r.Context(), id)
	if err != nil {
		slog.Error("DeletePersonnel service error", "error", err, "personnel_id", id)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, msg, nil)
}

// PersonnelDetails implements DirectoryHandler.
func (h *DirectoryHandlerImpl) PersonnelDetails(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "personnelID")

	details, err := h.dir.PersonnelDetails(r.Context(), id)
	if err != nil {
		slog.Error("PersonnelDetails service error", "error", err, "personnel_id", id)
		response.HandleError(w, err)
		return
	}
	response.Success(w, details)
}

// SaveUser implements DirectoryHandler.
func (h *DirectoryHandlerImpl) SaveUser(w http.ResponseWriter, r *http.Request) {
	var req directory.UserInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SaveUser decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	msg, err := h.dir.SaveUser(r.Context(), req)
	if err != nil {
		slog.Error("SaveUser service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, msg, nil)
}

// DeleteUser implements DirectoryHandler.
func (h *DirectoryHandlerImpl) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "userID")

	msg, err := h.dir.DeleteUser(r.Context(), id)
	if err != nil {
		slog.Error("DeleteUser service error", "error", err, "user_id", id)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, msg, nil)
}

package response

import (
	"errors"
	"net/http"

	"github.com/rosterhq/roster-console/internal/domain/directory"
	"github.com/rosterhq/roster-console/internal/domain/identity"
	"github.com/rosterhq/roster-console/internal/domain/panes"
	"github.com/rosterhq/roster-console/internal/domain/report"
	"github.com/rosterhq/roster-console/internal/gateway"
	"github.com/rosterhq/roster-console/internal/pkg/validator"
)

func BadGateway(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadGateway, Response{
		Success: false,
		Error: &ErrorDetail{
			Code:    "BACKEND_UNREACHABLE",
			Message: message,
		},
	})
}

// HandleError maps service errors to HTTP responses. Anything unmapped
// is an internal error and deliberately carries no detail outward.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var appErr *gateway.AppError
	if errors.As(err, &appErr) {
		BadRequest(w, appErr.Error(), nil)
		return
	}

	switch {
	case errors.Is(err, identity.ErrNotLoggedIn),
		errors.Is(err, identity.ErrInvalidSession):
		Unauthorized(w, err.Error())

	case errors.Is(err, directory.ErrAdminOnly):
		Forbidden(w, err.Error())

	case errors.Is(err, panes.ErrUnknownTab),
		errors.Is(err, panes.ErrUnknownPane),
		errors.Is(err, report.ErrUnknownPersonnel),
		errors.Is(err, report.ErrUnknownEntry):
		NotFound(w, err.Error())

	case errors.Is(err, report.ErrDatesRequired):
		ValidationError(w, map[string]string{"dates": err.Error()})

	case errors.Is(err, report.ErrUnknownStatus),
		errors.Is(err, report.ErrEmptyRoster),
		errors.Is(err, report.ErrDepartmentRequired):
		BadRequest(w, err.Error(), nil)

	case errors.Is(err, report.ErrFormLocked),
		errors.Is(err, report.ErrSubmitInProgress):
		Conflict(w, err.Error())

	case errors.Is(err, gateway.ErrTransport):
		BadGateway(w, err.Error())

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

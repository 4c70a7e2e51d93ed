package middleware

import (
	"net/http"

	"github.com/rosterhq/roster-console/internal/domain/directory"
	"github.com/rosterhq/roster-console/internal/domain/identity"
	"github.com/rosterhq/roster-console/internal/handler/http/response"
)

// AdminOnly gates the directory management routes on the restored
// identity's role. The UI cookie only proves the browser is paired with
// this console; the role lives in the identity record.
func AdminOnly(ids identity.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := ids.Current()
			if !ok {
				response.HandleError(w, identity.ErrNotLoggedIn)
				return
			}
			if !id.IsAdmin() {
				response.HandleError(w, directory.ErrAdminOnly)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

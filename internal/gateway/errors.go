package gateway

import "errors"

var (
	ErrTransport = errors.New("Could not reach the reporting backend")
)

// AppError carries an application-level rejection: the backend answered,
// but with status "error" and a message meant for the user.
type AppError struct {
	Action  string
	Message string
}

func (e *AppError) Error() string {
	if e.Message == "" {
		return e.Action + " failed"
	}
	return e.Message
}

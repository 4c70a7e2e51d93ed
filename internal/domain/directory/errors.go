package directory

import "errors"

var (
	ErrAdminOnly = errors.New("Only administrators can manage the directory")
)

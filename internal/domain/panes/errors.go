package panes

import "errors"

var (
	ErrUnknownTab  = errors.New("Unknown tab identifier")
	ErrUnknownPane = errors.New("Unknown pane identifier")
)

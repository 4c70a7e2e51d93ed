package report

import "errors"

var (
	ErrDatesRequired      = errors.New("Start and end dates are required for every selected status")
	ErrUnknownPersonnel   = errors.New("Personnel not found in the current form")
	ErrUnknownEntry       = errors.New("Status entry not found for this personnel")
	ErrUnknownStatus      = errors.New("Status is not in the allowed set for this report")
	ErrEmptyRoster        = errors.New("No personnel to report on")
	ErrSubmitInProgress   = errors.New("A submission is already in progress")
	ErrDepartmentRequired = errors.New("A department must be selected before submitting")
	ErrFormLocked         = errors.New("This department has already submitted its report")
)

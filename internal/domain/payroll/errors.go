package payroll

import "errors"

var (
	ErrNoRole             = errors.New("user has no active role")
	ErrConfigNotFound     = errors.New("no active salary configuration for role")
	ErrConfigExists       = errors.New("active salary configuration already exists for role")
	ErrPayrollNotFound    = errors.New("payroll record not found")
	ErrPayrollExists      = errors.New("payroll record already exists for this period")
	ErrPayrollLocked      = errors.New("payroll record for this period is no longer a draft")
	ErrNotDraft           = errors.New("payroll record is not a draft")
	ErrInvalidTransition  = errors.New("invalid payroll status transition")
	ErrInvalidPeriod      = errors.New("invalid payroll period")
	ErrAdjustmentNotFound = errors.New("payroll adjustment not found")
)

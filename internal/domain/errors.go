package domain

import (
	"errors"
	"fmt"
)

var (
	ErrCampaignNotFound     = errors.New("campaign not found")
	ErrPhaseNotFound        = errors.New("phase not found")
	ErrPhaseIndexOutOfRange = errors.New("phase index out of range")
	ErrIncompletePhase      = errors.New("fill in every field of the existing phases before adding another")
	ErrLastPhase            = errors.New("a campaign must keep at least one phase")
	ErrInvalidPercentInput  = errors.New("percentages accept digits and one decimal separator only")
	ErrUnknownPhaseField    = errors.New("unknown phase field")
)

// UnknownFieldError reports a field name that ParsePhaseField rejected.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown phase field %q", e.Field)
}

func (e *UnknownFieldError) Unwrap() error {
	return ErrUnknownPhaseField
}

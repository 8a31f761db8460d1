package cli

import (
	"fmt"

	"github.com/alexanderramin/mealfund/internal/domain"
	"github.com/spf13/pflag"
)

// percentValue is a flag that only accepts what a percent field accepts:
// digits with at most one '.' or ','.
type percentValue struct {
	value *string
}

var _ pflag.Value = (*percentValue)(nil)

func newPercentValue(p *string) *percentValue {
	return &percentValue{value: p}
}

func (v *percentValue) String() string {
	if v.value == nil {
		return ""
	}
	return *v.value
}

func (v *percentValue) Set(s string) error {
	if !domain.IsValidPercentInput(s) {
		return fmt.Errorf("%q: %w", s, domain.ErrInvalidPercentInput)
	}
	*v.value = s
	return nil
}

func (v *percentValue) Type() string {
	return "percent"
}

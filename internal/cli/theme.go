package cli

import (
	"errors"

	"github.com/alexanderramin/mealfund/internal/cli/formatter"
	"github.com/alexanderramin/mealfund/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// mealfundHuhTheme returns a huh theme built on the formatter palette.
func mealfundHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

var errMilestoneFormat = errors.New("use YYYY-MM-DDTHH:MM")

func validatePercentInput(s string) error {
	if !domain.IsValidPercentInput(s) {
		return domain.ErrInvalidPercentInput
	}
	return nil
}

// validateOptionalMilestone accepts a blank value; completeness is checked
// on save.
func validateOptionalMilestone(s string) error {
	if s == "" {
		return nil
	}
	if _, ok := domain.ParseLocalDateTime(s); !ok {
		return errMilestoneFormat
	}
	return nil
}

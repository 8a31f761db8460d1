package formatter

import (
	"strings"

	"github.com/alexanderramin/mealfund/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatAmount renders a target amount with thousands separators.
func FormatAmount(amount int64) string {
	return humanize.Comma(amount)
}

// FormatLocal renders a stored local date-time as "Mon 02 Jan 2006 15:04".
// Blank values render as a dimmed "--"; unparseable values are shown as
// typed, in red.
func FormatLocal(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return Dim("--")
	}
	l, ok := domain.ParseLocalDateTime(raw)
	if !ok {
		return StyleRed.Render(raw)
	}
	return l.Time().Format("Mon 02 Jan 2006 15:04")
}

// FormatWindow renders a funding window as "start → end".
func FormatWindow(w domain.FundingWindow) string {
	return FormatLocal(w.Start) + Dim(" → ") + FormatLocal(w.End)
}

// FormatShare renders a raw share with a percent sign. Blank shares
// render as "--" so they are not mistaken for zero.
func FormatShare(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return Dim("--")
	}
	return domain.NormalizePercentOnBlur(raw) + "%"
}

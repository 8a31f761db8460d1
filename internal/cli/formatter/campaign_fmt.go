package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/mealfund/internal/domain"
	"github.com/alexanderramin/mealfund/internal/plancheck"
)

// FormatCampaignList renders campaigns inside a bordered box.
func FormatCampaignList(campaigns []*domain.Campaign) string {
	headers := []string{"ID", "TITLE", "STATUS", "TARGET", "FUNDING"}
	rows := make([][]string, 0, len(campaigns))
	for _, c := range campaigns {
		id := c.ShortID
		if strings.TrimSpace(id) == "" {
			id = TruncID(c.ID)
		}
		rows = append(rows, []string{
			id,
			Bold(c.Title),
			StatusPill(c.Status),
			FormatAmount(c.TargetAmount),
			FormatWindow(c.Window()),
		})
	}
	return RenderBox("Campaigns", RenderTableAligned(headers, rows, map[int]bool{3: true}))
}

// FormatCampaignShow renders one campaign with its phase plan and the
// current outcome of the save gate.
func FormatCampaignShow(c *domain.Campaign, phases domain.PhaseSequence, result plancheck.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(c.Title), Dim("["+c.DisplayID()+"]"))
	fmt.Fprintf(&b, "%s %s\n", Dim("Status: "), StatusPill(c.Status))
	fmt.Fprintf(&b, "%s %s\n", Dim("Target: "), FormatAmount(c.TargetAmount))
	fmt.Fprintf(&b, "%s %s\n", Dim("Funding:"), FormatWindow(c.Window()))
	b.WriteString("\n")

	if len(phases) == 0 {
		b.WriteString(Dim("No phases planned yet."))
		return RenderBox("Campaign", b.String())
	}

	b.WriteString(FormatPhaseTable(phases))
	b.WriteString("\n")
	if result.OK {
		b.WriteString(Check() + " " + StyleGreen.Render("Plan is ready to save"))
	} else {
		b.WriteString(FormatViolations(result.Errors))
	}
	return RenderBox("Campaign", strings.TrimRight(b.String(), "\n"))
}

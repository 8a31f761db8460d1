package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/mealfund/internal/domain"
	"github.com/alexanderramin/mealfund/internal/plancheck"
)

// FormatPhaseTable renders the phase plan with a per-phase subtotal and a
// budget line for the grand total.
func FormatPhaseTable(phases domain.PhaseSequence) string {
	headers := []string{"#", "NAME", "LOCATION", "PROCURE", "COOK", "DISTRIBUTE", "INGR", "PREP", "DIST", "SUBTOTAL"}
	rows := make([][]string, 0, len(phases))
	for i, p := range phases {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			orDash(p.Name),
			orDash(p.Location),
			FormatLocal(p.ProcurementAt),
			FormatLocal(p.PreparationAt),
			FormatLocal(p.DistributionAt),
			FormatShare(p.IngredientShare),
			FormatShare(p.PreparationShare),
			FormatShare(p.DistributionShare),
			p.ShareTotal().String() + "%",
		})
	}
	right := map[int]bool{0: true, 6: true, 7: true, 8: true, 9: true}
	return RenderTableAligned(headers, rows, right) + FormatBudgetLine(phases)
}

// FormatBudgetLine shows the grand total against 100%, green when the
// budget check passes.
func FormatBudgetLine(phases domain.PhaseSequence) string {
	total := plancheck.BudgetTotal(phases).String() + "% of 100%"
	if plancheck.CheckBudget(phases) {
		return fmt.Sprintf("%s %s\n", Dim("Budget total:"), StyleGreen.Render(total))
	}
	return fmt.Sprintf("%s %s\n", Dim("Budget total:"), StyleRed.Render(total))
}

// FormatViolations renders one line per message, preserving order.
func FormatViolations(messages []string) string {
	if len(messages) == 0 {
		return ""
	}
	var b strings.Builder
	for _, m := range messages {
		b.WriteString(Cross() + " " + m + "\n")
	}
	return b.String()
}

// FormatWarnings renders grouped timeline warnings, window-level first and
// then by phase.
func FormatWarnings(grouped map[int][]plancheck.Violation) string {
	keys := make([]int, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	var b strings.Builder
	for _, k := range keys {
		for _, v := range grouped[k] {
			b.WriteString(StyleYellow.Render("! ") + v.Message + "\n")
		}
	}
	return b.String()
}

// FormatSyncSummary reports what a save changed.
func FormatSyncSummary(created, updated, deleted int) string {
	return fmt.Sprintf("%s Saved phases %s", Check(),
		Dim(fmt.Sprintf("(%d created, %d updated, %d deleted)", created, updated, deleted)))
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("--")
	}
	return s
}

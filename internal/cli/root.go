package cli

import (
	"time"

	"github.com/alexanderramin/mealfund/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Campaigns service.CampaignService
	Editor    service.PhaseEditService
	Import    service.ImportService

	// IsInteractive gates commands that need a terminal, such as the
	// phase editor.
	IsInteractive bool
	// Now is the clock used for "today" in validation. Nil means time.Now.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "mealfund" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:          "mealfund",
		Short:        "Plan meal campaign phases and budget splits",
		SilenceUsage: true,
	}

	root.AddCommand(
		newCampaignCmd(app),
		newPhaseCmd(app),
		newPlanCmd(app),
	)

	return root
}

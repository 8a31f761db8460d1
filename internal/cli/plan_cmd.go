package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/mealfund/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Check or import campaign plan files (JSON or YAML)",
	}

	cmd.AddCommand(
		newPlanCheckCmd(app),
		newPlanImportCmd(app),
	)

	return cmd
}

func newPlanCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Validate a plan file without importing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			check, err := app.Import.CheckPlan(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPhaseTable(check.Plan.Phases))
			if !check.Result.OK {
				fmt.Fprint(cmd.ErrOrStderr(), formatter.FormatViolations(check.Result.Errors))
				return fmt.Errorf("plan has %d problem(s)", len(check.Result.Errors))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Plan for %s is valid\n", formatter.Check(), check.Plan.Campaign.ShortID)
			return nil
		},
	}
}

func newPlanImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Create a campaign and its phases from a plan file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportPlan(context.Background(), args[0])
			if err != nil {
				return reportBlocked(cmd, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported campaign %s [%s] with %d phase(s)\n",
				result.Campaign.Title, result.Campaign.ShortID, result.PhaseCount)
			return nil
		},
	}
}

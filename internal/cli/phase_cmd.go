package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/mealfund/internal/cli/formatter"
	"github.com/alexanderramin/mealfund/internal/domain"
	"github.com/alexanderramin/mealfund/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newPhaseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phase",
		Short: "Plan a campaign's delivery phases",
	}

	cmd.AddCommand(
		newPhaseListCmd(app),
		newPhaseAddCmd(app),
		newPhaseSetCmd(app),
		newPhaseRemoveCmd(app),
		newPhaseEditCmd(app),
	)

	return cmd
}

func newPhaseListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list CAMPAIGN",
		Short: "List a campaign's phases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveCampaignID(ctx, app, args[0])
			if err != nil {
				return err
			}
			phases, err := app.Editor.Load(ctx, id)
			if err != nil {
				return err
			}
			if len(phases) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No phases planned yet.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPhaseTable(phases))
			return nil
		},
	}
}

// phaseFlag binds one command-line flag to a phase field.
type phaseFlag struct {
	name  string
	field domain.PhaseField
	usage string
}

var phaseFlags = []phaseFlag{
	{"name", domain.FieldName, "Phase name"},
	{"location", domain.FieldLocation, "Where the meals are cooked and handed out"},
	{"procure", domain.FieldProcurementAt, "Ingredient procurement (YYYY-MM-DDTHH:MM)"},
	{"cook", domain.FieldPreparationAt, "Meal preparation (YYYY-MM-DDTHH:MM)"},
	{"distribute", domain.FieldDistributionAt, "Distribution (YYYY-MM-DDTHH:MM)"},
	{"ingredients", domain.FieldIngredientShare, "Budget share for ingredients, in percent"},
	{"cooking", domain.FieldPreparationShare, "Budget share for preparation, in percent"},
	{"delivery", domain.FieldDistributionShare, "Budget share for distribution, in percent"},
}

func newPhaseAddCmd(app *App) *cobra.Command {
	values := make(map[domain.PhaseField]*string, len(phaseFlags))

	cmd := &cobra.Command{
		Use:   "add CAMPAIGN",
		Short: "Append a phase and save the plan",
		Long: `Append a phase and save the plan.

On a campaign without phases the flags fill in the default phase (tomorrow,
08:00 / 10:00 / 14:00). Otherwise a blank phase is appended, which is only
allowed while every existing phase is complete. The whole plan must pass
validation before it is saved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveCampaignID(ctx, app, args[0])
			if err != nil {
				return err
			}
			session, err := app.Editor.Begin(ctx, id)
			if err != nil {
				return err
			}

			fresh := session.Len() == 1 && session.Phases()[0].ID == ""
			if !fresh {
				if err := session.AddPhase(); err != nil {
					return err
				}
			}
			idx := session.Len() - 1

			for _, f := range phaseFlags {
				if !cmd.Flags().Changed(f.name) {
					continue
				}
				if err := session.SetField(idx, f.field, *values[f.field]); err != nil {
					return err
				}
				if err := session.BlurField(idx, f.field); err != nil {
					return err
				}
			}

			result, err := session.Save(ctx, app.now())
			return reportSave(cmd, result, err)
		},
	}

	for _, f := range phaseFlags {
		v := new(string)
		values[f.field] = v
		if f.field.IsShare() {
			cmd.Flags().Var(newPercentValue(v), f.name, f.usage)
		} else {
			cmd.Flags().StringVar(v, f.name, "", f.usage)
		}
	}
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("location")

	return cmd
}

func newPhaseSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set CAMPAIGN PHASE FIELD VALUE",
		Short: "Change one field of a phase and save the plan",
		Long: `Change one field of a phase and save the plan.

FIELD is one of name, location, procurement_at (procure), preparation_at
(cook), distribution_at (distribute), ingredient_share (ingredients),
preparation_share (cooking) or distribution_share (delivery). PHASE is the
1-based position shown by "phase list".`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveCampaignID(ctx, app, args[0])
			if err != nil {
				return err
			}
			idx, err := parsePhaseNumber(args[1])
			if err != nil {
				return err
			}
			field, err := domain.ParsePhaseField(args[2])
			if err != nil {
				return err
			}

			session, err := app.Editor.Begin(ctx, id)
			if err != nil {
				return err
			}
			if err := session.SetField(idx, field, args[3]); err != nil {
				return err
			}
			if err := session.BlurField(idx, field); err != nil {
				return err
			}

			result, err := session.Save(ctx, app.now())
			return reportSave(cmd, result, err)
		},
	}
}

func newPhaseRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove CAMPAIGN PHASE",
		Short: "Remove a phase and save the plan",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveCampaignID(ctx, app, args[0])
			if err != nil {
				return err
			}
			idx, err := parsePhaseNumber(args[1])
			if err != nil {
				return err
			}

			session, err := app.Editor.Begin(ctx, id)
			if err != nil {
				return err
			}
			if err := session.RemovePhase(idx); err != nil {
				return err
			}

			result, err := session.Save(ctx, app.now())
			return reportSave(cmd, result, err)
		},
	}
}

func newPhaseEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit CAMPAIGN",
		Short: "Edit the phase plan interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.IsInteractive {
				return fmt.Errorf("phase edit needs an interactive terminal (use 'phase set' instead)")
			}
			ctx := context.Background()
			id, err := resolveCampaignID(ctx, app, args[0])
			if err != nil {
				return err
			}
			session, err := app.Editor.Begin(ctx, id)
			if err != nil {
				return err
			}

			editor := newPhaseEditor(ctx, session, app.now)
			p := tea.NewProgram(editor, tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running phase editor: %w", err)
			}
			if editor.lastSave != nil {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSyncSummary(
					editor.lastSave.Created, editor.lastSave.Updated, editor.lastSave.Deleted))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No changes saved."))
			}
			return nil
		},
	}
}

func reportSave(cmd *cobra.Command, result *service.SyncResult, err error) error {
	if err != nil {
		return reportBlocked(cmd, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSyncSummary(result.Created, result.Updated, result.Deleted))
	return nil
}

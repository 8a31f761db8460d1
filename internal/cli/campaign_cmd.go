package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/mealfund/internal/cli/formatter"
	"github.com/alexanderramin/mealfund/internal/domain"
	"github.com/alexanderramin/mealfund/internal/plancheck"
	"github.com/alexanderramin/mealfund/internal/service"
	"github.com/spf13/cobra"
)

func newCampaignCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaign",
		Short: "Manage campaigns",
	}

	cmd.AddCommand(
		newCampaignAddCmd(app),
		newCampaignListCmd(app),
		newCampaignShowCmd(app),
		newCampaignWindowCmd(app),
		newCampaignRemoveCmd(app),
	)

	return cmd
}

func newCampaignAddCmd(app *App) *cobra.Command {
	var shortID, title, start, end, status string
	var target int64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new campaign",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := &domain.Campaign{
				ShortID:          strings.ToUpper(shortID),
				Title:            title,
				TargetAmount:     target,
				FundraisingStart: start,
				FundraisingEnd:   end,
				Status:           domain.CampaignStatus(status),
			}
			if err := app.Campaigns.Create(context.Background(), c); err != nil {
				return reportBlocked(cmd, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created campaign %s [%s]\n", c.Title, c.ShortID)
			return nil
		},
	}

	cmd.Flags().StringVar(&shortID, "id", "", "Short ID (3-6 uppercase letters + 2-4 digits, e.g. SOUP01)")
	cmd.Flags().StringVar(&title, "title", "", "Campaign title")
	cmd.Flags().Int64Var(&target, "target", 0, "Target amount to raise")
	cmd.Flags().StringVar(&start, "start", "", "Fundraising start (YYYY-MM-DDTHH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "Fundraising end (YYYY-MM-DDTHH:MM)")
	cmd.Flags().StringVar(&status, "status", "", "Campaign status (draft|fundraising|executing|completed|cancelled)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newCampaignListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List campaigns",
		RunE: func(cmd *cobra.Command, args []string) error {
			campaigns, err := app.Campaigns.List(context.Background())
			if err != nil {
				return err
			}
			if len(campaigns) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No campaigns found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCampaignList(campaigns))
			return nil
		},
	}
}

func newCampaignShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a campaign with its phase plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveCampaignID(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := app.Campaigns.GetByID(ctx, id)
			if err != nil {
				return err
			}
			phases, err := app.Editor.Load(ctx, id)
			if err != nil {
				return err
			}

			var result plancheck.Result
			if len(phases) > 0 {
				result = plancheck.ValidateForSave(c.Window(), phases, app.now())
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCampaignShow(c, phases, result))
			return nil
		},
	}
}

func newCampaignWindowCmd(app *App) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "window ID",
		Short: "Move a campaign's fundraising window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveCampaignID(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := app.Campaigns.GetByID(ctx, id)
			if err != nil {
				return err
			}

			w := c.Window()
			if cmd.Flags().Changed("start") {
				w.Start = start
			}
			if cmd.Flags().Changed("end") {
				w.End = end
			}
			if err := app.Campaigns.UpdateWindow(ctx, id, w); err != nil {
				return reportBlocked(cmd, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated funding window for %s: %s\n", c.DisplayID(), formatter.FormatWindow(w))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Fundraising start (YYYY-MM-DDTHH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "Fundraising end (YYYY-MM-DDTHH:MM)")
	cmd.MarkFlagsOneRequired("start", "end")

	return cmd
}

func newCampaignRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a campaign and its phases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveCampaignID(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := app.Campaigns.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if !force && (c.Status == domain.CampaignFundraising || c.Status == domain.CampaignExecuting) {
				return fmt.Errorf("campaign %s is %s (use --force to remove it anyway)", c.DisplayID(), c.Status)
			}
			if err := app.Campaigns.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed campaign %s\n", c.DisplayID())
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Remove even while fundraising or executing")

	return cmd
}

// reportBlocked prints the messages of a refused save, one per line and in
// validator order, and returns a short error for the exit status. Other
// errors pass through unchanged.
func reportBlocked(cmd *cobra.Command, err error) error {
	var blockedErr *service.SaveBlockedError
	if !errors.As(err, &blockedErr) {
		return err
	}
	fmt.Fprint(cmd.ErrOrStderr(), formatter.FormatViolations(blockedErr.Messages()))
	return fmt.Errorf("save blocked: %d problem(s)", len(blockedErr.Messages()))
}

package cmd

import (
	"context"
	"fmt"

	rendertrip "github.com/outthegc/gc-cli/internal/adapters/render/trip"
	"github.com/outthegc/gc-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newOptionsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options",
		Short: "Generate and review itinerary options",
	}

	cmd.AddCommand(
		newOptionsGenerateCmd(app),
		newOptionsRerunCmd(app),
		newOptionsShowCmd(app),
		newOptionsFeedbackCmd(app),
	)

	return cmd
}

func newOptionsGenerateCmd(app *app) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Ask the backend to generate itinerary options (organiser only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stored, err := app.activate(cmd.Context())
			if err != nil {
				return err
			}
			if !app.sync.IsOrganiser() {
				return fmt.Errorf("only the organiser can generate options")
			}

			err = runTaskSpinner(cmd.Context(), cmd.ErrOrStderr(), "Generating options...", func(ctx context.Context) error {
				return app.trips.GenerateOptions(ctx, stored.TripID, stored.MemberID, days)
			})
			if err != nil {
				return err
			}
			if err := app.sync.Refresh(cmd.Context()); err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "generation requested; run `gc options show` once the plan lands")
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Trip duration in days (optional)")

	return cmd
}

func newOptionsRerunCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rerun",
		Short: "Regenerate options with collected feedback (organiser only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stored, err := app.activate(cmd.Context())
			if err != nil {
				return err
			}
			if !app.sync.IsOrganiser() {
				return fmt.Errorf("only the organiser can rerun options")
			}

			err = runTaskSpinner(cmd.Context(), cmd.ErrOrStderr(), "Rerunning options...", func(ctx context.Context) error {
				return app.trips.RerunOptions(ctx, stored.TripID, stored.MemberID)
			})
			if err != nil {
				return err
			}
			if err := app.sync.Refresh(cmd.Context()); err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "rerun requested")
			return nil
		},
	}
}

func newOptionsShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the latest plan options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := app.activate(cmd.Context()); err != nil {
				return err
			}

			state := app.sync.Snapshot()
			if state == nil || state.LatestPlan == nil {
				return domain.ErrNoPlan
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), rendertrip.RenderPlan(state.LatestPlan))
			return nil
		},
	}
}

func newOptionsFeedbackCmd(app *app) *cobra.Command {
	var optionID, comment string
	var rating int
	var disliked []string

	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Rate a plan option",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stored, err := app.activate(cmd.Context())
			if err != nil {
				return err
			}

			state := app.sync.Snapshot()
			if state == nil || state.LatestPlan == nil {
				return domain.ErrNoPlan
			}
			if _, ok := state.LatestPlan.OptionByID(optionID); !ok {
				return fmt.Errorf("plan option %q not found", optionID)
			}

			err = app.trips.SubmitFeedback(cmd.Context(), stored.TripID, optionID, stored.MemberID, domain.Feedback{
				Rating:              rating,
				DislikedActivityIDs: disliked,
				Comment:             comment,
			})
			if err != nil {
				return err
			}
			if err := app.sync.Refresh(cmd.Context()); err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "feedback submitted")
			return nil
		},
	}

	cmd.Flags().StringVar(&optionID, "option", "", "Plan option id")
	cmd.Flags().IntVar(&rating, "rating", 0, "Rating from 1 to 5")
	cmd.Flags().StringArrayVar(&disliked, "dislike", nil, "Disliked activity id (repeatable)")
	cmd.Flags().StringVar(&comment, "comment", "", "Optional comment")
	_ = cmd.MarkFlagRequired("option")
	_ = cmd.MarkFlagRequired("rating")

	return cmd
}

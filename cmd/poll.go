package cmd

import (
	"fmt"

	rendertrip "github.com/outthegc/gc-cli/internal/adapters/render/trip"
	"github.com/outthegc/gc-cli/internal/application"
	"github.com/outthegc/gc-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newPollCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "poll",
		Short: "Vote in and manage trip polls",
	}

	cmd.AddCommand(
		newPollListCmd(app),
		newPollCreateCmd(app),
		newPollVoteCmd(app),
		newPollCloseCmd(app),
	)

	return cmd
}

func newPollListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List polls with live tallies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stored, err := app.activate(cmd.Context())
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), rendertrip.RenderPolls(app.sync.Snapshot(), stored.MemberID))
			return nil
		},
	}
}

func newPollCreateCmd(app *app) *cobra.Command {
	var question, pollType, sliderTitle, leftLabel, rightLabel string
	var options []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a poll (organiser only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stored, err := app.activate(cmd.Context())
			if err != nil {
				return err
			}
			if !app.sync.IsOrganiser() {
				return fmt.Errorf("only the organiser can create polls")
			}

			poll, err := app.trips.CreatePoll(cmd.Context(), stored.TripID, stored.MemberID, application.CreatePollCommand{
				Question:     question,
				Type:         domain.PollType(pollType),
				OptionLabels: options,
				SliderTitle:  sliderTitle,
				LeftLabel:    leftLabel,
				RightLabel:   rightLabel,
			})
			if err != nil {
				return err
			}
			if err := app.sync.Refresh(cmd.Context()); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "poll created: %s\n", poll.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&question, "question", "", "Poll question")
	cmd.Flags().StringVar(&pollType, "type", string(domain.PollTypeSingle), "Poll type: single, multi, or slider")
	cmd.Flags().StringArrayVar(&options, "option", nil, "Option label (repeatable; single/multi polls)")
	cmd.Flags().StringVar(&sliderTitle, "slider-title", "", "Optional slider title")
	cmd.Flags().StringVar(&leftLabel, "left-label", "", "Slider left label")
	cmd.Flags().StringVar(&rightLabel, "right-label", "", "Slider right label")
	_ = cmd.MarkFlagRequired("question")

	return cmd
}

func newPollVoteCmd(app *app) *cobra.Command {
	var pollID string
	var options []string
	var value float64

	cmd := &cobra.Command{
		Use:   "vote",
		Short: "Vote in a poll",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if _, err := app.activate(ctx); err != nil {
				return err
			}

			state := app.sync.Snapshot()
			if state == nil {
				return domain.ErrNoSnapshot
			}
			poll, ok := state.PollByID(pollID)
			if !ok {
				return fmt.Errorf("%w: %s", domain.ErrPollNotFound, pollID)
			}

			switch poll.Type {
			case domain.PollTypeSingle:
				if len(options) != 1 {
					return fmt.Errorf("single-choice polls take exactly one --option")
				}
				optionID, err := resolveOption(poll, options[0])
				if err != nil {
					return err
				}
				if err := app.voting.SelectSingle(pollID, optionID); err != nil {
					return err
				}
				if err := app.voting.SubmitSingle(ctx, pollID); err != nil {
					return err
				}
			case domain.PollTypeMulti:
				if len(options) == 0 {
					return domain.ErrNothingSelected
				}
				for _, option := range options {
					optionID, err := resolveOption(poll, option)
					if err != nil {
						return err
					}
					if err := app.voting.ToggleMulti(pollID, optionID); err != nil {
						return err
					}
				}
				if err := app.voting.SubmitMulti(ctx, pollID); err != nil {
					return err
				}
			case domain.PollTypeSlider:
				if cmd.Flags().Changed("value") {
					if err := app.voting.SetSliderValue(pollID, value); err != nil {
						return err
					}
				}
				if err := app.voting.SubmitSlider(ctx, pollID); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unsupported poll type %q", poll.Type)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "vote submitted")
			return nil
		},
	}

	cmd.Flags().StringVar(&pollID, "poll", "", "Poll id")
	cmd.Flags().StringArrayVar(&options, "option", nil, "Option id or label (repeatable for multi polls)")
	cmd.Flags().Float64Var(&value, "value", 0, "Slider value (defaults to the range midpoint)")
	_ = cmd.MarkFlagRequired("poll")

	return cmd
}

func newPollCloseCmd(app *app) *cobra.Command {
	var pollID string

	cmd := &cobra.Command{
		Use:   "close",
		Short: "Close a poll (organiser only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stored, err := app.activate(cmd.Context())
			if err != nil {
				return err
			}
			if !app.sync.IsOrganiser() {
				return fmt.Errorf("only the organiser can close polls")
			}

			if err := app.trips.ClosePoll(cmd.Context(), stored.TripID, pollID, stored.MemberID); err != nil {
				return err
			}
			if err := app.sync.Refresh(cmd.Context()); err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "poll closed")
			return nil
		},
	}

	cmd.Flags().StringVar(&pollID, "poll", "", "Poll id")
	_ = cmd.MarkFlagRequired("poll")

	return cmd
}

// resolveOption accepts either an option id or its label.
func resolveOption(poll domain.Poll, idOrLabel string) (string, error) {
	if _, ok := poll.OptionByID(idOrLabel); ok {
		return idOrLabel, nil
	}
	for _, option := range poll.Options {
		if option.Label == idOrLabel {
			return option.ID, nil
		}
	}
	return "", fmt.Errorf("%w: %s", domain.ErrOptionNotFound, idOrLabel)
}

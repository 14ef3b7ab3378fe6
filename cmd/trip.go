package cmd

import (
	"fmt"
	"strings"

	rendertrip "github.com/outthegc/gc-cli/internal/adapters/render/trip"
	"github.com/outthegc/gc-cli/internal/application"
	"github.com/spf13/cobra"
)

func newTripCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trip",
		Short: "Create, join, and manage trips",
	}

	cmd.AddCommand(
		newTripCreateCmd(app),
		newTripJoinCmd(app),
		newTripShowCmd(app),
		newTripBriefCmd(app),
		newTripAttendeesCmd(app),
		newTripLeaveCmd(app),
	)

	return cmd
}

func newTripCreateCmd(app *app) *cobra.Command {
	var name, origin, brief, organiser string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a trip and become its organiser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			created, err := app.trips.Create(cmd.Context(), application.CreateTripCommand{
				Name:          name,
				Origin:        origin,
				Brief:         brief,
				OrganiserName: organiser,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "trip created: %s\n", created.TripID)
			_, _ = fmt.Fprintf(out, "your member id: %s\n", created.MemberID)
			_, _ = fmt.Fprintf(out, "others can join with: gc trip join %s --name <name>\n", created.TripID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Trip name")
	cmd.Flags().StringVar(&origin, "origin", "", "Departure city")
	cmd.Flags().StringVar(&brief, "brief", "", "Optional trip brief")
	cmd.Flags().StringVar(&organiser, "organiser", "", "Your name")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("origin")
	_ = cmd.MarkFlagRequired("organiser")

	return cmd
}

func newTripJoinCmd(app *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "join TRIP_ID",
		Short: "Join an existing trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			joined, err := app.trips.Join(cmd.Context(), application.JoinTripCommand{
				TripID: args[0],
				Name:   name,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "joined trip %s as member %s\n", joined.TripID, joined.MemberID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Your name")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTripShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current trip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stored, err := app.activate(cmd.Context())
			if err != nil {
				return err
			}

			view := rendertrip.RenderDashboard(app.sync.Snapshot(), stored.MemberID, rendertrip.RenderOptions{
				Now:          app.now(),
				LastSyncedAt: app.sync.LastSyncedAt(),
			})
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), view)
			return nil
		},
	}
}

func newTripBriefCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "brief TEXT...",
		Short: "Update the trip brief (organiser only)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stored, err := app.activate(cmd.Context())
			if err != nil {
				return err
			}
			if !app.sync.IsOrganiser() {
				return fmt.Errorf("only the organiser can edit the brief")
			}

			if err := app.trips.UpdateBrief(cmd.Context(), stored.TripID, strings.Join(args, " ")); err != nil {
				return err
			}
			if err := app.sync.Refresh(cmd.Context()); err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "brief updated")
			return nil
		},
	}
}

func newTripAttendeesCmd(app *app) *cobra.Command {
	var memberIDs []string

	cmd := &cobra.Command{
		Use:   "attendees",
		Short: "Set the required attendees (organiser only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stored, err := app.activate(cmd.Context())
			if err != nil {
				return err
			}
			if !app.sync.IsOrganiser() {
				return fmt.Errorf("only the organiser can set required attendees")
			}

			if err := app.trips.SetRequiredAttendees(cmd.Context(), stored.TripID, memberIDs); err != nil {
				return err
			}
			if err := app.sync.Refresh(cmd.Context()); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "required attendees set: %d member(s)\n", len(memberIDs))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&memberIDs, "member", nil, "Required member id (repeatable)")

	return cmd
}

func newTripLeaveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "leave",
		Short: "Forget the stored session for this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.trips.Leave(cmd.Context()); err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "session cleared")
			return nil
		},
	}
}

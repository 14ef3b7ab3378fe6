package cmd

import (
	"fmt"
	"strings"

	"github.com/outthegc/gc-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newMeCmd(app *app) *cobra.Command {
	var dates, request string
	var budgetMin, budgetMax float64
	var energy, social int
	var mustHaves, mustAvoids []string

	cmd := &cobra.Command{
		Use:   "me",
		Short: "Submit your availability and preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stored, err := app.activate(cmd.Context())
			if err != nil {
				return err
			}

			constraints := domain.Constraints{
				AvailableDates:   splitCommaList(dates),
				EnergyLevel:      energy,
				SocialPreference: social,
				MustHaves:        mustHaves,
				MustAvoids:       mustAvoids,
				SpecialRequest:   strings.TrimSpace(request),
			}
			if cmd.Flags().Changed("budget-min") {
				constraints.Budget.Min = &budgetMin
			}
			if cmd.Flags().Changed("budget-max") {
				constraints.Budget.Max = &budgetMax
			}

			if err := app.trips.SubmitConstraints(cmd.Context(), stored.TripID, stored.MemberID, constraints); err != nil {
				return err
			}
			if err := app.sync.Refresh(cmd.Context()); err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "constraints submitted")
			return nil
		},
	}

	cmd.Flags().StringVar(&dates, "dates", "", "Available dates, comma separated")
	cmd.Flags().Float64Var(&budgetMin, "budget-min", 0, "Minimum budget")
	cmd.Flags().Float64Var(&budgetMax, "budget-max", 0, "Maximum budget")
	cmd.Flags().IntVar(&energy, "energy", 3, "Energy level, 0-5")
	cmd.Flags().IntVar(&social, "social", 3, "Social preference, 0-5")
	cmd.Flags().StringArrayVar(&mustHaves, "must-have", nil, "Must-have (repeatable)")
	cmd.Flags().StringArrayVar(&mustAvoids, "must-avoid", nil, "Must-avoid (repeatable)")
	cmd.Flags().StringVar(&request, "request", "", "Special request")

	return cmd
}

func splitCommaList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

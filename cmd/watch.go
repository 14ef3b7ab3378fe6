package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	rendertrip "github.com/outthegc/gc-cli/internal/adapters/render/trip"
	"github.com/outthegc/gc-cli/internal/application"
	"github.com/spf13/cobra"
)

func newWatchCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Live dashboard that follows the trip as it changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			stored, err := app.activate(ctx)
			if err != nil {
				return err
			}

			updates, unsubscribe := app.sync.Subscribe()
			defer unsubscribe()

			app.sync.Start(ctx)
			defer app.sync.Stop()

			p := tea.NewProgram(
				newWatchModel(app, stored.MemberID, updates),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithContext(ctx),
			)
			_, err = p.Run()
			return err
		},
	}
}

type watchModel struct {
	app      *app
	memberID string
	updates  <-chan application.Update
	lastErr  error
}

func newWatchModel(app *app, memberID string, updates <-chan application.Update) watchModel {
	return watchModel{app: app, memberID: memberID, updates: updates}
}

func waitForUpdate(updates <-chan application.Update) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return nil
		}
		return update
	}
}

func (m watchModel) Init() tea.Cmd {
	return waitForUpdate(m.updates)
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case application.Update:
		m.lastErr = msg.Err
		m.app.voting.ObserveSnapshot(m.app.sync.Snapshot())
		return m, waitForUpdate(m.updates)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m watchModel) View() string {
	s := lipgloss.NewStyle()
	state := m.app.sync.Snapshot()

	sections := []string{
		rendertrip.RenderDashboard(state, m.memberID, rendertrip.RenderOptions{
			Now:          m.app.now(),
			LastSyncedAt: m.app.sync.LastSyncedAt(),
		}),
		rendertrip.RenderPolls(state, m.memberID),
	}
	if m.lastErr != nil {
		sections = append(sections, s.Foreground(lipgloss.Color("203")).Render("refresh failed: "+m.lastErr.Error()))
	}
	sections = append(sections, s.Faint(true).Render("q to quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

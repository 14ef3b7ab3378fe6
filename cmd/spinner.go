package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type taskDoneMsg struct {
	err error
}

// taskSpinnerModel shows a label with a trailing spinner until the wrapped
// task resolves.
type taskSpinnerModel struct {
	label    string
	run      tea.Cmd
	spin     spinner.Model
	err      error
	finished bool
}

func newTaskSpinnerModel(label string, run tea.Cmd) taskSpinnerModel {
	spin := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("39"))),
	)

	return taskSpinnerModel{label: label, run: run, spin: spin}
}

func (m taskSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.run)
}

func (m taskSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskDoneMsg:
		m.finished = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m taskSpinnerModel) View() string {
	if m.finished {
		return ""
	}
	return fmt.Sprintf("%s %s", m.label, m.spin.View())
}

// runTaskSpinner blocks until task returns, animating on output meanwhile.
func runTaskSpinner(ctx context.Context, output io.Writer, label string, task func(context.Context) error) error {
	p := tea.NewProgram(
		newTaskSpinnerModel(label, func() tea.Msg {
			return taskDoneMsg{err: task(ctx)}
		}),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}

	model, ok := final.(taskSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", final)
	}
	return model.err
}

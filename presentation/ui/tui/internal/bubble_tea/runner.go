package bubble_tea

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

type dashboardProgram interface {
	Run() (tea.Model, error)
}

var newDashboardProgram = func(model tea.Model) dashboardProgram {
	return tea.NewProgram(model, tea.WithAltScreen())
}

// RunDashboard blocks until the user quits or ctx is done. Work started by the
// dashboard is canceled when it returns.
func RunDashboard(ctx context.Context, opts DashboardOptions) error {
	defer clearTerminalAfterTUI()

	if ctx == nil {
		ctx = context.Background()
	}
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := newDashboardProgram(NewDashboard(runCtx, opts))
	if _, err := program.Run(); err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil
		}
		return err
	}
	return nil
}

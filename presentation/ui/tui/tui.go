// Package tui is the interactive dashboard.
package tui

import (
	"context"

	"linkwatch/presentation/ui/tui/internal/bubble_tea"
)

type (
	Options    = bubble_tea.DashboardOptions
	Refresher  = bubble_tea.Refresher
	Renewer    = bubble_tea.Renewer
	ChangeFeed = bubble_tea.ChangeFeed
	LogFeed    = bubble_tea.LogFeed
	LogBuffer  = bubble_tea.LogBuffer
)

const DefaultInterval = bubble_tea.DefaultInterval

// Run shows the dashboard until the user quits or ctx is done.
func Run(ctx context.Context, opts Options) error {
	return bubble_tea.RunDashboard(ctx, opts)
}

func IsInteractive() bool {
	return bubble_tea.IsInteractiveTerminal()
}

// NewLogBuffer returns a writer keeping the last capacity lines for the log pane.
func NewLogBuffer(capacity int) *LogBuffer {
	return bubble_tea.NewLogBuffer(capacity)
}

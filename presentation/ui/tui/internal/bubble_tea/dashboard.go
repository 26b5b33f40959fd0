package bubble_tea

import (
	"context"
	"errors"
	"fmt"
	"time"

	"linkwatch/application/session"
	"linkwatch/application/snapshot"
	"linkwatch/domain/lease"
	"linkwatch/presentation/ui/view"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const DefaultInterval = 2 * time.Second

type Refresher interface {
	Refresh(ctx context.Context) (snapshot.Round, error)
}

type Renewer interface {
	Run(ctx context.Context, iface string) (lease.Outcome, error)
}

// ChangeFeed signals that something the snapshots depend on changed.
type ChangeFeed interface {
	Changes() <-chan struct{}
}

type DashboardOptions struct {
	Refresher Refresher
	Renewer   Renewer
	// Resolver triggers an early refresh when resolv.conf changes. Optional.
	Resolver ChangeFeed
	// Logs feeds the log pane. Optional.
	Logs     LogFeed
	Interval time.Duration
}

type tickMsg struct{ seq uint64 }
type refreshDoneMsg struct {
	round snapshot.Round
	err   error
}
type renewDoneMsg struct {
	outcome lease.Outcome
	err     error
}
type resolverChangedMsg struct{}
type logsChangedMsg struct{}
type contextDoneMsg struct{}

type Dashboard struct {
	ctx      context.Context
	opts     DashboardOptions
	state    session.State
	keys     dashboardKeyMap
	help     help.Model
	width    int
	height   int
	tickSeq  uint64
	logLines []string
	// notice reports a rejected request. It lives outside the session state and
	// is cleared by the next accepted request or successful refresh.
	notice        string
	quitRequested bool
}

// NewDashboard returns the model with its first refresh already started; Init runs it.
func NewDashboard(ctx context.Context, opts DashboardOptions) Dashboard {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	state, _ := session.New().Apply(session.RefreshStarted{})
	return Dashboard{
		ctx:   ctx,
		opts:  opts,
		state: state,
		keys:  defaultDashboardKeyMap(),
		help:  help.New(),
	}
}

func (m Dashboard) State() session.State {
	return m.state
}

func (m Dashboard) Init() tea.Cmd {
	return tea.Batch(
		m.refreshCmd(),
		tickCmd(m.opts.Interval, m.tickSeq),
		waitForContextDone(m.ctx),
		waitForChange(m.ctx, m.opts.Resolver, resolverChangedMsg{}),
		waitForChange(m.ctx, m.opts.Logs, logsChangedMsg{}),
	)
}

func (m Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = contentWidthForTerminal(msg.Width)
		m.refreshLogs()
		return m, nil
	case tickMsg:
		if msg.seq != m.tickSeq {
			return m, nil
		}
		var cmd tea.Cmd
		m, cmd = m.startRefresh(false)
		return m, tea.Batch(cmd, tickCmd(m.opts.Interval, m.tickSeq))
	case refreshDoneMsg:
		m.state, _ = m.state.Apply(session.RefreshCompleted{Round: msg.round, Err: msg.err})
		if msg.err == nil {
			m.notice = ""
		}
		return m, nil
	case renewDoneMsg:
		m.state, _ = m.state.Apply(session.RenewCompleted{Outcome: msg.outcome, Err: msg.err})
		return m.startRefresh(false)
	case resolverChangedMsg:
		var cmd tea.Cmd
		m, cmd = m.startRefresh(false)
		return m, tea.Batch(cmd, waitForChange(m.ctx, m.opts.Resolver, resolverChangedMsg{}))
	case logsChangedMsg:
		m.refreshLogs()
		return m, waitForChange(m.ctx, m.opts.Logs, logsChangedMsg{})
	case contextDoneMsg:
		return m, tea.Quit
	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Dashboard) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitRequested = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.state, _ = m.state.Apply(session.SelectNext{})
	case key.Matches(msg, m.keys.Up):
		m.state, _ = m.state.Apply(session.SelectPrevious{})
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Refresh):
		next, cmd := m.startRefresh(true)
		if cmd == nil {
			return next, nil
		}
		next.tickSeq++
		return next, tea.Batch(cmd, tickCmd(next.opts.Interval, next.tickSeq))
	case key.Matches(msg, m.keys.Renew):
		return m.startRenew()
	}
	return m, nil
}

func (m Dashboard) startRefresh(manual bool) (Dashboard, tea.Cmd) {
	next, err := m.state.Apply(session.RefreshStarted{Manual: manual})
	if err != nil {
		if manual {
			m.notice = "refresh: " + err.Error()
		}
		return m, nil
	}
	m.state = next
	if manual {
		m.notice = ""
	}
	return m, m.refreshCmd()
}

func (m Dashboard) startRenew() (tea.Model, tea.Cmd) {
	next, err := m.state.Apply(session.RenewStarted{})
	if err != nil {
		m.notice = "renew: " + err.Error()
		return m, nil
	}
	m.state = next
	m.notice = ""
	iface := m.state.Renewing
	renewer := m.opts.Renewer
	ctx := m.ctx
	return m, func() tea.Msg {
		if renewer == nil {
			return renewDoneMsg{err: errors.New("renew is not configured")}
		}
		outcome, err := renewer.Run(ctx, iface)
		return renewDoneMsg{outcome: outcome, err: err}
	}
}

func (m Dashboard) refreshCmd() tea.Cmd {
	refresher := m.opts.Refresher
	ctx := m.ctx
	return func() tea.Msg {
		if refresher == nil {
			return refreshDoneMsg{err: errors.New("refresh is not configured")}
		}
		round, err := refresher.Refresh(ctx)
		return refreshDoneMsg{round: round, err: err}
	}
}

func (m *Dashboard) refreshLogs() {
	if m.opts.Logs == nil {
		m.logLines = nil
		return
	}
	m.logLines = m.opts.Logs.Tail(logTailLimit(m.height))
}

func (m Dashboard) View() string {
	styles := resolveUIStyles()
	width := contentWidthForTerminal(m.width)

	body := m.listView(styles, width)
	body = append(body, "")
	body = append(body, m.detailView(styles, width)...)
	if m.state.LastRenew != nil {
		body = append(body, "")
		body = append(body, m.renewView(*m.state.LastRenew, styles, width)...)
	}
	if m.state.ScanError != nil {
		for _, line := range wrapText("refresh failed: "+m.state.ScanError.Error(), width) {
			body = append(body, styles.bad.Render(line))
		}
	}
	for _, notice := range []string{m.state.Notice, m.notice} {
		if notice == "" {
			continue
		}
		for _, line := range wrapText(notice, width) {
			body = append(body, styles.warn.Render(line))
		}
	}
	if m.opts.Logs != nil {
		body = append(body, "", styles.section.Render("Logs"))
		body = append(body, renderLogs(m.logLines, width, styles)...)
	}

	return renderScreen(m.width, m.height, "linkwatch", m.subtitle(), body, m.help.View(m.keys))
}

func (m Dashboard) subtitle() string {
	switch {
	case m.state.Renewing != "":
		return fmt.Sprintf("Renewing lease on %s...", m.state.Renewing)
	case m.state.Refreshing:
		return "Refreshing..."
	default:
		return fmt.Sprintf("Physical Ethernet interfaces, refreshed every %s", m.opts.Interval)
	}
}

func (m Dashboard) listView(styles uiStyles, width int) []string {
	lines := []string{styles.section.Render("Interfaces")}
	if len(m.state.Interfaces) == 0 {
		if m.state.Refreshing {
			return append(lines, styles.meta.Render("  scanning..."))
		}
		return append(lines, styles.meta.Render("  no physical Ethernet interfaces found"))
	}
	for i, name := range m.state.Interfaces {
		prefix := "  "
		if i == m.state.Selected {
			prefix = "> "
		}
		res := m.state.Results[name]
		line := truncateWithEllipsis(fmt.Sprintf("%s%-12s %s", prefix, name, view.Status(res)), width)
		switch {
		case i == m.state.Selected:
			line = styles.active.Render(line)
		case res.Unavailable:
			line = styles.warn.Render(line)
		case res.Snapshot.Connected():
			line = styles.good.Render(line)
		default:
			line = styles.option.Render(line)
		}
		lines = append(lines, line)
	}
	return lines
}

func (m Dashboard) detailView(styles uiStyles, width int) []string {
	res, ok := m.state.SelectedResult()
	name, _ := m.state.SelectedName()
	if !ok {
		return nil
	}
	lines := []string{styles.section.Render("Details: " + name)}
	if res.Unavailable {
		return append(lines, styles.warn.Render("  status unavailable"))
	}
	return append(lines, renderRows(view.SnapshotRows(res.Snapshot), width, styles)...)
}

func (m Dashboard) renewView(o lease.Outcome, styles uiStyles, width int) []string {
	status := styles.good
	if !o.Succeeded() {
		status = styles.bad
	}
	lines := []string{styles.section.Render("Last renew")}
	for _, line := range wrapText(view.OutcomeSummary(o), width) {
		lines = append(lines, status.Render(line))
	}
	return append(lines, renderRows(view.DiffRows(o), width, styles)...)
}

func tickCmd(interval time.Duration, seq uint64) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return tickMsg{seq: seq}
	})
}

func waitForContextDone(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return contextDoneMsg{}
	}
}

func waitForChange(ctx context.Context, feed ChangeFeed, msg tea.Msg) tea.Cmd {
	if feed == nil {
		return nil
	}
	changes := feed.Changes()
	return func() tea.Msg {
		select {
		case <-changes:
			return msg
		case <-ctx.Done():
			return nil
		}
	}
}

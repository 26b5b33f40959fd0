package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"linkwatch/infrastructure/PAL/signal"
	"linkwatch/infrastructure/history"
	"linkwatch/infrastructure/logging"
	"linkwatch/infrastructure/settings"
	"linkwatch/presentation"
	"linkwatch/presentation/signals/shutdown"
	"linkwatch/presentation/ui/tui"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const (
	appName    = "linkwatch"
	appVersion = "0.1.0"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%s: %s\n", appName, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    appName,
		Usage:   "Watch physical Ethernet links and renew their DHCP leases",
		Version: appVersion,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Load configuration from `FILE`",
				EnvVars: []string{"LINKWATCH_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Override log.level (debug, info, warn, error)",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Also log to stderr in non-interactive commands",
			},
		},
		Action: dashboardAction,
		Commands: []*cli.Command{
			{
				Name:   "dashboard",
				Usage:  "Interactive dashboard (default); falls back to show without a terminal",
				Action: dashboardAction,
			},
			{
				Name:      "show",
				Usage:     "Print a snapshot of every physical Ethernet interface, or the named ones",
				ArgsUsage: "[iface...]",
				Action:    showAction,
			},
			{
				Name:      "renew",
				Usage:     "Renew the DHCP lease of an interface and print what changed",
				ArgsUsage: "<iface>",
				Action:    renewAction,
			},
			{
				Name:  "history",
				Usage: "List recorded renews, newest first",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "iface", Aliases: []string{"i"}, Usage: "Only renews of `IFACE`"},
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 20, Usage: "Show at most `N` entries (0 for all)"},
				},
				Action: historyAction,
			},
		},
	}
}

// session is what every command needs: settings, a logger, the object graph and
// a context canceled on shutdown signals.
type session struct {
	ctx      context.Context
	settings settings.Settings
	logger   *zap.Logger
	deps     *presentation.Dependencies
	runner   *presentation.Runner
	closers  []func() error
}

func newSession(c *cli.Context, sink io.Writer) (*session, error) {
	conf, err := settings.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if lvl := c.String("log-level"); lvl != "" {
		conf.Log.Level = lvl
	}
	level, err := settings.ParseLevel(conf.Log.Level)
	if err != nil {
		return nil, err
	}

	var sinks []io.Writer
	if sink != nil {
		sinks = append(sinks, sink)
	}
	logger, closeLog := logging.New(logging.Config{
		File:     conf.Log.File,
		Level:    level,
		Fallback: c.App.ErrWriter,
	}, sinks...)
	s := &session{settings: conf, logger: logger, closers: []func() error{closeLog}}
	logger.Debug("settings loaded", zap.String("source", conf.Source))

	ctx, cancel := context.WithCancel(c.Context)
	s.closers = append(s.closers, func() error { cancel(); return nil })
	shutdown.NewHandler(ctx, cancel, signal.NewDefaultProvider(), signal.NewOSNotifier(), logger).Handle()
	s.ctx = ctx

	s.deps = presentation.NewDependencies(conf, logger)
	if err := s.deps.Initialize(ctx); err != nil {
		s.close()
		return nil, err
	}
	s.closers = append(s.closers, s.deps.Close)
	s.runner = presentation.NewRunner(s.deps, logger, c.App.Writer)
	return s, nil
}

// close runs the closers in reverse order.
func (s *session) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			s.logger.Debug("close", zap.Error(err))
		}
	}
}

func stderrSink(c *cli.Context) io.Writer {
	if c.Bool("verbose") {
		return c.App.ErrWriter
	}
	return nil
}

func dashboardAction(c *cli.Context) error {
	if !tui.IsInteractive() {
		return showAction(c)
	}
	logs := tui.NewLogBuffer(0)
	s, err := newSession(c, logs)
	if err != nil {
		return err
	}
	defer s.close()
	return s.runner.Dashboard(s.ctx, logs)
}

func showAction(c *cli.Context) error {
	s, err := newSession(c, stderrSink(c))
	if err != nil {
		return err
	}
	defer s.close()
	return s.runner.Show(s.ctx, c.Args().Slice())
}

func renewAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("renew needs exactly one interface name", 2)
	}
	s, err := newSession(c, stderrSink(c))
	if err != nil {
		return err
	}
	defer s.close()

	outcome, err := s.runner.Renew(s.ctx, c.Args().First())
	if err != nil {
		return err
	}
	if !outcome.Succeeded() {
		return cli.Exit("", 1)
	}
	return nil
}

func historyAction(c *cli.Context) error {
	s, err := newSession(c, stderrSink(c))
	if err != nil {
		return err
	}
	defer s.close()
	return s.runner.History(s.ctx, history.Query{Interface: c.String("iface"), Limit: c.Int("limit")})
}

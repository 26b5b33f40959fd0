package presentation

import (
	"context"
	"fmt"

	"linkwatch/application/renew"
	"linkwatch/application/snapshot"
	"linkwatch/infrastructure/PAL/exec_commander"
	"linkwatch/infrastructure/PAL/linux/netclass"
	"linkwatch/infrastructure/PAL/linux/resolvconf"
	"linkwatch/infrastructure/PAL/linux/route"
	"linkwatch/infrastructure/PAL/network/addresses"
	"linkwatch/infrastructure/PAL/stat"
	"linkwatch/infrastructure/history"
	"linkwatch/infrastructure/settings"
	"linkwatch/presentation/elevation"

	"go.uber.org/zap"
)

// AppDependencies is the object graph shared by every command.
type AppDependencies interface {
	Initialize(ctx context.Context) error
	Settings() settings.Settings
	Enumerator() *netclass.Enumerator
	Refresher() *snapshot.Refresher
	Workflow() *renew.Workflow
	ResolverWatcher() *resolvconf.Watcher
	// History is nil when the renew history is disabled.
	History() *history.Store
	Close() error
}

type Dependencies struct {
	conf      settings.Settings
	logger    *zap.Logger
	invoker    exec_commander.Invoker
	enumerator *netclass.Enumerator
	refresher  *snapshot.Refresher
	workflow   *renew.Workflow
	watcher    *resolvconf.Watcher
	history    *history.Store
}

func NewDependencies(conf settings.Settings, logger *zap.Logger) *Dependencies {
	return &Dependencies{conf: conf, logger: logger, invoker: exec_commander.NewExecInvoker()}
}

func (d *Dependencies) Initialize(ctx context.Context) error {
	var probe netclass.WirelessProbe
	if d.conf.WifiProbe {
		probe = netclass.NewNL80211Probe()
	}
	d.enumerator = netclass.NewEnumerator(d.conf.Paths.Sysfs, stat.NewDefaultStat(), probe, d.logger.Named("enumerator"))
	resolver := resolvconf.NewReader(d.conf.Paths.ResolvConf)
	snapshotter := snapshot.NewSnapshotter(
		netclass.NewAttributeReader(d.conf.Paths.Sysfs, d.logger.Named("netclass")),
		route.NewGatewayReader(d.conf.Paths.Procfs),
		addresses.NewSource(),
		resolver,
		d.logger.Named("snapshot"),
	)
	d.refresher = snapshot.NewRefresher(d.enumerator, snapshotter, d.logger.Named("refresh"))
	d.watcher = resolvconf.NewWatcher(resolver.Path(), d.logger.Named("resolvconf"))

	opts := []renew.Option{renew.WithPrivileges(elevation.NewProcessElevation())}
	if d.conf.History.Enabled() {
		store, err := history.Open(ctx, d.conf.History.Path)
		if err != nil {
			return fmt.Errorf("open renew history: %w", err)
		}
		d.history = store
		opts = append(opts, renew.WithRecorder(store))
	}

	var escalation renew.Escalation
	if d.conf.Escalation.Enabled() {
		escalation = elevation.NewNonInteractive(d.conf.Escalation.Command, d.conf.Escalation.Args...)
	}
	d.workflow = renew.NewWorkflow(
		snapshotter,
		d.invoker,
		escalation,
		renew.Command{Name: d.conf.Renew.Command, Args: d.conf.Renew.Args},
		d.conf.Renew.Timeout,
		d.logger.Named("renew"),
		opts...,
	)
	return nil
}

func (d *Dependencies) Settings() settings.Settings {
	return d.conf
}

func (d *Dependencies) Enumerator() *netclass.Enumerator {
	return d.enumerator
}

func (d *Dependencies) Refresher() *snapshot.Refresher {
	return d.refresher
}

func (d *Dependencies) Workflow() *renew.Workflow {
	return d.workflow
}

func (d *Dependencies) ResolverWatcher() *resolvconf.Watcher {
	return d.watcher
}

func (d *Dependencies) History() *history.Store {
	return d.history
}

func (d *Dependencies) Close() error {
	if d.history == nil {
		return nil
	}
	return d.history.Close()
}

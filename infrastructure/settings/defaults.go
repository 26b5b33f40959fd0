package settings

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const (
	appName   = "linkwatch"
	envPrefix = "LINKWATCH"

	DefaultRefreshInterval = 2 * time.Second
	DefaultRenewCommand    = "networkctl"
	DefaultRenewTimeout    = 5 * time.Second
	DefaultEscalation      = "sudo"
	DefaultSysfs           = "/sys"
	DefaultProcfs          = "/proc"
	DefaultResolvConf      = "/etc/resolv.conf"
	DefaultLogLevel        = "info"
	systemConfigFile       = "/etc/linkwatch/config.yaml"
)

var (
	DefaultRenewArgs      = []string{"renew"}
	DefaultEscalationArgs = []string{"-n"}
)

func setDefaults(v *viper.Viper, stateDir string) {
	v.SetDefault("refresh_interval", DefaultRefreshInterval)
	v.SetDefault("renew.command", DefaultRenewCommand)
	v.SetDefault("renew.args", DefaultRenewArgs)
	v.SetDefault("renew.timeout", DefaultRenewTimeout)
	v.SetDefault("escalation.command", DefaultEscalation)
	v.SetDefault("escalation.args", DefaultEscalationArgs)
	v.SetDefault("paths.sysfs", DefaultSysfs)
	v.SetDefault("paths.procfs", DefaultProcfs)
	v.SetDefault("paths.resolv_conf", DefaultResolvConf)
	v.SetDefault("wifi_probe", true)
	v.SetDefault("log.level", DefaultLogLevel)
	if stateDir != "" {
		v.SetDefault("history.path", filepath.Join(stateDir, "history.db"))
		v.SetDefault("log.file", filepath.Join(stateDir, "linkwatch.log"))
	} else {
		v.SetDefault("history.path", "")
		v.SetDefault("log.file", "")
	}
}

// stateDir follows the XDG base directory layout: $XDG_STATE_HOME/linkwatch,
// else ~/.local/state/linkwatch. Empty when neither can be determined.
func stateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", appName)
}

// configCandidates lists the implicit config file locations in lookup order.
func configCandidates() []string {
	var out []string
	if dir, err := os.UserConfigDir(); err == nil {
		out = append(out, filepath.Join(dir, appName, "config.yaml"))
	}
	return append(out, systemConfigFile)
}

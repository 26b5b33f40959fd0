// Package settings loads linkwatch configuration from a YAML file, LINKWATCH_*
// environment variables and built-in defaults, in increasing order of precedence
// from defaults to environment.
package settings

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"time"
)

var ErrInvalid = errors.New("invalid settings")

type Settings struct {
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	Renew           Renew         `mapstructure:"renew"`
	Escalation      Escalation    `mapstructure:"escalation"`
	Paths           Paths         `mapstructure:"paths"`
	WifiProbe       bool          `mapstructure:"wifi_probe"`
	History         History       `mapstructure:"history"`
	Log             Log           `mapstructure:"log"`

	// Source is the config file that was read, empty when none was found.
	Source string `mapstructure:"-"`
}

type Renew struct {
	Command string        `mapstructure:"command"`
	Args    []string      `mapstructure:"args"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Escalation is the non-interactive wrapper used after a permission failure.
// An empty Command disables the retry.
type Escalation struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

func (e Escalation) Enabled() bool {
	return e.Command != ""
}

// nonInteractiveFlags lists, per known wrapper, the flags that stop it from prompting.
var nonInteractiveFlags = map[string][]string{
	"sudo": {"-n", "--non-interactive"},
	"doas": {"-n"},
}

// NonInteractive reports whether a known prompting wrapper carries its
// no-prompt flag. Unknown wrappers are trusted as configured.
func (e Escalation) NonInteractive() bool {
	flags, known := nonInteractiveFlags[filepath.Base(e.Command)]
	if !known {
		return true
	}
	return slices.ContainsFunc(e.Args, func(arg string) bool {
		return slices.Contains(flags, arg)
	})
}

type Paths struct {
	Sysfs      string `mapstructure:"sysfs"`
	Procfs     string `mapstructure:"procfs"`
	ResolvConf string `mapstructure:"resolv_conf"`
}

// History configures the renew history database. An empty Path disables it.
type History struct {
	Path string `mapstructure:"path"`
}

func (h History) Enabled() bool {
	return h.Path != ""
}

type Log struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

func (s Settings) Validate() error {
	var errs []error
	if s.RefreshInterval <= 0 {
		errs = append(errs, fmt.Errorf("refresh_interval must be positive, got %s", s.RefreshInterval))
	}
	if s.Renew.Command == "" {
		errs = append(errs, errors.New("renew.command must not be empty"))
	}
	if s.Renew.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("renew.timeout must be positive, got %s", s.Renew.Timeout))
	}
	if s.Paths.Sysfs == "" || s.Paths.Procfs == "" || s.Paths.ResolvConf == "" {
		errs = append(errs, errors.New("paths.sysfs, paths.procfs and paths.resolv_conf must be set"))
	}
	if s.Escalation.Enabled() && !s.Escalation.NonInteractive() {
		errs = append(errs, fmt.Errorf("escalation.args must include %s for %s so it never prompts",
			nonInteractiveFlags[filepath.Base(s.Escalation.Command)][0], s.Escalation.Command))
	}
	if _, err := ParseLevel(s.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

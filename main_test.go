package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"linkwatch/internal/testutil"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, host *testutil.Host) string {
	t.Helper()
	return writeConfigWithLog(t, host, "")
}

func writeConfigWithLog(t *testing.T, host *testutil.Host, logFile string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	conf := fmt.Sprintf(`refresh_interval: 1s
wifi_probe: false
history:
  path: ""
log:
  file: %q
paths:
  sysfs: %s
  procfs: %s
  resolv_conf: %s
`, logFile, host.SysRoot(), host.ProcRoot(), host.ResolvConf())
	require.NoError(t, os.WriteFile(path, []byte(conf), 0o644))
	return path
}

func TestApp_Commands(t *testing.T) {
	app := newApp()
	for _, name := range []string{"dashboard", "show", "renew", "history"} {
		assert.NotNil(t, app.Command(name), name)
	}
}

func TestApp_Show(t *testing.T) {
	color.NoColor = true
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	host := testutil.NewHost(t)
	host.Wired("lwtest0", map[string]string{"operstate": "down", "carrier": "0"})
	host.Nameservers("10.0.0.53")
	config := writeConfig(t, host)

	for _, args := range [][]string{
		{"linkwatch", "--config", config, "show"},
		{"linkwatch", "--config", config, "show", "lwtest0"},
	} {
		var out bytes.Buffer
		app := newApp()
		app.Writer = &out

		require.NoError(t, app.Run(args), args)
		assert.Contains(t, out.String(), "lwtest0  down", args)
		assert.Contains(t, out.String(), "10.0.0.53", args)
	}
}

func TestApp_ShowWithUnwritableLogFile(t *testing.T) {
	color.NoColor = true
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	host := testutil.NewHost(t)
	host.Wired("lwtest0", map[string]string{"operstate": "up", "carrier": "1"})
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	config := writeConfigWithLog(t, host, filepath.Join(blocker, "linkwatch.log"))

	var out, errOut bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut

	require.NoError(t, app.Run([]string{"linkwatch", "--config", config, "show"}))
	assert.Contains(t, out.String(), "lwtest0  up")
	assert.Contains(t, errOut.String(), "log file unavailable")
}

func TestApp_ShowRejectsNonPhysical(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	host := testutil.NewHost(t)
	host.Wired("lwtest0", map[string]string{"operstate": "up"})
	host.Virtual("lwbr0")
	config := writeConfig(t, host)

	app := newApp()
	app.Writer = &bytes.Buffer{}
	err := app.Run([]string{"linkwatch", "--config", config, "show", "lwbr0"})

	assert.ErrorContains(t, err, "lwbr0: not a physical Ethernet interface")
}

func TestApp_HistoryDisabled(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	host := testutil.NewHost(t)
	config := writeConfig(t, host)

	app := newApp()
	app.Writer = &bytes.Buffer{}
	err := app.Run([]string{"linkwatch", "--config", config, "history"})

	assert.ErrorContains(t, err, "renew history is disabled")
}

package presentation

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"linkwatch/infrastructure/history"
	"linkwatch/infrastructure/settings"
	"linkwatch/internal/testutil"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureSettings(host *testutil.Host, historyPath string) settings.Settings {
	return settings.Settings{
		RefreshInterval: time.Second,
		Renew:           settings.Renew{Command: "true", Timeout: 5 * time.Second},
		Paths: settings.Paths{
			Sysfs:      host.SysRoot(),
			Procfs:     host.ProcRoot(),
			ResolvConf: host.ResolvConf(),
		},
		History: settings.History{Path: historyPath},
		Log:     settings.Log{Level: "info"},
	}
}

func newFixtureRunner(t *testing.T, historyPath string) (*Runner, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true

	host := testutil.NewHost(t)
	host.Wired("lwtest0", map[string]string{
		"operstate": "up",
		"carrier":   "1",
		"address":   "aa:bb:cc:00:11:22",
		"speed":     "1000",
	})
	host.Virtual("lwbr0")
	host.Routes("lwtest0\t00000000\t0101A8C0\t0003\t0\t0\t100\t00000000\t0\t0\t0")
	host.Nameservers("192.168.1.1")

	deps := NewDependencies(fixtureSettings(host, historyPath), testutil.Logger())
	require.NoError(t, deps.Initialize(context.Background()))
	t.Cleanup(func() { _ = deps.Close() })

	var out bytes.Buffer
	return NewRunner(deps, testutil.Logger(), &out), &out
}

func TestRunner_Show(t *testing.T) {
	r, out := newFixtureRunner(t, "")

	require.NoError(t, r.Show(context.Background(), nil))

	assert.Contains(t, out.String(), "lwtest0  up")
	assert.Contains(t, out.String(), "192.168.1.1")
	assert.Contains(t, out.String(), "1000 Mb/s")
	assert.NotContains(t, out.String(), "lwbr0")
}

func TestRunner_ShowNamed(t *testing.T) {
	r, out := newFixtureRunner(t, "")

	require.NoError(t, r.Show(context.Background(), []string{"lwtest0"}))
	assert.Contains(t, out.String(), "lwtest0  up")
}

func TestRunner_ShowRejectsNonPhysical(t *testing.T) {
	r, out := newFixtureRunner(t, "")

	err := r.Show(context.Background(), []string{"lwtest0", "lwbr0", "lo", "wlan9"})

	require.ErrorIs(t, err, ErrNotPhysical)
	for _, name := range []string{"lwbr0", "lo", "wlan9"} {
		assert.ErrorContains(t, err, name)
	}
	assert.NotContains(t, err.Error(), "lwtest0")
	assert.Empty(t, out.String())
}

func TestRunner_RenewRecordsHistory(t *testing.T) {
	r, out := newFixtureRunner(t, ":memory:")
	ctx := context.Background()

	outcome, err := r.Renew(ctx, "lwtest0")
	require.NoError(t, err)
	assert.True(t, outcome.Succeeded())
	assert.Contains(t, out.String(), "renew lwtest0: success")
	assert.Contains(t, out.String(), "none visible")

	out.Reset()
	require.NoError(t, r.History(ctx, history.Query{Interface: "lwtest0"}))
	assert.Contains(t, out.String(), "lwtest0")
	assert.Contains(t, out.String(), "success")
}

func TestRunner_RenewRejectsNonPhysical(t *testing.T) {
	r, out := newFixtureRunner(t, "")

	outcome, err := r.Renew(context.Background(), "lwbr0")

	assert.True(t, errors.Is(err, ErrNotPhysical))
	assert.Empty(t, outcome.Interface)
	assert.Empty(t, out.String())
}

func TestRunner_HistoryDisabled(t *testing.T) {
	r, _ := newFixtureRunner(t, "")

	err := r.History(context.Background(), history.Query{})

	assert.ErrorIs(t, err, ErrHistoryDisabled)
}

package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Host is a fake sysfs/procfs/resolv.conf layout under a temporary directory.
type Host struct {
	t    *testing.T
	Root string
}

func NewHost(t *testing.T) *Host {
	t.Helper()
	h := &Host{t: t, Root: t.TempDir()}
	h.mkdir(filepath.Join(h.SysRoot(), "class", "net"))
	h.mkdir(filepath.Join(h.ProcRoot(), "net"))
	return h
}

func (h *Host) SysRoot() string    { return filepath.Join(h.Root, "sys") }
func (h *Host) ProcRoot() string   { return filepath.Join(h.Root, "proc") }
func (h *Host) ResolvConf() string { return filepath.Join(h.Root, "etc", "resolv.conf") }

// Wired adds a physical interface with the given attribute files.
func (h *Host) Wired(name string, attrs map[string]string) {
	h.t.Helper()
	dir := filepath.Join(h.SysRoot(), "class", "net", name)
	h.mkdir(filepath.Join(dir, "device"))
	for k, v := range attrs {
		h.write(filepath.Join(dir, k), v+"\n")
	}
}

// Wireless adds a physical interface carrying the wireless marker.
func (h *Host) Wireless(name string) {
	h.t.Helper()
	dir := filepath.Join(h.SysRoot(), "class", "net", name)
	h.mkdir(filepath.Join(dir, "device"))
	h.mkdir(filepath.Join(dir, "wireless"))
	h.write(filepath.Join(dir, "operstate"), "up\n")
}

// Virtual adds an interface without a device entry.
func (h *Host) Virtual(name string) {
	h.t.Helper()
	dir := filepath.Join(h.SysRoot(), "class", "net", name)
	h.mkdir(dir)
	h.write(filepath.Join(dir, "operstate"), "unknown\n")
}

// Routes writes the route table; each row is the eleven whitespace separated columns.
func (h *Host) Routes(rows ...string) {
	h.t.Helper()
	header := "Iface\tDestination\tGateway \tFlags\tRefCnt\tUse\tMetric\tMask\t\tMTU\tWindow\tIRTT"
	h.write(filepath.Join(h.ProcRoot(), "net", "route"), header+"\n"+strings.Join(rows, "\n")+"\n")
}

// Nameservers writes a resolver file listing servers.
func (h *Host) Nameservers(servers ...string) {
	h.t.Helper()
	var b strings.Builder
	for _, s := range servers {
		b.WriteString("nameserver " + s + "\n")
	}
	h.write(h.ResolvConf(), b.String())
}

func (h *Host) mkdir(dir string) {
	h.t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		h.t.Fatalf("mkdir %s: %v", dir, err)
	}
}

func (h *Host) write(path, content string) {
	h.t.Helper()
	h.mkdir(filepath.Dir(path))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		h.t.Fatalf("write %s: %v", path, err)
	}
}

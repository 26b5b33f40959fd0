package netclass

import (
	"os"
	"path/filepath"
	"testing"
)

type ifaceFixture struct {
	device   bool
	wireless bool
	phy80211 bool
	attrs    map[string]string
}

// writeIface lays out <root>/class/net/<name> the way sysfs exposes it.
func writeIface(t *testing.T, root, name string, f ifaceFixture) {
	t.Helper()
	dir := filepath.Join(root, "class", "net", name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	if f.device {
		mustMkdir(t, filepath.Join(dir, "device"))
	}
	if f.wireless {
		mustMkdir(t, filepath.Join(dir, "wireless"))
	}
	if f.phy80211 {
		mustMkdir(t, filepath.Join(root, "class", "ieee80211", "phy0"))
		if err := os.Symlink(filepath.Join(root, "class", "ieee80211", "phy0"), filepath.Join(dir, "phy80211")); err != nil {
			t.Fatalf("symlink phy80211: %v", err)
		}
	}
	for attr, value := range f.attrs {
		if err := os.WriteFile(filepath.Join(dir, attr), []byte(value+"\n"), 0o644); err != nil {
			t.Fatalf("write %s: %v", attr, err)
		}
	}
}

func mustMkdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
}

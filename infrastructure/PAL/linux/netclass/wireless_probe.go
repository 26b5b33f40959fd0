package netclass

import (
	"fmt"

	"github.com/mdlayher/wifi"
)

// WirelessProbe reports interface names the kernel knows as Wi-Fi devices.
type WirelessProbe interface {
	WirelessInterfaces() ([]string, error)
}

// NL80211Probe asks nl80211 over generic netlink. It catches wireless devices
// whose sysfs entry lacks the usual markers (some out-of-tree drivers).
type NL80211Probe struct{}

func NewNL80211Probe() *NL80211Probe {
	return &NL80211Probe{}
}

func (p *NL80211Probe) WirelessInterfaces() ([]string, error) {
	c, err := wifi.New()
	if err != nil {
		return nil, fmt.Errorf("open nl80211: %w", err)
	}
	defer func() {
		_ = c.Close()
	}()

	ifis, err := c.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("list nl80211 interfaces: %w", err)
	}
	names := make([]string, 0, len(ifis))
	for _, ifi := range ifis {
		if ifi.Name != "" {
			names = append(names, ifi.Name)
		}
	}
	return names, nil
}

//go:build unix

package elevation

import "golang.org/x/sys/unix"

type ProcessElevationImpl struct {
}

func NewProcessElevation() ProcessElevation {
	return &ProcessElevationImpl{}
}

func (p *ProcessElevationImpl) IsElevated() bool {
	return unix.Geteuid() == 0
}

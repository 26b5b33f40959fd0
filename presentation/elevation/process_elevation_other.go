//go:build !unix

package elevation

type ProcessElevationImpl struct {
}

func NewProcessElevation() ProcessElevation {
	return &ProcessElevationImpl{}
}

func (p *ProcessElevationImpl) IsElevated() bool {
	return false
}

package link

import (
	"errors"
	"fmt"
)

var (
	ErrScanUnavailable = errors.New("interface status unavailable")
	ErrIncomparable    = errors.New("snapshots are not comparable")
)

// ScanUnavailableError is returned when none of an interface's data sources could be read.
type ScanUnavailableError struct {
	name  string
	cause error
}

func NewScanUnavailableError(name string, cause error) *ScanUnavailableError {
	return &ScanUnavailableError{name: name, cause: cause}
}

func (e *ScanUnavailableError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("%s: %v", e.name, ErrScanUnavailable)
	}
	return fmt.Sprintf("%s: %v: %v", e.name, ErrScanUnavailable, e.cause)
}

func (e *ScanUnavailableError) Unwrap() error { return e.cause }

func (e *ScanUnavailableError) Is(target error) bool { return target == ErrScanUnavailable }

func (e *ScanUnavailableError) Interface() string { return e.name }

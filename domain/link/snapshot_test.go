package link

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOperState(t *testing.T) {
	cases := []struct {
		raw  string
		want OperKind
	}{
		{"up\n", OperKindUp},
		{"DOWN", OperKindDown},
		{"unknown", OperKindUnknown},
		{"lowerlayerdown", OperKindOther},
		{"dormant", OperKindOther},
		{"", OperKindAbsent},
	}
	for _, c := range cases {
		if got := ParseOperState(c.raw).Kind(); got != c.want {
			t.Fatalf("ParseOperState(%q).Kind() = %v, want %v", c.raw, got, c.want)
		}
	}
	if got := ParseOperState("Dormant").String(); got != "dormant" {
		t.Fatalf("other states must keep their raw value, got %q", got)
	}
	if got := OperState("").String(); got != "?" {
		t.Fatalf("absent state must render as ?, got %q", got)
	}
}

func TestSource(t *testing.T) {
	s := SourceLink | SourceResolver
	assert.True(t, s.Has(SourceLink))
	assert.False(t, s.Has(SourceRoute))
	assert.False(t, s.Has(SourceAll))
	assert.Equal(t, "link,resolver", s.String())
	assert.Equal(t, "none", SourceNone.String())
}

func TestSnapshot_Connected(t *testing.T) {
	s := fullSnapshot()
	assert.True(t, s.Connected())

	s.Carrier = ptr(false)
	assert.False(t, s.Connected())

	s = fullSnapshot()
	s.IPv4 = nil
	assert.False(t, s.Connected())

	s = fullSnapshot()
	s.Carrier = nil
	assert.False(t, s.Connected())
}

func TestScanUnavailableError(t *testing.T) {
	err := NewScanUnavailableError("eth0", fs.ErrNotExist)
	assert.True(t, errors.Is(err, ErrScanUnavailable))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Equal(t, "eth0", err.Interface())
	assert.Contains(t, err.Error(), "eth0")

	var target *ScanUnavailableError
	assert.True(t, errors.As(error(err), &target))
}

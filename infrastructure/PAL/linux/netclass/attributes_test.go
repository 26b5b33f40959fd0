package netclass

import (
	"path/filepath"
	"testing"

	"linkwatch/domain/link"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAttributeReader_AllAttributes(t *testing.T) {
	root := t.TempDir()
	writeIface(t, root, "eth0", ifaceFixture{device: true, attrs: map[string]string{
		"operstate": "up",
		"carrier":   "1",
		"address":   "52:54:00:AB:CD:EF",
		"speed":     "1000",
	}})

	attrs, err := NewAttributeReader(root, zap.NewNop()).LinkAttributes("eth0")

	require.NoError(t, err)
	assert.Equal(t, link.OperUp, attrs.OperState)
	require.NotNil(t, attrs.Carrier)
	assert.True(t, *attrs.Carrier)
	require.NotNil(t, attrs.MAC)
	assert.Equal(t, "52:54:00:ab:cd:ef", *attrs.MAC)
	require.NotNil(t, attrs.SpeedMbps)
	assert.Equal(t, uint32(1000), *attrs.SpeedMbps)
}

func TestAttributeReader_DownLinkLeavesUnreadableValuesAbsent(t *testing.T) {
	root := t.TempDir()
	writeIface(t, root, "eth1", ifaceFixture{device: true, attrs: map[string]string{
		"operstate": "down",
		"address":   "52:54:00:00:00:02",
		"speed":     "-1",
	}})

	attrs, err := NewAttributeReader(root, zap.NewNop()).LinkAttributes("eth1")

	require.NoError(t, err)
	assert.Equal(t, link.OperDown, attrs.OperState)
	assert.Nil(t, attrs.Carrier, "missing carrier must be absent, not false")
	assert.Nil(t, attrs.SpeedMbps)
	require.NotNil(t, attrs.MAC)
}

func TestAttributeReader_CarrierZeroIsFalse(t *testing.T) {
	root := t.TempDir()
	writeIface(t, root, "eth0", ifaceFixture{device: true, attrs: map[string]string{"carrier": "0"}})

	attrs, err := NewAttributeReader(root, zap.NewNop()).LinkAttributes("eth0")

	require.NoError(t, err)
	require.NotNil(t, attrs.Carrier)
	assert.False(t, *attrs.Carrier)
	assert.False(t, attrs.OperState.Present())
}

func TestAttributeReader_MissingInterface(t *testing.T) {
	root := t.TempDir()
	writeIface(t, root, "eth0", ifaceFixture{device: true, attrs: map[string]string{"operstate": "up"}})

	attrs, err := NewAttributeReader(root, zap.NewNop()).LinkAttributes("eth9")

	assert.Error(t, err)
	assert.False(t, attrs.Any())
}

func TestAttributeReader_MissingRoot(t *testing.T) {
	attrs, err := NewAttributeReader(filepath.Join(t.TempDir(), "nope"), zap.NewNop()).LinkAttributes("eth0")

	assert.Error(t, err)
	assert.False(t, attrs.Any())
}

func TestAttributeReader_ReadEachSkipsMalformedValues(t *testing.T) {
	root := t.TempDir()
	writeIface(t, root, "eth0", ifaceFixture{device: true, attrs: map[string]string{
		"operstate": "dormant",
		"carrier":   "maybe",
		"address":   "not-a-mac",
		"speed":     "fast",
	}})

	attrs, err := NewAttributeReader(root, zap.NewNop()).readEach("eth0")

	require.NoError(t, err)
	assert.Equal(t, link.OperKindOther, attrs.OperState.Kind())
	assert.Nil(t, attrs.Carrier)
	assert.Nil(t, attrs.MAC)
	assert.Nil(t, attrs.SpeedMbps)
}

func TestSpeedFromInt(t *testing.T) {
	assert.Nil(t, speedFromInt(-1))
	assert.Nil(t, speedFromInt(1<<40))
	require.NotNil(t, speedFromInt(0))
	assert.Equal(t, uint32(2500), *speedFromInt(2500))
}

package cmd

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usbforge/msos"
	"github.com/usbforge/msos/manifest"
)

const genManifest = `
sets:
  - windowsVersion: win8.1
    features:
      - kind: registry-property
        name: SelectiveSuspendEnabled
        type: dword
        dword: 1
`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeGenManifest(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "caps.yaml")
	require.NoError(t, os.WriteFile(path, []byte(genManifest), 0o644))
	return path
}

func TestGenBin(t *testing.T) {
	dir := t.TempDir()
	g := &Gen{Manifest: writeGenManifest(t, dir), Format: "bin", Output: dir, Prefix: "msos"}
	require.NoError(t, g.Run(discardLogger()))

	m, err := manifest.Load(g.Manifest)
	require.NoError(t, err)
	caps, err := m.Build()
	require.NoError(t, err)
	cls, err := msos.NewClass(caps)
	require.NoError(t, err)

	capBytes, err := os.ReadFile(filepath.Join(dir, "msos_capability.bin"))
	require.NoError(t, err)
	assert.Equal(t, cls.CapabilityData, capBytes)

	setBytes, err := os.ReadFile(filepath.Join(dir, "msos_set1.bin"))
	require.NoError(t, err)
	assert.Equal(t, cls.DescriptorSets[0], setBytes)
}

func TestGenCHeader(t *testing.T) {
	dir := t.TempDir()
	g := &Gen{Manifest: writeGenManifest(t, dir), Format: "c", Output: dir, Prefix: "dev"}
	require.NoError(t, g.Run(discardLogger()))

	header, err := os.ReadFile(filepath.Join(dir, "dev_descriptors.h"))
	require.NoError(t, err)
	assert.Contains(t, string(header), "static const uint8_t dev_capability[")
	assert.Contains(t, string(header), "static const uint8_t dev_set1[")
	assert.Contains(t, string(header), "bMS_VendorCode 1")
}

func TestGenRejectsBadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "caps.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sets: []\n"), 0o644))

	g := &Gen{Manifest: path, Format: "bin", Output: dir, Prefix: "msos"}
	err := g.Run(discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no descriptor sets")
}

func TestConfigInitRoundTrips(t *testing.T) {
	for _, format := range []string{"json", "yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			dest := filepath.Join(t.TempDir(), "manifest."+format)
			c := &ConfigInit{Format: format, Output: dest}
			require.NoError(t, c.Run())

			m, err := manifest.Load(dest)
			require.NoError(t, err)
			_, err = m.Build()
			require.NoError(t, err)
		})
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(dest, []byte("existing"), 0o644))

	c := &ConfigInit{Format: "yaml", Output: dest}
	err := c.Run()
	require.Error(t, err)

	c.Force = true
	require.NoError(t, c.Run())
}

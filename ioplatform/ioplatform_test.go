package ioplatform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOSPlatformReadWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.bin")

	err := Default.WriteFile(path, []byte("payload"))
	assert.NoError(t, err)

	data, err := Default.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)
}

func TestResolveJoinsAgainstBaseDirectory(t *testing.T) {
	got := Default.Resolve("/assets/scene.gltf", "textures/albedo.png")
	assert.Equal(t, filepath.Join("/assets", "textures/albedo.png"), got)
}

func TestReadFileMissingReturnsError(t *testing.T) {
	_, err := Default.ReadFile(filepath.Join(os.TempDir(), "does-not-exist-gltfedit"))
	assert.Error(t, err)
}

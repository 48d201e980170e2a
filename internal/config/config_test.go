package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Load_ParsesEngineAndServerSections(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")
	contents := `
[engine]
emergence = true
sliding_window = 50
sliding_step = 25

[engine.detector]
threshold = 0.3
mode = "adaptive"
k = 2.5
min_persistence = 2

[server]
listen_address = ":8080"
secret = "topsecret"
database = "inmem"
`
	assert.NoError(os.WriteFile(path, []byte(contents), 0644))

	f, err := Load(path)
	assert.NoError(err)

	assert.True(f.Engine.Emergence)
	assert.Equal(50, f.Engine.SlidingWindow)
	assert.Equal(0.3, f.Engine.Detector.Threshold)
	assert.Equal("adaptive", f.Engine.Detector.Mode)
	assert.Equal(":8080", f.Server.ListenAddress)
	assert.Equal("topsecret", f.Server.Secret)
}

func Test_LoadIfExists_MissingFileReturnsZeroValue(t *testing.T) {
	assert := assert.New(t)

	f, err := LoadIfExists(filepath.Join(t.TempDir(), "missing.toml"))
	assert.NoError(err)
	assert.Equal(File{}, f)
}

func Test_Detector_ToInduce_Roundtrip(t *testing.T) {
	assert := assert.New(t)

	d := Detector{Threshold: 0.4, Preset: "strict", Mode: "static", K: 3, MinPersistence: 1}
	induced := d.ToInduce()

	assert.Equal(0.4, induced.Threshold)
	assert.EqualValues("strict", induced.Preset)
	assert.EqualValues("static", induced.Mode)
}

// Package config loads detector and server settings from a TOML file: a
// small typed struct unmarshaled directly by BurntSushi/toml, with CLI flags
// layered on top by the caller.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/wespiper/ufr-ds/internal/induce"
)

// Detector mirrors induce.DetectorConfig in TOML-friendly form.
type Detector struct {
	Threshold      float64 `toml:"threshold"`
	Preset         string  `toml:"preset"`
	Mode           string  `toml:"mode"`
	K              float64 `toml:"k"`
	MinPersistence int     `toml:"min_persistence"`
	Hysteresis     float64 `toml:"hysteresis"`
	MinGap         int     `toml:"min_gap"`
}

// ToInduce converts d into the induce package's native configuration type.
func (d Detector) ToInduce() induce.DetectorConfig {
	return induce.DetectorConfig{
		Threshold:      d.Threshold,
		Preset:         induce.Preset(d.Preset),
		Mode:           induce.ThresholdMode(d.Mode),
		K:              d.K,
		MinPersistence: d.MinPersistence,
		Hysteresis:     d.Hysteresis,
		MinGap:         d.MinGap,
	}
}

// Engine mirrors induce.EngineConfig in TOML-friendly form.
type Engine struct {
	Emergence     bool     `toml:"emergence"`
	Detector      Detector `toml:"detector"`
	SlidingWindow int      `toml:"sliding_window"`
	SlidingStep   int      `toml:"sliding_step"`
}

// ToInduce converts e into the induce package's native configuration type.
// AlphabetSize is not part of the file format since it is derived from the
// input at run time, not configured ahead of it.
func (e Engine) ToInduce() induce.EngineConfig {
	return induce.EngineConfig{
		Emergence:     e.Emergence,
		Detector:      e.Detector.ToInduce(),
		SlidingWindow: e.SlidingWindow,
		SlidingStep:   e.SlidingStep,
	}
}

// Server contains settings for the gramserver HTTP service.
type Server struct {
	// ListenAddress is the host:port the server binds to.
	ListenAddress string `toml:"listen_address"`

	// Secret is the shared bearer-token secret. Must be set; there is no
	// insecure default, unlike the teacher's TokenSecret.
	Secret string `toml:"secret"`

	// Database selects "sqlite" or "inmem" and, for sqlite, the directory to
	// store the database file in.
	Database string `toml:"database"`
	DataDir  string `toml:"data_dir"`
}

// File is the root of a settings TOML file combining default engine/detector
// settings with server connection settings. Either section may be omitted;
// zero values are filled in by the caller via Engine.ToInduce /
// induce.DefaultEngineConfig.
type File struct {
	Engine Engine `toml:"engine"`
	Server Server `toml:"server"`
}

// Load reads and parses the TOML settings file at path.
func Load(path string) (File, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return File{}, fmt.Errorf("load config %q: %w", path, err)
	}
	return f, nil
}

// LoadIfExists behaves like Load, but returns a zero-valued File with no
// error if path does not exist, so callers can treat an unconfigured
// deployment as "use defaults" rather than an error.
func LoadIfExists(path string) (File, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return File{}, nil
	}
	return Load(path)
}

package induce

import (
	"math"
	"sort"
)

// ThresholdMode selects where the curvature threshold used by the detector
// comes from.
type ThresholdMode string

const (
	ModeStatic   ThresholdMode = "static"
	ModeAdaptive ThresholdMode = "adaptive"
)

// Preset names a canned static threshold.
type Preset string

const (
	PresetSensitive Preset = "sensitive"
	PresetBalanced  Preset = "balanced"
	PresetStrict    Preset = "strict"
)

var presetThresholds = map[Preset]float64{
	PresetSensitive: 0.15,
	PresetBalanced:  0.25,
	PresetStrict:    0.40,
}

// DetectorConfig configures the emergence detector (C6). Use
// DefaultDetectorConfig as a starting point and override only the fields
// that need to differ from the defaults in spec §6 — the zero value of this
// struct is not itself meaningful for every field (notably MinPersistence,
// which must be >= 1).
type DetectorConfig struct {
	// Threshold is the static curvature threshold, used when Preset is empty
	// and Mode is static.
	Threshold float64

	// Preset, if non-empty, overrides Threshold with a canned value.
	Preset Preset

	// Mode selects "static" or "adaptive" thresholding. Empty means static.
	Mode ThresholdMode

	// K is the MAD multiplier used in adaptive mode.
	K float64

	// MinPersistence is the number of consecutive steps curvature must stay
	// at or above threshold before an event is emitted. Must be >= 1.
	MinPersistence int

	// Hysteresis is the margin subtracted from the activation threshold to
	// get the deactivation threshold.
	Hysteresis float64

	// MinGap is the minimum number of steps between two emitted events.
	MinGap int
}

// DefaultDetectorConfig returns the spec's documented defaults: static mode,
// threshold 0.25, k 3.0, min_persistence 1, no hysteresis, no min_gap.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		Threshold:      0.25,
		Mode:           ModeStatic,
		K:              3.0,
		MinPersistence: 1,
	}
}

// Validate checks that the configuration is well-formed, returning an error
// wrapping ErrInvalidConfiguration if not.
func (c DetectorConfig) Validate() error {
	if c.Preset != "" {
		if _, ok := presetThresholds[c.Preset]; !ok {
			return newConfigError("unknown preset " + string(c.Preset))
		}
	}
	if c.Mode != "" && c.Mode != ModeStatic && c.Mode != ModeAdaptive {
		return newConfigError("unknown threshold mode " + string(c.Mode))
	}
	if c.Threshold < 0 {
		return newConfigError("threshold must be >= 0")
	}
	if c.K < 0 {
		return newConfigError("k must be >= 0")
	}
	if c.MinPersistence < 1 {
		return newConfigError("min_persistence must be >= 1")
	}
	if c.Hysteresis < 0 {
		return newConfigError("hysteresis must be >= 0")
	}
	if c.MinGap < 0 {
		return newConfigError("min_gap must be >= 0")
	}
	return nil
}

func (c DetectorConfig) resolveThreshold() float64 {
	if c.Preset != "" {
		if v, ok := presetThresholds[c.Preset]; ok {
			return v
		}
	}
	return c.Threshold
}

func (c DetectorConfig) resolveMode() ThresholdMode {
	if c.Mode == "" {
		return ModeStatic
	}
	return c.Mode
}

// EventKind classifies an emergence event by the sign of its curvature.
type EventKind string

const (
	Emergence   EventKind = "emergence"
	Dissolution EventKind = "dissolution"
)

// Event is a single detected point of structural change along an entropy
// trajectory.
type Event struct {
	Index         int       `json:"index"`
	Magnitude     float64   `json:"magnitude"`
	Kind          EventKind `json:"kind"`
	EntropyBefore float64   `json:"entropy_before"`
	EntropyAfter  float64   `json:"entropy_after"`

	// RulesAdded is populated by the engine orchestrator (C7), not by
	// Detect itself, since it requires comparing the grammars immediately
	// before and after the event.
	RulesAdded []string `json:"rules_added,omitempty"`
}

// negativeInfinity stands in for spec's "-∞" initial last_event_index: no
// finite index minus it can ever be smaller than any min_gap.
const negativeInfinity = -(1 << 30)

// Detect computes the Shannon entropy of each grammar in grammars (in
// order) and runs the second-derivative emergence detector over the
// resulting trajectory, per spec §4.6. Returns the entropy trajectory and
// any detected events, in increasing index order. If there are fewer than 3
// grammars, returns the (possibly shorter) entropy trajectory and no
// events, as spec'd.
func Detect(grammars []*Grammar, cfg DetectorConfig) ([]float64, []Event, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	entropies := make([]float64, len(grammars))
	for i, g := range grammars {
		entropies[i] = Entropy(g)
	}

	n := len(entropies)
	if n < 3 {
		return entropies, nil, nil
	}

	d2 := make([]float64, n)
	for i := 1; i <= n-2; i++ {
		d2[i] = entropies[i+1] - 2*entropies[i] + entropies[i-1]
	}

	maxE := entropies[0]
	for _, e := range entropies {
		if e > maxE {
			maxE = e
		}
	}
	denom := maxE
	if denom == 0 {
		denom = 1
	}

	c := make([]float64, n)
	for i := 1; i <= n-2; i++ {
		c[i] = math.Abs(d2[i]) / denom
	}

	theta := cfg.resolveThreshold()
	if cfg.resolveMode() == ModeAdaptive {
		vals := c[1 : n-1]
		if len(vals) > 0 {
			theta = median(vals) + cfg.K*mad(vals)
		}
	}

	minPersistence := cfg.MinPersistence
	if minPersistence < 1 {
		minPersistence = 1
	}

	var events []Event
	run := 0
	active := false
	lastEventIndex := negativeInfinity

	for i := 1; i <= n-2; i++ {
		if c[i] >= theta {
			run++
		} else {
			run = 0
		}

		if !active && run >= minPersistence && (i-lastEventIndex) >= cfg.MinGap {
			kind := Dissolution
			if d2[i] < 0 {
				kind = Emergence
			}

			events = append(events, Event{
				Index:         i,
				Magnitude:     d2[i],
				Kind:          kind,
				EntropyBefore: entropies[i-1],
				EntropyAfter:  entropies[i+1],
			})

			active = true
			lastEventIndex = i
		}

		if active && c[i] <= math.Max(0, theta-cfg.Hysteresis) {
			active = false
		}
	}

	return entropies, events, nil
}

func median(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	s := append([]float64(nil), vals...)
	sort.Float64s(s)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}

func mad(vals []float64) float64 {
	m := median(vals)
	devs := make([]float64, len(vals))
	for i, v := range vals {
		devs[i] = math.Abs(v - m)
	}
	return median(devs)
}

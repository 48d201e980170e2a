package induce

import "sort"

// MDLSnapshot is the three MDL cost components at one point along a
// trajectory (a trace snapshot or a sliding window).
type MDLSnapshot struct {
	Grammar float64 `json:"grammar_cost"`
	Data    float64 `json:"data_cost"`
	Total   float64 `json:"total_cost"`
}

// Result is the structured output of an Engine run, per spec §6.
type Result struct {
	Compressed []string            `json:"compressed"`
	Rules      map[string][]string `json:"rules"`

	MDLTotal         float64 `json:"mdl_total"`
	MDLGrammarCost   float64 `json:"mdl_grammar_cost"`
	MDLDataCost      float64 `json:"mdl_data_cost"`
	NaiveMDL         float64 `json:"naive_mdl"`
	CompressionRatio float64 `json:"compression_ratio"`

	Coverage      float64 `json:"coverage"`
	ValidLossless bool    `json:"valid_lossless"`

	// Populated only when Emergence is enabled.
	Entropies     []float64     `json:"entropies,omitempty"`
	Events        []Event       `json:"events,omitempty"`
	MDLTrajectory []MDLSnapshot `json:"mdl_trajectory,omitempty"`

	// Populated only in sliding-window mode.
	WindowEntropies []float64     `json:"window_entropies,omitempty"`
	WindowMDL       []MDLSnapshot `json:"window_mdl,omitempty"`
	WindowEvents    []Event       `json:"window_events,omitempty"`
}

// EngineConfig bundles the configuration options of spec §6 and is the
// entry point for running the induction pipeline (C7).
type EngineConfig struct {
	// Emergence, if true, runs trace-induction and the emergence detector
	// over the resulting trajectory in the plain pipeline. Sliding-window
	// mode always runs the detector across its window series regardless of
	// this flag, since that is the entire purpose of sliding mode.
	Emergence bool
	Detector  DetectorConfig

	// SlidingWindow enables sliding-window mode when > 0. Zero (the zero
	// value) means disabled; negative is a configuration error.
	SlidingWindow int

	// SlidingStep is the window stride. <= 0 means "auto": SlidingWindow/2,
	// or 1 if that would be zero.
	SlidingStep int

	// AlphabetSize is |Σ|, the size of the original terminal alphabet,
	// supplied by the caller for MDL scoring.
	AlphabetSize int
}

// DefaultEngineConfig returns a plain (non-sliding), non-emergence config
// with an emergence detector pre-populated with spec defaults, ready for a
// caller to enable and override selectively.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Detector: DefaultDetectorConfig(),
	}
}

// Validate checks the configuration for the InvalidConfiguration cases spec
// §7 names.
func (c EngineConfig) Validate() error {
	if c.Emergence {
		if err := c.Detector.Validate(); err != nil {
			return err
		}
	}
	if c.SlidingWindow < 0 {
		return newConfigError("sliding_window must be >= 1 when set")
	}
	if c.SlidingStep < 0 {
		return newConfigError("sliding_step must be >= 0")
	}
	if c.AlphabetSize < 0 {
		return newConfigError("alphabet size must be >= 0")
	}
	return nil
}

// Process runs the induction pipeline over tokens: sliding-window mode if
// SlidingWindow > 0, otherwise the plain pipeline. Returns InvalidConfiguration
// if the config is malformed, and a well-formed empty Result for an empty
// token sequence, per spec §7.
func (c EngineConfig) Process(tokens []string) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}

	if len(tokens) == 0 {
		return emptyResult(), nil
	}

	if c.SlidingWindow > 0 {
		return c.processSliding(tokens)
	}
	return c.processPlain(tokens)
}

func emptyResult() Result {
	gamma0 := float64(EliasGamma(0))
	return Result{
		Compressed:       []string{},
		Rules:            map[string][]string{},
		MDLTotal:         gamma0,
		MDLGrammarCost:   0,
		MDLDataCost:      gamma0,
		NaiveMDL:         gamma0,
		CompressionRatio: 1.0,
		Coverage:         0.0,
		ValidLossless:    true,
	}
}

func (c EngineConfig) processPlain(tokens []string) (Result, error) {
	alphabet := distinctCount(tokens)
	ind := NewInducer()

	var compressed []Symbol
	var grammar *Grammar
	var trace []Snapshot

	if c.Emergence {
		trace, compressed, grammar = ind.InduceTrace(tokens)
	} else {
		compressed, grammar = ind.Induce(tokens)
	}

	score := Score(compressed, grammar, c.AlphabetSize, len(tokens), alphabet)

	res := Result{
		Compressed:       symbolValues(compressed),
		Rules:            grammar.AsTuples(),
		MDLTotal:         score.Total,
		MDLGrammarCost:   score.GrammarCost,
		MDLDataCost:      score.DataCost,
		NaiveMDL:         score.NaiveBaseline,
		CompressionRatio: score.Ratio,
		Coverage:         Coverage(compressed, grammar),
		ValidLossless:    Lossless(tokens, compressed, grammar),
	}

	if c.Emergence {
		grammars := make([]*Grammar, len(trace))
		mdlTraj := make([]MDLSnapshot, len(trace))
		for i, snap := range trace {
			grammars[i] = snap.Grammar
			s := Score(snap.Compressed, snap.Grammar, c.AlphabetSize, len(tokens), alphabet)
			mdlTraj[i] = MDLSnapshot{Grammar: s.GrammarCost, Data: s.DataCost, Total: s.Total}
		}

		entropies, events, err := Detect(grammars, c.Detector)
		if err != nil {
			return Result{}, err
		}
		attributeRulesAdded(events, grammars)

		res.Entropies = entropies
		res.Events = events
		res.MDLTrajectory = mdlTraj
	}

	return res, nil
}

func (c EngineConfig) processSliding(tokens []string) (Result, error) {
	windowSize := c.SlidingWindow
	step := c.SlidingStep
	if step <= 0 {
		step = windowSize / 2
		if step <= 0 {
			step = 1
		}
	}

	var windows [][]string
	for s := 0; s+windowSize <= len(tokens); s += step {
		windows = append(windows, tokens[s:s+windowSize])
	}
	if len(windows) == 0 {
		windows = [][]string{tokens}
	}

	alphabet := distinctCount(tokens)
	ind := NewInducer()

	grammars := make([]*Grammar, len(windows))
	compresseds := make([][]Symbol, len(windows))
	mdlTraj := make([]MDLSnapshot, len(windows))

	for i, w := range windows {
		compressed, g := ind.Induce(w)
		compresseds[i] = compressed
		grammars[i] = g

		// sigma/alphabet for per-window MDL comes from the full token set,
		// not the window, so window scores are comparable to each other.
		s := Score(compressed, g, c.AlphabetSize, len(tokens), alphabet)
		mdlTraj[i] = MDLSnapshot{Grammar: s.GrammarCost, Data: s.DataCost, Total: s.Total}
	}

	entropies, events, err := Detect(grammars, c.Detector)
	if err != nil {
		return Result{}, err
	}
	attributeRulesAdded(events, grammars)

	last := len(windows) - 1
	finalScore := Score(compresseds[last], grammars[last], c.AlphabetSize, len(tokens), alphabet)

	return Result{
		Compressed:       symbolValues(compresseds[last]),
		Rules:            grammars[last].AsTuples(),
		MDLTotal:         finalScore.Total,
		MDLGrammarCost:   finalScore.GrammarCost,
		MDLDataCost:      finalScore.DataCost,
		NaiveMDL:         finalScore.NaiveBaseline,
		CompressionRatio: finalScore.Ratio,
		Coverage:         Coverage(compresseds[last], grammars[last]),
		ValidLossless:    Lossless(windows[last], compresseds[last], grammars[last]),
		WindowEntropies:  entropies,
		WindowMDL:        mdlTraj,
		WindowEvents:     events,
	}, nil
}

// attributeRulesAdded fills in Event.RulesAdded for every event whose index
// has both a preceding and a following grammar in grammars, per spec §4.6's
// event-attribution rule: the sorted set of rule names present in
// grammars[i+1] but not in grammars[i-1].
func attributeRulesAdded(events []Event, grammars []*Grammar) {
	n := len(grammars)
	for i := range events {
		idx := events[i].Index
		if idx < 1 || idx >= n-1 {
			continue
		}

		before := make(map[string]bool)
		for _, name := range grammars[idx-1].RuleNames() {
			before[name] = true
		}

		var added []string
		for _, name := range grammars[idx+1].RuleNames() {
			if !before[name] {
				added = append(added, name)
			}
		}
		sort.Strings(added)
		events[i].RulesAdded = added
	}
}

func distinctCount(tokens []string) int {
	seen := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		seen[t] = true
	}
	return len(seen)
}

func symbolValues(syms []Symbol) []string {
	out := make([]string, len(syms))
	for i, s := range syms {
		out[i] = s.Value
	}
	return out
}

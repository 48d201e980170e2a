/*
Gramctl runs grammar induction, MDL scoring, and emergence detection over a
token stream.

By default it reads all of stdin, tokenizes it, runs the induction engine
once, and prints a human-readable summary table to stdout. With --repl it
instead starts an interactive session, re-running induction on each line
entered and printing the updated summary after it.

Usage:

	gramctl [flags]
	gramctl repl [flags]

The flags are:

	-v, --version
		Give the current version and exit.

	--json
		Print the result as JSON instead of a table.

	--char
		Tokenize by individual rune instead of by whitespace-separated word.

	--fold
		Case-fold tokens to lower case before induction.

	--emergence
		Track the induction trace and run the emergence detector over it.

	--preset NAME
		Use a canned emergence threshold ("sensitive", "balanced", "strict")
		instead of --threshold.

	--threshold FLOAT
		Static curvature threshold for the emergence detector. Default 0.25.

	--mode NAME
		Emergence threshold mode, "static" or "adaptive". Default "static".

	--k FLOAT
		MAD multiplier for adaptive threshold mode. Default 3.0.

	--min-persistence INT
		Consecutive steps curvature must exceed threshold before an event
		fires. Default 1.

	--hysteresis FLOAT
		Margin subtracted from the activation threshold to get the
		deactivation threshold. Default 0.

	--min-gap INT
		Minimum steps between two emitted events. Default 0.

	--sliding-window INT
		Enable sliding-window mode with the given window size.

	--sliding-step INT
		Sliding-window stride. Defaults to half the window size.

	-c, --config FILE
		Load defaults from a TOML settings file before applying flags.
*/
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"github.com/wespiper/ufr-ds/internal/config"
	"github.com/wespiper/ufr-ds/internal/induce"
	"github.com/wespiper/ufr-ds/internal/tokenize"
	"github.com/wespiper/ufr-ds/internal/version"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitConfigError indicates an invalid configuration was supplied.
	ExitConfigError

	// ExitInputError indicates a problem reading or tokenizing input.
	ExitInputError
)

var (
	returnCode int = ExitSuccess

	flagVersion = pflag.BoolP("version", "v", false, "Give the current version and exit")
	flagJSON    = pflag.Bool("json", false, "Print the result as JSON instead of a table")
	flagChar    = pflag.Bool("char", false, "Tokenize by individual rune instead of by word")
	flagFold    = pflag.Bool("fold", false, "Case-fold tokens to lower case before induction")

	flagEmergence     = pflag.Bool("emergence", false, "Track the induction trace and run the emergence detector")
	flagPreset        = pflag.String("preset", "", "Canned emergence threshold: sensitive, balanced, or strict")
	flagThreshold     = pflag.Float64("threshold", 0.25, "Static curvature threshold for the emergence detector")
	flagMode          = pflag.String("mode", "static", "Emergence threshold mode: static or adaptive")
	flagK             = pflag.Float64("k", 3.0, "MAD multiplier for adaptive threshold mode")
	flagMinPersist    = pflag.Int("min-persistence", 1, "Consecutive steps above threshold before an event fires")
	flagHysteresis    = pflag.Float64("hysteresis", 0, "Margin subtracted from activation threshold")
	flagMinGap        = pflag.Int("min-gap", 0, "Minimum steps between two emitted events")
	flagSlidingWindow = pflag.Int("sliding-window", 0, "Enable sliding-window mode with this window size")
	flagSlidingStep   = pflag.Int("sliding-step", 0, "Sliding-window stride (default: half the window size)")

	flagConfigFile = pflag.StringP("config", "c", "", "Load defaults from a TOML settings file")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	cfg, err := resolveEngineConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitConfigError
		return
	}

	args := pflag.Args()
	if len(args) > 0 && args[0] == "repl" {
		returnCode = runREPL(cfg)
		return
	}

	returnCode = runOnce(cfg)
}

func resolveEngineConfig() (induce.EngineConfig, error) {
	cfg := induce.DefaultEngineConfig()

	if *flagConfigFile != "" {
		file, err := config.LoadIfExists(*flagConfigFile)
		if err != nil {
			return cfg, err
		}
		cfg = file.Engine.ToInduce()
	}

	cfg.Emergence = cfg.Emergence || *flagEmergence
	if *flagPreset != "" {
		cfg.Detector.Preset = induce.Preset(*flagPreset)
	}
	if pflag.CommandLine.Changed("threshold") {
		cfg.Detector.Threshold = *flagThreshold
	}
	if pflag.CommandLine.Changed("mode") {
		cfg.Detector.Mode = induce.ThresholdMode(*flagMode)
	}
	if pflag.CommandLine.Changed("k") {
		cfg.Detector.K = *flagK
	}
	if pflag.CommandLine.Changed("min-persistence") {
		cfg.Detector.MinPersistence = *flagMinPersist
	}
	if pflag.CommandLine.Changed("hysteresis") {
		cfg.Detector.Hysteresis = *flagHysteresis
	}
	if pflag.CommandLine.Changed("min-gap") {
		cfg.Detector.MinGap = *flagMinGap
	}
	if pflag.CommandLine.Changed("sliding-window") {
		cfg.SlidingWindow = *flagSlidingWindow
	}
	if pflag.CommandLine.Changed("sliding-step") {
		cfg.SlidingStep = *flagSlidingStep
	}

	return cfg, cfg.Validate()
}

func runOnce(cfg induce.EngineConfig) int {
	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: reading stdin: %s\n", err.Error())
		return ExitInputError
	}

	tokens := tokenize.Whitespace(string(input))
	if *flagChar {
		tokens = tokenize.Character(string(input))
	}
	if *flagFold {
		tokens = tokenize.Fold(tokens)
	}

	cfg.AlphabetSize = distinctAlphabetSize(tokens)

	res, err := cfg.Process(tokens)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		return ExitConfigError
	}

	if *flagJSON {
		out, err := renderJSON(res)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			return ExitInputError
		}
		fmt.Println(out)
		return ExitSuccess
	}

	fmt.Println(renderTable(res))
	return ExitSuccess
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/wespiper/ufr-ds/internal/induce"
	"github.com/wespiper/ufr-ds/internal/input"
	"github.com/wespiper/ufr-ds/internal/tokenize"
)

// runREPL starts an interactive session: each line the user enters is
// tokenized and re-induced from scratch, with the updated summary and any
// newly detected events printed immediately after. This mirrors tqi's
// interactive session loop, but there is no persistent game state between
// lines -- each line is its own independent run.
func runREPL(cfg induce.EngineConfig) int {
	reader, err := input.NewInteractiveReader()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		return ExitInputError
	}
	defer reader.Close()

	for {
		line, err := reader.ReadCommand()
		if err != nil {
			if err == io.EOF {
				return ExitSuccess
			}
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			return ExitInputError
		}

		tokens := tokenize.Whitespace(line)
		cfg.AlphabetSize = distinctAlphabetSize(tokens)

		res, err := cfg.Process(tokens)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			continue
		}

		fmt.Println(renderTable(res))
	}
}

func distinctAlphabetSize(tokens []string) int {
	seen := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		seen[t] = true
	}
	return len(seen)
}

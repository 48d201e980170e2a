package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/dekarrin/rosed"
	"github.com/wespiper/ufr-ds/internal/induce"
	"github.com/wespiper/ufr-ds/internal/util"
)

// renderJSON marshals a Result as indented JSON, for callers that pass
// --json. Nothing in internal/induce does this itself; it is glue code at
// the CLI edge, the same way server/result marshals HTTP bodies.
func renderJSON(res induce.Result) (string, error) {
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}
	return string(b), nil
}

// renderTable formats a Result as a set of human-readable rosed tables: one
// for the MDL/coverage summary, one for rules, and one for detected events
// if any are present.
func renderTable(res induce.Result) string {
	opts := rosed.Options{TableBorders: true}

	text := rosed.Edit("").InsertTableOpts(0, summaryRows(res), 80, opts).String()
	text += "\n\n" + rosed.Edit("").InsertTableOpts(0, ruleRows(res), 80, opts).String()

	if len(res.Events) > 0 {
		text += "\n\n" + rosed.Edit("").InsertTableOpts(0, eventRows(res), 80, opts).String()
	}

	return text
}

func summaryRows(res induce.Result) [][]string {
	rows := [][]string{{"metric", "value"}}
	rows = append(rows,
		[]string{"mdl_total", fmt.Sprintf("%.4f", res.MDLTotal)},
		[]string{"mdl_grammar_cost", fmt.Sprintf("%.4f", res.MDLGrammarCost)},
		[]string{"mdl_data_cost", fmt.Sprintf("%.4f", res.MDLDataCost)},
		[]string{"naive_mdl", fmt.Sprintf("%.4f", res.NaiveMDL)},
		[]string{"compression_ratio", fmt.Sprintf("%.4f", res.CompressionRatio)},
		[]string{"coverage", fmt.Sprintf("%.4f", res.Coverage)},
		[]string{"valid_lossless", fmt.Sprintf("%t", res.ValidLossless)},
	)
	return rows
}

func ruleRows(res induce.Result) [][]string {
	names := make([]string, 0, len(res.Rules))
	for name := range res.Rules {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := [][]string{{"rule", "expansion"}}
	for _, name := range names {
		expansion := ""
		for i, v := range res.Rules[name] {
			if i > 0 {
				expansion += " "
			}
			expansion += v
		}
		rows = append(rows, []string{name, expansion})
	}
	return rows
}

func eventRows(res induce.Result) [][]string {
	rows := [][]string{{"index", "kind", "magnitude", "rules_added"}}
	for _, e := range res.Events {
		added := util.MakeTextList(append([]string(nil), e.RulesAdded...))
		rows = append(rows, []string{
			fmt.Sprintf("%d", e.Index),
			string(e.Kind),
			fmt.Sprintf("%.4f", e.Magnitude),
			added,
		})
	}
	return rows
}

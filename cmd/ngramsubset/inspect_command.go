package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"ngramsubset/internal/artifact"
	"ngramsubset/internal/language"
)

type inspectReport struct {
	Path      string        `json:"path"`
	Type      string        `json:"type"`
	IsSubset  bool          `json:"is_subset"`
	Ngrams    int           `json:"ngrams"`
	Pairs     int           `json:"pairs"`
	Bytes     int           `json:"bytes"`
	Languages []languageRow `json:"languages"`
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "inspect <module.js>",
		Short:       "Summarize an n-gram data module",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := inspectModule(args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			printInspectReport(cmd, report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func inspectModule(path string) (inspectReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return inspectReport{}, fmt.Errorf("read module: %w", err)
	}
	env, err := artifact.Parse(string(data))
	if err != nil {
		return inspectReport{}, fmt.Errorf("inspect %s: %w", filepath.Base(path), err)
	}

	stats := env.Ngrams.Stats()
	report := inspectReport{
		Path:     path,
		Type:     env.Type,
		IsSubset: env.IsSubset,
		Ngrams:   stats.Ngrams,
		Pairs:    stats.Pairs,
		Bytes:    len(data),
	}

	coverage := env.Ngrams.Coverage()
	ids := make([]int, 0, len(env.Languages))
	for id := range env.Languages {
		ids = append(ids, id)
	}
	for id := range coverage {
		if _, ok := env.Languages[id]; !ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	for _, id := range ids {
		code := env.Languages[id]
		n := coverage[id]
		report.Languages = append(report.Languages, languageRow{
			ID:     id,
			Code:   code,
			Name:   language.DisplayName(code),
			Ngrams: &n,
		})
	}
	return report, nil
}

func printInspectReport(cmd *cobra.Command, r inspectReport) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Module:    %s\n", r.Path)
	fmt.Fprintf(out, "Type:      %s\n", r.Type)
	fmt.Fprintf(out, "Subset:    %s\n", yesNo(r.IsSubset))
	fmt.Fprintf(out, "N-grams:   %d (%d frequencies)\n", r.Ngrams, r.Pairs)
	fmt.Fprintf(out, "Size:      %s\n", humanBytes(r.Bytes))
	if len(r.Languages) == 0 {
		fmt.Fprintln(out, "Languages: none")
		return
	}
	rows := make([][]string, 0, len(r.Languages))
	for _, lang := range r.Languages {
		rows = append(rows, []string{strconv.Itoa(lang.ID), lang.Code, lang.Name, strconv.Itoa(*lang.Ngrams)})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"ID", "Code", "Name", "N-grams"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight},
	))
}

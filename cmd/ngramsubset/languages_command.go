package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"ngramsubset/internal/language"
)

type languageRow struct {
	ID     int    `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Ngrams *int   `json:"ngrams,omitempty"`
}

func newLanguagesCommand(ctx *commandContext) *cobra.Command {
	var sourcePath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List the languages a subset can be built from",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			catalog := language.Default()
			var coverage map[int]int
			if strings.TrimSpace(sourcePath) != "" || cfg.Source.Path != "" {
				ds, err := ctx.loadSource(cmd.Context(), cfg, sourcePath)
				if err != nil {
					return err
				}
				catalog = ds.Languages()
				coverage = ds.Table.Coverage()
			}

			entries := catalog.Entries()
			rows := make([]languageRow, 0, len(entries))
			for _, entry := range entries {
				row := languageRow{ID: entry.ID, Code: entry.Code, Name: entry.Name}
				if coverage != nil {
					n := coverage[entry.ID]
					row.Ngrams = &n
				}
				rows = append(rows, row)
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), rows)
			}

			headers := []string{"ID", "Code", "Name"}
			aligns := []columnAlignment{alignRight, alignLeft, alignLeft}
			if coverage != nil {
				headers = append(headers, "N-grams")
				aligns = append(aligns, alignRight)
			}
			table := make([][]string, 0, len(rows))
			for _, row := range rows {
				line := []string{strconv.Itoa(row.ID), row.Code, row.Name}
				if row.Ngrams != nil {
					line = append(line, strconv.Itoa(*row.Ngrams))
				}
				table = append(table, line)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, table, aligns))
			return nil
		},
	}

	cmd.Flags().StringVarP(&sourcePath, "source", "s", "", "Read languages from this n-gram table instead of source.path")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"ngramsubset/internal/config"
	"ngramsubset/internal/exporter"
	"ngramsubset/internal/history"
	"ngramsubset/internal/sink"
)

type buildOptions struct {
	languages []string
	source    string
	formatTag string
	sinkKind  string
	outputDir string
	overwrite bool
	noHistory bool
	json      bool
}

type buildSummary struct {
	RequestID string   `json:"request_id"`
	Empty     bool     `json:"empty"`
	Message   string   `json:"message,omitempty"`
	Filename  string   `json:"filename,omitempty"`
	FormatTag string   `json:"format_tag,omitempty"`
	Languages []string `json:"languages,omitempty"`
	Ngrams    int      `json:"ngrams"`
	Bytes     int      `json:"bytes"`
	Delivered bool     `json:"delivered"`
	Location  string   `json:"location,omitempty"`
	RecordID  string   `json:"record_id,omitempty"`
}

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var opts buildOptions

	cmd := &cobra.Command{
		Use:   "build [language...]",
		Short: "Build a subset data module for the given languages",
		Long: `Build a subset data module containing only the n-gram frequencies of the
given languages. Languages may be ELD ids, ISO codes or English names and can
be passed as arguments or through --languages.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			opts.languages = append(opts.languages, args...)
			return runBuild(cmd, ctx, cfg, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVarP(&opts.languages, "languages", "l", nil, "Languages to keep (comma separated ids, codes or names)")
	flags.StringVarP(&opts.source, "source", "s", "", "Full n-gram table to cut from (overrides source.path)")
	flags.StringVar(&opts.formatTag, "format-tag", "", "Format tag for the filename and type field")
	flags.StringVar(&opts.sinkKind, "sink", "", "Delivery sink: file, stdout, s3, minio or none")
	flags.StringVarP(&opts.outputDir, "output-dir", "o", "", "Directory for the file sink")
	flags.BoolVar(&opts.overwrite, "overwrite", false, "Replace an existing artifact with the same name")
	flags.BoolVar(&opts.noHistory, "no-history", false, "Do not record the export in the history ledger")
	flags.BoolVar(&opts.json, "json", false, "Print the build summary as JSON")
	return cmd
}

func runBuild(cmd *cobra.Command, cmdCtx *commandContext, base *config.Config, opts buildOptions) error {
	cfg := *base
	if err := applyBuildFlags(&cfg, opts); err != nil {
		return err
	}
	if opts.json && cfg.Sink.Kind == config.SinkStdout {
		return errors.New("--json cannot be combined with the stdout sink")
	}

	logger, err := cmdCtx.logger(cmd, &cfg)
	if err != nil {
		return err
	}

	runCtx := cmd.Context()
	ds, err := cmdCtx.loadSource(runCtx, &cfg, opts.source)
	if err != nil {
		return err
	}
	catalog := ds.Languages()
	subset, err := catalog.ParseSubset(opts.languages)
	if err != nil {
		return err
	}

	formatTag := strings.TrimSpace(opts.formatTag)
	if formatTag == "" {
		formatTag = ds.Type
	}
	if formatTag == "" {
		formatTag = cfg.Export.FormatTag
	}

	dst, err := sink.New(runCtx, &cfg, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("create sink: %w", err)
	}

	svcOpts := []exporter.Option{exporter.WithLogger(logger)}
	if cfg.Export.RecordHistory && !subset.Empty() {
		store, err := history.Open(&cfg)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer store.Close()
		svcOpts = append(svcOpts, exporter.WithRecorder(store))
	}

	result, err := exporter.New(dst, svcOpts...).SaveSubset(runCtx, exporter.Request{
		Subset:    subset,
		Table:     ds.Table,
		Lookup:    catalog,
		FormatTag: formatTag,
	})
	if err != nil {
		return err
	}

	summary := summarize(result)
	if opts.json {
		return writeJSON(cmd.OutOrStdout(), summary)
	}

	// The stdout sink owns stdout; the summary goes to stderr instead.
	out := cmd.OutOrStdout()
	if cfg.Sink.Kind == config.SinkStdout {
		out = cmd.ErrOrStderr()
	}
	printBuildSummary(out, summary)
	return nil
}

func applyBuildFlags(cfg *config.Config, opts buildOptions) error {
	if kind := strings.ToLower(strings.TrimSpace(opts.sinkKind)); kind != "" {
		switch kind {
		case config.SinkFile, config.SinkStdout, config.SinkS3, config.SinkMinio, config.SinkNone:
			cfg.Sink.Kind = kind
		default:
			return fmt.Errorf("unknown sink %q (want file, stdout, s3, minio or none)", opts.sinkKind)
		}
	}
	if dir := strings.TrimSpace(opts.outputDir); dir != "" {
		expanded, err := config.ExpandPath(dir)
		if err != nil {
			return fmt.Errorf("resolve output dir: %w", err)
		}
		cfg.Paths.OutputDir = expanded
	}
	if opts.overwrite {
		cfg.Sink.Overwrite = true
	}
	if opts.noHistory {
		cfg.Export.RecordHistory = false
	}
	return cfg.Validate()
}

func summarize(result exporter.Result) buildSummary {
	summary := buildSummary{
		RequestID: result.RequestID,
		Empty:     result.Empty,
		Message:   result.Message,
		Delivered: result.Delivered,
		Location:  result.Location,
		RecordID:  result.RecordID,
	}
	if result.Empty {
		return summary
	}
	art := result.Artifact
	summary.Filename = art.Filename
	summary.FormatTag = art.FormatTag
	summary.Ngrams = art.Stats.Ngrams
	summary.Bytes = art.Size()
	for _, entry := range art.Languages {
		summary.Languages = append(summary.Languages, entry.Code)
	}
	return summary
}

func printBuildSummary(w io.Writer, s buildSummary) {
	colorize := shouldColorize(w)
	if s.Empty {
		fmt.Fprintln(w, renderStatusLine("Build", statusInfo, s.Message, colorize))
		return
	}
	fmt.Fprintln(w, renderStatusLine("Build", statusOK,
		fmt.Sprintf("%s (%s, %d n-grams, %s)", s.Filename, strings.Join(s.Languages, ","), s.Ngrams, humanBytes(s.Bytes)),
		colorize))
	if !s.Delivered {
		fmt.Fprintln(w, renderStatusLine("Delivery", statusWarn, s.Message, colorize))
		return
	}
	fmt.Fprintln(w, renderStatusLine("Delivery", statusOK, s.Location, colorize))
	if s.RecordID != "" {
		fmt.Fprintln(w, renderStatusLine("History", statusInfo, "recorded as "+s.RecordID, colorize))
	}
}

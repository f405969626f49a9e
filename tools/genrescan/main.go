// Extract infobox genres from saved artist pages (or a dump) and
// write them out as a JSON or YAML mapping.
package main

import (
	"compress/bzip2"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	wikigenre "github.com/dustin/go-wikigenre"
	"github.com/dustin/go-wikigenre/artistnet"
	"github.com/dustin/go-wikigenre/config"
)

var (
	configPath string
	outPath    string
	format     string
	top        int
	workers    int
	timeout    string
	dumpPath   string
	indexPath  string
	listPath   string
	verbose    bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "genrescan [dir]",
	Short: "Extract infobox genres from artist wiki pages",
	Long: `genrescan reads one wikitext file per artist from dir (the artist is
named after the file: "The_Clash.txt" is "The Clash"), pulls the genre
field out of each page's infobox and writes artist -> genres.

With --dump it reads a MediaWiki XML dump (optionally .bz2) instead.
Given the multistream index as well, only the streams holding pages
named in --artists are read, in parallel.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runScan,
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "config file (default "+config.DefaultFile+" if present)")
	f.StringVarP(&outPath, "out", "o", "", "output file, - for stdout")
	f.StringVar(&format, "format", "", "output format: json or yaml")
	f.IntVar(&top, "top", 0, "number of most common genres to report")
	f.IntVar(&workers, "workers", 0, "documents parsed in parallel (default GOMAXPROCS)")
	f.StringVar(&timeout, "timeout", "", "per-document time budget, e.g. 2s")
	f.StringVar(&dumpPath, "dump", "", "read pages from a MediaWiki XML dump")
	f.StringVar(&indexPath, "index", "", "multistream index for --dump")
	f.StringVar(&listPath, "artists", "", "only read these artists' pages from an indexed dump (one per line)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// settings merges flags over the config file.
func settings(cmd *cobra.Command) (config.Effective, error) {
	eff, err := config.Load(configPath)
	if err != nil {
		return eff, err
	}
	flags := config.Config{}
	if cmd.Flags().Changed("out") {
		flags.Output = outPath
	}
	if cmd.Flags().Changed("format") {
		flags.Format = format
	}
	if cmd.Flags().Changed("top") {
		flags.Top = top
	}
	if cmd.Flags().Changed("workers") {
		flags.Workers = workers
	}
	if cmd.Flags().Changed("timeout") {
		flags.FileTimeout = timeout
	}
	return flags.Apply(eff)
}

func openSource(eff config.Effective, args []string) (wikigenre.Source, func(), error) {
	if dumpPath != "" && indexPath != "" {
		return openIndexedDump(eff)
	}
	if dumpPath != "" {
		f, err := os.Open(dumpPath)
		if err != nil {
			return nil, nil, err
		}
		var r io.Reader = f
		if strings.HasSuffix(dumpPath, ".bz2") {
			r = bzip2.NewReader(f)
		}
		dr, err := wikigenre.NewDumpReader(r)
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("reading dump header: %w", err)
		}
		logger.Info("reading dump", zap.String("site", dr.SiteInfo.SiteName))
		return dr, func() { f.Close() }, nil
	}

	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	src, n, err := wikigenre.NewDirSource(dir, eff.Extension)
	if err != nil {
		return nil, nil, err
	}
	logger.Info(fmt.Sprintf("found %s %s files to process", humanize.Comma(int64(n)), eff.Extension),
		zap.String("dir", dir))
	return src, func() {}, nil
}

func openIndexedDump(eff config.Effective) (wikigenre.Source, func(), error) {
	var want func(string) bool
	if listPath != "" {
		m, err := artistnet.LoadMatcher(listPath)
		if err != nil {
			return nil, nil, fmt.Errorf("reading artist list: %w", err)
		}
		want = m.Title
	}

	f, err := os.Open(indexPath)
	if err != nil {
		return nil, nil, err
	}
	var r io.Reader = f
	if strings.HasSuffix(indexPath, ".bz2") {
		r = bzip2.NewReader(f)
	}
	streams, err := wikigenre.ReadStreams(r, want)
	f.Close()
	if err != nil {
		return nil, nil, fmt.Errorf("reading index: %w", err)
	}

	workers := eff.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	dr, err := wikigenre.OpenIndexedDump(dumpPath, streams, workers, want)
	if err != nil {
		return nil, nil, err
	}
	logger.Info(fmt.Sprintf("reading %s streams", humanize.Comma(int64(len(streams)))),
		zap.String("site", dr.SiteInfo.SiteName))
	return dr, func() { dr.Close() }, nil
}

// reportedError is an error that has already been logged.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

func runScan(cmd *cobra.Command, args []string) error {
	eff, err := settings(cmd)
	if err != nil {
		return err
	}

	src, done, err := openSource(eff, args)
	if err != nil {
		if errors.Is(err, wikigenre.ErrNoDirectory) {
			logger.Error("input directory does not exist", zap.Error(err))
			return reportedError{err}
		}
		return err
	}
	defer done()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ex := wikigenre.NewExtractor(eff.Policy)
	ex.OnDroppedParenthetical(func(item, p string) {
		logger.Debug("dropped parenthetical", zap.String("item", item), zap.String("parenthetical", p))
	})
	b := &wikigenre.Batch{
		Extractor:   ex,
		Workers:     eff.Workers,
		FileTimeout: eff.FileTimeout,
		Top:         eff.Top,
		Logger:      logger,
	}
	rep, runErr := b.Run(ctx, src)
	if runErr != nil {
		logger.Error("batch stopped early", zap.Error(runErr))
		runErr = reportedError{runErr}
	}

	printSummary(cmd.ErrOrStderr(), rep.Summary)

	if err := writeRecord(cmd.OutOrStdout(), eff, rep.Record); err != nil {
		return err
	}
	return runErr
}

func printSummary(w io.Writer, s wikigenre.Summary) {
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintln(w, "SUMMARY STATISTICS")
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintf(w, "Documents processed: %s\n", humanize.Comma(int64(s.Processed)))
	fmt.Fprintf(w, "  with genres:       %s\n", humanize.Comma(int64(s.WithGenres)))
	fmt.Fprintf(w, "  without genres:    %s (%s unreadable or over budget)\n",
		humanize.Comma(int64(s.WithoutGenres)), humanize.Comma(int64(s.Failed)))
	fmt.Fprintf(w, "Total unique genres: %s\n", humanize.Comma(int64(s.DistinctGenres)))
	if len(s.Top) > 0 {
		fmt.Fprintf(w, "\nTop %d most common genres:\n", len(s.Top))
		for _, gc := range s.Top {
			fmt.Fprintf(w, "  %s: %d artists\n", gc.Genre, gc.Artists)
		}
	}
}

func writeRecord(stdout io.Writer, eff config.Effective, rec *wikigenre.Record) error {
	write := rec.WriteJSON
	if eff.Format == "yaml" {
		write = rec.WriteYAML
	}
	if eff.Output == "-" {
		return write(stdout)
	}

	if dir := filepath.Dir(eff.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(eff.Output)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info("results saved", zap.String("file", eff.Output), zap.Int("artists", rec.Len()))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var logged reportedError
		if !errors.As(err, &logged) {
			fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		}
		os.Exit(1)
	}
}

// Build the artist link network from saved artist pages and write it
// out as GEXF and as a plain edge list.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	wikigenre "github.com/dustin/go-wikigenre"
	"github.com/dustin/go-wikigenre/artistnet"
)

var (
	listPath  string
	ext       string
	gexfPath  string
	edgesPath string
	top       int
	keepAll   bool
	verbose   bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "rocknet [pages-dir]",
	Short: "Build a directed network of artists from their wiki links",
	Long: `rocknet reads the artist list and one saved page per artist, links
artist A to artist B when A's page links to B's, and keeps the largest
connected group of artists.`,
	Args: cobra.MaximumNArgs(1),
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
	RunE: runNet,
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&listPath, "artists", "a", "rock_artists.txt", "artist list, one per line")
	f.StringVar(&ext, "ext", wikigenre.DefaultExtension, "page file extension")
	f.StringVar(&gexfPath, "gexf", "rock_network.gexf", "GEXF output file")
	f.StringVar(&edgesPath, "edges", "rock_network_edges.txt", "edge list output file")
	f.IntVar(&top, "top", 10, "number of best connected artists to report")
	f.BoolVar(&keepAll, "keep-all", false, "don't reduce to the largest component")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func loadPages(dir string) ([]wikigenre.Document, error) {
	paths, err := wikigenre.ListDocuments(dir, ext)
	if err != nil {
		return nil, err
	}
	docs := make([]wikigenre.Document, 0, len(paths))
	for _, p := range paths {
		d, err := wikigenre.ReadDocument(p)
		if err != nil {
			logger.Warn("skipping unreadable page", zap.Error(err))
			continue
		}
		docs = append(docs, d)
	}
	return docs, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runNet(cmd *cobra.Command, args []string) error {
	lf, err := os.Open(listPath)
	if err != nil {
		return fmt.Errorf("opening artist list: %w", err)
	}
	artists, err := artistnet.LoadArtistList(lf)
	lf.Close()
	if err != nil {
		return fmt.Errorf("reading artist list: %w", err)
	}

	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	pages, err := loadPages(dir)
	if err != nil {
		if errors.Is(err, wikigenre.ErrNoDirectory) {
			logger.Error("pages directory does not exist", zap.String("dir", dir))
		}
		return err
	}
	logger.Info(fmt.Sprintf("loaded %s artists and %s pages",
		humanize.Comma(int64(len(artists))), humanize.Comma(int64(len(pages)))))

	n, _ := artistnet.Build(artists, pages, logger)
	logger.Info("built network",
		zap.Int("nodes", n.Nodes()), zap.Int("edges", n.Edges()),
		zap.Int("isolated", len(n.Isolates())))
	if !keepAll {
		n = n.Clean()
		logger.Info("kept largest component", zap.Int("nodes", n.Nodes()), zap.Int("edges", n.Edges()))
	}

	printStats(cmd.OutOrStdout(), n.ComputeStats(top))

	if err := writeFile(gexfPath, n.WriteGEXF); err != nil {
		return fmt.Errorf("writing %v: %w", gexfPath, err)
	}
	if err := writeFile(edgesPath, n.WriteEdgeList); err != nil {
		return fmt.Errorf("writing %v: %w", edgesPath, err)
	}
	logger.Info("saved network", zap.String("gexf", gexfPath), zap.String("edges", edgesPath))
	return nil
}

func printStats(w io.Writer, s artistnet.Stats) {
	fmt.Fprintf(w, "Nodes: %s\n", humanize.Comma(int64(s.Nodes)))
	fmt.Fprintf(w, "Edges: %s\n", humanize.Comma(int64(s.Edges)))
	fmt.Fprintf(w, "Average degree: %.2f\n", s.AverageDegree)
	fmt.Fprintf(w, "\nTop %d by out-degree:\n", len(s.TopOut))
	for _, d := range s.TopOut {
		fmt.Fprintf(w, "  %s: %d\n", d.Artist, d.Degree)
	}
	fmt.Fprintf(w, "\nTop %d by in-degree:\n", len(s.TopIn))
	for _, d := range s.TopIn {
		fmt.Fprintf(w, "  %s: %d\n", d.Artist, d.Degree)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

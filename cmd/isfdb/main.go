package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"github.com/lepinkainen/humanlog"
	"github.com/speclib/isfdb/etree"
	"github.com/speclib/isfdb/goquery"
	"github.com/speclib/isfdb/htmltomarkdown"
	isfdbhttp "github.com/speclib/isfdb/http"
	"github.com/speclib/isfdb/resolve"
	isfdbslog "github.com/speclib/isfdb/slog"
	"github.com/speclib/isfdb/sqlite"
	"github.com/speclib/isfdb/xref"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("isfdb"),
		kong.Description("Resolve book metadata and covers from the speculative fiction catalog"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cli.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(humanlog.NewHandler(stderr, &humanlog.Options{
		Level: level,
	}))
	// Tag every log line with a per-invocation ID so interleaved worker
	// output stays attributable.
	logger = logger.With("run", uuid.NewString())

	// Wire dependencies
	fetchOpts := []isfdbhttp.Option{
		isfdbhttp.WithTimeout(cfg.Timeout),
		isfdbhttp.WithUserAgent(cfg.UserAgent),
	}
	if cfg.Robots {
		fetchOpts = append(fetchOpts, isfdbhttp.WithRobots())
	}
	fetcher := isfdbslog.NewLoggingFetcher(isfdbhttp.NewFetcher(fetchOpts...), logger)

	cache := xref.NewCache()
	db := sqlite.NewDB(cli.CacheFile)
	if err := db.Open(); err != nil {
		return fmt.Errorf("failed to open cache database: %w", err)
	}
	defer db.Close()

	store := sqlite.NewSnapshotStore(db)
	snapshot, err := store.LoadSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to load cache snapshot: %w", err)
	}
	cache.Restore(snapshot)

	details := goquery.NewDetailParser(fetcher,
		goquery.WithLogger(logger),
		goquery.WithCombineSeries(cfg.CombineSeries),
	)

	deps := &Dependencies{
		Ctx:      ctx,
		Stdout:   stdout,
		Stderr:   stderr,
		Logger:   logger,
		Config:   cfg,
		Fetcher:  fetcher,
		Cache:    cache,
		Lookup:   etree.NewPublicationLookup(fetcher),
		Renderer: htmltomarkdown.NewRenderer(),
		Engine: resolve.NewEngine(fetcher, goquery.NewSearchParser(logger), details, cache,
			resolve.WithLogger(logger),
			resolve.WithStagger(cfg.Stagger),
		),
	}

	runErr := kctx.Run(deps)

	// Persist whatever the run learned, even when it failed midway.
	if err := store.SaveSnapshot(ctx, cache.Snapshot()); err != nil {
		logger.Warn("failed to save cache snapshot", "error", err)
	}

	return runErr
}

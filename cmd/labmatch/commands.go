package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/poiesic/labmatch"
	"github.com/poiesic/labmatch/config"
	"github.com/poiesic/labmatch/core"
	"github.com/poiesic/labmatch/match"
	"github.com/poiesic/labmatch/mcpserver"
	"github.com/poiesic/labmatch/report"
	"github.com/poiesic/labmatch/storage"
	"github.com/poiesic/labmatch/storage/badger"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

// Output formats of the search command.
const (
	formatTable    = "table"
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

// loadConfig layers the config file, the env file, the environment and the
// command line flags.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := config.LoadDotEnv(c.String("env-file")); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	overrides := map[string]*string{
		"excel-path":      &cfg.ExcelPath,
		"mapping-file":    &cfg.MappingFile,
		"cache-dir":       &cfg.CacheDir,
		"codelist":        &cfg.Codelist,
		"embedding-host":  &cfg.AI.EmbeddingHost,
		"embedding-model": &cfg.AI.EmbeddingModel,
	}
	for name, dst := range overrides {
		if c.IsSet(name) {
			*dst = c.String(name)
		}
	}
	return cfg, nil
}

// resolveFormat picks the output format. An empty format means a styled
// table on a terminal and markdown otherwise.
func resolveFormat(format string, tty bool) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "":
		if tty {
			return formatTable, nil
		}
		return formatMarkdown, nil
	case formatTable:
		return formatTable, nil
	case formatMarkdown, "md":
		return formatMarkdown, nil
	case formatJSON:
		return formatJSON, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be one of table, markdown, json", format)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a query is required")
	}

	out := c.App.Writer
	tty := isTerminal(out)
	format, err := resolveFormat(c.String("format"), tty)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	opts := []labmatch.MatcherOption{labmatch.WithProgress(os.Stderr)}
	if c.Bool("trace") {
		opts = append(opts, labmatch.WithMonitor(match.NewLogMonitor(slog.Default())))
	}
	m, err := labmatch.NewMatcher(ctx, cfg, opts...)
	if err != nil {
		return err
	}
	defer m.Close()

	topK := c.Int("top-k")
	if topK <= 0 {
		topK = m.DefaultTopK()
	}

	results, err := m.Search(ctx, query, topK)
	if err != nil {
		return err
	}
	if c.Bool("translate") {
		results = m.Translate(ctx, results)
	}

	return writeResults(out, format, results, query, tty)
}

func writeResults(w io.Writer, format string, results []core.MatchResult, query string, tty bool) error {
	switch format {
	case formatJSON:
		return report.WriteJSON(w, results)
	case formatTable:
		_, err := fmt.Fprint(w, report.Terminal(results, query, report.GetStyles(!tty)))
		return err
	default:
		_, err := fmt.Fprintln(w, report.Markdown(results, query))
		return err
	}
}

func buildCacheCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	opts := []labmatch.MatcherOption{labmatch.WithProgress(os.Stderr)}
	if c.Bool("force") {
		opts = append(opts, labmatch.WithRebuild())
	}

	start := time.Now()
	m, err := labmatch.NewMatcher(ctx, cfg, opts...)
	if err != nil {
		return err
	}
	defer m.Close()

	meta := m.Meta()
	fmt.Fprintf(c.App.Writer, "vector set %s: %d records, dimension %d, model %s (cached: %t, %s)\n",
		meta.Fingerprint, meta.RecordCount, meta.Dimension, meta.Model, m.CacheHit(),
		time.Since(start).Round(time.Millisecond))
	return nil
}

// openCache opens the vector cache without loading the corpus.
func openCache(c *cli.Context) (storage.VectorCache, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.CacheDir) == "" {
		return nil, &config.MissingSettingsError{Names: []string{config.EnvCacheDir}}
	}
	return badger.NewVectorCache(cfg.CacheDir)
}

func cacheListCommand(c *cli.Context) error {
	ctx := context.Background()

	cache, err := openCache(c)
	if err != nil {
		return err
	}
	defer cache.Close()

	metas, err := cache.List(ctx)
	if err != nil {
		return err
	}
	if len(metas) == 0 {
		fmt.Fprintln(c.App.Writer, "no cached vector sets")
		return nil
	}
	for _, meta := range metas {
		fmt.Fprintf(c.App.Writer, "%s  records=%d  dim=%d  model=%s  built=%s  source=%s\n",
			meta.Fingerprint, meta.RecordCount, meta.Dimension, meta.Model,
			meta.BuiltAt.Local().Format(time.DateTime), meta.SourcePath)
	}
	return nil
}

func cacheClearCommand(c *cli.Context) error {
	ctx := context.Background()

	var only *core.Fingerprint
	if s := c.String("fingerprint"); s != "" {
		v, err := strconv.ParseUint(s, 16, 64)
		if err != nil {
			return fmt.Errorf("invalid fingerprint %q: %w", s, err)
		}
		fp := core.Fingerprint(v)
		only = &fp
	}

	cache, err := openCache(c)
	if err != nil {
		return err
	}
	defer cache.Close()

	metas, err := cache.List(ctx)
	if err != nil {
		return err
	}

	removed := 0
	for _, meta := range metas {
		if only != nil && meta.Fingerprint != *only {
			continue
		}
		if err := cache.Delete(ctx, meta.Fingerprint); err != nil {
			return fmt.Errorf("removing %s: %w", meta.Fingerprint, err)
		}
		removed++
	}
	if only != nil && removed == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, *only)
	}
	fmt.Fprintf(c.App.Writer, "removed %d cached vector set(s)\n", removed)
	return nil
}

func serveCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	m, err := labmatch.NewMatcher(ctx, cfg, labmatch.WithProgress(os.Stderr))
	if err != nil {
		return err
	}
	defer m.Close()

	server, err := mcpserver.NewServer(m, mcpserver.WithLogger(slog.Default()))
	if err != nil {
		return err
	}
	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

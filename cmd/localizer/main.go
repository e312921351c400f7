// Command localizer generates per-locale translated copies of an HTML site tree.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/developers-fun/localizer"
	"github.com/developers-fun/localizer/cache"
	"github.com/developers-fun/localizer/provider"
)

// Build-time variables (can be overridden with ldflags)
var (
	version   = localizer.Version
	commit    = localizer.GitCommit
	buildDate = localizer.BuildDate
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("localizer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// Flags
	input := fs.String("input", "", "Input root containing the canonical-language .html tree")
	output := fs.String("output", "", "Output root for generated locale trees")
	domain := fs.String("domain", "evaluating.tools", "Site host for canonical/alternate URLs")
	brand := fs.String("brand", "Evaluating.Tools", "Brand token kept verbatim in all translations")
	source := fs.String("source", "en", "Source language code")
	localesFile := fs.String("locales", "", "YAML locale registry file (default: built-in registry)")
	apiKey := fs.String("api-key", "", "OpenAI API key (default: OPENAI_API_KEY env)")
	model := fs.String("model", "gpt-4o-mini", "OpenAI model to use")
	wholeText := fs.Bool("whole-text", false, "Replace whole element text instead of per text node")
	rpm := fs.Int("rpm", 0, "Rate limit in requests per minute (0 to disable)")
	cacheTTL := fs.Int("cache-ttl", 0, "In-memory cache TTL in seconds (0 = run lifetime)")
	redisURL := fs.String("redis", "", "Redis URL for a persistent translation cache")
	exportCache := fs.String("export-cache", "", "Write the run's translation cache to this JSON file")
	importCache := fs.String("import-cache", "", "Seed the translation cache from this JSON file")
	dryRun := fs.Bool("dry-run", false, "List the documents and locales that would be generated")
	verbose := fs.Bool("verbose", false, "Log every generated document")
	quiet := fs.Bool("quiet", false, "Suppress progress output")
	showVersion := fs.Bool("version", false, "Show version")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "%s %s\n", localizer.Name, version)
		if commit != "unknown" && commit != "" {
			fmt.Fprintf(stdout, "  commit:  %s\n", commit)
		}
		if buildDate != "unknown" && buildDate != "" {
			fmt.Fprintf(stdout, "  built:   %s\n", buildDate)
		}
		return nil
	}

	if *input == "" {
		fs.Usage()
		return fmt.Errorf("--input is required")
	}

	logger := newLogger(stderr, *verbose, *quiet)

	// Locale registry
	locales := localizer.DefaultLocales()
	if *localesFile != "" {
		loaded, err := localizer.LoadLocales(*localesFile)
		if err != nil {
			return err
		}
		locales = loaded
	}

	if *dryRun {
		return runDryRun(*input, locales, stdout)
	}

	if *output == "" {
		fs.Usage()
		return fmt.Errorf("--output is required")
	}

	// Get API key
	key := *apiKey
	if key == "" {
		key = os.Getenv("OPENAI_API_KEY")
	}
	if key == "" {
		return fmt.Errorf("OpenAI API key required (--api-key or OPENAI_API_KEY env)")
	}

	// Provider chain: OpenAI wrapped with retry, optionally rate limited
	var p localizer.Provider = provider.NewOpenAIProvider(provider.OpenAIConfig{
		APIKey: key,
		Model:  *model,
	})
	p = localizer.NewRetryableProvider(p, localizer.DefaultRetryConfig())
	if *rpm > 0 {
		p = localizer.NewRateLimitedProvider(p, localizer.RateLimitConfig{RequestsPerMinute: *rpm})
	}

	// Cache
	var c localizer.TranslationCache
	if *redisURL != "" {
		rc, err := cache.NewRedisCache(cache.RedisConfig{URL: *redisURL})
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rc.Close()
		c = rc
	} else {
		c = cache.NewInMemoryCache(*cacheTTL)
	}

	if *importCache != "" {
		result, err := cache.NewImporter(c).ImportFromFile(*importCache)
		if err != nil {
			return fmt.Errorf("importing cache: %w", err)
		}
		logger.Info().Int("imported", result.Imported).Msg("cache seeded")
	}

	translator := localizer.NewTranslator(p,
		localizer.WithCache(c),
		localizer.WithBrandToken(*brand),
		localizer.WithSourceLang(*source),
		localizer.WithLogger(logger),
	)

	cfg := localizer.DefaultTransformConfig(*domain)
	cfg.BrandToken = *brand
	cfg.SourceLang = *source
	cfg.Locales = locales
	if *wholeText {
		cfg.TextMode = localizer.TextWhole
	}

	transformer := localizer.NewTransformer(cfg, translator,
		localizer.WithTransformerLogger(logger))
	walker := localizer.NewWalker(*input, *output, transformer,
		localizer.WithWalkerLogger(logger))

	start := time.Now()
	stats, err := walker.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if *exportCache != "" {
		meta := map[string]string{"domain": *domain, "source": *source}
		if err := cache.NewExporter(c).ExportToFile(*exportCache, meta); err != nil {
			logger.Warn().Err(err).Msg("cache export failed")
		}
	}

	if !*quiet {
		fmt.Fprintf(stderr, "\nDone in %v\n", elapsed.Round(time.Millisecond))
		fmt.Fprintf(stderr, "  Files seen:   %d\n", stats.FilesSeen)
		fmt.Fprintf(stderr, "  Written:      %d\n", stats.DocumentsWritten)
		fmt.Fprintf(stderr, "  Skipped:      %d\n", stats.LocalesSkipped)
	}

	return nil
}

// runDryRun lists the documents and locales a run would generate
// without calling the provider or writing anything.
func runDryRun(inputRoot string, locales []localizer.LocaleDescriptor, stdout io.Writer) error {
	if info, err := os.Stat(inputRoot); err != nil || !info.IsDir() {
		return fmt.Errorf("input root %q is not a directory", inputRoot)
	}

	var codes []string
	for _, l := range locales {
		if l.CreateNew {
			codes = append(codes, l.Code)
		}
	}

	files := 0
	err := filepath.WalkDir(inputRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".html") {
			return nil
		}
		rel, relErr := filepath.Rel(inputRoot, path)
		if relErr != nil {
			rel = path
		}
		files++
		fmt.Fprintf(stdout, "%s\n", rel)
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "\n%d files x %d locales (%s) = %d documents\n",
		files, len(codes), strings.Join(codes, ", "), files*len(codes))
	return nil
}

// newLogger builds the run logger, using a console writer when stderr
// is a terminal.
func newLogger(stderr io.Writer, verbose, quiet bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	if quiet {
		level = zerolog.ErrorLevel
	}

	out := stderr
	if f, ok := stderr.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		out = zerolog.ConsoleWriter{Out: f}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

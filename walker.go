package localizer

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

// Walker enumerates .html documents under an input root and writes one
// localized copy per createNew locale under the output root:
//
//	{outputRoot}/{localeCode}/{relativeDir}/{fileName}
//
// Processing is strictly sequential: one file, one locale, one
// translation call at a time. A failure on one (file, locale) pair is
// logged and skipped; only a missing input root aborts the run.
type Walker struct {
	inputRoot   string
	outputRoot  string
	transformer *Transformer
	logger      zerolog.Logger
}

// WalkerOption is a functional option for configuring the Walker.
type WalkerOption func(*Walker)

// WithWalkerLogger sets the logger used by the Walker.
func WithWalkerLogger(logger zerolog.Logger) WalkerOption {
	return func(w *Walker) {
		w.logger = logger
	}
}

// NewWalker creates a Walker over inputRoot writing under outputRoot.
func NewWalker(inputRoot, outputRoot string, transformer *Transformer, opts ...WalkerOption) *Walker {
	w := &Walker{
		inputRoot:   inputRoot,
		outputRoot:  outputRoot,
		transformer: transformer,
		logger:      zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Run processes the whole tree and reports what it did. The returned
// error is non-nil only for a missing or unreadable input root; all
// per-document failures are logged and counted in the stats.
func (w *Walker) Run(ctx context.Context) (*WalkStats, error) {
	info, err := os.Stat(w.inputRoot)
	if err != nil {
		return nil, &InputRootError{Path: w.inputRoot, Cause: err}
	}
	if !info.IsDir() {
		return nil, &InputRootError{Path: w.inputRoot}
	}

	stats := &WalkStats{}

	err = filepath.WalkDir(w.inputRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Error().Err(err).Str("path", path).Msg("walk error, skipping")
			return nil
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".html") {
			return nil
		}

		stats.FilesSeen++
		w.processFile(ctx, path, stats)
		return nil
	})
	if err != nil {
		return stats, &InputRootError{Path: w.inputRoot, Cause: err}
	}

	return stats, nil
}

// processFile reads one source document and emits every createNew
// locale's copy. The source bytes are read once; each locale parses a
// fresh document so locale transforms stay independent.
func (w *Walker) processFile(ctx context.Context, path string, stats *WalkStats) {
	rel, err := filepath.Rel(w.inputRoot, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	relDir := filepath.Dir(rel)
	fileName := filepath.Base(rel)

	// Index documents take their directory's URL; any other document
	// keeps its file name in the URL so siblings get distinct canonicals.
	urlPath := relDir
	if !strings.EqualFold(fileName, "index.html") {
		urlPath = rel
	}

	data, err := os.ReadFile(path) // #nosec G304 - path comes from walking the input root
	if err != nil {
		w.logger.Error().Err(err).Str("file", rel).Msg("reading source document failed")
		for _, l := range w.transformer.Config().Locales {
			if l.CreateNew {
				stats.LocalesSkipped++
			}
		}
		return
	}

	for _, locale := range w.transformer.Config().Locales {
		if !locale.CreateNew {
			continue
		}

		if err := w.processLocale(ctx, data, locale, relDir, fileName, urlPath); err != nil {
			w.logger.Error().Err(err).
				Str("file", rel).
				Str("locale", locale.Code).
				Msg("localization failed, skipping")
			stats.LocalesSkipped++
			continue
		}

		stats.DocumentsWritten++
		w.logger.Debug().Str("file", rel).Str("locale", locale.Code).Msg("document written")
	}
}

// processLocale transforms one (document, locale) pair and writes the
// result under the output root. urlPath drives canonical URLs, relDir
// and fileName the output location.
func (w *Walker) processLocale(ctx context.Context, data []byte, locale LocaleDescriptor, relDir, fileName, urlPath string) error {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return &TransformError{
			Path:    filepath.Join(relDir, fileName),
			Locale:  locale.Code,
			Message: "parsing HTML",
			Cause:   err,
		}
	}

	if err := w.transformer.Transform(ctx, doc, locale, urlPath); err != nil {
		return err
	}

	out, err := doc.Html()
	if err != nil {
		return &TransformError{
			Path:    filepath.Join(relDir, fileName),
			Locale:  locale.Code,
			Message: "serializing HTML",
			Cause:   err,
		}
	}

	outDir := filepath.Join(w.outputRoot, locale.Code, relDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return &TransformError{
			Path:    filepath.Join(relDir, fileName),
			Locale:  locale.Code,
			Message: "creating output directory",
			Cause:   err,
		}
	}

	outPath := filepath.Join(outDir, fileName)
	if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil { // #nosec G306 - generated site files are world-readable
		return &TransformError{
			Path:    filepath.Join(relDir, fileName),
			Locale:  locale.Code,
			Message: "writing output file",
			Cause:   err,
		}
	}

	return nil
}

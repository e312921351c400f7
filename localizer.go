// Package localizer generates per-locale translated copies of an HTML
// site tree.
//
// Localizer walks a directory of canonical-language HTML documents and,
// for every locale in its registry, emits a localized copy: the html
// lang attribute, canonical and alternate links, meta tags, and internal
// links are rewritten, and visible text is machine-translated through a
// pluggable provider with content-addressed caching. Brand tokens and
// copyright lines are left untouched.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/developers-fun/localizer"
//	    "github.com/developers-fun/localizer/cache"
//	    "github.com/developers-fun/localizer/provider"
//	)
//
//	func main() {
//	    // Create provider
//	    p := provider.NewOpenAIProvider(provider.OpenAIConfig{
//	        APIKey: os.Getenv("OPENAI_API_KEY"),
//	    })
//
//	    // Create translator
//	    t := localizer.NewTranslator(p,
//	        localizer.WithCache(cache.NewInMemoryCache(0)),
//	        localizer.WithBrandToken("Evaluating.Tools"),
//	    )
//
//	    // Transform and write one locale tree per registry entry
//	    tr := localizer.NewTransformer(localizer.DefaultTransformConfig("evaluating.tools"), t)
//	    w := localizer.NewWalker("./site", "./out", tr)
//	    stats, err := w.Run(context.Background())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("wrote %d documents\n", stats.DocumentsWritten)
//	}
package localizer

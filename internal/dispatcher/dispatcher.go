// Package dispatcher routes raw file documents to the chunking strategy
// matching their declared file type.
//
// Resolution order: the explicit file-type table (plain text and data
// formats to generic, markup to markdown), then the extension-to-language
// table for structural chunking (one lazily built, cached structural
// chunker per language), then the generic chunker as the universal default.
// A language whose backend cannot be built is cached as unavailable and
// falls back to generic for the remainder of the run.
package dispatcher

import (
	"log"
	"sync"

	"github.com/repocontext/repochunk/internal/backend"
	"github.com/repocontext/repochunk/internal/chunker"
	"github.com/repocontext/repochunk/pkg/types"
)

// genericTypes maps file types served directly by the generic chunker
var genericTypes = map[string]bool{
	"txt":  true,
	"text": true,
	"json": true,
	"xml":  true,
	"yaml": true,
	"yml":  true,
}

// markdownTypes maps file types served by the markdown chunker
var markdownTypes = map[string]bool{
	"md":       true,
	"markdown": true,
}

// languageTypes maps extension-derived file types to backend language
// identifiers. Extending language coverage means adding rows here; the
// traversal algorithm never changes.
var languageTypes = map[string]string{
	"go":    "go",
	"py":    "python",
	"js":    "javascript",
	"jsx":   "javascript",
	"mjs":   "javascript",
	"ts":    "typescript",
	"tsx":   "tsx",
	"rs":    "rust",
	"java":  "java",
	"c":     "c",
	"h":     "c",
	"cpp":   "cpp",
	"cc":    "cpp",
	"cxx":   "cpp",
	"hpp":   "cpp",
	"rb":    "ruby",
	"php":   "php",
	"cs":    "csharp",
	"kt":    "kotlin",
	"kts":   "kotlin",
	"scala": "scala",
	"swift": "swift",
	"lua":   "lua",
	"sh":    "bash",
	"bash":  "bash",
	"ex":    "elixir",
	"exs":   "elixir",
}

// Dispatcher owns the strategy instances and the per-language structural
// chunker cache. The cache is guarded so callers may chunk files from
// multiple goroutines; the backends themselves serialize parsing.
type Dispatcher struct {
	cfg      chunker.Config
	generic  *chunker.Generic
	markdown *chunker.Markdown

	mu sync.Mutex
	// structural caches one chunker per language identifier; a nil entry
	// records a language whose backend is unavailable for this run
	structural map[string]*chunker.Structural
}

// New creates a dispatcher with its strategy instances
func New(cfg chunker.Config) *Dispatcher {
	return &Dispatcher{
		cfg:        cfg,
		generic:    chunker.NewGeneric(cfg),
		markdown:   chunker.NewMarkdown(cfg),
		structural: make(map[string]*chunker.Structural),
	}
}

// Chunk routes the document to the right strategy and returns its chunks.
// A file that cannot be chunked structurally degrades to generic chunking;
// the only caller-visible failure mode is an empty chunk list.
func (d *Dispatcher) Chunk(doc *types.RawFileDocument) ([]*types.Chunk, error) {
	return d.chunkerFor(doc.Meta.FileType).Chunk(doc)
}

// chunkerFor resolves the strategy for a file type
func (d *Dispatcher) chunkerFor(fileType string) chunker.Chunker {
	if genericTypes[fileType] {
		return d.generic
	}
	if markdownTypes[fileType] {
		return d.markdown
	}
	if language, ok := languageTypes[fileType]; ok {
		if s := d.structuralFor(language); s != nil {
			return s
		}
	}
	return d.generic
}

// structuralFor returns the cached structural chunker for a language,
// building it on first use. Unavailable backends are cached as nil so the
// construction failure is paid once per run.
func (d *Dispatcher) structuralFor(language string) *chunker.Structural {
	d.mu.Lock()
	defer d.mu.Unlock()

	if s, ok := d.structural[language]; ok {
		return s
	}

	b, err := backend.New(language)
	if err != nil {
		log.Printf("WARN: no syntax backend for %q, using generic chunking: %v", language, err)
		d.structural[language] = nil
		return nil
	}

	s := chunker.NewStructural(b, d.cfg)
	d.structural[language] = s
	return s
}

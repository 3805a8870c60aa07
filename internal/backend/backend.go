// Package backend provides the pluggable syntax analyzers consumed by the
// structural chunker.
//
// Two realizations exist behind the same types.Backend interface:
//   - A native go/ast analyzer for Go source (precise symbol spans, doc
//     comments folded into declarations).
//   - A universal tree-sitter analyzer selected by language identifier,
//     covering every other supported language through its grammar table.
//
// Backend instances reuse one parser across calls. The tree-sitter
// backend serializes parses internally, so a shared instance is safe
// under the concurrent ingestion pipeline.
package backend

import (
	"errors"

	"github.com/repocontext/repochunk/pkg/types"
)

// ErrUnsupportedLanguage is returned when no grammar exists for a language
// identifier. Dispatchers cache this as "unavailable" and route the
// language to generic chunking for the rest of the run.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// New constructs the syntax backend for a language identifier. Go is served
// by the native go/ast backend; every other supported language goes through
// tree-sitter.
func New(language string) (types.Backend, error) {
	if language == "go" {
		return newGoBackend(), nil
	}
	return newSitterBackend(language)
}

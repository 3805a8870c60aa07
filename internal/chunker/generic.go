package chunker

import (
	"strings"

	"github.com/repocontext/repochunk/pkg/types"
)

// Generic splits arbitrary text into overlapping fixed-size character
// windows. It is the universal fallback for file types without a semantic
// strategy and the subdivision primitive the other strategies hand
// oversized units to.
type Generic struct {
	cfg Config
}

// NewGeneric creates a generic window chunker
func NewGeneric(cfg Config) *Generic {
	return &Generic{cfg: cfg.normalize()}
}

// Chunk splits the document into text_block chunks. The union of the
// untrimmed windows covers the whole input; windows that trim to nothing
// are skipped, not emitted.
func (g *Generic) Chunk(doc *types.RawFileDocument) ([]*types.Chunk, error) {
	content := doc.Content
	if strings.TrimSpace(content) == "" {
		return nil, nil
	}

	language := doc.Meta.FileType

	index := newLineIndex(content)
	chunks := make([]*types.Chunk, 0)

	step := g.cfg.ChunkSize - g.cfg.ChunkOverlap
	if step < 1 {
		// Misconfigured overlap must not loop forever
		step = 1
	}

	for cursor := 0; cursor < len(content); cursor += step {
		end := cursor + g.cfg.ChunkSize
		if end > len(content) {
			end = len(content)
		}

		window := strings.TrimSpace(content[cursor:end])
		if window == "" {
			continue
		}

		startLine, endLine := index.span(cursor, end)
		chunks = append(chunks, &types.Chunk{
			Content: window,
			Meta:    newMeta(doc.Meta, types.ChunkTextBlock, language, startLine, endLine),
		})
	}

	return chunks, nil
}

// subdivide runs the window chunker over the content of an oversized unit
// and remaps the resulting line numbers into file coordinates by adding
// startOffset (the unit's 0-based start row). The caller retags chunk type
// and stamps name metadata.
func (g *Generic) subdivide(content string, meta types.DocumentMeta, startOffset int) []*types.Chunk {
	sub, _ := g.Chunk(&types.RawFileDocument{Content: content, Meta: meta})
	for _, c := range sub {
		c.Meta.StartLine += startOffset
		c.Meta.EndLine += startOffset
	}
	return sub
}

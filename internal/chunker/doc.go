// Package chunker divides file content into semantic chunks for embedding and search.
//
// Three strategies share one interface:
//   - Generic: fixed-size overlapping character windows; the universal
//     fallback and the subdivision primitive for the other strategies.
//   - Markdown: heading-aware sections with breadcrumb metadata.
//   - Structural: one chunk per named language construct (function, class,
//     method, ...), driven by a pluggable syntax backend.
//
// # Basic Usage
//
//	c := chunker.NewGeneric(chunker.DefaultConfig())
//	chunks, err := c.Chunk(doc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, chunk := range chunks {
//	    fmt.Printf("%s lines %d-%d\n",
//	        chunk.Meta.ChunkType, chunk.Meta.StartLine, chunk.Meta.EndLine)
//	}
//
// # Guarantees
//
// Every strategy upholds the same contract:
//   - Every non-blank line of the input is covered by at least one chunk.
//   - Line spans are 1-indexed, inclusive, and valid against the file.
//   - No chunk's content exceeds the configured chunk size; oversized units
//     are subdivided into "<type>_part" chunks instead of being truncated.
//   - The returned list is sorted by start line.
//   - Chunking the same document twice yields an identical list.
//
// Empty or whitespace-only content yields an empty list, not an error.
//
// # Chunk Sizing
//
// ChunkSize is a soft maximum in characters; ChunkOverlap is the window
// overlap used by the generic strategy and by subdivision. The window
// cursor always advances by at least one character per iteration, so any
// overlap setting terminates.
package chunker

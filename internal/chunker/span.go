package chunker

import (
	"sort"
	"strings"

	"github.com/repocontext/repochunk/pkg/types"
)

// lineIndex maps character offsets in a file to 1-indexed line numbers
type lineIndex struct {
	// starts holds the character offset of each line's first character
	starts []int
	length int
}

// newLineIndex builds the offset table for content.
// Lines follow strings.Split(content, "\n") semantics: a file without a
// trailing newline still contributes its final line, and empty content has
// exactly one (empty) line.
func newLineIndex(content string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{starts: starts, length: len(content)}
}

// lineAt returns the 1-indexed line containing the character at off
func (li *lineIndex) lineAt(off int) int {
	if off < 0 {
		off = 0
	}
	if off > li.length {
		off = li.length
	}
	// Greatest i with starts[i] <= off
	i := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > off }) - 1
	if i < 0 {
		i = 0
	}
	return i + 1
}

// span converts a half-open character range [start, end) to the 1-indexed
// inclusive line pair covering it.
func (li *lineIndex) span(start, end int) (int, int) {
	startLine := li.lineAt(start)
	if end <= start {
		return startLine, startLine
	}
	return startLine, li.lineAt(end - 1)
}

// splitLines splits content into its line sequence
func splitLines(content string) []string {
	return strings.Split(content, "\n")
}

// newMeta builds the common chunk metadata from a document's meta plus
// chunk-specific fields. Optional fields left empty stay absent.
func newMeta(doc types.DocumentMeta, chunkType types.ChunkType, language string, startLine, endLine int) types.ChunkMeta {
	return types.ChunkMeta{
		RepoName:  doc.RepoName,
		FilePath:  doc.FilePath,
		StartLine: startLine,
		EndLine:   endLine,
		ChunkType: chunkType,
		Language:  language,
	}
}

// sortChunks orders chunks by start line, the invariant every strategy
// upholds on its returned list.
func sortChunks(chunks []*types.Chunk) {
	sort.SliceStable(chunks, func(i, j int) bool {
		if chunks[i].Meta.StartLine != chunks[j].Meta.StartLine {
			return chunks[i].Meta.StartLine < chunks[j].Meta.StartLine
		}
		return chunks[i].Meta.EndLine < chunks[j].Meta.EndLine
	})
}

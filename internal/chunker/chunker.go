package chunker

import (
	"github.com/repocontext/repochunk/pkg/types"
)

const (
	// DefaultChunkSize is the default soft maximum chunk length in characters
	DefaultChunkSize = 1500

	// DefaultChunkOverlap is the default overlap between consecutive windows
	DefaultChunkOverlap = 250
)

// Chunker splits one raw file document into an ordered list of chunks
type Chunker interface {
	Chunk(doc *types.RawFileDocument) ([]*types.Chunk, error)
}

// Config carries the two numeric parameters every strategy accepts.
// Values are fixed at construction and never mutated afterwards.
type Config struct {
	ChunkSize    int // Soft maximum content length per chunk, in characters
	ChunkOverlap int // Overlap width for window-based splitting
}

// DefaultConfig returns the standard chunking configuration
func DefaultConfig() Config {
	return Config{
		ChunkSize:    DefaultChunkSize,
		ChunkOverlap: DefaultChunkOverlap,
	}
}

// normalize fills unset fields with defaults
func (c Config) normalize() Config {
	if c.ChunkSize <= 0 {
		c.ChunkSize = DefaultChunkSize
	}
	if c.ChunkOverlap < 0 {
		c.ChunkOverlap = DefaultChunkOverlap
	}
	return c
}

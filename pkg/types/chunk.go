package types

import (
	"fmt"
	"strings"
)

// ChunkType represents the semantic kind of a chunk
type ChunkType string

const (
	ChunkTextBlock      ChunkType = "text_block"
	ChunkTopLevelCode   ChunkType = "top_level_code"
	ChunkHeadingSection ChunkType = "heading_section"
	ChunkFunction       ChunkType = "function"
	ChunkMethod         ChunkType = "method"
	ChunkClass          ChunkType = "class"
	ChunkStruct         ChunkType = "struct"
	ChunkInterface      ChunkType = "interface"
	ChunkModule         ChunkType = "module"
)

// partSuffix marks chunks produced by subdividing an oversized unit
const partSuffix = "_part"

// Part derives the chunk type for a subdivision of an oversized unit
// of this type (e.g. "function" -> "function_part").
func (ct ChunkType) Part() ChunkType {
	return ChunkType(string(ct) + partSuffix)
}

// IsPart reports whether this chunk type is a subdivision of a larger unit
func (ct ChunkType) IsPart() bool {
	return strings.HasSuffix(string(ct), partSuffix)
}

// Base strips the part suffix, returning the type of the original unit
func (ct ChunkType) Base() ChunkType {
	return ChunkType(strings.TrimSuffix(string(ct), partSuffix))
}

// Valid reports whether the chunk type belongs to the closed vocabulary,
// either directly or as a _part derivation of a member.
func (ct ChunkType) Valid() bool {
	switch ct.Base() {
	case ChunkTextBlock, ChunkTopLevelCode, ChunkHeadingSection,
		ChunkFunction, ChunkMethod, ChunkClass, ChunkStruct,
		ChunkInterface, ChunkModule:
		return true
	default:
		return false
	}
}

// ChunkMeta carries the position and structural metadata of a chunk.
// Name, ParentName and Section are optional; absent is the zero value,
// never a sentinel.
type ChunkMeta struct {
	RepoName  string `json:"repo_name"`
	FilePath  string `json:"file_path"`
	StartLine int    `json:"start_line"` // 1-indexed, inclusive
	EndLine   int    `json:"end_line"`   // 1-indexed, inclusive

	ChunkType  ChunkType `json:"chunk_type"`
	Name       string    `json:"name,omitempty"`
	ParentName string    `json:"parent_name,omitempty"`
	Section    string    `json:"section,omitempty"`
	Language   string    `json:"language,omitempty"`
}

// Chunk is one content slice of a file with attached metadata.
// Chunks are created once per ingestion run and are immutable thereafter.
type Chunk struct {
	Content string    `json:"content"`
	Meta    ChunkMeta `json:"meta"`
}

// IdentityKey returns the downstream deduplication key for the chunk
func (c *Chunk) IdentityKey() string {
	return fmt.Sprintf("%s:%s:%d:%d", c.Meta.RepoName, c.Meta.FilePath, c.Meta.StartLine, c.Meta.EndLine)
}

// ValidateContent checks that the content and line span are well-formed
func (c *Chunk) ValidateContent() error {
	if strings.TrimSpace(c.Content) == "" {
		return ErrEmptyContent
	}

	if c.Meta.StartLine < 1 || c.Meta.EndLine < 1 {
		return ErrInvalidLineRange
	}

	if c.Meta.StartLine > c.Meta.EndLine {
		return ErrInvalidLineRange
	}

	return nil
}

// Validate performs comprehensive validation of the chunk
func (c *Chunk) Validate() error {
	if err := c.ValidateContent(); err != nil {
		return err
	}

	if !c.Meta.ChunkType.Valid() {
		return ErrInvalidChunkType
	}

	if c.Meta.RepoName == "" {
		return ErrMissingRepoName
	}

	if c.Meta.FilePath == "" {
		return ErrMissingFilePath
	}

	return nil
}

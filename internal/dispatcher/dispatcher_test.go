package dispatcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repocontext/repochunk/internal/chunker"
	"github.com/repocontext/repochunk/pkg/types"
)

func doc(path, fileType, content string) *types.RawFileDocument {
	return &types.RawFileDocument{
		Content: content,
		Meta: types.DocumentMeta{
			RepoName: "test-repo",
			FilePath: path,
			FileType: fileType,
		},
	}
}

func TestDispatcherRouting(t *testing.T) {
	d := New(chunker.DefaultConfig())

	tests := []struct {
		fileType string
		want     interface{}
	}{
		{"txt", d.generic},
		{"json", d.generic},
		{"yaml", d.generic},
		{"md", d.markdown},
		{"markdown", d.markdown},
		// Unknown extensions default to generic
		{"pdf", d.generic},
		{"", d.generic},
	}

	for _, tt := range tests {
		assert.Same(t, tt.want, d.chunkerFor(tt.fileType), "file type %q", tt.fileType)
	}
}

func TestDispatcherStructuralRouting(t *testing.T) {
	d := New(chunker.DefaultConfig())

	s, ok := d.chunkerFor("go").(*chunker.Structural)
	require.True(t, ok)
	assert.Equal(t, "go", s.Language())

	// Same language resolves to the same cached instance
	again := d.chunkerFor("go").(*chunker.Structural)
	assert.Same(t, s, again)
}

func TestDispatcherUnavailableBackendCached(t *testing.T) {
	d := New(chunker.DefaultConfig())

	assert.Nil(t, d.structuralFor("cobol"))

	// The failure is cached, not retried
	cached, ok := d.structural["cobol"]
	require.True(t, ok)
	assert.Nil(t, cached)
	assert.Nil(t, d.structuralFor("cobol"))
}

func TestDispatcherChunksGoSource(t *testing.T) {
	d := New(chunker.DefaultConfig())

	content := `package sample

import "fmt"

// Greet says hello.
func Greet(name string) string {
	return fmt.Sprintf("hi %s", name)
}

type Counter struct {
	n int
}

func (c *Counter) Add() {
	c.n++
}
`
	chunks, err := d.Chunk(doc("sample.go", "go", content))
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	byName := make(map[string]*types.Chunk)
	var topLevel []*types.Chunk
	for _, c := range chunks {
		if c.Meta.Name != "" {
			byName[c.Meta.Name] = c
		}
		if c.Meta.ChunkType == types.ChunkTopLevelCode {
			topLevel = append(topLevel, c)
		}
		assert.Equal(t, "go", c.Meta.Language)
		require.NoError(t, c.Validate())
	}

	require.Contains(t, byName, "Greet")
	assert.Equal(t, types.ChunkFunction, byName["Greet"].Meta.ChunkType)
	assert.Contains(t, byName["Greet"].Content, "// Greet says hello.")

	require.Contains(t, byName, "Counter")
	assert.Equal(t, types.ChunkStruct, byName["Counter"].Meta.ChunkType)

	require.Contains(t, byName, "Add")
	assert.Equal(t, types.ChunkMethod, byName["Add"].Meta.ChunkType)

	// Package clause and import come back as top-level code
	require.NotEmpty(t, topLevel)
	assert.Contains(t, topLevel[0].Content, "package sample")
}

func TestDispatcherChunksMarkdown(t *testing.T) {
	d := New(chunker.DefaultConfig())

	chunks, err := d.Chunk(doc("README.md", "md", "# Title\n\nbody text\n"))
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, types.ChunkHeadingSection, chunks[0].Meta.ChunkType)
	assert.Equal(t, "Title", chunks[0].Meta.Name)
}

package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repocontext/repochunk/internal/chunker"
	"github.com/repocontext/repochunk/internal/dispatcher"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newPipeline() *Pipeline {
	return New(dispatcher.New(chunker.DefaultConfig()))
}

func TestProcessRepository(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "README.md", "# Project\n\nDocs here.\n")
	writeFile(t, root, "main.go", "package main\n\nfunc main() {\n\tprintln(\"hi\")\n}\n")
	writeFile(t, root, "notes/todo.txt", "remember the milk\n")

	chunks, stats, err := newPipeline().ProcessRepository(context.Background(), root, "myrepo", nil)
	require.NoError(t, err)
	require.NotNil(t, stats)

	assert.Equal(t, 3, stats.FilesProcessed)
	assert.Equal(t, 0, stats.FilesFailed)
	assert.Equal(t, len(chunks), stats.ChunksCreated)
	assert.Empty(t, stats.ErrorMessages)

	paths := make(map[string]bool)
	for _, c := range chunks {
		assert.Equal(t, "myrepo", c.Meta.RepoName)
		assert.False(t, strings.Contains(c.Meta.FilePath, "\\"), "paths use forward slashes")
		require.NoError(t, c.Validate())
		paths[c.Meta.FilePath] = true
	}
	assert.True(t, paths["README.md"])
	assert.True(t, paths["main.go"])
	assert.True(t, paths["notes/todo.txt"])
}

func TestProcessRepositoryFilters(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "keep.py", "import os\n")
	writeFile(t, root, "binary.exe", "not source")
	writeFile(t, root, "empty.go", "")
	writeFile(t, root, "huge.txt", strings.Repeat("x", MaxFileSize+1))
	writeFile(t, root, "node_modules/dep/index.js", "module.exports = 1\n")
	writeFile(t, root, ".git/config", "[core]\n")
	writeFile(t, root, "Makefile", "all:\n\techo ok\n")

	chunks, stats, err := newPipeline().ProcessRepository(context.Background(), root, "myrepo", nil)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.FilesProcessed) // keep.py and Makefile
	assert.Equal(t, 3, stats.FilesSkipped)   // binary.exe, empty.go, huge.txt

	for _, c := range chunks {
		assert.NotContains(t, c.Meta.FilePath, "node_modules")
		assert.NotContains(t, c.Meta.FilePath, ".git")
	}
}

func TestProcessRepositoryDeterministicOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", "alpha\n")
	writeFile(t, root, "b.txt", "bravo\n")
	writeFile(t, root, "c.txt", "charlie\n")

	p := newPipeline()
	first, _, err := p.ProcessRepository(context.Background(), root, "r", &Config{Workers: 4})
	require.NoError(t, err)
	second, _, err := p.ProcessRepository(context.Background(), root, "r", &Config{Workers: 1})
	require.NoError(t, err)

	// Worker interleaving never changes the output order
	require.Len(t, first, 3)
	require.Len(t, second, 3)
	for i := range first {
		assert.Equal(t, first[i].Meta.FilePath, second[i].Meta.FilePath)
	}
	assert.Equal(t, "a.txt", first[0].Meta.FilePath)
	assert.Equal(t, "b.txt", first[1].Meta.FilePath)
	assert.Equal(t, "c.txt", first[2].Meta.FilePath)
}

func TestProcessRepositoryCancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", "alpha\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := newPipeline().ProcessRepository(ctx, root, "r", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileType(t *testing.T) {
	assert.Equal(t, "go", FileType("cmd/main.go"))
	assert.Equal(t, "md", FileType("README.MD"))
	assert.Equal(t, "makefile", FileType("Makefile"))
	assert.Equal(t, "dockerfile", FileType("sub/Dockerfile"))
}

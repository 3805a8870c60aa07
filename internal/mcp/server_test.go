package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repocontext/repochunk/internal/chunker"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := NewServer(t.TempDir(), chunker.DefaultConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.store.Close() })
	return s
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text payload of a tool result
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestServerInitialization(t *testing.T) {
	s := newTestServer(t)
	assert.NotNil(t, s.store)
	assert.NotNil(t, s.pipeline)
	assert.NotNil(t, s.dispatch)
}

func TestHandleChunkFile(t *testing.T) {
	s := newTestServer(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(path, []byte("# Hello\n\nsome text\n"), 0o644))

	result, err := s.handleChunkFile(context.Background(), callRequest(map[string]interface{}{
		"path": path,
	}))
	require.NoError(t, err)

	var response struct {
		FileType   string `json:"file_type"`
		ChunkCount int    `json:"chunk_count"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &response))
	assert.Equal(t, "md", response.FileType)
	assert.Equal(t, 1, response.ChunkCount)
}

func TestHandleChunkFileValidation(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, err := s.handleChunkFile(ctx, callRequest(map[string]interface{}{}))
	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)

	_, err = s.handleChunkFile(ctx, callRequest(map[string]interface{}{
		"path": "relative/path.md",
	}))
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)
}

func TestHandleIndexRepositoryAndStatus(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	repo := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(repo, "a.txt"), []byte("alpha\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(repo, "b.md"), []byte("# B\n\ntext\n"), 0o644))

	result, err := s.handleIndexRepository(ctx, callRequest(map[string]interface{}{
		"path":      repo,
		"repo_name": "demo",
	}))
	require.NoError(t, err)

	var indexed struct {
		Indexed        bool `json:"indexed"`
		FilesProcessed int  `json:"files_processed"`
		ChunksCreated  int  `json:"chunks_created"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &indexed))
	assert.True(t, indexed.Indexed)
	assert.Equal(t, 2, indexed.FilesProcessed)
	assert.Equal(t, 2, indexed.ChunksCreated)

	result, err = s.handleGetStatus(ctx, callRequest(map[string]interface{}{
		"repo_name": "demo",
	}))
	require.NoError(t, err)

	var status struct {
		Indexed    bool   `json:"indexed"`
		RepoName   string `json:"repo_name"`
		FileCount  int    `json:"file_count"`
		ChunkCount int    `json:"chunk_count"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &status))
	assert.True(t, status.Indexed)
	assert.Equal(t, "demo", status.RepoName)
	assert.Equal(t, 2, status.FileCount)
	assert.Equal(t, 2, status.ChunkCount)
}

func TestHandleGetStatusNotIndexed(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleGetStatus(context.Background(), callRequest(map[string]interface{}{
		"repo_name": "nowhere",
	}))
	require.NoError(t, err)

	var status struct {
		Indexed bool `json:"indexed"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &status))
	assert.False(t, status.Indexed)
}

func TestHandleGetStatusListsRepos(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleGetStatus(context.Background(), callRequest(nil))
	require.NoError(t, err)

	var listing struct {
		Repositories []interface{} `json:"repositories"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &listing))
	assert.Empty(t, listing.Repositories)
}

func TestPathValidation(t *testing.T) {
	assert.ErrorIs(t, validateFilePath(""), ErrPathRequired)
	assert.ErrorIs(t, validateFilePath("not/absolute"), ErrPathNotAbsolute)
	assert.ErrorIs(t, validateFilePath("/definitely/not/there.txt"), ErrPathNotFound)

	dir := t.TempDir()
	assert.Error(t, validateFilePath(dir)) // a directory is not a file
	assert.NoError(t, validateDirPath(dir))

	path := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	assert.NoError(t, validateFilePath(path))
	assert.Error(t, validateDirPath(path))
}

func TestParamHelpers(t *testing.T) {
	args := map[string]interface{}{
		"name":    "value",
		"empty":   "",
		"workers": float64(8),
	}

	assert.Equal(t, "value", getStringDefault(args, "name", "d"))
	assert.Equal(t, "d", getStringDefault(args, "empty", "d"))
	assert.Equal(t, "d", getStringDefault(args, "missing", "d"))
	assert.Equal(t, 8, getIntDefault(args, "workers", 4))
	assert.Equal(t, 4, getIntDefault(args, "missing", 4))
}

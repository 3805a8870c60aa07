// Package mcp exposes the chunking engine over the Model Context Protocol.
//
// Three tools are served on stdio: chunk_file (chunk one file and return
// the chunks), index_repository (chunk a repository tree and persist the
// result), and get_status (query what is stored).
package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"

	"github.com/repocontext/repochunk/internal/chunker"
	"github.com/repocontext/repochunk/internal/dispatcher"
	"github.com/repocontext/repochunk/internal/ingest"
	"github.com/repocontext/repochunk/internal/storage"
)

const (
	// ServerName is the MCP server name
	ServerName = "repochunk"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
	// DefaultDBPath is the default location for the database
	DefaultDBPath = "~/.repochunk"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp      *server.MCPServer
	store    storage.Store
	pipeline *ingest.Pipeline
	dispatch *dispatcher.Dispatcher
}

// NewServer creates a new MCP server instance
func NewServer(dbPath string, cfg chunker.Config) (*Server, error) {
	if dbPath == "" || dbPath == DefaultDBPath {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".repochunk")
	}

	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	store, err := storage.NewSQLiteStore(filepath.Join(dbPath, "repochunk.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	dispatch := dispatcher.New(cfg)

	s := &Server{
		mcp:      server.NewMCPServer(ServerName, ServerVersion),
		store:    store,
		pipeline: ingest.New(dispatch),
		dispatch: dispatch,
	}

	s.registerTools()
	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	defer func() { _ = s.store.Close() }()
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(chunkFileTool(), s.handleChunkFile)
	s.mcp.AddTool(indexRepositoryTool(), s.handleIndexRepository)
	s.mcp.AddTool(getStatusTool(), s.handleGetStatus)
}

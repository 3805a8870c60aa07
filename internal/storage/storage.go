// Package storage persists chunk lists produced by the chunking engine.
//
// The store accepts the engine's output verbatim: chunks are keyed by
// (repo_name, file_path, start_line, end_line) and re-ingesting a
// repository replaces its previous chunks. Embeddings and vector search
// belong to a downstream collaborator and are deliberately absent here.
package storage

import (
	"context"
	"errors"

	"github.com/repocontext/repochunk/pkg/types"
)

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")
)

// RepoStatus summarizes the stored state of one repository
type RepoStatus struct {
	RepoName   string
	FileCount  int
	ChunkCount int
}

// Store defines the interface for persisting and querying chunks
type Store interface {
	// SaveChunks replaces the stored chunks for a repository with the
	// given list, verbatim.
	SaveChunks(ctx context.Context, repoName string, chunks []*types.Chunk) error

	// ListChunks returns a repository's chunks ordered by file path and
	// start line.
	ListChunks(ctx context.Context, repoName string) ([]*types.Chunk, error)

	// GetStatus reports the stored state of one repository
	GetStatus(ctx context.Context, repoName string) (*RepoStatus, error)

	// ListRepos returns the status of every stored repository
	ListRepos(ctx context.Context) ([]*RepoStatus, error)

	// Close releases the underlying database
	Close() error
}

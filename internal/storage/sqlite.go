package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/repocontext/repochunk/pkg/types"
)

// SQLiteStore implements the Store interface using SQLite
type SQLiteStore struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// SQLite benefits from a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	return db, nil
}

// NewSQLiteStore creates a new SQLite store at dbPath
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveChunks replaces the repository's stored chunks with the given list
func (s *SQLiteStore) SaveChunks(ctx context.Context, repoName string, chunks []*types.Chunk) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks WHERE repo_name = ?", repoName); err != nil {
		return fmt.Errorf("failed to clear previous chunks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (repo_name, file_path, start_line, end_line,
			chunk_type, name, parent_name, section, language, content)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (repo_name, file_path, start_line, end_line) DO UPDATE SET
			chunk_type = excluded.chunk_type,
			name = excluded.name,
			parent_name = excluded.parent_name,
			section = excluded.section,
			language = excluded.language,
			content = excluded.content`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, chunk := range chunks {
		m := chunk.Meta
		// Rows are bound to the repo being replaced, not whatever the
		// metadata claims, so the delete above always covers them.
		if _, err := stmt.ExecContext(ctx,
			repoName, m.FilePath, m.StartLine, m.EndLine,
			string(m.ChunkType), nullable(m.Name), nullable(m.ParentName),
			nullable(m.Section), nullable(m.Language), chunk.Content); err != nil {
			return fmt.Errorf("failed to insert chunk %s: %w", chunk.IdentityKey(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit chunks: %w", err)
	}

	return nil
}

// ListChunks returns a repository's chunks ordered by file path and start line
func (s *SQLiteStore) ListChunks(ctx context.Context, repoName string) ([]*types.Chunk, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT repo_name, file_path, start_line, end_line,
			chunk_type, name, parent_name, section, language, content
		FROM chunks
		WHERE repo_name = ?
		ORDER BY file_path, start_line, end_line`, repoName)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	chunks := make([]*types.Chunk, 0)
	for rows.Next() {
		var c types.Chunk
		var chunkType string
		var name, parent, section, language sql.NullString

		if err := rows.Scan(&c.Meta.RepoName, &c.Meta.FilePath,
			&c.Meta.StartLine, &c.Meta.EndLine, &chunkType,
			&name, &parent, &section, &language, &c.Content); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}

		c.Meta.ChunkType = types.ChunkType(chunkType)
		c.Meta.Name = name.String
		c.Meta.ParentName = parent.String
		c.Meta.Section = section.String
		c.Meta.Language = language.String

		chunks = append(chunks, &c)
	}

	return chunks, rows.Err()
}

// GetStatus reports the stored state of one repository
func (s *SQLiteStore) GetStatus(ctx context.Context, repoName string) (*RepoStatus, error) {
	status := &RepoStatus{RepoName: repoName}

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT file_path), COUNT(*)
		FROM chunks WHERE repo_name = ?`, repoName).
		Scan(&status.FileCount, &status.ChunkCount)
	if err != nil {
		return nil, fmt.Errorf("failed to query status: %w", err)
	}

	if status.ChunkCount == 0 {
		return nil, ErrNotFound
	}

	return status, nil
}

// ListRepos returns the status of every stored repository
func (s *SQLiteStore) ListRepos(ctx context.Context) ([]*RepoStatus, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT repo_name, COUNT(DISTINCT file_path), COUNT(*)
		FROM chunks GROUP BY repo_name ORDER BY repo_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query repos: %w", err)
	}
	defer func() { _ = rows.Close() }()

	repos := make([]*RepoStatus, 0)
	for rows.Next() {
		var status RepoStatus
		if err := rows.Scan(&status.RepoName, &status.FileCount, &status.ChunkCount); err != nil {
			return nil, fmt.Errorf("failed to scan repo status: %w", err)
		}
		repos = append(repos, &status)
	}

	return repos, rows.Err()
}

// nullable converts an empty string to NULL for optional columns
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

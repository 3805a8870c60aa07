// Package ingest walks a repository checkout, filters files worth
// chunking, and runs them through the chunk dispatcher with a bounded
// worker pool. A file that fails to chunk never fails the run.
package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/repocontext/repochunk/internal/dispatcher"
	"github.com/repocontext/repochunk/pkg/types"
)

// MaxFileSize is the per-file size ceiling; larger files are skipped
const MaxFileSize = 512 * 1024

// allowedExtensions lists the file types worth chunking
var allowedExtensions = map[string]bool{
	"py": true, "js": true, "mjs": true, "ts": true, "jsx": true, "tsx": true,
	"java": true, "c": true, "cpp": true, "cc": true, "cxx": true,
	"h": true, "hpp": true, "go": true, "rb": true, "php": true,
	"cs": true, "swift": true, "kt": true, "kts": true, "rs": true,
	"scala": true, "lua": true, "sh": true, "bash": true, "ex": true, "exs": true,
	"vue": true, "svelte": true, "html": true, "css": true, "scss": true, "less": true,
	"json": true, "xml": true, "yml": true, "yaml": true,
	"md": true, "markdown": true, "txt": true,
}

// allowedBasenames admits extension-less files that still carry structure
var allowedBasenames = map[string]bool{
	"dockerfile": true,
	"makefile":   true,
}

// skipDirs are directory names never descended into
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"__pycache__":  true,
	"dist":         true,
	"build":        true,
	"vendor":       true,
	".venv":        true,
	"venv":         true,
	"target":       true,
}

// Config controls a pipeline run
type Config struct {
	Workers int // Concurrent chunking workers (default: runtime.NumCPU())
}

// Statistics summarizes one pipeline run
type Statistics struct {
	FilesProcessed int
	FilesSkipped   int
	FilesFailed    int
	ChunksCreated  int
	Duration       time.Duration
	ErrorMessages  []string
}

// Pipeline coordinates discovery -> dispatch -> chunk for one repository.
// The dispatcher's structural-chunker cache is safe to share across the
// pipeline's workers.
type Pipeline struct {
	dispatcher *dispatcher.Dispatcher
}

// New creates a pipeline on the given dispatcher
func New(d *dispatcher.Dispatcher) *Pipeline {
	return &Pipeline{dispatcher: d}
}

// ProcessRepository chunks every eligible file under rootPath. The
// returned chunks preserve discovery order between files and start-line
// order within each file, regardless of worker interleaving.
func (p *Pipeline) ProcessRepository(ctx context.Context, rootPath, repoName string, config *Config) ([]*types.Chunk, *Statistics, error) {
	workers := runtime.NumCPU()
	if config != nil && config.Workers > 0 {
		workers = config.Workers
	}

	start := time.Now()
	stats := &Statistics{}

	files, skipped, err := discoverFiles(rootPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to discover files: %w", err)
	}
	stats.FilesSkipped = skipped

	results := make([][]*types.Chunk, len(files))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			chunks, err := p.processFile(rootPath, file, repoName)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				stats.FilesFailed++
				stats.ErrorMessages = append(stats.ErrorMessages, fmt.Sprintf("%s: %v", file, err))
				return nil // one bad file must not fail the run
			}
			stats.FilesProcessed++
			results[i] = chunks
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	all := make([]*types.Chunk, 0)
	for _, chunks := range results {
		all = append(all, chunks...)
	}
	stats.ChunksCreated = len(all)
	stats.Duration = time.Since(start)

	return all, stats, nil
}

// processFile reads one file and dispatches it to a chunking strategy
func (p *Pipeline) processFile(rootPath, path, repoName string) ([]*types.Chunk, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	relPath, err := filepath.Rel(rootPath, path)
	if err != nil {
		relPath = path
	}

	doc := &types.RawFileDocument{
		Content: string(content),
		Meta: types.DocumentMeta{
			RepoName: repoName,
			FilePath: filepath.ToSlash(relPath),
			FileType: FileType(path),
		},
	}

	return p.dispatcher.Chunk(doc)
}

// FileType derives the extension-based type string for a path: the
// lowercase extension without its dot, or the lowercase basename for
// extension-less files like Makefile.
func FileType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != "" {
		return strings.TrimPrefix(ext, ".")
	}
	return strings.ToLower(filepath.Base(path))
}

// discoverFiles walks the repository and returns eligible files in walk
// order, plus the count of files skipped by the filters.
func discoverFiles(rootPath string) ([]string, int, error) {
	var files []string
	skipped := 0

	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if skipDirs[d.Name()] || (d.Name() != "." && strings.HasPrefix(d.Name(), ".") && path != rootPath) {
				return filepath.SkipDir
			}
			return nil
		}

		fileType := FileType(path)
		if !allowedExtensions[fileType] && !allowedBasenames[fileType] {
			skipped++
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.Size() == 0 || info.Size() > MaxFileSize {
			skipped++
			return nil
		}

		files = append(files, path)
		return nil
	})

	return files, skipped, err
}

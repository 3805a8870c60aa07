// Command chunkfile chunks a single file and prints the chunks as JSON,
// one ingestion-ready list on stdout. Useful for inspecting what a given
// file turns into without running the MCP server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/repocontext/repochunk/internal/chunker"
	"github.com/repocontext/repochunk/internal/dispatcher"
	"github.com/repocontext/repochunk/internal/ingest"
	"github.com/repocontext/repochunk/pkg/types"
)

func main() {
	log.SetOutput(os.Stderr)

	var (
		repoName     = flag.String("repo", "adhoc", "repository name stamped on chunk metadata")
		fileType     = flag.String("type", "", "override the extension-derived file type")
		chunkSize    = flag.Int("chunk-size", chunker.DefaultChunkSize, "soft maximum chunk size in characters")
		chunkOverlap = flag.Int("chunk-overlap", chunker.DefaultChunkOverlap, "window overlap in characters")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <file>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	path := flag.Arg(0)
	content, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("failed to read %s: %v", path, err)
	}

	ft := *fileType
	if ft == "" {
		ft = ingest.FileType(path)
	}

	doc := &types.RawFileDocument{
		Content: string(content),
		Meta: types.DocumentMeta{
			RepoName: *repoName,
			FilePath: filepath.ToSlash(path),
			FileType: ft,
		},
	}

	d := dispatcher.New(chunker.Config{
		ChunkSize:    *chunkSize,
		ChunkOverlap: *chunkOverlap,
	})

	chunks, err := d.Chunk(doc)
	if err != nil {
		log.Fatalf("chunking failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(chunks); err != nil {
		log.Fatalf("failed to encode chunks: %v", err)
	}

	log.Printf("%s: %d chunks", path, len(chunks))
}

// Package types provides shared type definitions for the repochunk engine.
//
// This package defines the domain types that flow through the chunking
// pipeline: raw file documents produced by repository ingestion, the chunks
// emitted by the chunking strategies, and the syntax-tree abstraction the
// structural chunker consumes.
//
// # Core Types
//
// RawFileDocument represents one file handed to the engine:
//
//	doc := &types.RawFileDocument{
//	    Content: source,
//	    Meta: types.DocumentMeta{
//	        RepoName: "my-repo",
//	        FilePath: "pkg/server/server.go",
//	        FileType: "go",
//	    },
//	}
//
// Chunk represents one position-addressed slice of a file with structural
// metadata, suitable for embedding and retrieval:
//
//	chunk := &types.Chunk{
//	    Content: functionBody,
//	    Meta: types.ChunkMeta{
//	        RepoName:  "my-repo",
//	        FilePath:  "pkg/server/server.go",
//	        StartLine: 12,
//	        EndLine:   40,
//	        ChunkType: types.ChunkFunction,
//	        Name:      "ListenAndServe",
//	        Language:  "go",
//	    },
//	}
//
// Line numbers are 1-indexed and inclusive against the original file.
//
// # Syntax Backends
//
// Backend abstracts a per-language syntax analyzer. Both realizations (the
// native go/ast backend and the universal tree-sitter backend) return a
// SyntaxTree of SyntaxNode values, so the structural chunker's traversal is
// shared across languages.
//
// # Validation
//
// Domain types implement validation methods to ensure data integrity:
//
//	if err := chunk.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package types

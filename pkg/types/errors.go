package types

import "errors"

// Domain errors for type validation
var (
	ErrEmptyContent     = errors.New("content cannot be empty")
	ErrMissingRepoName  = errors.New("repo name is required")
	ErrMissingFilePath  = errors.New("file path is required")
	ErrInvalidLineRange = errors.New("line range must satisfy 1 <= start_line <= end_line")
	ErrInvalidChunkType = errors.New("invalid chunk type")
)

package types

// DocumentMeta describes the origin of a raw file document
type DocumentMeta struct {
	RepoName string `json:"repo_name"`
	FilePath string `json:"file_path"`
	FileType string `json:"file_type"` // Extension-derived, lowercase, no leading dot
}

// RawFileDocument is one file as produced by repository ingestion.
// It is immutable once constructed; the chunking engine never modifies it.
type RawFileDocument struct {
	Content string       `json:"content"`
	Meta    DocumentMeta `json:"meta"`
}

// Validate checks the input contract for a raw file document
func (d *RawFileDocument) Validate() error {
	if d.Content == "" {
		return ErrEmptyContent
	}

	if d.Meta.RepoName == "" {
		return ErrMissingRepoName
	}

	if d.Meta.FilePath == "" {
		return ErrMissingFilePath
	}

	return nil
}

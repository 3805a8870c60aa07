package types

// SyntaxNode is one node of a parsed source file. Both backend realizations
// (native go/ast and tree-sitter grammars) expose their trees through this
// interface so the structural chunker's traversal is shared.
//
// Line numbers are 0-based rows into the file's line sequence, inclusive on
// both ends. Callers convert to the 1-indexed chunk convention.
type SyntaxNode interface {
	// Type returns the grammar's type tag for this node
	// (e.g. "function_definition", "class_declaration").
	Type() string

	// StartRow and EndRow bound the node's span, 0-based inclusive
	StartRow() int
	EndRow() int

	// ChildCount and Child enumerate all children in source order
	ChildCount() int
	Child(i int) SyntaxNode

	// ChildByField resolves a named child field (e.g. "name"),
	// returning nil if the grammar defines no such field on this node.
	ChildByField(field string) SyntaxNode

	// Text returns the source text covered by this node
	Text() string

	// IsError reports whether this node is a parse-error node.
	// Traversal must not descend into error nodes.
	IsError() bool
}

// SyntaxTree is the result of parsing one file
type SyntaxTree interface {
	// Root returns the tree's root node
	Root() SyntaxNode

	// HasError reports whether any part of the tree failed to parse.
	// A tree with errors is still traversable outside the error regions.
	HasError() bool

	// Close releases parser-owned resources. Safe to call once.
	Close()
}

// Backend is a pluggable syntax analyzer for one language. Implementations
// serialize access to any underlying parser, so one instance may be shared
// across workers.
type Backend interface {
	// Language returns the backend's language identifier (e.g. "python")
	Language() string

	// Parse analyzes source text and returns its syntax tree.
	// An error means the file is unparseable as a whole; callers fall
	// back to generic chunking.
	Parse(content string) (SyntaxTree, error)
}

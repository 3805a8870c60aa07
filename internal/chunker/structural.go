package chunker

import (
	"log"
	"strings"

	"github.com/repocontext/repochunk/pkg/types"
)

// nodeKinds maps grammar node types to semantic chunk kinds. Node types
// absent from the table are structurally transparent: their children are
// traversed and their own lines fall through to top-level recovery.
var nodeKinds = map[string]types.ChunkType{
	// Python
	"function_definition": types.ChunkFunction,
	"class_definition":    types.ChunkClass,

	// JavaScript / TypeScript
	"function_declaration":           types.ChunkFunction,
	"generator_function_declaration": types.ChunkFunction,
	"class_declaration":              types.ChunkClass,
	"method_definition":              types.ChunkMethod,

	// Go (tree-sitter and the native backend share these)
	"method_declaration":    types.ChunkMethod,
	"type_declaration":      types.ChunkStruct,
	"struct_declaration":    types.ChunkStruct,
	"interface_declaration": types.ChunkInterface,

	// Java / C#
	"constructor_declaration": types.ChunkMethod,

	// C / C++ (function_definition is shared with Python above)
	"struct_specifier":     types.ChunkStruct,
	"class_specifier":      types.ChunkClass,
	"namespace_definition": types.ChunkModule,

	// Rust
	"function_item": types.ChunkFunction,
	"struct_item":   types.ChunkStruct,
	"impl_item":     types.ChunkModule,
	"trait_item":    types.ChunkInterface,

	// Ruby
	"class":            types.ChunkClass,
	"method":           types.ChunkMethod,
	"singleton_method": types.ChunkMethod,
	"module":           types.ChunkModule,
}

// nameFields maps node types to the child field holding their identifier
var nameFields = map[string]string{
	"function_definition":            "name",
	"class_definition":               "name",
	"function_declaration":           "name",
	"generator_function_declaration": "name",
	"class_declaration":              "name",
	"method_definition":              "name",
	"method_declaration":             "name",
	"type_declaration":               "name",
	"struct_declaration":             "name",
	"interface_declaration":          "name",
	"constructor_declaration":        "name",
	"struct_specifier":               "name",
	"class_specifier":                "name",
	"namespace_definition":           "name",
	"function_item":                  "name",
	"struct_item":                    "name",
	"impl_item":                      "type",
	"trait_item":                     "name",
	"class":                          "name",
	"method":                         "name",
	"singleton_method":               "name",
	"module":                         "name",
}

// identifierTypes is the fallback set scanned when no field mapping applies
var identifierTypes = map[string]bool{
	"identifier":                    true,
	"type_identifier":               true,
	"field_identifier":              true,
	"property_identifier":           true,
	"constant":                      true,
	"shorthand_property_identifier": true,
}

// commentMarkers are the leading tokens of decorator/comment lines a unit's
// span is extended upward over. This is a heuristic, not a guaranteed
// boundary; see the package documentation.
var commentMarkers = []string{"@", "#", "//", "/*", "*", "--", "'''", `"""`}

// Structural emits one chunk per named language construct found by a
// syntax backend, recovers unclaimed code as top_level_code, and degrades
// to generic window chunking when the file cannot be parsed at all.
type Structural struct {
	cfg     Config
	backend types.Backend
	generic *Generic
}

// NewStructural creates a structural code chunker on the given backend
func NewStructural(backend types.Backend, cfg Config) *Structural {
	cfg = cfg.normalize()
	return &Structural{
		cfg:     cfg,
		backend: backend,
		generic: NewGeneric(cfg),
	}
}

// Language returns the backend's language identifier
func (s *Structural) Language() string {
	return s.backend.Language()
}

// workItem pairs a node with the name of its nearest named enclosing unit
type workItem struct {
	node   types.SyntaxNode
	parent string
}

// Chunk splits the document along its syntax tree. The worklist traversal
// is breadth-first and iterative, so deeply nested code cannot exhaust the
// stack and the enclosing unit's name is always explicit.
func (s *Structural) Chunk(doc *types.RawFileDocument) ([]*types.Chunk, error) {
	if strings.TrimSpace(doc.Content) == "" {
		return nil, nil
	}

	language := s.backend.Language()

	tree, err := s.backend.Parse(doc.Content)
	if err != nil {
		log.Printf("WARN: %s parse failed for %s, falling back to generic chunking: %v",
			language, doc.Meta.FilePath, err)
		return s.genericFallback(doc, language)
	}
	defer tree.Close()

	root := tree.Root()
	if root == nil || root.IsError() {
		log.Printf("WARN: %s parse produced no usable tree for %s, falling back to generic chunking",
			language, doc.Meta.FilePath)
		return s.genericFallback(doc, language)
	}

	lines := splitLines(doc.Content)
	covered := make([]bool, len(lines))
	seen := make(map[[2]int]bool)
	chunks := make([]*types.Chunk, 0)

	worklist := []workItem{{node: root}}
	for len(worklist) > 0 {
		item := worklist[0]
		worklist = worklist[1:]
		node := item.node

		if node.IsError() {
			// Isolate recovery to the erroring region
			continue
		}

		kind, structural := nodeKinds[node.Type()]
		if !structural || node == root {
			for i := 0; i < node.ChildCount(); i++ {
				if child := node.Child(i); child != nil {
					worklist = append(worklist, workItem{node: child, parent: item.parent})
				}
			}
			continue
		}

		start, end := s.unitSpan(node, lines)
		name := s.resolveName(node)

		for i := start; i <= end; i++ {
			covered[i] = true
		}

		span := [2]int{start, end}
		if !seen[span] {
			seen[span] = true

			content := strings.Join(lines[start:end+1], "\n")
			if len(content) > s.cfg.ChunkSize {
				for _, sub := range s.generic.subdivide(content, doc.Meta, start) {
					sub.Meta.ChunkType = kind.Part()
					sub.Meta.Language = language
					sub.Meta.Name = name
					sub.Meta.ParentName = item.parent
					chunks = append(chunks, sub)
				}
			} else {
				meta := newMeta(doc.Meta, kind, language, start+1, end+1)
				meta.Name = name
				meta.ParentName = item.parent
				chunks = append(chunks, &types.Chunk{Content: content, Meta: meta})
			}
		}

		// A unit with no resolvable name is transparent for naming
		childParent := item.parent
		if name != "" {
			childParent = name
		}
		for i := 0; i < node.ChildCount(); i++ {
			if child := node.Child(i); child != nil {
				worklist = append(worklist, workItem{node: child, parent: childParent})
			}
		}
	}

	chunks = s.recoverUncovered(chunks, doc, lines, covered, language)

	sortChunks(chunks)
	return chunks, nil
}

// genericFallback chunks the whole file as windows, keeping the backend's
// language on the emitted chunks.
func (s *Structural) genericFallback(doc *types.RawFileDocument, language string) ([]*types.Chunk, error) {
	chunks, err := s.generic.Chunk(doc)
	if err != nil {
		return nil, err
	}
	for _, c := range chunks {
		c.Meta.Language = language
	}
	return chunks, nil
}

// unitSpan computes a node's 0-based inclusive row span, extended upward
// over immediately preceding decorator and comment lines. Blank lines do
// not extend the span on their own; they only bridge to marker lines above.
func (s *Structural) unitSpan(node types.SyntaxNode, lines []string) (int, int) {
	start := node.StartRow()
	end := node.EndRow()

	if start < 0 {
		start = 0
	}
	if end >= len(lines) {
		end = len(lines) - 1
	}
	if end < start {
		end = start
	}

	for row := start - 1; row >= 0; row-- {
		trimmed := strings.TrimSpace(lines[row])
		if trimmed == "" {
			continue
		}
		if !hasCommentMarker(trimmed) {
			break
		}
		start = row
	}

	return start, end
}

func hasCommentMarker(line string) bool {
	for _, marker := range commentMarkers {
		if strings.HasPrefix(line, marker) {
			return true
		}
	}
	return false
}

// resolveName extracts a node's identifier via the name-field table, with
// a generic scan over direct children for identifier tokens as fallback.
func (s *Structural) resolveName(node types.SyntaxNode) string {
	if field, ok := nameFields[node.Type()]; ok {
		if nameNode := node.ChildByField(field); nameNode != nil {
			return nameNode.Text()
		}
	}

	for i := 0; i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && identifierTypes[child.Type()] {
			return child.Text()
		}
	}

	return ""
}

// recoverUncovered captures imports, module-level statements and any
// construct the backend does not classify: maximal runs of uncovered lines
// are trimmed of blank edges and window-chunked as top_level_code.
func (s *Structural) recoverUncovered(chunks []*types.Chunk, doc *types.RawFileDocument, lines []string, covered []bool, language string) []*types.Chunk {
	runStart := -1

	flush := func(first, last int) {
		// Trim blank edges so the span starts and ends on content
		for first <= last && strings.TrimSpace(lines[first]) == "" {
			first++
		}
		for last >= first && strings.TrimSpace(lines[last]) == "" {
			last--
		}
		if first > last {
			return
		}

		block := strings.Join(lines[first:last+1], "\n")
		for _, sub := range s.generic.subdivide(block, doc.Meta, first) {
			sub.Meta.ChunkType = types.ChunkTopLevelCode
			sub.Meta.Language = language
			chunks = append(chunks, sub)
		}
	}

	for i, isCovered := range covered {
		if !isCovered {
			if runStart == -1 {
				runStart = i
			}
			continue
		}
		if runStart != -1 {
			flush(runStart, i-1)
			runStart = -1
		}
	}
	if runStart != -1 {
		flush(runStart, len(lines)-1)
	}

	return chunks
}

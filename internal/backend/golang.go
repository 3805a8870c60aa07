package backend

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"

	"github.com/repocontext/repochunk/pkg/types"
)

// goBackend is the native single-language analyzer for Go source. It
// builds a shallow synthetic tree from the go/ast parse: one node per
// top-level declaration, with doc comments folded into the span, exposed
// through the same abstraction the tree-sitter backend uses.
type goBackend struct{}

func newGoBackend() *goBackend {
	return &goBackend{}
}

// Language returns the backend's language identifier
func (b *goBackend) Language() string {
	return "go"
}

// Parse analyzes Go source text. Any syntax error is treated as a
// whole-file failure; go/parser's partial trees drop declaration bodies,
// which would break the coverage guarantee.
func (b *goBackend) Parse(content string) (types.SyntaxTree, error) {
	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, "source.go", content, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("go parse: %w", err)
	}

	lines := strings.Split(content, "\n")
	builder := &goTreeBuilder{fset: fset, lines: lines}

	root := &goNode{
		nodeType: "source_file",
		startRow: 0,
		endRow:   len(lines) - 1,
		text:     content,
	}

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			root.children = append(root.children, builder.funcNode(d))
		case *ast.GenDecl:
			if d.Tok == token.TYPE {
				root.children = append(root.children, builder.typeNodes(d)...)
			}
			// Imports, consts and vars stay unclassified; the
			// structural chunker recovers them as top-level code.
		}
	}

	return &goTree{root: root}, nil
}

type goTree struct {
	root *goNode
}

func (t *goTree) Root() types.SyntaxNode { return t.root }
func (t *goTree) HasError() bool         { return false }
func (t *goTree) Close()                 {}

// goNode is one node of the synthetic Go tree
type goNode struct {
	nodeType string
	startRow int // 0-based inclusive
	endRow   int // 0-based inclusive
	text     string
	fields   map[string]*goNode
	children []*goNode
}

func (n *goNode) Type() string   { return n.nodeType }
func (n *goNode) StartRow() int  { return n.startRow }
func (n *goNode) EndRow() int    { return n.endRow }
func (n *goNode) Text() string   { return n.text }
func (n *goNode) IsError() bool  { return false }
func (n *goNode) ChildCount() int { return len(n.children) }

func (n *goNode) Child(i int) types.SyntaxNode {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

func (n *goNode) ChildByField(field string) types.SyntaxNode {
	if child, ok := n.fields[field]; ok {
		return child
	}
	return nil
}

// goTreeBuilder converts ast declarations into goNode values
type goTreeBuilder struct {
	fset  *token.FileSet
	lines []string
}

// rowOf converts a token position to a 0-based row
func (b *goTreeBuilder) rowOf(pos token.Pos) int {
	return b.fset.Position(pos).Line - 1
}

func (b *goTreeBuilder) textBetween(startRow, endRow int) string {
	if startRow < 0 {
		startRow = 0
	}
	if endRow >= len(b.lines) {
		endRow = len(b.lines) - 1
	}
	if startRow > endRow {
		return ""
	}
	return strings.Join(b.lines[startRow:endRow+1], "\n")
}

// identNode builds the synthetic name child for a declaration
func (b *goTreeBuilder) identNode(ident *ast.Ident) *goNode {
	row := b.rowOf(ident.Pos())
	return &goNode{
		nodeType: "identifier",
		startRow: row,
		endRow:   row,
		text:     ident.Name,
	}
}

// funcNode builds a function_declaration or method_declaration node.
// The doc comment, when present, is part of the span.
func (b *goTreeBuilder) funcNode(decl *ast.FuncDecl) *goNode {
	start := decl.Pos()
	if decl.Doc != nil {
		start = decl.Doc.Pos()
	}

	nodeType := "function_declaration"
	if decl.Recv != nil && len(decl.Recv.List) > 0 {
		nodeType = "method_declaration"
	}

	name := b.identNode(decl.Name)
	startRow := b.rowOf(start)
	endRow := b.rowOf(decl.End())

	return &goNode{
		nodeType: nodeType,
		startRow: startRow,
		endRow:   endRow,
		text:     b.textBetween(startRow, endRow),
		fields:   map[string]*goNode{"name": name},
		children: []*goNode{name},
	}
}

// typeNodes builds one node per type spec in a type declaration. A
// single-spec declaration spans the whole decl including the type keyword
// and doc comment; a grouped declaration yields one node per spec.
func (b *goTreeBuilder) typeNodes(decl *ast.GenDecl) []*goNode {
	nodes := make([]*goNode, 0, len(decl.Specs))

	for _, spec := range decl.Specs {
		typeSpec, ok := spec.(*ast.TypeSpec)
		if !ok {
			continue
		}

		nodeType := "type_declaration"
		switch typeSpec.Type.(type) {
		case *ast.StructType:
			nodeType = "struct_declaration"
		case *ast.InterfaceType:
			nodeType = "interface_declaration"
		}

		start := typeSpec.Pos()
		end := typeSpec.End()
		if len(decl.Specs) == 1 {
			start = decl.Pos()
			if decl.Doc != nil {
				start = decl.Doc.Pos()
			}
			end = decl.End()
		} else if typeSpec.Doc != nil {
			start = typeSpec.Doc.Pos()
		}

		name := b.identNode(typeSpec.Name)
		startRow := b.rowOf(start)
		endRow := b.rowOf(end)

		nodes = append(nodes, &goNode{
			nodeType: nodeType,
			startRow: startRow,
			endRow:   endRow,
			text:     b.textBetween(startRow, endRow),
			fields:   map[string]*goNode{"name": name},
			children: []*goNode{name},
		})
	}

	return nodes
}

package backend

import (
	"context"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
	tsc "github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/smacker/go-tree-sitter/elixir"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/kotlin"
	"github.com/smacker/go-tree-sitter/lua"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/scala"
	"github.com/smacker/go-tree-sitter/swift"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	tstype "github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/repocontext/repochunk/pkg/types"
)

// sitterGrammar resolves a language identifier to its tree-sitter grammar
func sitterGrammar(language string) *sitter.Language {
	switch language {
	case "python":
		return python.GetLanguage()
	case "javascript", "jsx":
		return javascript.GetLanguage()
	case "typescript":
		return tstype.GetLanguage()
	case "tsx":
		return tsx.GetLanguage()
	case "rust":
		return rust.GetLanguage()
	case "java":
		return java.GetLanguage()
	case "c":
		return tsc.GetLanguage()
	case "cpp":
		return cpp.GetLanguage()
	case "ruby":
		return ruby.GetLanguage()
	case "php":
		return php.GetLanguage()
	case "csharp":
		return csharp.GetLanguage()
	case "kotlin":
		return kotlin.GetLanguage()
	case "scala":
		return scala.GetLanguage()
	case "swift":
		return swift.GetLanguage()
	case "lua":
		return lua.GetLanguage()
	case "bash":
		return bash.GetLanguage()
	case "elixir":
		return elixir.GetLanguage()
	}
	return nil
}

// sitterBackend is the universal grammar-based analyzer. It holds one
// parser instance and reuses it sequentially; the mutex enforces that when
// the surrounding pipeline chunks files concurrently.
type sitterBackend struct {
	language string

	mu     sync.Mutex
	parser *sitter.Parser
}

func newSitterBackend(language string) (*sitterBackend, error) {
	grammar := sitterGrammar(language)
	if grammar == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, language)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(grammar)

	return &sitterBackend{
		language: language,
		parser:   parser,
	}, nil
}

// Language returns the backend's language identifier
func (b *sitterBackend) Language() string {
	return b.language
}

// Parse analyzes source text with the language's grammar
func (b *sitterBackend) Parse(content string) (types.SyntaxTree, error) {
	src := []byte(content)

	b.mu.Lock()
	tree, err := b.parser.ParseCtx(context.Background(), nil, src)
	b.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse (%s): %w", b.language, err)
	}

	return &sitterTree{tree: tree, src: src}, nil
}

type sitterTree struct {
	tree *sitter.Tree
	src  []byte
}

func (t *sitterTree) Root() types.SyntaxNode {
	return wrapSitterNode(t.tree.RootNode(), t.src)
}

func (t *sitterTree) HasError() bool {
	root := t.tree.RootNode()
	return root == nil || root.HasError()
}

func (t *sitterTree) Close() {
	t.tree.Close()
}

// sitterNode adapts a tree-sitter node to the shared node abstraction
type sitterNode struct {
	node *sitter.Node
	src  []byte
}

func wrapSitterNode(node *sitter.Node, src []byte) types.SyntaxNode {
	if node == nil {
		return nil
	}
	return &sitterNode{node: node, src: src}
}

func (n *sitterNode) Type() string {
	return n.node.Type()
}

func (n *sitterNode) StartRow() int {
	return int(n.node.StartPoint().Row)
}

// EndRow clamps spans that end at column zero: such a node really ends on
// the previous row, and using the raw end point would let a unit claim the
// first line of whatever follows it.
func (n *sitterNode) EndRow() int {
	end := int(n.node.EndPoint().Row)
	if n.node.EndPoint().Column == 0 && end > n.StartRow() {
		end--
	}
	return end
}

func (n *sitterNode) ChildCount() int {
	return int(n.node.ChildCount())
}

func (n *sitterNode) Child(i int) types.SyntaxNode {
	return wrapSitterNode(n.node.Child(i), n.src)
}

func (n *sitterNode) ChildByField(field string) types.SyntaxNode {
	return wrapSitterNode(n.node.ChildByFieldName(field), n.src)
}

func (n *sitterNode) Text() string {
	return n.node.Content(n.src)
}

func (n *sitterNode) IsError() bool {
	return n.node.IsError()
}

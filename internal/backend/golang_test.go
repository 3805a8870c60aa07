package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repocontext/repochunk/pkg/types"
)

const goSample = `// Package sample demonstrates declarations.
package sample

import "fmt"

// Greet says hello.
func Greet(name string) string {
	return fmt.Sprintf("hi %s", name)
}

type Counter struct {
	n int
}

func (c *Counter) Add() {
	c.n++
}

type Runner interface {
	Run() error
}
`

// collect returns root's direct children by node type
func collect(root types.SyntaxNode) map[string][]types.SyntaxNode {
	byType := make(map[string][]types.SyntaxNode)
	for i := 0; i < root.ChildCount(); i++ {
		child := root.Child(i)
		byType[child.Type()] = append(byType[child.Type()], child)
	}
	return byType
}

func TestGoBackendDeclarations(t *testing.T) {
	b := newGoBackend()
	assert.Equal(t, "go", b.Language())

	tree, err := b.Parse(goSample)
	require.NoError(t, err)
	defer tree.Close()

	root := tree.Root()
	require.NotNil(t, root)
	assert.Equal(t, "source_file", root.Type())
	assert.False(t, tree.HasError())

	byType := collect(root)
	require.Len(t, byType["function_declaration"], 1)
	require.Len(t, byType["method_declaration"], 1)
	require.Len(t, byType["struct_declaration"], 1)
	require.Len(t, byType["interface_declaration"], 1)
}

func TestGoBackendSpans(t *testing.T) {
	b := newGoBackend()
	tree, err := b.Parse(goSample)
	require.NoError(t, err)
	defer tree.Close()

	byType := collect(tree.Root())

	// The doc comment is part of the function span (0-based rows)
	fn := byType["function_declaration"][0]
	assert.Equal(t, 5, fn.StartRow())
	assert.Equal(t, 8, fn.EndRow())

	name := fn.ChildByField("name")
	require.NotNil(t, name)
	assert.Equal(t, "identifier", name.Type())
	assert.Equal(t, "Greet", name.Text())

	method := byType["method_declaration"][0]
	methodName := method.ChildByField("name")
	require.NotNil(t, methodName)
	assert.Equal(t, "Add", methodName.Text())

	st := byType["struct_declaration"][0]
	stName := st.ChildByField("name")
	require.NotNil(t, stName)
	assert.Equal(t, "Counter", stName.Text())
	assert.Equal(t, 10, st.StartRow())
	assert.Equal(t, 12, st.EndRow())

	iface := byType["interface_declaration"][0]
	ifaceName := iface.ChildByField("name")
	require.NotNil(t, ifaceName)
	assert.Equal(t, "Runner", ifaceName.Text())
}

func TestGoBackendGroupedTypes(t *testing.T) {
	src := `package sample

type (
	// A is documented.
	A struct{ x int }
	B interface{ Do() }
)
`
	b := newGoBackend()
	tree, err := b.Parse(src)
	require.NoError(t, err)
	defer tree.Close()

	byType := collect(tree.Root())
	require.Len(t, byType["struct_declaration"], 1)
	require.Len(t, byType["interface_declaration"], 1)

	// A grouped spec starts at its own doc comment, not the type keyword
	assert.Equal(t, 3, byType["struct_declaration"][0].StartRow())
	assert.Equal(t, 5, byType["interface_declaration"][0].StartRow())
}

func TestGoBackendSyntaxError(t *testing.T) {
	b := newGoBackend()

	_, err := b.Parse("package sample\n\nfunc broken( {\n")
	assert.Error(t, err)
}

func TestNewBackendSelection(t *testing.T) {
	b, err := New("go")
	require.NoError(t, err)
	assert.Equal(t, "go", b.Language())

	_, err = New("cobol")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repocontext/repochunk/pkg/types"
)

const pythonSample = `import os

def greet(name):
    return "hi " + name

class Greeter:
    def run(self):
        return greet("world")
`

// findFirst walks the tree depth-first for the first node of nodeType
func findFirst(node types.SyntaxNode, nodeType string) types.SyntaxNode {
	if node == nil {
		return nil
	}
	if node.Type() == nodeType {
		return node
	}
	for i := 0; i < node.ChildCount(); i++ {
		if found := findFirst(node.Child(i), nodeType); found != nil {
			return found
		}
	}
	return nil
}

func TestSitterBackendPython(t *testing.T) {
	b, err := newSitterBackend("python")
	require.NoError(t, err)
	assert.Equal(t, "python", b.Language())

	tree, err := b.Parse(pythonSample)
	require.NoError(t, err)
	defer tree.Close()

	root := tree.Root()
	require.NotNil(t, root)
	assert.False(t, tree.HasError())

	fn := findFirst(root, "function_definition")
	require.NotNil(t, fn)
	assert.Equal(t, 2, fn.StartRow())

	name := fn.ChildByField("name")
	require.NotNil(t, name)
	assert.Equal(t, "greet", name.Text())

	class := findFirst(root, "class_definition")
	require.NotNil(t, class)
	className := class.ChildByField("name")
	require.NotNil(t, className)
	assert.Equal(t, "Greeter", className.Text())
}

func TestSitterBackendReportsErrors(t *testing.T) {
	b, err := newSitterBackend("python")
	require.NoError(t, err)

	tree, err := b.Parse("def broken(:\n    pass\n")
	require.NoError(t, err)
	defer tree.Close()

	assert.True(t, tree.HasError())
}

func TestSitterBackendUnsupported(t *testing.T) {
	_, err := newSitterBackend("cobol")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestSitterEndRowClamp(t *testing.T) {
	b, err := newSitterBackend("python")
	require.NoError(t, err)

	// The function body ends on row 1; a raw end point at column 0 of the
	// following row must not pull row 2 into the unit.
	tree, err := b.Parse("def f():\n    pass\nx = 1\n")
	require.NoError(t, err)
	defer tree.Close()

	fn := findFirst(tree.Root(), "function_definition")
	require.NotNil(t, fn)
	assert.Equal(t, 0, fn.StartRow())
	assert.Equal(t, 1, fn.EndRow())
}

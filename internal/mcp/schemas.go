package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// chunkFileTool returns the tool definition for chunk_file
func chunkFileTool() mcp.Tool {
	return mcp.Tool{
		Name:        "chunk_file",
		Description: "Split one source file into semantic chunks and return them without storing",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the file to chunk",
				},
				"repo_name": map[string]interface{}{
					"type":        "string",
					"description": "Repository name stamped on the chunk metadata",
					"default":     "adhoc",
				},
			},
			Required: []string{"path"},
		},
	}
}

// indexRepositoryTool returns the tool definition for index_repository
func indexRepositoryTool() mcp.Tool {
	return mcp.Tool{
		Name:        "index_repository",
		Description: "Chunk every eligible file under a repository root and store the result",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the repository root",
				},
				"repo_name": map[string]interface{}{
					"type":        "string",
					"description": "Name to store the repository's chunks under",
				},
				"workers": map[string]interface{}{
					"type":        "integer",
					"description": "Concurrent chunking workers (default: number of CPUs)",
					"minimum":     1,
				},
			},
			Required: []string{"path", "repo_name"},
		},
	}
}

// getStatusTool returns the tool definition for get_status
func getStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_status",
		Description: "Query stored chunk counts, for one repository or all of them",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"repo_name": map[string]interface{}{
					"type":        "string",
					"description": "Repository name; omit to list every stored repository",
				},
			},
		},
	}
}

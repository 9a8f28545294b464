// Package mcp exposes the catalogue and placement workspace as MCP tools.
package mcp

import (
	"fmt"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"planner/internal/bootstrap"
)

// Session serialises tool calls against one workspace. The workspace is not
// safe for concurrent use and the server may dispatch handlers in parallel.
type Session struct {
	mu sync.Mutex
	w  *bootstrap.Workspace
}

func NewSession(w *bootstrap.Workspace) *Session {
	return &Session{w: w}
}

// Register adds every planner tool to the MCP server.
func Register(s *server.MCPServer, session *Session) {
	RegisterReadTools(s, session)
	RegisterWriteTools(s, session)
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func historyLine(session *Session) string {
	undo, redo := session.w.History.Len()
	return fmt.Sprintf("history: %d undoable, %d redoable", undo, redo)
}

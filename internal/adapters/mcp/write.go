package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"planner/internal/application"
	"planner/internal/application/history"
)

// RegisterWriteTools adds all scene-changing tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, session *Session) {
	s.AddTool(placeObjectTool(), placeObjectHandler(session))
	s.AddTool(undoTool(), undoHandler(session))
	s.AddTool(redoTool(), redoHandler(session))
}

// --- place_object ---

func placeObjectTool() mcp.Tool {
	return mcp.NewTool("place_object",
		mcp.WithDescription("Drag an object from the catalogue along plan points. Doors and windows are bound to the nearest wall at the last point; they cannot be placed in 3D mode."),
		mcp.WithNumber("object_id",
			mcp.Description("Object id (-1 for the free shape)"),
			mcp.Required(),
		),
		mcp.WithString("path",
			mcp.Description(`Plan points "x,y x,y ..."; the last point is the drop position`),
			mcp.Required(),
		),
		mcp.WithString("mode",
			mcp.Description("Edit mode for this and later placements: 2d or 3d. Omit to keep the current mode."),
			mcp.Enum("2d", "3d"),
		),
	)
}

func placeObjectHandler(session *Session) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireInt("object_id")
		if err != nil {
			return toolError(err)
		}
		path, err := application.ParsePath(req.GetString("path", ""))
		if err != nil {
			return toolError(err)
		}

		session.mu.Lock()
		defer session.mu.Unlock()

		if m := req.GetString("mode", ""); m != "" {
			mode, err := application.ParseEditMode(m)
			if err != nil {
				return toolError(err)
			}
			session.w.Mode.Set(mode)
		}

		before := session.w.History.Executed()
		err = session.w.Drag(id, path)
		notices := session.w.Notices.Drain()
		if err != nil {
			if len(notices) > 0 {
				err = fmt.Errorf("%w (%s)", err, strings.Join(notices, "; "))
			}
			return toolError(err)
		}

		var sb strings.Builder
		if session.w.History.Executed() > before {
			top, _ := session.w.History.Top()
			fmt.Fprintf(&sb, "placed: %s\n", history.NameOf(top))
		} else {
			sb.WriteString("nothing placed\n")
		}
		for _, n := range notices {
			fmt.Fprintf(&sb, "notice: %s\n", n)
		}
		sb.WriteString(historyLine(session))
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- undo / redo ---

func undoTool() mcp.Tool {
	return mcp.NewTool("undo",
		mcp.WithDescription("Undo the latest placement."),
	)
}

func undoHandler(session *Session) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		session.mu.Lock()
		defer session.mu.Unlock()

		if !session.w.History.CanUndo() {
			return mcp.NewToolResultText("Nothing to undo."), nil
		}
		top, _ := session.w.History.Top()
		session.w.History.Undo()
		return mcp.NewToolResultText(fmt.Sprintf("undone: %s\n%s", history.NameOf(top), historyLine(session))), nil
	}
}

func redoTool() mcp.Tool {
	return mcp.NewTool("redo",
		mcp.WithDescription("Redo the latest undone placement."),
	)
}

func redoHandler(session *Session) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		session.mu.Lock()
		defer session.mu.Unlock()

		if !session.w.History.CanRedo() {
			return mcp.NewToolResultText("Nothing to redo."), nil
		}
		_, top := session.w.History.Top()
		session.w.History.Redo()
		return mcp.NewToolResultText(fmt.Sprintf("redone: %s\n%s", history.NameOf(top), historyLine(session))), nil
	}
}

package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"planner/internal/adapters/yamlcodec"
	"planner/internal/application/commands"
	"planner/internal/domain"
)

// RegisterReadTools adds all read-only catalogue tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, session *Session) {
	s.AddTool(listCategoriesTool(), listCategoriesHandler(session))
	s.AddTool(listObjectsTool(), listObjectsHandler(session))
	s.AddTool(searchObjectsTool(), searchObjectsHandler(session))
	s.AddTool(listAperturesTool(), listAperturesHandler(session))
	s.AddTool(showObjectTool(), showObjectHandler(session))
	s.AddTool(sceneTool(), sceneHandler(session))
}

// --- list_categories ---

func listCategoriesTool() mcp.Tool {
	return mcp.NewTool("list_categories",
		mcp.WithDescription("List published category groups with object counts. Each group ends with a synthetic \"All\" entry (negative id) covering the whole group."),
	)
}

func listCategoriesHandler(session *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		session.mu.Lock()
		defer session.mu.Unlock()

		groups, _, err := commands.NewListCategoriesCommand(session.w.Objects, session.w.Store).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(groups) == 0 {
			return mcp.NewToolResultText("No categories."), nil
		}

		var sb strings.Builder
		for _, g := range groups {
			fmt.Fprintf(&sb, "%s\n", g.Name)
			for _, c := range g.Categories {
				fmt.Fprintf(&sb, "  %d  %s  (%d)\n", c.ID, c.Name, c.Count)
			}
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- list_objects ---

func listObjectsTool() mcp.Tool {
	return mcp.NewTool("list_objects",
		mcp.WithDescription("List the objects of a category. Use a negative id from list_categories for a whole group."),
		mcp.WithNumber("category_id",
			mcp.Description("Category id"),
			mcp.Required(),
		),
	)
}

func listObjectsHandler(session *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		categoryID, err := req.RequireInt("category_id")
		if err != nil {
			return toolError(err)
		}

		session.mu.Lock()
		defer session.mu.Unlock()

		_, agg, err := commands.NewListCategoriesCommand(session.w.Objects, session.w.Store).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		objs, err := commands.NewListObjectsCommand(session.w.Objects, agg, categoryID).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(objs, formatObject)
	}
}

// --- search_objects ---

func searchObjectsTool() mcp.Tool {
	return mcp.NewTool("search_objects",
		mcp.WithDescription("Search published objects by name or id, best matches first."),
		mcp.WithString("query",
			mcp.Description("Search query (at least 2 characters)"),
			mcp.Required(),
		),
	)
}

func searchObjectsHandler(session *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}

		session.mu.Lock()
		defer session.mu.Unlock()

		results, err := commands.NewSearchCommand(session.w.Objects, query).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, r := range results {
			fmt.Fprintf(&sb, "%d  %s  score=%d\n", r.Object.ID, r.Object.Name, r.Score)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- list_apertures ---

func listAperturesTool() mcp.Tool {
	return mcp.NewTool("list_apertures",
		mcp.WithDescription("List doors and windows that can be bound to a wall on the plan."),
	)
}

func listAperturesHandler(session *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		session.mu.Lock()
		defer session.mu.Unlock()

		objs, err := commands.NewListAperturesCommand(session.w.Objects).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(objs, formatObject)
	}
}

// --- show_object ---

func showObjectTool() mcp.Tool {
	return mcp.NewTool("show_object",
		mcp.WithDescription("Show an object definition as YAML."),
		mcp.WithNumber("object_id",
			mcp.Description("Object id (-1 for the free shape)"),
			mcp.Required(),
		),
	)
}

func showObjectHandler(session *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireInt("object_id")
		if err != nil {
			return toolError(err)
		}

		session.mu.Lock()
		defer session.mu.Unlock()

		obj, err := commands.NewShowObjectCommand(session.w.Objects, id).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		out, err := yamlcodec.NewCodec().Serialize(obj)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(string(out)), nil
	}
}

// --- scene ---

func sceneTool() mcp.Tool {
	return mcp.NewTool("scene",
		mcp.WithDescription("Show the walls and placed objects of the current floor as YAML."),
	)
}

func sceneHandler(session *Session) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		session.mu.Lock()
		defer session.mu.Unlock()

		out, err := session.w.FloorYAML()
		if err != nil {
			return toolError(err)
		}
		var sb strings.Builder
		sb.Write(out)
		sb.WriteString(historyLine(session) + "\n")
		for i, name := range session.w.History.Names() {
			fmt.Fprintf(&sb, "  %d. %s\n", i+1, name)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func formatObject(o *domain.ObjectDefinition) string {
	if o.Flags != 0 {
		return fmt.Sprintf("%d  %s  [%s]", o.ID, o.Name, o.Flags)
	}
	return fmt.Sprintf("%d  %s", o.ID, o.Name)
}

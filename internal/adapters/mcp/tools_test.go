package mcp

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"planner/internal/bootstrap"
	"planner/internal/config"
	"planner/internal/domain"
)

func testSession(t *testing.T) *Session {
	t.Helper()
	cfg := config.Config{
		ObjectsPath:   t.TempDir(),
		MetaFilename:  "catalog.db",
		Mode:          "2d",
		WallProximity: 0.5,
		HistoryDepth:  10,
		LogLevel:      "info",
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	w, err := bootstrap.Open(cfg, logger, bootstrap.OpenOptions{Create: true})
	if err != nil {
		t.Fatalf("failed to open workspace: %v", err)
	}
	t.Cleanup(func() { w.Close() })

	manifest := &domain.CatalogueManifest{
		Groups: []domain.CategoryGroup{
			{ID: 10, Name: "Furniture", Categories: []domain.Category{{ID: 3, Name: "Chairs"}, {ID: 4, Name: "Tables"}}},
			{ID: 20, Name: "Openings", Categories: []domain.Category{{ID: 5, Name: "Doors"}}},
		},
		Objects: []*domain.ObjectDefinition{
			{ID: 1, Name: "Chair", Categories: []int{3}},
			{ID: 2, Name: "Door", Categories: []int{5}, Flags: domain.FlagHoleProvider, PlanSVG: "<svg/>"},
			{ID: 3, Name: "Dining Table", Categories: []int{4}},
		},
	}
	if _, err := w.Import(context.Background(), manifest); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	return NewSession(w)
}

func call(t *testing.T, h server.ToolHandlerFunc, args map[string]any) (string, bool) {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args

	res, err := h(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	var sb strings.Builder
	for _, c := range res.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			sb.WriteString(tc.Text)
		}
	}
	return sb.String(), res.IsError
}

func TestReadTools(t *testing.T) {
	s := testSession(t)

	tests := []struct {
		name    string
		handler server.ToolHandlerFunc
		args    map[string]any
		want    []string
		wantErr bool
	}{
		{
			name:    "categories with synthetic all",
			handler: listCategoriesHandler(s),
			want:    []string{"Furniture", "Chairs  (1)", "-1  All  (2)", "-2  All  (1)"},
		},
		{
			name:    "objects of a group",
			handler: listObjectsHandler(s),
			args:    map[string]any{"category_id": -1},
			want:    []string{"1  Chair", "3  Dining Table"},
		},
		{
			name:    "unknown synthetic category",
			handler: listObjectsHandler(s),
			args:    map[string]any{"category_id": -9},
			wantErr: true,
		},
		{
			name:    "missing category id",
			handler: listObjectsHandler(s),
			wantErr: true,
		},
		{
			name:    "search",
			handler: searchObjectsHandler(s),
			args:    map[string]any{"query": "tab"},
			want:    []string{"3  Dining Table"},
		},
		{
			name:    "empty search",
			handler: searchObjectsHandler(s),
			wantErr: true,
		},
		{
			name:    "apertures",
			handler: listAperturesHandler(s),
			want:    []string{"2  Door  [hole_provider]"},
		},
		{
			name:    "show object",
			handler: showObjectHandler(s),
			args:    map[string]any{"object_id": 2},
			want:    []string{"name: Door", "flags: [hole_provider]"},
		},
		{
			name:    "show unknown object",
			handler: showObjectHandler(s),
			args:    map[string]any{"object_id": 42},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, isErr := call(t, tt.handler, tt.args)
			if isErr != tt.wantErr {
				t.Fatalf("expected error=%v, got %v: %s", tt.wantErr, isErr, out)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("expected %q in output:\n%s", want, out)
				}
			}
		})
	}
}

func TestWriteTools(t *testing.T) {
	s := testSession(t)

	out, isErr := call(t, placeObjectHandler(s), map[string]any{"object_id": 1, "path": "1,1 2,3"})
	if isErr || !strings.Contains(out, "placed: place Chair") {
		t.Fatalf("expected placement, got %q", out)
	}

	out, isErr = call(t, placeObjectHandler(s), map[string]any{"object_id": 2, "path": "3,2"})
	if isErr || !strings.Contains(out, "nothing placed") || !strings.Contains(out, "notice: No available walls nearby") {
		t.Errorf("expected wall notice, got %q", out)
	}

	out, isErr = call(t, placeObjectHandler(s), map[string]any{"object_id": 2, "path": "3,0.2", "mode": "3d"})
	if !isErr || !strings.Contains(out, "3d mode") || !strings.Contains(out, "cannot be added in 3D") {
		t.Errorf("expected 3D refusal, got %q", out)
	}
	if s.w.Mode.Get() != domain.Mode3D {
		t.Error("expected mode to switch to 3d")
	}

	if _, isErr := call(t, placeObjectHandler(s), map[string]any{"object_id": 1, "path": "nope"}); !isErr {
		t.Error("expected error for a bad path")
	}

	out, _ = call(t, undoHandler(s), nil)
	if !strings.Contains(out, "undone: place Chair") || !strings.Contains(out, "0 undoable, 1 redoable") {
		t.Errorf("unexpected undo output %q", out)
	}
	if out, _ = call(t, undoHandler(s), nil); out != "Nothing to undo." {
		t.Errorf("expected nothing to undo, got %q", out)
	}

	out, _ = call(t, redoHandler(s), nil)
	if !strings.Contains(out, "redone: place Chair") {
		t.Errorf("unexpected redo output %q", out)
	}

	out, _ = call(t, sceneHandler(s), nil)
	if !strings.Contains(out, "name: Chair") || !strings.Contains(out, "1 undoable") {
		t.Errorf("unexpected scene output:\n%s", out)
	}
	if !strings.Contains(out, "  1. place Chair\n") {
		t.Errorf("expected the history listed oldest first:\n%s", out)
	}

	if out, _ = call(t, redoHandler(s), nil); out != "Nothing to redo." {
		t.Errorf("expected nothing to redo, got %q", out)
	}
}

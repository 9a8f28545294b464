package commands

import (
	"context"
	"errors"
	"testing"

	"planner/internal/application"
	"planner/internal/domain"
)

func testCatalogue() (*fakeObjects, *fakeCategories) {
	objects := newFakeObjects(
		&domain.ObjectDefinition{ID: 1, Name: "Office chair", Categories: []int{3}},
		&domain.ObjectDefinition{ID: 2, Name: "Dining table", Categories: []int{4}},
		&domain.ObjectDefinition{ID: 3, Name: "Armchair", Categories: []int{3, 4}},
		&domain.ObjectDefinition{ID: 4, Name: "Door", Categories: []int{5}, Flags: domain.FlagHoleProvider},
		&domain.ObjectDefinition{ID: 5, Name: "Draft chair", Categories: []int{domain.UnpublishedCategoryID}},
	)
	categories := &fakeCategories{groups: []domain.CategoryGroup{
		{ID: domain.UnpublishedCategoryID, Name: "Hidden", Categories: []domain.Category{{ID: domain.UnpublishedCategoryID, Name: "Unpublished"}}},
		{ID: 10, Name: "Furniture", Categories: []domain.Category{{ID: 3, Name: "Chairs"}, {ID: 4, Name: "Tables"}}},
		{ID: 11, Name: "Openings", Categories: []domain.Category{{ID: 5, Name: "Doors"}}},
	}}
	return objects, categories
}

func TestListCategoriesCommand(t *testing.T) {
	objects, categories := testCatalogue()

	groups, agg, err := NewListCategoriesCommand(objects, categories).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(groups) != 2 {
		t.Fatalf("expected unpublished group hidden, got %d groups", len(groups))
	}
	furniture := groups[0]
	if furniture.Name != "Furniture" || len(furniture.Categories) != 3 {
		t.Fatalf("expected Furniture with All appended, got %+v", furniture)
	}

	all := furniture.Categories[2]
	if !all.Synthetic || all.Count != 3 {
		t.Errorf("expected synthetic All with 3 distinct objects, got %+v", all)
	}
	if furniture.Categories[0].Count != 2 {
		t.Errorf("expected 2 chairs, got %d", furniture.Categories[0].Count)
	}
	if !agg.IsSynthetic(all.ID) {
		t.Errorf("expected aggregation to know id %d", all.ID)
	}
}

func TestListCategoriesCommand_ProviderError(t *testing.T) {
	objects, _ := testCatalogue()
	boom := errors.New("boom")

	_, _, err := NewListCategoriesCommand(objects, &fakeCategories{err: boom}).Execute(context.Background())
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped provider error, got %v", err)
	}
}

func TestListObjectsCommand(t *testing.T) {
	objects, categories := testCatalogue()
	groups, _ := categories.CategoryGroups()
	_, agg := domain.AggregateCategories(groups)

	tests := []struct {
		name       string
		categoryID int
		wantIDs    []int
		wantErr    bool
		errMsg     string
	}{
		{name: "real category", categoryID: 3, wantIDs: []int{1, 3}},
		{name: "synthetic all resolves to union", categoryID: -2, wantIDs: []int{1, 2, 3}},
		{name: "unknown negative id", categoryID: -42, wantErr: true, errMsg: "unknown category ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewListObjectsCommand(objects, agg, tt.categoryID).Execute(context.Background())
			if tt.wantErr {
				if err == nil || !contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %v", tt.errMsg, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("expected %d objects, got %d", len(tt.wantIDs), len(got))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("expected id %d at %d, got %d", id, i, got[i].ID)
				}
			}
		})
	}
}

func TestShowObjectCommand(t *testing.T) {
	objects, _ := testCatalogue()

	obj, err := NewShowObjectCommand(objects, 2).Execute(context.Background())
	if err != nil || obj.Name != "Dining table" {
		t.Errorf("expected Dining table, got %v %v", obj, err)
	}

	_, err = NewShowObjectCommand(objects, 99).Execute(context.Background())
	if !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListAperturesCommand(t *testing.T) {
	objects, _ := testCatalogue()

	got, err := NewListAperturesCommand(objects).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Door" {
		t.Errorf("expected only Door, got %v", got)
	}
}

func contains(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(substr) == 0 ||
		(len(s) > 0 && len(substr) > 0 && findSubstring(s, substr)))
}

func findSubstring(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}

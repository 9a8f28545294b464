package commands

import (
	"context"
	"testing"

	"planner/internal/domain"
)

func testManifest() *domain.CatalogueManifest {
	return &domain.CatalogueManifest{
		Groups: []domain.CategoryGroup{
			{ID: 10, Name: "Furniture", Categories: []domain.Category{{ID: 3, Name: "Chairs"}}},
		},
		Objects: []*domain.ObjectDefinition{
			{ID: 1, Name: "Chair", Categories: []int{3}},
			{ID: 2, StateID: 20, Name: "Stool", Categories: []int{3}},
		},
	}
}

func TestImportCatalogueCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(m *domain.CatalogueManifest)
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid manifest",
			mutate: func(m *domain.CatalogueManifest) {},
		},
		{
			name:    "duplicate object id",
			mutate:  func(m *domain.CatalogueManifest) { m.Objects[1].ID = 1 },
			wantErr: true,
			errMsg:  "duplicate object ID",
		},
		{
			name:    "missing name",
			mutate:  func(m *domain.CatalogueManifest) { m.Objects[0].Name = " " },
			wantErr: true,
			errMsg:  "name is required",
		},
		{
			name:    "no category",
			mutate:  func(m *domain.CatalogueManifest) { m.Objects[0].Categories = nil },
			wantErr: true,
			errMsg:  "has no category",
		},
		{
			name:    "unknown category",
			mutate:  func(m *domain.CatalogueManifest) { m.Objects[0].Categories = []int{77} },
			wantErr: true,
			errMsg:  "unknown category ID: 77",
		},
		{
			name:    "negative object id",
			mutate:  func(m *domain.CatalogueManifest) { m.Objects[0].ID = -1 },
			wantErr: true,
			errMsg:  "positive ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testManifest()
			tt.mutate(m)
			err := NewImportCatalogueCommand(&fakeStore{}, &fakeBodies{}, m).Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.errMsg)
					return
				}
				if !contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestImportCatalogueCommand_Execute(t *testing.T) {
	t.Run("commits metadata and writes bodies", func(t *testing.T) {
		store := &fakeStore{}
		bodies := &fakeBodies{}

		stats, err := NewImportCatalogueCommand(store, bodies, testManifest()).Execute(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !store.committed || store.rolled {
			t.Errorf("expected commit without rollback, committed=%v rolled=%v", store.committed, store.rolled)
		}
		if stats.ObjectsUpserted != 2 || stats.BodiesWritten != 2 || stats.CategoriesUpserted != 1 {
			t.Errorf("unexpected stats %+v", stats)
		}
		if bodies.written[0] != 1 || bodies.written[1] != 20 {
			t.Errorf("expected missing state id to default to object id, got %v", bodies.written)
		}
	})

	t.Run("failure rolls back", func(t *testing.T) {
		store := &fakeStore{failOn: 2}

		_, err := NewImportCatalogueCommand(store, &fakeBodies{}, testManifest()).Execute(context.Background())
		if err == nil {
			t.Fatal("expected error")
		}
		if store.committed || !store.rolled {
			t.Errorf("expected rollback, committed=%v rolled=%v", store.committed, store.rolled)
		}
		if len(store.objects) != 0 {
			t.Errorf("expected no committed rows, got %d", len(store.objects))
		}
	})
}

package domain

import "slices"

// AllCategoryName is the label of the synthetic per-group category
const AllCategoryName = "All"

// Category is a classification tag for catalogue browsing
type Category struct {
	ID   int
	Name string
}

// CategoryGroup is an ordered list of categories, e.g. "Furniture" or "Openings"
type CategoryGroup struct {
	ID         int
	Name       string
	Categories []Category
}

// CategoryAggregation maps synthetic "All" ids to the member category ids of their group
type CategoryAggregation map[int][]int

// Resolve returns the member ids for a synthetic id, or nil and false for a real category
func (a CategoryAggregation) Resolve(id int) ([]int, bool) {
	ids, ok := a[id]
	return ids, ok
}

// IsSynthetic reports whether id names an "All" category
func (a CategoryAggregation) IsSynthetic(id int) bool {
	_, ok := a[id]
	return ok
}

// AggregateCategories appends a synthetic "All" category to every group and returns the
// extended groups with the aggregation map. Synthetic ids are -1, -2, ... in group order, so
// they never collide with real (positive) ids. A group that already carries its synthetic id
// is not extended twice. The input is not modified.
func AggregateCategories(groups []CategoryGroup) ([]CategoryGroup, CategoryAggregation) {
	out := make([]CategoryGroup, 0, len(groups))
	agg := make(CategoryAggregation, len(groups))
	id := -1
	for _, g := range groups {
		members := make([]int, 0, len(g.Categories))
		for _, c := range g.Categories {
			if c.ID != id {
				members = append(members, c.ID)
			}
		}
		cats := slices.Clone(g.Categories)
		if !slices.ContainsFunc(cats, func(c Category) bool { return c.ID == id }) {
			cats = append(cats, Category{ID: id, Name: AllCategoryName})
		}
		agg[id] = members
		out = append(out, CategoryGroup{ID: g.ID, Name: g.Name, Categories: cats})
		id--
	}
	return out, agg
}

package domain

import "time"

// CatalogueManifest describes a batch of categories and objects to import
type CatalogueManifest struct {
	Groups  []CategoryGroup
	Objects []*ObjectDefinition // StateID selects the body file name
}

// ImportStats holds statistics from an import
type ImportStats struct {
	GroupsUpserted     int
	CategoriesUpserted int
	ObjectsUpserted    int
	BodiesWritten      int
	Duration           time.Duration
}

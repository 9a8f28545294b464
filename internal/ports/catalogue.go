package ports

import "planner/internal/domain"

// ObjectsProvider is the object index: cached access to catalogue definitions.
// Bodies are loaded lazily; metadata queries never load bodies.
type ObjectsProvider interface {
	// Lifecycle
	Refresh() error

	// Definition lookups
	GetObjectByID(id int) (*domain.ObjectDefinition, error)
	GetObjectNameByID(id int) (string, error)
	ObjectExists(id int) bool

	// Category queries
	GetObjectsFromCategory(categoryID int) ([]*domain.ObjectDefinition, error)
	GetObjectsFromCategories(categoryIDs []int) ([]*domain.ObjectDefinition, error)
	GetObjectsFromCategoryCount(categoryID int) int
	GetObjectsFromCategoriesCount(categoryIDs []int) int

	// Search
	GetObjectsByName(filter string, excludedCategories ...int) ([]*domain.ObjectDefinition, error)

	// Wall apertures with a plan thumbnail
	GetApertureObjects() ([]*domain.ObjectDefinition, error)
}

// MetadataSource loads the catalogue metadata table wholesale
type MetadataSource interface {
	LoadMetadata(path string) ([]domain.ObjectMeta, error)
}

// CategoriesProvider returns the ordered category groups
type CategoriesProvider interface {
	CategoryGroups() ([]domain.CategoryGroup, error)
}

// ObjectDeserializer decodes one persisted object body
type ObjectDeserializer interface {
	Deserialize(data []byte) (*domain.ObjectDefinition, error)
}

// PathsProvider resolves where object bodies and the metadata file live
type PathsProvider interface {
	ObjectsPath() string
	MetaFilename() string
}

// CatalogueStore is the persistent metadata store behind the index
type CatalogueStore interface {
	MetadataSource
	CategoriesProvider

	// Lifecycle
	Open(path string) error
	Close() error

	// Batch updates (for imports)
	BeginTx() (CatalogueTx, error)
}

// CatalogueTx represents a transaction for atomic catalogue updates
type CatalogueTx interface {
	// Object operations
	UpsertObject(meta *domain.ObjectMeta) error
	DeleteObject(id int) error

	// Category operations
	UpsertGroup(group *domain.CategoryGroup, position int) error
	UpsertCategory(groupID int, category *domain.Category, position int) error

	// Transaction control
	Commit() error
	Rollback() error
}

// BodyWriter persists object bodies under their state id
type BodyWriter interface {
	WriteBody(obj *domain.ObjectDefinition) error
}

// ObjectSerializer encodes one object body for persistence
type ObjectSerializer interface {
	Serialize(obj *domain.ObjectDefinition) ([]byte, error)
}

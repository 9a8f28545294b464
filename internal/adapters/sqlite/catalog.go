package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"planner/internal/domain"
	"planner/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

const schema = `
	CREATE TABLE IF NOT EXISTS objects (
		id INTEGER PRIMARY KEY,
		state_id INTEGER NOT NULL,
		name TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS object_categories (
		object_id INTEGER NOT NULL,
		category_id INTEGER NOT NULL,
		PRIMARY KEY (object_id, category_id)
	);
	CREATE TABLE IF NOT EXISTS category_groups (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		position INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS categories (
		id INTEGER PRIMARY KEY,
		group_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		position INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_object_categories_category ON object_categories(category_id);
	CREATE INDEX IF NOT EXISTS idx_categories_group ON categories(group_id, position);
`

// ErrMalformed is returned when the file is not a catalogue database
var ErrMalformed = errors.New("malformed catalogue")

// Catalog implements ports.CatalogueStore using SQLite
type Catalog struct {
	db   *sql.DB
	path string
}

// Ensure Catalog implements CatalogueStore
var _ ports.CatalogueStore = (*Catalog)(nil)

// NewCatalog creates a new SQLite catalogue store
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Open opens or creates the catalogue database at path
func (c *Catalog) Open(path string) error {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	c.path = path

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create catalogue directory: %w", err)
	}

	// WAL mode so readers never block the importer
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	c.db = db

	// Pragmas + schema in a single batch
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;
	` + schema)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if err := c.updateMeta(); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return nil
}

// Close closes the database connection
func (c *Catalog) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Path returns the database file path
func (c *Catalog) Path() string {
	return c.path
}

// updateMeta records the schema version
func (c *Catalog) updateMeta() error {
	_, err := c.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion)
	return err
}

// LoadMetadata returns every object row. A path other than the open database is
// read through a separate connection.
func (c *Catalog) LoadMetadata(path string) ([]domain.ObjectMeta, error) {
	if c.db != nil && path == c.path {
		return queryMetadata(c.db)
	}
	return ReadMetadata(path)
}

// CategoryGroups returns the groups and their categories in display order
func (c *Catalog) CategoryGroups() ([]domain.CategoryGroup, error) {
	rows, err := c.db.Query(`
		SELECT g.id, g.name, c.id, c.name
		FROM category_groups g
		LEFT JOIN categories c ON c.group_id = g.id
		ORDER BY g.position, g.id, c.position, c.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []domain.CategoryGroup
	for rows.Next() {
		var groupID int
		var groupName string
		var catID sql.NullInt64
		var catName sql.NullString
		if err := rows.Scan(&groupID, &groupName, &catID, &catName); err != nil {
			return nil, err
		}

		if len(groups) == 0 || groups[len(groups)-1].ID != groupID {
			groups = append(groups, domain.CategoryGroup{ID: groupID, Name: groupName})
		}
		if catID.Valid {
			g := &groups[len(groups)-1]
			g.Categories = append(g.Categories, domain.Category{ID: int(catID.Int64), Name: catName.String})
		}
	}

	return groups, rows.Err()
}

// BeginTx starts a new transaction
func (c *Catalog) BeginTx() (ports.CatalogueTx, error) {
	tx, err := c.db.Begin()
	if err != nil {
		return nil, err
	}
	return &catalogTx{tx: tx}, nil
}

// MetadataFile implements ports.MetadataSource by reading catalogue files on demand
type MetadataFile struct{}

var _ ports.MetadataSource = MetadataFile{}

func (MetadataFile) LoadMetadata(path string) ([]domain.ObjectMeta, error) {
	return ReadMetadata(path)
}

// ReadMetadata opens the catalogue at path, reads every object row and closes it.
// A missing file is an error; it is never created.
func ReadMetadata(path string) ([]domain.ObjectMeta, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	var version string
	if err := db.QueryRow(`SELECT value FROM meta WHERE key = 'schema_version'`).Scan(&version); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if version != schemaVersion {
		return nil, fmt.Errorf("%w: schema version %q", ErrMalformed, version)
	}

	return queryMetadata(db)
}

func queryMetadata(db *sql.DB) ([]domain.ObjectMeta, error) {
	rows, err := db.Query(`
		SELECT o.id, o.state_id, o.name, oc.category_id
		FROM objects o
		LEFT JOIN object_categories oc ON oc.object_id = o.id
		ORDER BY o.id, oc.category_id
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	defer rows.Close()

	var out []domain.ObjectMeta
	for rows.Next() {
		var m domain.ObjectMeta
		var catID sql.NullInt64
		if err := rows.Scan(&m.ID, &m.StateID, &m.Name, &catID); err != nil {
			return nil, err
		}

		if len(out) == 0 || out[len(out)-1].ID != m.ID {
			out = append(out, m)
		}
		if catID.Valid {
			last := &out[len(out)-1]
			last.Categories = append(last.Categories, int(catID.Int64))
		}
	}

	return out, rows.Err()
}

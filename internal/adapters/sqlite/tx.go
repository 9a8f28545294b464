package sqlite

import (
	"database/sql"

	"planner/internal/domain"
	"planner/internal/ports"
)

// catalogTx implements ports.CatalogueTx
type catalogTx struct {
	tx *sql.Tx
}

// Ensure catalogTx implements CatalogueTx
var _ ports.CatalogueTx = (*catalogTx)(nil)

// UpsertObject inserts or replaces an object row and its category membership
func (t *catalogTx) UpsertObject(meta *domain.ObjectMeta) error {
	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO objects (id, state_id, name)
		VALUES (?, ?, ?)
	`, meta.ID, meta.StateID, meta.Name)
	if err != nil {
		return err
	}

	if _, err := t.tx.Exec(`DELETE FROM object_categories WHERE object_id = ?`, meta.ID); err != nil {
		return err
	}

	for _, categoryID := range meta.Categories {
		_, err := t.tx.Exec(`
			INSERT OR IGNORE INTO object_categories (object_id, category_id)
			VALUES (?, ?)
		`, meta.ID, categoryID)
		if err != nil {
			return err
		}
	}
	return nil
}

// DeleteObject removes an object and its membership rows
func (t *catalogTx) DeleteObject(id int) error {
	if _, err := t.tx.Exec(`DELETE FROM object_categories WHERE object_id = ?`, id); err != nil {
		return err
	}
	_, err := t.tx.Exec(`DELETE FROM objects WHERE id = ?`, id)
	return err
}

// UpsertGroup inserts or updates a category group at a display position
func (t *catalogTx) UpsertGroup(group *domain.CategoryGroup, position int) error {
	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO category_groups (id, name, position)
		VALUES (?, ?, ?)
	`, group.ID, group.Name, position)
	return err
}

// UpsertCategory inserts or updates a category inside a group
func (t *catalogTx) UpsertCategory(groupID int, category *domain.Category, position int) error {
	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO categories (id, group_id, name, position)
		VALUES (?, ?, ?, ?)
	`, category.ID, groupID, category.Name, position)
	return err
}

// Commit commits the transaction
func (t *catalogTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *catalogTx) Rollback() error {
	return t.tx.Rollback()
}

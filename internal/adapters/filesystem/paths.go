package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"planner/internal/domain"
	"planner/internal/ports"
)

// Paths implements ports.PathsProvider for a local objects directory
type Paths struct {
	objectsPath  string
	metaFilename string
}

var _ ports.PathsProvider = (*Paths)(nil)

// NewPaths creates a paths provider. A leading ~ expands to the home directory.
func NewPaths(objectsPath, metaFilename string) *Paths {
	return &Paths{objectsPath: ExpandHome(objectsPath), metaFilename: metaFilename}
}

func (p *Paths) ObjectsPath() string  { return p.objectsPath }
func (p *Paths) MetaFilename() string { return p.metaFilename }

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}

// BodyStore implements ports.BodyWriter by writing encoded bodies into the objects directory
type BodyStore struct {
	paths      ports.PathsProvider
	serializer ports.ObjectSerializer
}

var _ ports.BodyWriter = (*BodyStore)(nil)

// NewBodyStore creates a new body store
func NewBodyStore(paths ports.PathsProvider, serializer ports.ObjectSerializer) *BodyStore {
	return &BodyStore{paths: paths, serializer: serializer}
}

// BodyPath returns where the body with the given state id lives
func (s *BodyStore) BodyPath(stateID int) string {
	return filepath.Join(s.paths.ObjectsPath(), BodiesDir, strconv.Itoa(stateID))
}

// WriteBody encodes the object and writes it atomically (temp file + rename)
func (s *BodyStore) WriteBody(obj *domain.ObjectDefinition) error {
	if obj.StateID <= 0 {
		return fmt.Errorf("object %d has no state ID", obj.ID)
	}

	data, err := s.serializer.Serialize(obj)
	if err != nil {
		return fmt.Errorf("failed to encode object %d: %w", obj.ID, err)
	}

	dir := filepath.Join(s.paths.ObjectsPath(), BodiesDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create bodies directory: %w", err)
	}

	target := s.BodyPath(obj.StateID)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write body: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to move body into place: %w", err)
	}
	return nil
}

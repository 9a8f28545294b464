package application

import (
	"fmt"
	"strconv"
	"strings"

	"planner/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "objectID" -> "object ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"objectID":   "object ID",
		"categoryID": "category ID",
		"stateID":    "state ID",
		"name":       "name",
		"path":       "path",
		"mode":       "mode",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}

// ParseObjectID parses a catalogue object id. Negative ids are accepted and
// denote the free-shape template.
func ParseObjectID(fieldName, value string) (int, error) {
	if err := ValidateRequired(fieldName, value); err != nil {
		return 0, err
	}
	id, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("expected integer %s, got: %s", formatFieldName(fieldName), value),
		}
	}
	if id < 0 {
		id = domain.FreeShapeObjectID
	}
	return id, nil
}

// ParseEditMode validates a "2d" or "3d" mode string
func ParseEditMode(value string) (domain.EditMode, error) {
	mode, ok := domain.ParseEditMode(value)
	if !ok {
		return mode, &ValidationError{
			Field:   "mode",
			Message: fmt.Sprintf("expected 2d or 3d, got: %s", value),
		}
	}
	return mode, nil
}

// ParsePath parses a pointer path of space-separated "x,y" pairs
func ParsePath(value string) ([]domain.Vec2, error) {
	if err := ValidateRequired("path", value); err != nil {
		return nil, err
	}
	var points []domain.Vec2
	for _, pair := range strings.Fields(value) {
		xs, ys, ok := strings.Cut(pair, ",")
		if !ok {
			return nil, &ValidationError{Field: "path", Message: fmt.Sprintf("expected x,y, got: %s", pair)}
		}
		x, errX := strconv.ParseFloat(xs, 64)
		y, errY := strconv.ParseFloat(ys, 64)
		if errX != nil || errY != nil {
			return nil, &ValidationError{Field: "path", Message: fmt.Sprintf("invalid coordinates: %s", pair)}
		}
		points = append(points, domain.Vec2{X: x, Y: y})
	}
	return points, nil
}

package types

import (
	"time"

	"github.com/google/uuid"
)

// Category groups books by genre or shelf. Like authors, categories are
// append-mostly and never deleted.
type Category struct {
	ID          string
	Name        string
	Description string // optional
	CreatedOn   time.Time
}

// NewCategory creates a Category with a generated ID.
func NewCategory(name, description string) Category {
	return Category{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedOn:   time.Now().UTC(),
	}
}

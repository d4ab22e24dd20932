package types

import (
	"time"

	"github.com/google/uuid"
)

// Author of one or more books. Authors are append-mostly: there is no
// deletion in the public contract.
type Author struct {
	ID        string
	Name      string
	CreatedOn time.Time
}

// NewAuthor creates an Author with a generated ID.
func NewAuthor(name string) Author {
	return Author{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedOn: time.Now().UTC(),
	}
}

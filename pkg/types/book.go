package types

import (
	"time"

	"github.com/google/uuid"
)

// Book is a catalog entry. AuthorID and CategoryID are required references;
// SeriesID is optional. References are held as IDs only; resolving them is
// the store's job, so deleting a referent never needs pointer fixups.
type Book struct {
	ID               string
	Title            string
	AddedOn          time.Time
	ISBN             string // optional
	CategoryID       string
	AuthorID         string
	TotalPages       int    // optional, 0 when unknown
	SeriesID         string // optional
	PositionInSeries string // optional, free-form ("1", "2.5", "Prequel")
}

// NewBook creates a Book with a generated ID and the current time as AddedOn.
func NewBook(title, isbn, categoryID, authorID string, totalPages int) Book {
	return Book{
		ID:         uuid.NewString(),
		Title:      title,
		AddedOn:    time.Now().UTC(),
		ISBN:       isbn,
		CategoryID: categoryID,
		AuthorID:   authorID,
		TotalPages: totalPages,
	}
}

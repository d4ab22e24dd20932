package types

import (
	"time"

	"github.com/google/uuid"
)

// Reading event kinds. The spelled-out values are part of the persisted
// file format and must not change.
const (
	EventStarted              = "Started"
	EventFinished             = "Finished"
	EventUpdate               = "Update"
	EventBought               = "Bought"
	EventWantToRead           = "WantToRead"
	EventUnmarkedAsWantToRead = "UnmarkedAsWantToRead"
)

// validEvents is the set of recognized reading event kinds.
var validEvents = map[string]bool{
	EventStarted:              true,
	EventFinished:             true,
	EventUpdate:               true,
	EventBought:               true,
	EventWantToRead:           true,
	EventUnmarkedAsWantToRead: true,
}

// ValidEvent reports whether kind is a recognized reading event kind.
func ValidEvent(kind string) bool {
	return validEvents[kind]
}

// ReadingMetadata carries the optional payload of a reading event.
// Today that is only the current page of an Update.
type ReadingMetadata struct {
	CurrentPage *int
}

// Reading is one immutable entry in a book's event history. Corrections are
// made by appending a new event, never by editing or deleting a past one.
type Reading struct {
	ID        string
	CreatedOn time.Time
	BookID    string
	Event     string
	Metadata  ReadingMetadata
}

// NewReading creates a Reading with a generated ID and no payload.
func NewReading(bookID, event string) Reading {
	return Reading{
		ID:        uuid.NewString(),
		CreatedOn: time.Now().UTC(),
		BookID:    bookID,
		Event:     event,
	}
}

// NewReadingWithPage creates a Reading carrying a current-page payload.
func NewReadingWithPage(bookID, event string, currentPage int) Reading {
	r := NewReading(bookID, event)
	r.Metadata.CurrentPage = &currentPage
	return r
}

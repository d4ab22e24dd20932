package types

import "github.com/google/uuid"

// Series publication status values.
const (
	SeriesOngoing   = "Ongoing"
	SeriesCompleted = "Completed"
	SeriesAbandoned = "Abandoned"
)

// validSeriesStatuses is the set of recognized series status values.
var validSeriesStatuses = map[string]bool{
	SeriesOngoing:   true,
	SeriesCompleted: true,
	SeriesAbandoned: true,
}

// Series groups books under a shared name. Names are unique
// case-insensitively within a store. Deleting a series unlinks its books
// instead of cascading.
type Series struct {
	ID         string
	Name       string
	Status     string // optional, one of the Series* constants
	TotalBooks int    // optional planned count, 0 when unknown
}

// NewSeries creates a Series with a generated ID and no status.
func NewSeries(name string) Series {
	return Series{
		ID:   uuid.NewString(),
		Name: name,
	}
}

// SetStatus sets the publication status. Returns ErrInvalidSeriesState for
// unrecognized values; the empty string clears the status.
func (s *Series) SetStatus(status string) error {
	if status != "" && !validSeriesStatuses[status] {
		return ErrInvalidSeriesState
	}
	s.Status = status
	return nil
}

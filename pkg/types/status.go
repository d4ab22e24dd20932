package types

import "sort"

// Book lifecycle states derived from a reading-event history.
const (
	StatusNotStarted = "NotStarted"
	StatusStarted    = "Started"
	StatusFinished   = "Finished"
)

// The derivation functions below are pure over the event multiset: no
// cached status is ever stored on a Book, so a backdated event changes the
// answer the moment it is appended. Callers pass the events in insertion
// order; equal timestamps keep that order (stable sort), which makes the
// result deterministic.

// sortedDesc returns a copy of events sorted by timestamp descending.
// Sorting ascending stably and then reversing makes the later-appended
// event the more recent one when timestamps collide.
func sortedDesc(events []Reading) []Reading {
	out := make([]Reading, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedOn.Before(out[j].CreatedOn)
	})
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// IsStarted reports whether the most recent status-determining event is
// Started. Update, Bought, WantToRead and UnmarkedAsWantToRead carry no
// started/finished signal and are skipped.
func IsStarted(events []Reading) bool {
	for _, r := range sortedDesc(events) {
		switch r.Event {
		case EventStarted:
			return true
		case EventFinished:
			return false
		}
	}
	return false
}

// IsFinished reports whether the most recent status-determining event is
// Finished.
func IsFinished(events []Reading) bool {
	for _, r := range sortedDesc(events) {
		switch r.Event {
		case EventStarted:
			return false
		case EventFinished:
			return true
		}
	}
	return false
}

// DeriveStatus returns the book's progress state. Bought and want-to-read
// are deliberately not part of this value: they are collection flags that
// can coexist with any progress state, exposed by IsBought and IsWantToRead.
func DeriveStatus(events []Reading) string {
	for _, r := range sortedDesc(events) {
		switch r.Event {
		case EventStarted:
			return StatusStarted
		case EventFinished:
			return StatusFinished
		}
	}
	return StatusNotStarted
}

// IsWantToRead reports whether the book is on the want-to-read list. The
// answer is the most recent event among WantToRead, UnmarkedAsWantToRead
// and Started: starting a book clears the flag even without an explicit
// unmark event. Both clearing pathways are kept distinct on purpose:
// collapsing them would silently change historical-event semantics.
func IsWantToRead(events []Reading) bool {
	for _, r := range sortedDesc(events) {
		switch r.Event {
		case EventWantToRead:
			return true
		case EventUnmarkedAsWantToRead, EventStarted:
			return false
		}
	}
	return false
}

// IsBought reports whether any Bought event exists. Bought is never un-set.
func IsBought(events []Reading) bool {
	for _, r := range events {
		if r.Event == EventBought {
			return true
		}
	}
	return false
}

// LatestProgress returns the current-page payload of the most recent Update
// event, or of the Finished event if that came later. Returns false when
// neither kind of event carries a payload.
func LatestProgress(events []Reading) (int, bool) {
	for _, r := range sortedDesc(events) {
		switch r.Event {
		case EventUpdate, EventFinished:
			if r.Metadata.CurrentPage != nil {
				return *r.Metadata.CurrentPage, true
			}
			return 0, false
		}
	}
	return 0, false
}

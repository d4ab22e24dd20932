// Derived listings over the store. Everything here recomputes from the
// event log; nothing is cached.
package store

import (
	"sort"
	"strings"
	"time"

	"github.com/benedicteb/bookmon/pkg/types"
)

// StartedBooks returns the books currently being read.
func (s *Store) StartedBooks() []types.Book {
	return s.filterBooks(func(events []types.Reading) bool {
		return types.IsStarted(events)
	})
}

// FinishedBooks returns the books whose most recent status event is
// Finished.
func (s *Store) FinishedBooks() []types.Book {
	return s.filterBooks(func(events []types.Reading) bool {
		return types.IsFinished(events)
	})
}

// UnstartedBooks returns the backlog: books with no Started or Finished
// event at all.
func (s *Store) UnstartedBooks() []types.Book {
	return s.filterBooks(func(events []types.Reading) bool {
		return types.DeriveStatus(events) == types.StatusNotStarted
	})
}

// WantToReadBooks returns the books on the want-to-read list.
func (s *Store) WantToReadBooks() []types.Book {
	return s.filterBooks(func(events []types.Reading) bool {
		return types.IsWantToRead(events)
	})
}

// BoughtBooks returns the books that were ever bought.
func (s *Store) BoughtBooks() []types.Book {
	return s.filterBooks(func(events []types.Reading) bool {
		return types.IsBought(events)
	})
}

// ReadingListBooks returns books currently being read or wanted, without
// duplicates, started books first.
func (s *Store) ReadingListBooks() []types.Book {
	seen := make(map[string]bool)
	var out []types.Book
	for _, b := range s.StartedBooks() {
		seen[b.ID] = true
		out = append(out, b)
	}
	for _, b := range s.WantToReadBooks() {
		if !seen[b.ID] {
			seen[b.ID] = true
			out = append(out, b)
		}
	}
	return out
}

// BooksFinishedInYear returns the books with a Finished event inside the
// given year. A book finished twice in one year appears once.
func (s *Store) BooksFinishedInYear(year int) []types.Book {
	from := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year+1, 1, 1, 0, 0, 0, 0, time.UTC)

	seen := make(map[string]bool)
	var out []types.Book
	for _, r := range s.Readings() {
		if r.Event != types.EventFinished {
			continue
		}
		if r.CreatedOn.Before(from) || !r.CreatedOn.Before(to) {
			continue
		}
		if seen[r.BookID] {
			continue
		}
		if b, ok := s.books[r.BookID]; ok {
			seen[r.BookID] = true
			out = append(out, b)
		}
	}
	s.sortForDisplay(out)
	return out
}

// EarliestFinishedYear returns the first year any book was finished.
func (s *Store) EarliestFinishedYear() (int, bool) {
	found := false
	earliest := 0
	for _, r := range s.readings {
		if r.Event != types.EventFinished {
			continue
		}
		if y := r.CreatedOn.UTC().Year(); !found || y < earliest {
			earliest = y
			found = true
		}
	}
	return earliest, found
}

// FinishedOn returns the date of a book's most recent Finished event.
func (s *Store) FinishedOn(bookID string) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, r := range s.ReadingsForBook(bookID) {
		if r.Event == types.EventFinished && (!found || r.CreatedOn.After(latest)) {
			latest = r.CreatedOn
			found = true
		}
	}
	return latest, found
}

// StartedOn returns the date of a book's most recent Started event.
func (s *Store) StartedOn(bookID string) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, r := range s.ReadingsForBook(bookID) {
		if r.Event == types.EventStarted && (!found || r.CreatedOn.After(latest)) {
			latest = r.CreatedOn
			found = true
		}
	}
	return latest, found
}

// SortedBooks returns every book ordered for display: currently reading
// first, then unstarted, then finished; within a group by author name,
// then title.
func (s *Store) SortedBooks() []types.Book {
	out := s.Books()
	rank := func(b types.Book) int {
		events := s.ReadingsForBook(b.ID)
		switch {
		case types.IsStarted(events):
			return 0
		case types.IsFinished(events):
			return 2
		default:
			return 1
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := rank(out[i]), rank(out[j])
		if ri != rj {
			return ri < rj
		}
		ai, aj := s.AuthorNameForBook(out[i]), s.AuthorNameForBook(out[j])
		if ai != aj {
			return ai < aj
		}
		return out[i].Title < out[j].Title
	})
	return out
}

// filterBooks returns books whose event history satisfies keep, sorted for
// display.
func (s *Store) filterBooks(keep func([]types.Reading) bool) []types.Book {
	var out []types.Book
	for _, b := range s.Books() {
		if keep(s.ReadingsForBook(b.ID)) {
			out = append(out, b)
		}
	}
	s.sortForDisplay(out)
	return out
}

// sortForDisplay orders books by lowercased author name, then title.
func (s *Store) sortForDisplay(books []types.Book) {
	sort.SliceStable(books, func(i, j int) bool {
		ai := strings.ToLower(s.AuthorNameForBook(books[i]))
		aj := strings.ToLower(s.AuthorNameForBook(books[j]))
		if ai != aj {
			return ai < aj
		}
		return strings.ToLower(books[i].Title) < strings.ToLower(books[j].Title)
	})
}

// BookEntry is one row group in a series-aware listing: either a standalone
// book or a named series group with its books sorted by position.
type BookEntry struct {
	SeriesName string // empty for standalone entries
	Books      []types.Book
}

// GroupBySeries partitions books into series groups and standalone entries
// for table display. Groups sort internally by position; groups and
// standalone books interleave by the sort author (first book of a group),
// with groups before standalone books for the same author.
func (s *Store) GroupBySeries(books []types.Book) []BookEntry {
	bySeries := make(map[string][]types.Book)
	var standalone []types.Book

	for _, b := range books {
		if b.SeriesID != "" {
			if _, ok := s.series[b.SeriesID]; ok {
				bySeries[b.SeriesID] = append(bySeries[b.SeriesID], b)
				continue
			}
		}
		standalone = append(standalone, b)
	}

	type keyed struct {
		author     string
		standalone int // series groups sort before standalone books
		name       string
		entry      BookEntry
	}
	var entries []keyed

	for seriesID, group := range bySeries {
		sort.SliceStable(group, func(i, j int) bool {
			return types.ComparePositions(group[i].PositionInSeries, group[j].PositionInSeries) < 0
		})
		sr := s.series[seriesID]
		entries = append(entries, keyed{
			author: strings.ToLower(s.AuthorNameForBook(group[0])),
			name:   strings.ToLower(sr.Name),
			entry:  BookEntry{SeriesName: sr.Name, Books: group},
		})
	}
	for _, b := range standalone {
		entries = append(entries, keyed{
			author:     strings.ToLower(s.AuthorNameForBook(b)),
			standalone: 1,
			name:       strings.ToLower(b.Title),
			entry:      BookEntry{Books: []types.Book{b}},
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].author != entries[j].author {
			return entries[i].author < entries[j].author
		}
		if entries[i].standalone != entries[j].standalone {
			return entries[i].standalone < entries[j].standalone
		}
		return entries[i].name < entries[j].name
	})

	out := make([]BookEntry, len(entries))
	for i, e := range entries {
		out[i] = e.entry
	}
	return out
}

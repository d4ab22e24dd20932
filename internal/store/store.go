// Package store implements the in-memory aggregate that owns every entity
// collection, its canonical on-disk form, and the load-time repair pass.
// The store is single-owner and synchronous: one process loads the file,
// mutates in memory, and persists explicitly.
package store

import (
	"fmt"
	"sort"
	"strings"

	"github.com/benedicteb/bookmon/pkg/types"
)

// Store owns the six ID-keyed entity collections plus yearly goals. All
// references between entities are IDs; mutating operations validate that a
// referenced entity exists before committing, so the referential-integrity
// guarantee established by repair holds for the rest of the process.
type Store struct {
	books      map[string]types.Book
	readings   map[string]types.Reading
	authors    map[string]types.Author
	categories map[string]types.Category
	series     map[string]types.Series
	reviews    map[string]types.Review
	goals      map[int]types.Goal

	// readingOrder tracks reading IDs in insertion order. Derivation uses
	// it as the tie-break for events sharing a timestamp; after a load it
	// holds the IDs in sorted order, which keeps reloads deterministic.
	readingOrder []string
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		books:      make(map[string]types.Book),
		readings:   make(map[string]types.Reading),
		authors:    make(map[string]types.Author),
		categories: make(map[string]types.Category),
		series:     make(map[string]types.Series),
		reviews:    make(map[string]types.Review),
		goals:      make(map[int]types.Goal),
	}
}

// AddAuthor validates and stores an author.
func (s *Store) AddAuthor(a types.Author) error {
	if strings.TrimSpace(a.Name) == "" {
		return types.ErrEmptyName
	}
	s.authors[a.ID] = a
	return nil
}

// AddCategory validates and stores a category.
func (s *Store) AddCategory(c types.Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return types.ErrEmptyName
	}
	s.categories[c.ID] = c
	return nil
}

// AddSeries validates and stores a series. Series names are unique
// case-insensitively.
func (s *Store) AddSeries(sr types.Series) error {
	if strings.TrimSpace(sr.Name) == "" {
		return types.ErrEmptyName
	}
	if existing, ok := s.SeriesByName(sr.Name); ok && existing.ID != sr.ID {
		return types.ErrDuplicateSeries
	}
	s.series[sr.ID] = sr
	return nil
}

// UpdateSeries replaces an existing series. Returns ErrNotFound when the
// series does not exist.
func (s *Store) UpdateSeries(sr types.Series) error {
	if _, ok := s.series[sr.ID]; !ok {
		return fmt.Errorf("series %s: %w", sr.ID, types.ErrNotFound)
	}
	return s.AddSeries(sr)
}

// GetOrCreateSeries finds a series by case-insensitive name or creates one.
func (s *Store) GetOrCreateSeries(name string) (types.Series, error) {
	if strings.TrimSpace(name) == "" {
		return types.Series{}, types.ErrEmptyName
	}
	if existing, ok := s.SeriesByName(name); ok {
		return existing, nil
	}
	sr := types.NewSeries(name)
	s.series[sr.ID] = sr
	return sr, nil
}

// AddBook validates and stores a book. The author and category must exist;
// the series must exist when set.
func (s *Store) AddBook(b types.Book) error {
	if strings.TrimSpace(b.Title) == "" {
		return types.ErrEmptyTitle
	}
	if _, ok := s.authors[b.AuthorID]; !ok {
		return fmt.Errorf("author %s: %w", b.AuthorID, types.ErrNotFound)
	}
	if _, ok := s.categories[b.CategoryID]; !ok {
		return fmt.Errorf("category %s: %w", b.CategoryID, types.ErrNotFound)
	}
	if b.SeriesID != "" {
		if _, ok := s.series[b.SeriesID]; !ok {
			return fmt.Errorf("series %s: %w", b.SeriesID, types.ErrNotFound)
		}
	}
	s.books[b.ID] = b
	return nil
}

// UpdateBook replaces an existing book after the same validation as AddBook.
func (s *Store) UpdateBook(b types.Book) error {
	if _, ok := s.books[b.ID]; !ok {
		return fmt.Errorf("book %s: %w", b.ID, types.ErrNotFound)
	}
	return s.AddBook(b)
}

// AddReading validates and appends a reading event. Events are immutable
// once stored; there is no update or delete.
func (s *Store) AddReading(r types.Reading) error {
	if !types.ValidEvent(r.Event) {
		return fmt.Errorf("%q: %w", r.Event, types.ErrInvalidEvent)
	}
	if _, ok := s.books[r.BookID]; !ok {
		return fmt.Errorf("book %s: %w", r.BookID, types.ErrNotFound)
	}
	if _, ok := s.readings[r.ID]; !ok {
		s.readingOrder = append(s.readingOrder, r.ID)
	}
	s.readings[r.ID] = r
	return nil
}

// AddReview validates and stores a review.
func (s *Store) AddReview(r types.Review) error {
	if strings.TrimSpace(r.Text) == "" {
		return types.ErrEmptyReview
	}
	if _, ok := s.books[r.BookID]; !ok {
		return fmt.Errorf("book %s: %w", r.BookID, types.ErrNotFound)
	}
	s.reviews[r.ID] = r
	return nil
}

// SetGoal sets the reading target for a year. The target must be positive.
func (s *Store) SetGoal(year, target int) error {
	if target <= 0 {
		return types.ErrInvalidGoal
	}
	s.goals[year] = types.Goal{Year: year, Target: target}
	return nil
}

// Goal returns the goal for a year, if set.
func (s *Store) Goal(year int) (types.Goal, bool) {
	g, ok := s.goals[year]
	return g, ok
}

// DeleteSeries removes a series and clears the series reference on every
// book that pointed at it. It returns the number of unlinked books. This is
// an unlink, not a cascade: the books themselves survive.
func (s *Store) DeleteSeries(id string) (int, error) {
	if _, ok := s.series[id]; !ok {
		return 0, fmt.Errorf("series %s: %w", id, types.ErrNotFound)
	}
	affected := 0
	for bookID, b := range s.books {
		if b.SeriesID == id {
			b.SeriesID = ""
			b.PositionInSeries = ""
			s.books[bookID] = b
			affected++
		}
	}
	delete(s.series, id)
	return affected, nil
}

// Book returns the book with the given ID.
func (s *Store) Book(id string) (types.Book, error) {
	b, ok := s.books[id]
	if !ok {
		return types.Book{}, fmt.Errorf("book %s: %w", id, types.ErrNotFound)
	}
	return b, nil
}

// Author returns the author with the given ID.
func (s *Store) Author(id string) (types.Author, error) {
	a, ok := s.authors[id]
	if !ok {
		return types.Author{}, fmt.Errorf("author %s: %w", id, types.ErrNotFound)
	}
	return a, nil
}

// Category returns the category with the given ID.
func (s *Store) Category(id string) (types.Category, error) {
	c, ok := s.categories[id]
	if !ok {
		return types.Category{}, fmt.Errorf("category %s: %w", id, types.ErrNotFound)
	}
	return c, nil
}

// Series returns the series with the given ID.
func (s *Store) Series(id string) (types.Series, error) {
	sr, ok := s.series[id]
	if !ok {
		return types.Series{}, fmt.Errorf("series %s: %w", id, types.ErrNotFound)
	}
	return sr, nil
}

// Review returns the review with the given ID.
func (s *Store) Review(id string) (types.Review, error) {
	r, ok := s.reviews[id]
	if !ok {
		return types.Review{}, fmt.Errorf("review %s: %w", id, types.ErrNotFound)
	}
	return r, nil
}

// SeriesByName finds a series by case-insensitive name.
func (s *Store) SeriesByName(name string) (types.Series, bool) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, sr := range s.series {
		if strings.ToLower(sr.Name) == want {
			return sr, true
		}
	}
	return types.Series{}, false
}

// Books returns all books sorted by ID.
func (s *Store) Books() []types.Book {
	out := make([]types.Book, 0, len(s.books))
	for _, b := range s.books {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Authors returns all authors sorted by name, then ID.
func (s *Store) Authors() []types.Author {
	out := make([]types.Author, 0, len(s.authors))
	for _, a := range s.authors {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Categories returns all categories sorted by name, then ID.
func (s *Store) Categories() []types.Category {
	out := make([]types.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// AllSeries returns all series sorted by name.
func (s *Store) AllSeries() []types.Series {
	out := make([]types.Series, 0, len(s.series))
	for _, sr := range s.series {
		out = append(out, sr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Reviews returns all reviews, newest first.
func (s *Store) Reviews() []types.Review {
	out := make([]types.Review, 0, len(s.reviews))
	for _, r := range s.reviews {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedOn.Equal(out[j].CreatedOn) {
			return out[i].CreatedOn.After(out[j].CreatedOn)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Goals returns all goals sorted by year.
func (s *Store) Goals() []types.Goal {
	out := make([]types.Goal, 0, len(s.goals))
	for _, g := range s.goals {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// Readings returns all reading events in insertion order.
func (s *Store) Readings() []types.Reading {
	out := make([]types.Reading, 0, len(s.readings))
	for _, id := range s.readingOrder {
		if r, ok := s.readings[id]; ok {
			out = append(out, r)
		}
	}
	return out
}

// ReadingsForBook returns a book's event history in insertion order, the
// form the derivation functions expect.
func (s *Store) ReadingsForBook(bookID string) []types.Reading {
	var out []types.Reading
	for _, id := range s.readingOrder {
		r, ok := s.readings[id]
		if ok && r.BookID == bookID {
			out = append(out, r)
		}
	}
	return out
}

// AuthorNameForBook returns the author name for a book, or an empty string
// when the author reference does not resolve.
func (s *Store) AuthorNameForBook(b types.Book) string {
	if a, ok := s.authors[b.AuthorID]; ok {
		return a.Name
	}
	return ""
}

// Status returns a book's derived progress state.
func (s *Store) Status(bookID string) string {
	return types.DeriveStatus(s.ReadingsForBook(bookID))
}

// WantToRead reports whether a book is on the want-to-read list.
func (s *Store) WantToRead(bookID string) bool {
	return types.IsWantToRead(s.ReadingsForBook(bookID))
}

// Bought reports whether a book was ever bought.
func (s *Store) Bought(bookID string) bool {
	return types.IsBought(s.ReadingsForBook(bookID))
}

// Progress returns a book's most recent page payload.
func (s *Store) Progress(bookID string) (int, bool) {
	return types.LatestProgress(s.ReadingsForBook(bookID))
}

// Clone returns a deep copy. Repair mutates the copy so a resolver failure
// leaves the original untouched.
func (s *Store) Clone() *Store {
	c := New()
	for k, v := range s.books {
		c.books[k] = v
	}
	for k, v := range s.readings {
		if v.Metadata.CurrentPage != nil {
			page := *v.Metadata.CurrentPage
			v.Metadata.CurrentPage = &page
		}
		c.readings[k] = v
	}
	for k, v := range s.authors {
		c.authors[k] = v
	}
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.series {
		c.series[k] = v
	}
	for k, v := range s.reviews {
		c.reviews[k] = v
	}
	for k, v := range s.goals {
		c.goals[k] = v
	}
	c.readingOrder = append([]string(nil), s.readingOrder...)
	return c
}

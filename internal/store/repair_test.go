package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benedicteb/bookmon/pkg/types"
)

// scriptedResolver replays a fixed sequence of resolutions and records the
// orphans it was asked about.
type scriptedResolver struct {
	script []Resolution
	asked  []Orphan
	err    error
}

func (r *scriptedResolver) ChooseReplacement(orphan Orphan, existing []Candidate) (Resolution, error) {
	if r.err != nil {
		return Resolution{}, r.err
	}
	r.asked = append(r.asked, orphan)
	if len(r.script) == 0 {
		return Skip(), nil
	}
	next := r.script[0]
	r.script = r.script[1:]
	return next, nil
}

// brokenStore builds a store whose book references a missing author.
func brokenStore(t *testing.T) (*Store, types.Book) {
	t.Helper()
	s := New()
	category := types.NewCategory("Fiction", "")
	require.NoError(t, s.AddCategory(category))

	book := types.NewBook("Orphaned Book", "", category.ID, "", 0)
	book.AuthorID = "missing-author"
	s.books[book.ID] = book
	return s, book
}

func TestRepairCreateNew(t *testing.T) {
	s, book := brokenStore(t)
	resolver := &scriptedResolver{script: []Resolution{CreateNew("Unknown Author")}}

	clean, actions, err := Repair(s, resolver)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, RefAuthor, actions[0].Orphan.RefKind)
	assert.NotEmpty(t, actions[0].CreatedID)

	repaired, err := clean.Book(book.ID)
	require.NoError(t, err)
	author, err := clean.Author(repaired.AuthorID)
	require.NoError(t, err)
	assert.Equal(t, "Unknown Author", author.Name)

	// The input store keeps its dangling reference.
	original, err := s.Book(book.ID)
	require.NoError(t, err)
	assert.Equal(t, "missing-author", original.AuthorID)
}

func TestRepairUseExisting(t *testing.T) {
	s, book := brokenStore(t)
	existing := types.NewAuthor("Existing Author")
	require.NoError(t, s.AddAuthor(existing))

	resolver := &scriptedResolver{script: []Resolution{UseExisting(existing.ID)}}
	clean, actions, err := Repair(s, resolver)
	require.NoError(t, err)
	require.Len(t, actions, 1)

	repaired, err := clean.Book(book.ID)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, repaired.AuthorID)
}

func TestRepairSkipClears(t *testing.T) {
	s, book := brokenStore(t)
	resolver := &scriptedResolver{script: []Resolution{Skip()}}

	clean, actions, err := Repair(s, resolver)
	require.NoError(t, err)
	require.Len(t, actions, 1)

	repaired, err := clean.Book(book.ID)
	require.NoError(t, err)
	assert.Empty(t, repaired.AuthorID, "skip leaves the reference explicitly absent")
}

func TestRepairDanglingSeries(t *testing.T) {
	s := New()
	author := types.NewAuthor("A")
	require.NoError(t, s.AddAuthor(author))
	category := types.NewCategory("C", "")
	require.NoError(t, s.AddCategory(category))

	book := types.NewBook("In a Ghost Series", "", category.ID, author.ID, 0)
	book.SeriesID = "ghost-series"
	book.PositionInSeries = "3"
	s.books[book.ID] = book

	resolver := &scriptedResolver{script: []Resolution{Skip()}}
	clean, actions, err := Repair(s, resolver)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, RefSeries, actions[0].Orphan.RefKind)

	repaired, err := clean.Book(book.ID)
	require.NoError(t, err)
	assert.Empty(t, repaired.SeriesID)
	assert.Empty(t, repaired.PositionInSeries, "position is meaningless without a series")
}

func TestRepairOrphanedReading(t *testing.T) {
	s := New()
	reading := types.NewReading("vanished-book", types.EventFinished)
	s.readings[reading.ID] = reading
	s.readingOrder = append(s.readingOrder, reading.ID)

	t.Run("skip drops the event", func(t *testing.T) {
		resolver := &scriptedResolver{script: []Resolution{Skip()}}
		clean, actions, err := Repair(s, resolver)
		require.NoError(t, err)
		require.Len(t, actions, 1)
		assert.True(t, actions[0].Dropped)
		assert.Empty(t, clean.Readings())
	})

	t.Run("create-new builds a placeholder book", func(t *testing.T) {
		resolver := &scriptedResolver{script: []Resolution{CreateNew("Recovered Title")}}
		clean, actions, err := Repair(s, resolver)
		require.NoError(t, err)
		require.Len(t, actions, 1)
		require.NotEmpty(t, actions[0].CreatedID)

		book, err := clean.Book(actions[0].CreatedID)
		require.NoError(t, err)
		assert.Equal(t, "Recovered Title", book.Title)
		events := clean.ReadingsForBook(book.ID)
		require.Len(t, events, 1)
		assert.Equal(t, types.EventFinished, events[0].Event)
	})
}

func TestRepairOrphanedReview(t *testing.T) {
	s := New()
	author := types.NewAuthor("A")
	require.NoError(t, s.AddAuthor(author))
	category := types.NewCategory("C", "")
	require.NoError(t, s.AddCategory(category))
	book := types.NewBook("Still Here", "", category.ID, author.ID, 0)
	require.NoError(t, s.AddBook(book))

	review := types.NewReview("vanished-book", "Good while it lasted.")
	s.reviews[review.ID] = review

	resolver := &scriptedResolver{script: []Resolution{UseExisting(book.ID)}}
	clean, actions, err := Repair(s, resolver)
	require.NoError(t, err)
	require.Len(t, actions, 1)

	got, err := clean.Review(review.ID)
	require.NoError(t, err)
	assert.Equal(t, book.ID, got.BookID)
}

func TestRepairResolverFailureAborts(t *testing.T) {
	s, book := brokenStore(t)
	boom := errors.New("input stream closed")
	resolver := &scriptedResolver{err: boom}

	clean, actions, err := Repair(s, resolver)
	require.ErrorIs(t, err, boom)
	assert.Nil(t, clean)
	assert.Nil(t, actions)

	// Nothing was committed anywhere.
	original, err := s.Book(book.ID)
	require.NoError(t, err)
	assert.Equal(t, "missing-author", original.AuthorID)
	assert.Empty(t, s.Authors())
}

func TestRepairCleanStoreAsksNothing(t *testing.T) {
	s := seedStore(t)
	resolver := &scriptedResolver{}

	clean, actions, err := Repair(s, resolver)
	require.NoError(t, err)
	assert.Empty(t, actions)
	assert.Empty(t, resolver.asked)
	assert.Len(t, clean.Books(), len(s.Books()))
}

func TestRepairInvalidReplacementFails(t *testing.T) {
	s, _ := brokenStore(t)
	resolver := &scriptedResolver{script: []Resolution{UseExisting("not-a-real-author")}}

	_, _, err := Repair(s, resolver)
	require.ErrorIs(t, err, types.ErrNotFound)
}

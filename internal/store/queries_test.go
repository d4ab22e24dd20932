package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benedicteb/bookmon/pkg/types"
)

// libraryFixture builds a store with books in various derived states.
type libraryFixture struct {
	s                                  *Store
	reading, finished, backlog, wanted types.Book
}

func newLibraryFixture(t *testing.T) libraryFixture {
	t.Helper()
	s := New()
	author := types.NewAuthor("Octavia E. Butler")
	require.NoError(t, s.AddAuthor(author))
	category := types.NewCategory("Science Fiction", "")
	require.NoError(t, s.AddCategory(category))

	mk := func(title string) types.Book {
		b := types.NewBook(title, "", category.ID, author.ID, 300)
		require.NoError(t, s.AddBook(b))
		return b
	}
	at := func(b types.Book, event string, when time.Time) {
		r := types.NewReading(b.ID, event)
		r.CreatedOn = when
		require.NoError(t, s.AddReading(r))
	}

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	reading := mk("Kindred")
	at(reading, types.EventStarted, base)

	finished := mk("Dawn")
	at(finished, types.EventStarted, base)
	at(finished, types.EventFinished, base.Add(48*time.Hour))

	backlog := mk("Parable of the Sower")

	wanted := mk("Wild Seed")
	at(wanted, types.EventWantToRead, base)

	return libraryFixture{s: s, reading: reading, finished: finished, backlog: backlog, wanted: wanted}
}

func titles(books []types.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}

func TestDerivedListings(t *testing.T) {
	f := newLibraryFixture(t)

	assert.Equal(t, []string{"Kindred"}, titles(f.s.StartedBooks()))
	assert.Equal(t, []string{"Dawn"}, titles(f.s.FinishedBooks()))
	assert.ElementsMatch(t, []string{"Parable of the Sower", "Wild Seed"}, titles(f.s.UnstartedBooks()))
	assert.Equal(t, []string{"Wild Seed"}, titles(f.s.WantToReadBooks()))
	assert.Empty(t, f.s.BoughtBooks())
}

func TestReadingListCombinesWithoutDuplicates(t *testing.T) {
	f := newLibraryFixture(t)

	// Mark the currently-reading book as wanted too; it must appear once.
	r := types.NewReading(f.reading.ID, types.EventWantToRead)
	r.CreatedOn = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, f.s.AddReading(r))

	got := titles(f.s.ReadingListBooks())
	assert.Equal(t, []string{"Kindred", "Wild Seed"}, got)
}

func TestBooksFinishedInYear(t *testing.T) {
	f := newLibraryFixture(t)

	assert.Equal(t, []string{"Dawn"}, titles(f.s.BooksFinishedInYear(2024)))
	assert.Empty(t, f.s.BooksFinishedInYear(2023))

	year, ok := f.s.EarliestFinishedYear()
	require.True(t, ok)
	assert.Equal(t, 2024, year)
}

func TestEarliestFinishedYearEmpty(t *testing.T) {
	_, ok := New().EarliestFinishedYear()
	assert.False(t, ok)
}

func TestSortedBooksRanksStatus(t *testing.T) {
	f := newLibraryFixture(t)
	got := titles(f.s.SortedBooks())

	// Currently reading first, finished last, backlog in between sorted
	// by title (one author throughout).
	assert.Equal(t, []string{"Kindred", "Parable of the Sower", "Wild Seed", "Dawn"}, got)
}

func TestFinishedOnAndStartedOn(t *testing.T) {
	f := newLibraryFixture(t)

	finishedOn, ok := f.s.FinishedOn(f.finished.ID)
	require.True(t, ok)
	assert.Equal(t, 3, finishedOn.Day())

	_, ok = f.s.FinishedOn(f.backlog.ID)
	assert.False(t, ok)

	startedOn, ok := f.s.StartedOn(f.reading.ID)
	require.True(t, ok)
	assert.Equal(t, time.May, startedOn.Month())
}

func TestGroupBySeries(t *testing.T) {
	s := New()
	adams := types.NewAuthor("Douglas Adams")
	require.NoError(t, s.AddAuthor(adams))
	zelazny := types.NewAuthor("Roger Zelazny")
	require.NoError(t, s.AddAuthor(zelazny))
	category := types.NewCategory("SF", "")
	require.NoError(t, s.AddCategory(category))

	series, err := s.GetOrCreateSeries("Hitchhiker's Guide")
	require.NoError(t, err)

	second := types.NewBook("The Restaurant at the End of the Universe", "", category.ID, adams.ID, 0)
	second.SeriesID = series.ID
	second.PositionInSeries = "2"
	require.NoError(t, s.AddBook(second))

	first := types.NewBook("The Hitchhiker's Guide to the Galaxy", "", category.ID, adams.ID, 0)
	first.SeriesID = series.ID
	first.PositionInSeries = "1"
	require.NoError(t, s.AddBook(first))

	standalone := types.NewBook("Lord of Light", "", category.ID, zelazny.ID, 0)
	require.NoError(t, s.AddBook(standalone))

	entries := s.GroupBySeries(s.Books())
	require.Len(t, entries, 2)

	assert.Equal(t, "Hitchhiker's Guide", entries[0].SeriesName)
	assert.Equal(t, []string{
		"The Hitchhiker's Guide to the Galaxy",
		"The Restaurant at the End of the Universe",
	}, titles(entries[0].Books), "series group sorted by position")

	assert.Empty(t, entries[1].SeriesName)
	assert.Equal(t, []string{"Lord of Light"}, titles(entries[1].Books))
}

func TestGroupBySeriesOrphanedSeriesIsStandalone(t *testing.T) {
	s := New()
	author := types.NewAuthor("A")
	require.NoError(t, s.AddAuthor(author))
	category := types.NewCategory("C", "")
	require.NoError(t, s.AddCategory(category))

	b := types.NewBook("Loose End", "", category.ID, author.ID, 0)
	b.SeriesID = "ghost"
	s.books[b.ID] = b

	entries := s.GroupBySeries(s.Books())
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].SeriesName)
}

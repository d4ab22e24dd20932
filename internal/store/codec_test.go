package store

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benedicteb/bookmon/pkg/types"
)

// seedStore builds a store with one of everything.
func seedStore(t *testing.T) *Store {
	t.Helper()
	s := New()

	author := types.NewAuthor("Ursula K. Le Guin")
	require.NoError(t, s.AddAuthor(author))

	category := types.NewCategory("Science Fiction", "")
	require.NoError(t, s.AddCategory(category))

	series, err := s.GetOrCreateSeries("Earthsea")
	require.NoError(t, err)

	book := types.NewBook("A Wizard of Earthsea", "9780547722023", category.ID, author.ID, 183)
	book.SeriesID = series.ID
	book.PositionInSeries = "1"
	require.NoError(t, s.AddBook(book))

	require.NoError(t, s.AddReading(types.NewReading(book.ID, types.EventStarted)))
	require.NoError(t, s.AddReading(types.NewReadingWithPage(book.ID, types.EventUpdate, 90)))
	require.NoError(t, s.AddReview(types.NewReview(book.ID, "Sparse and beautiful.")))
	require.NoError(t, s.SetGoal(2025, 24))

	return s
}

func TestEncodeDeterminism(t *testing.T) {
	s := seedStore(t)

	first, err := Encode(s)
	require.NoError(t, err)
	second, err := Encode(s)
	require.NoError(t, err)

	assert.Equal(t, first, second, "two encodes of an unchanged store must be byte-identical")
}

func TestEncodeIndependentOfBuildOrder(t *testing.T) {
	author := types.NewAuthor("Iain M. Banks")
	category := types.NewCategory("Science Fiction", "")
	bookA := types.NewBook("Consider Phlebas", "", category.ID, author.ID, 0)
	bookB := types.NewBook("The Player of Games", "", category.ID, author.ID, 0)

	forward := New()
	require.NoError(t, forward.AddAuthor(author))
	require.NoError(t, forward.AddCategory(category))
	require.NoError(t, forward.AddBook(bookA))
	require.NoError(t, forward.AddBook(bookB))

	reverse := New()
	require.NoError(t, reverse.AddAuthor(author))
	require.NoError(t, reverse.AddCategory(category))
	require.NoError(t, reverse.AddBook(bookB))
	require.NoError(t, reverse.AddBook(bookA))

	a, err := Encode(forward)
	require.NoError(t, err)
	b, err := Encode(reverse)
	require.NoError(t, err)
	assert.Equal(t, a, b, "insertion order must not leak into the encoded form")
}

func TestRoundTrip(t *testing.T) {
	s := seedStore(t)

	encoded, err := Encode(s)
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)

	reencoded, err := Encode(decoded)
	require.NoError(t, err)
	assert.Equal(t, encoded, reencoded, "decode then encode must reproduce the bytes")
}

func TestEncodeSortsKeys(t *testing.T) {
	s := seedStore(t)
	encoded, err := Encode(s)
	require.NoError(t, err)

	text := string(encoded)
	// Top-level collections appear in lexicographic order.
	order := []string{`"authors"`, `"books"`, `"categories"`, `"goals"`, `"readings"`, `"reviews"`, `"series"`}
	last := -1
	for _, key := range order {
		idx := strings.Index(text, key)
		require.GreaterOrEqual(t, idx, 0, "missing %s", key)
		assert.Greater(t, idx, last, "%s out of order", key)
		last = idx
	}
	// Object keys inside a record are sorted too.
	assert.Less(t, strings.Index(text, `"added_on"`), strings.Index(text, `"author_id"`))
}

func TestEncodeOmitsEmptyOptionals(t *testing.T) {
	s := New()
	author := types.NewAuthor("Anonymous")
	require.NoError(t, s.AddAuthor(author))
	category := types.NewCategory("Misc", "")
	require.NoError(t, s.AddCategory(category))
	book := types.NewBook("Untitled Draft", "", category.ID, author.ID, 0)
	require.NoError(t, s.AddBook(book))

	encoded, err := Encode(s)
	require.NoError(t, err)

	text := string(encoded)
	assert.NotContains(t, text, `"isbn"`)
	assert.NotContains(t, text, `"total_pages"`)
	assert.NotContains(t, text, `"series_id"`)
	assert.NotContains(t, text, `"position_in_series"`)
	assert.NotContains(t, text, `"description"`)
}

func TestDecodeLegacyPosition(t *testing.T) {
	data := `{
  "authors": {},
  "books": {
    "b1": {
      "added_on": "2024-01-15T10:30:00Z",
      "id": "b1",
      "position_in_series": 2,
      "title": "Legacy Integer"
    },
    "b2": {
      "added_on": "2024-01-15T10:30:00Z",
      "id": "b2",
      "position_in_series": "2.5",
      "title": "Current String"
    }
  },
  "categories": {},
  "readings": {}
}`
	s, err := Decode([]byte(data))
	require.NoError(t, err)

	b1, err := s.Book("b1")
	require.NoError(t, err)
	assert.Equal(t, "2", b1.PositionInSeries, "integer position normalizes to its decimal text")

	b2, err := s.Book("b2")
	require.NoError(t, err)
	assert.Equal(t, "2.5", b2.PositionInSeries)
}

func TestDecodeMissingCollectionsDefaultEmpty(t *testing.T) {
	// A file from before series, reviews, and goals existed.
	data := `{"authors": {}, "books": {}, "categories": {}, "readings": {}}`
	s, err := Decode([]byte(data))
	require.NoError(t, err)

	assert.Empty(t, s.AllSeries())
	assert.Empty(t, s.Reviews())
	assert.Empty(t, s.Goals())
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode([]byte(`{"books": [1, 2]`))
	require.Error(t, err)
}

func TestDecodeBadTimestamp(t *testing.T) {
	data := `{"authors": {"a1": {"id": "a1", "name": "X", "created_on": "yesterday"}}}`
	_, err := Decode([]byte(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a1")
}

func TestDecodeReadingOrderDeterministic(t *testing.T) {
	s := seedStore(t)
	encoded, err := Encode(s)
	require.NoError(t, err)

	first, err := Decode(encoded)
	require.NoError(t, err)
	second, err := Decode(encoded)
	require.NoError(t, err)

	assert.Equal(t, first.readingOrder, second.readingOrder)
}

func TestTimestampRoundTrip(t *testing.T) {
	created := time.Date(2024, 6, 1, 8, 30, 0, 123456789, time.UTC)
	s := New()
	a := types.NewAuthor("Timestamped")
	a.CreatedOn = created
	require.NoError(t, s.AddAuthor(a))

	encoded, err := Encode(s)
	require.NoError(t, err)
	decoded, err := Decode(encoded)
	require.NoError(t, err)

	got, err := decoded.Author(a.ID)
	require.NoError(t, err)
	assert.True(t, got.CreatedOn.Equal(created))
}

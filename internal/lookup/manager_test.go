package lookup

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	name   string
	book   *BookLookup
	err    error
	called bool
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) GetBookByISBN(ctx context.Context, isbn string) (*BookLookup, error) {
	s.called = true
	return s.book, s.err
}

func TestManagerFirstHitWins(t *testing.T) {
	first := &stubProvider{name: "first", book: &BookLookup{Title: "Hit"}}
	second := &stubProvider{name: "second", book: &BookLookup{Title: "Never seen"}}
	m := NewManagerWith(first, second)

	book, err := m.GetBookByISBN(context.Background(), "9780756404079")
	require.NoError(t, err)
	require.NotNil(t, book)
	assert.Equal(t, "Hit", book.Title)
	assert.False(t, second.called, "later providers must not be asked after a hit")
}

func TestManagerFallsThroughErrors(t *testing.T) {
	broken := &stubProvider{name: "broken", err: errors.New("timeout")}
	working := &stubProvider{name: "working", book: &BookLookup{Title: "Recovered"}}
	m := NewManagerWith(broken, working)

	book, err := m.GetBookByISBN(context.Background(), "9780756404079")
	require.NoError(t, err)
	require.NotNil(t, book)
	assert.Equal(t, "Recovered", book.Title)
}

func TestManagerAllMiss(t *testing.T) {
	m := NewManagerWith(
		&stubProvider{name: "a"},
		&stubProvider{name: "b", err: errors.New("down")},
	)

	book, err := m.GetBookByISBN(context.Background(), "9780756404079")
	require.NoError(t, err)
	assert.Nil(t, book)
}

func TestManagerNoProviders(t *testing.T) {
	book, err := NewManagerWith().GetBookByISBN(context.Background(), "9780756404079")
	require.NoError(t, err)
	assert.Nil(t, book)
}

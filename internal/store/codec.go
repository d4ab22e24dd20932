// Canonical JSON codec for the storage file. The encoded form is
// deterministic: objects are re-marshalled through Go maps, whose keys are
// always emitted in sorted order, so two stores with the same logical
// content produce byte-identical files no matter the order operations ran
// in. Optional fields holding their empty value are omitted entirely.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/benedicteb/bookmon/pkg/types"
)

// Record structures mirroring the file format. Field names are part of the
// persisted form and must not change.

type authorJSON struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedOn string `json:"created_on"`
}

type categoryJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedOn   string `json:"created_on"`
}

type bookJSON struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	AddedOn          string   `json:"added_on"`
	ISBN             string   `json:"isbn,omitempty"`
	CategoryID       string   `json:"category_id,omitempty"`
	AuthorID         string   `json:"author_id,omitempty"`
	TotalPages       int      `json:"total_pages,omitempty"`
	SeriesID         string   `json:"series_id,omitempty"`
	PositionInSeries position `json:"position_in_series,omitempty"`
}

type seriesJSON struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Status     string `json:"status,omitempty"`
	TotalBooks int    `json:"total_books,omitempty"`
}

type readingMetadataJSON struct {
	CurrentPage *int `json:"current_page,omitempty"`
}

type readingJSON struct {
	ID        string               `json:"id"`
	CreatedOn string               `json:"created_on"`
	BookID    string               `json:"book_id"`
	Event     string               `json:"event"`
	Metadata  *readingMetadataJSON `json:"metadata,omitempty"`
}

type reviewJSON struct {
	ID        string `json:"id"`
	BookID    string `json:"book_id"`
	CreatedOn string `json:"created_on"`
	Text      string `json:"text"`
}

type goalJSON struct {
	Target int `json:"target"`
}

type storeJSON struct {
	Authors    map[string]authorJSON   `json:"authors"`
	Books      map[string]bookJSON     `json:"books"`
	Categories map[string]categoryJSON `json:"categories"`
	Goals      map[string]goalJSON     `json:"goals"`
	Readings   map[string]readingJSON  `json:"readings"`
	Reviews    map[string]reviewJSON   `json:"reviews"`
	Series     map[string]seriesJSON   `json:"series"`
}

// position accepts both encodings of position_in_series: the current
// free-form string and the historical signed integer, which is normalized
// to its decimal text. New optional fields never break old files; this is
// the one field whose representation actually changed.
type position string

func (p *position) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = position(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*p = position(n.String())
		return nil
	}
	return fmt.Errorf("position_in_series: cannot decode %s", data)
}

// Encode serializes the store to its canonical byte form.
func Encode(s *Store) ([]byte, error) {
	doc := storeJSON{
		Authors:    make(map[string]authorJSON, len(s.authors)),
		Books:      make(map[string]bookJSON, len(s.books)),
		Categories: make(map[string]categoryJSON, len(s.categories)),
		Goals:      make(map[string]goalJSON, len(s.goals)),
		Readings:   make(map[string]readingJSON, len(s.readings)),
		Reviews:    make(map[string]reviewJSON, len(s.reviews)),
		Series:     make(map[string]seriesJSON, len(s.series)),
	}

	for id, a := range s.authors {
		doc.Authors[id] = authorJSON{ID: a.ID, Name: a.Name, CreatedOn: encodeTime(a.CreatedOn)}
	}
	for id, c := range s.categories {
		doc.Categories[id] = categoryJSON{ID: c.ID, Name: c.Name, Description: c.Description, CreatedOn: encodeTime(c.CreatedOn)}
	}
	for id, b := range s.books {
		doc.Books[id] = bookJSON{
			ID:               b.ID,
			Title:            b.Title,
			AddedOn:          encodeTime(b.AddedOn),
			ISBN:             b.ISBN,
			CategoryID:       b.CategoryID,
			AuthorID:         b.AuthorID,
			TotalPages:       b.TotalPages,
			SeriesID:         b.SeriesID,
			PositionInSeries: position(b.PositionInSeries),
		}
	}
	for id, sr := range s.series {
		doc.Series[id] = seriesJSON{ID: sr.ID, Name: sr.Name, Status: sr.Status, TotalBooks: sr.TotalBooks}
	}
	for id, r := range s.readings {
		rec := readingJSON{ID: r.ID, CreatedOn: encodeTime(r.CreatedOn), BookID: r.BookID, Event: r.Event}
		if r.Metadata.CurrentPage != nil {
			page := *r.Metadata.CurrentPage
			rec.Metadata = &readingMetadataJSON{CurrentPage: &page}
		}
		doc.Readings[id] = rec
	}
	for id, r := range s.reviews {
		doc.Reviews[id] = reviewJSON{ID: r.ID, BookID: r.BookID, CreatedOn: encodeTime(r.CreatedOn), Text: r.Text}
	}
	for year, g := range s.goals {
		doc.Goals[strconv.Itoa(year)] = goalJSON{Target: g.Target}
	}

	return canonicalJSON(doc)
}

// Decode parses canonical bytes back into a Store. Unknown fields are
// ignored and absent collections default to empty, so files written by
// older generations keep loading. A Decode error is fatal to the load
// attempt: no half-built store is ever returned.
func Decode(data []byte) (*Store, error) {
	var doc storeJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse storage: %w", err)
	}

	s := New()
	for id, a := range doc.Authors {
		createdOn, err := decodeTime(a.CreatedOn)
		if err != nil {
			return nil, fmt.Errorf("author %s: %w", id, err)
		}
		s.authors[id] = types.Author{ID: a.ID, Name: a.Name, CreatedOn: createdOn}
	}
	for id, c := range doc.Categories {
		createdOn, err := decodeTime(c.CreatedOn)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", id, err)
		}
		s.categories[id] = types.Category{ID: c.ID, Name: c.Name, Description: c.Description, CreatedOn: createdOn}
	}
	for id, b := range doc.Books {
		addedOn, err := decodeTime(b.AddedOn)
		if err != nil {
			return nil, fmt.Errorf("book %s: %w", id, err)
		}
		s.books[id] = types.Book{
			ID:               b.ID,
			Title:            b.Title,
			AddedOn:          addedOn,
			ISBN:             b.ISBN,
			CategoryID:       b.CategoryID,
			AuthorID:         b.AuthorID,
			TotalPages:       b.TotalPages,
			SeriesID:         b.SeriesID,
			PositionInSeries: string(b.PositionInSeries),
		}
	}
	for id, sr := range doc.Series {
		s.series[id] = types.Series{ID: sr.ID, Name: sr.Name, Status: sr.Status, TotalBooks: sr.TotalBooks}
	}
	for id, r := range doc.Readings {
		createdOn, err := decodeTime(r.CreatedOn)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", id, err)
		}
		rec := types.Reading{ID: r.ID, CreatedOn: createdOn, BookID: r.BookID, Event: r.Event}
		if r.Metadata != nil && r.Metadata.CurrentPage != nil {
			page := *r.Metadata.CurrentPage
			rec.Metadata.CurrentPage = &page
		}
		s.readings[id] = rec
	}
	for id, r := range doc.Reviews {
		createdOn, err := decodeTime(r.CreatedOn)
		if err != nil {
			return nil, fmt.Errorf("review %s: %w", id, err)
		}
		s.reviews[id] = types.Review{ID: r.ID, BookID: r.BookID, CreatedOn: createdOn, Text: r.Text}
	}
	for yearStr, g := range doc.Goals {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return nil, fmt.Errorf("goal year %q: %w", yearStr, err)
		}
		s.goals[year] = types.Goal{Year: year, Target: g.Target}
	}

	// Sorted IDs stand in for insertion order after a load; the file is a
	// JSON object so the original append order is gone, and sorting keeps
	// every load of the same file identical.
	s.readingOrder = make([]string, 0, len(s.readings))
	for id := range s.readings {
		s.readingOrder = append(s.readingOrder, id)
	}
	sort.Strings(s.readingOrder)

	return s, nil
}

// canonicalJSON re-marshals v through an untyped map tree so every object's
// keys come out sorted, then pretty-prints with two-space indent and a
// trailing newline.
func canonicalJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal storage: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("normalize storage: %w", err)
	}

	out, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal storage: %w", err)
	}
	return append(out, '\n'), nil
}

func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func decodeTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

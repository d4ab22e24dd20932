// This file implements the one-shot export of a catalog snapshot.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"github.com/benedicteb/bookmon/internal/store"
)

// Export writes the full contents of s to a new SQLite database at dbPath.
// An existing file at dbPath is replaced. The export is transactional: the
// database holds either the complete snapshot or nothing.
func Export(s *store.Store, dbPath string) error {
	if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing previous export: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating indexes: %w", err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning export transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertAll(tx, s); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing export transaction: %w", err)
	}
	return nil
}

// insertAll writes every collection in dependency order so the foreign
// keys in the schema hold.
func insertAll(tx *sql.Tx, s *store.Store) error {
	for _, a := range s.Authors() {
		if err := exec(tx,
			"INSERT INTO authors (author_id, name, created_on) VALUES (?, ?, ?)",
			a.ID, a.Name, timestamp(a.CreatedOn)); err != nil {
			return fmt.Errorf("exporting author %s: %w", a.ID, err)
		}
	}
	for _, c := range s.Categories() {
		if err := exec(tx,
			"INSERT INTO categories (category_id, name, description, created_on) VALUES (?, ?, ?, ?)",
			c.ID, c.Name, nullable(c.Description), timestamp(c.CreatedOn)); err != nil {
			return fmt.Errorf("exporting category %s: %w", c.ID, err)
		}
	}
	for _, sr := range s.AllSeries() {
		var total any
		if sr.TotalBooks > 0 {
			total = sr.TotalBooks
		}
		if err := exec(tx,
			"INSERT INTO series (series_id, name, status, total_books) VALUES (?, ?, ?, ?)",
			sr.ID, sr.Name, nullable(sr.Status), total); err != nil {
			return fmt.Errorf("exporting series %s: %w", sr.ID, err)
		}
	}
	for _, b := range s.Books() {
		if err := exec(tx,
			"INSERT INTO books (book_id, title, added_on, isbn, category_id, author_id, total_pages, series_id, position_in_series) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
			b.ID, b.Title, timestamp(b.AddedOn), nullable(b.ISBN), b.CategoryID,
			b.AuthorID, b.TotalPages, nullable(b.SeriesID), nullable(b.PositionInSeries)); err != nil {
			return fmt.Errorf("exporting book %s: %w", b.ID, err)
		}
	}
	for _, r := range s.Readings() {
		var page any
		if r.Metadata.CurrentPage != nil {
			page = *r.Metadata.CurrentPage
		}
		if err := exec(tx,
			"INSERT INTO readings (reading_id, book_id, event, created_on, current_page) VALUES (?, ?, ?, ?, ?)",
			r.ID, r.BookID, r.Event, timestamp(r.CreatedOn), page); err != nil {
			return fmt.Errorf("exporting reading %s: %w", r.ID, err)
		}
	}
	for _, rv := range s.Reviews() {
		if err := exec(tx,
			"INSERT INTO reviews (review_id, book_id, text, created_on) VALUES (?, ?, ?, ?)",
			rv.ID, rv.BookID, rv.Text, timestamp(rv.CreatedOn)); err != nil {
			return fmt.Errorf("exporting review %s: %w", rv.ID, err)
		}
	}
	for _, g := range s.Goals() {
		if err := exec(tx,
			"INSERT INTO goals (year, target) VALUES (?, ?)",
			g.Year, g.Target); err != nil {
			return fmt.Errorf("exporting goal %d: %w", g.Year, err)
		}
	}
	return nil
}

func exec(tx *sql.Tx, query string, args ...any) error {
	_, err := tx.Exec(query, args...)
	return err
}

// timestamp renders times the same way the storage file does.
func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// nullable maps the empty string to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

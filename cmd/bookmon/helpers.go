// Shared helpers for bookmon CLI commands.
package main

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/benedicteb/bookmon/internal/log"
	"github.com/benedicteb/bookmon/internal/store"
	"github.com/benedicteb/bookmon/pkg/types"
)

// openCatalog initializes the storage file on first run, loads it, and runs
// the repair pass with interactive resolution. When repairs were applied the
// fixed catalog is written back before the command proceeds.
func openCatalog() (*store.Store, string, error) {
	path, err := resolveStoragePath()
	if err != nil {
		return nil, "", fmt.Errorf("resolve storage path: %w", err)
	}

	if err := store.Initialize(path); err != nil {
		return nil, "", fmt.Errorf("initialize storage: %w", err)
	}

	s, actions, err := store.LoadAndRepair(path, consoleResolver{})
	if err != nil {
		return nil, "", fmt.Errorf("load storage: %w", err)
	}

	if len(actions) > 0 {
		log.Info("storage repaired", zap.Int("fixes", len(actions)), zap.String("path", path))
		if err := store.Save(path, s); err != nil {
			return nil, "", fmt.Errorf("save repaired storage: %w", err)
		}
		fmt.Printf("Repaired %d storage problem(s).\n", len(actions))
	}

	return s, path, nil
}

// saveCatalog persists the store back to its file.
func saveCatalog(s *store.Store, path string) error {
	if err := store.Save(path, s); err != nil {
		return fmt.Errorf("save storage: %w", err)
	}
	return nil
}

// findBookByTitle matches books case-insensitively on title. An exact match
// wins; otherwise substring matches are offered for selection.
func findBookByTitle(s *store.Store, title string) (types.Book, error) {
	needle := strings.ToLower(strings.TrimSpace(title))
	if needle == "" {
		return types.Book{}, fmt.Errorf("book title: %w", types.ErrEmptyTitle)
	}

	var matches []types.Book
	for _, b := range s.Books() {
		lower := strings.ToLower(b.Title)
		if lower == needle {
			return b, nil
		}
		if strings.Contains(lower, needle) {
			matches = append(matches, b)
		}
	}

	switch len(matches) {
	case 0:
		return types.Book{}, fmt.Errorf("book %q: %w", title, types.ErrNotFound)
	case 1:
		return matches[0], nil
	}

	options := make([]string, len(matches))
	for i, b := range matches {
		options[i] = fmt.Sprintf("%s by %s", b.Title, s.AuthorNameForBook(b))
	}
	choice, err := promptSelect(fmt.Sprintf("Multiple books match %q:", title), options)
	if err != nil {
		return types.Book{}, err
	}
	return matches[choice], nil
}

// recordEvent appends a reading event for the named book and saves.
func recordEvent(title, event string) error {
	s, path, err := openCatalog()
	if err != nil {
		return err
	}

	book, err := findBookByTitle(s, title)
	if err != nil {
		return err
	}

	if err := s.AddReading(types.NewReading(book.ID, event)); err != nil {
		return err
	}
	return saveCatalog(s, path)
}

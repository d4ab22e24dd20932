// Add command: interactive book entry with ISBN lookup assistance.
package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/benedicteb/bookmon/internal/lookup"
	"github.com/benedicteb/bookmon/internal/store"
	"github.com/benedicteb/bookmon/pkg/types"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a book to the catalog",
	Long: `Add a book interactively. When an ISBN is given the catalog services
are asked first and their answers become prompt defaults; every field can
still be overridden by hand.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, path, err := openCatalog()
		if err != nil {
			return err
		}

		isbn, err := promptLine("Enter ISBN (or Enter to skip):")
		if err != nil {
			return err
		}

		var info *lookup.BookLookup
		if isbn != "" {
			info = lookupBook(isbn)
		}
		if info == nil {
			info = &lookup.BookLookup{ISBN: lookup.NormalizeISBN(isbn)}
		}

		title, err := promptDefault("Enter title:", info.Title)
		if err != nil {
			return err
		}

		totalPages, err := promptInt("Enter total pages:")
		if err != nil {
			return err
		}

		categoryID, err := selectCategory(s)
		if err != nil {
			return err
		}

		suggestedAuthor := ""
		if len(info.Authors) > 0 {
			suggestedAuthor = info.Authors[0].Name
		}
		authorID, err := selectAuthor(s, suggestedAuthor)
		if err != nil {
			return err
		}

		seriesID, position, err := selectSeries(s, info.SeriesName, info.SeriesPosition)
		if err != nil {
			return err
		}

		book := types.NewBook(strings.TrimSpace(title), info.ISBN, categoryID, authorID, totalPages)
		book.SeriesID = seriesID
		book.PositionInSeries = position
		if err := s.AddBook(book); err != nil {
			return err
		}

		events, err := initialStatusEvents(book.ID)
		if err != nil {
			return err
		}
		for _, r := range events {
			if err := s.AddReading(r); err != nil {
				return err
			}
		}

		if err := saveCatalog(s, path); err != nil {
			return err
		}
		fmt.Printf("Added %q.\n", book.Title)
		return nil
	},
}

// lookupBook queries the providers. Misses and failures both come back nil;
// the add flow degrades to manual entry either way.
func lookupBook(isbn string) *lookup.BookLookup {
	fmt.Println("Looking up book details...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	info, err := lookup.NewManager().GetBookByISBN(ctx, isbn)
	if err != nil || info == nil {
		fmt.Println("No details found; entering manually.")
		return nil
	}
	return info
}

// selectCategory offers existing categories plus creating a new one. With an
// empty catalog it goes straight to creation.
func selectCategory(s *store.Store) (string, error) {
	categories := s.Categories()
	if len(categories) == 0 {
		name, err := promptLine("Enter new category:")
		if err != nil {
			return "", err
		}
		c := types.NewCategory(strings.TrimSpace(name), "")
		if err := s.AddCategory(c); err != nil {
			return "", err
		}
		return c.ID, nil
	}

	options := make([]string, len(categories))
	for i, c := range categories {
		options[i] = c.Name
	}
	options = append(options, "+ Create new category")

	choice, err := promptSelect("Select category:", options)
	if err != nil {
		return "", err
	}
	if choice < len(categories) {
		return categories[choice].ID, nil
	}

	name, err := promptLine("Enter new category name:")
	if err != nil {
		return "", err
	}
	c := types.NewCategory(strings.TrimSpace(name), "")
	if err := s.AddCategory(c); err != nil {
		return "", err
	}
	return c.ID, nil
}

// selectAuthor offers existing authors plus the lookup suggestion and
// creating a new one.
func selectAuthor(s *store.Store, suggested string) (string, error) {
	authors := s.Authors()

	if len(authors) == 0 {
		name, err := promptDefault("Enter new author name:", suggested)
		if err != nil {
			return "", err
		}
		a := types.NewAuthor(strings.TrimSpace(name))
		if err := s.AddAuthor(a); err != nil {
			return "", err
		}
		return a.ID, nil
	}

	var options []string
	suggestedIdx := -1
	if suggested != "" && !hasAuthorNamed(authors, suggested) {
		suggestedIdx = 0
		options = append(options, "Use suggested: "+suggested)
	}
	for _, a := range authors {
		options = append(options, a.Name)
	}
	options = append(options, "+ Create new author")

	choice, err := promptSelect("Select author:", options)
	if err != nil {
		return "", err
	}

	offset := 0
	if suggestedIdx == 0 {
		if choice == 0 {
			a := types.NewAuthor(suggested)
			if err := s.AddAuthor(a); err != nil {
				return "", err
			}
			return a.ID, nil
		}
		offset = 1
	}

	if choice-offset < len(authors) {
		return authors[choice-offset].ID, nil
	}

	name, err := promptDefault("Enter new author name:", suggested)
	if err != nil {
		return "", err
	}
	a := types.NewAuthor(strings.TrimSpace(name))
	if err := s.AddAuthor(a); err != nil {
		return "", err
	}
	return a.ID, nil
}

func hasAuthorNamed(authors []types.Author, name string) bool {
	for _, a := range authors {
		if strings.EqualFold(a.Name, name) {
			return true
		}
	}
	return false
}

// selectSeries offers the lookup suggestion, existing series, creating a new
// one, or no series at all. The returned position is empty when skipped.
func selectSeries(s *store.Store, suggestedName, suggestedPosition string) (seriesID, position string, err error) {
	existing := s.AllSeries()

	var options []string
	suggestedIdx := -1
	if suggestedName != "" {
		if _, found := s.SeriesByName(suggestedName); !found {
			suggestedIdx = 0
			options = append(options, "Use suggested: "+suggestedName)
		}
	}
	for _, sr := range existing {
		options = append(options, sr.Name)
	}
	options = append(options, "+ Create new series")
	options = append(options, "No series (standalone)")

	choice, err := promptSelect("Series:", options)
	if err != nil {
		return "", "", err
	}
	if choice == len(options)-1 {
		return "", "", nil
	}

	defaultPosition := ""
	offset := 0
	switch {
	case suggestedIdx == 0 && choice == 0:
		sr, err := s.GetOrCreateSeries(suggestedName)
		if err != nil {
			return "", "", err
		}
		seriesID = sr.ID
		defaultPosition = suggestedPosition
	case choice == len(options)-2:
		name, err := promptDefault("Enter series name:", suggestedName)
		if err != nil {
			return "", "", err
		}
		sr, err := s.GetOrCreateSeries(strings.TrimSpace(name))
		if err != nil {
			return "", "", err
		}
		seriesID = sr.ID
	default:
		if suggestedIdx == 0 {
			offset = 1
		}
		sr := existing[choice-offset]
		seriesID = sr.ID
		if strings.EqualFold(sr.Name, suggestedName) {
			defaultPosition = suggestedPosition
		}
	}

	position, err = promptDefault("Book number in series (e.g. 3), or Enter for none:", defaultPosition)
	if err != nil {
		return "", "", err
	}
	return seriesID, strings.TrimSpace(position), nil
}

// initialStatusEvents asks whether the new book is already bought or wanted.
func initialStatusEvents(bookID string) ([]types.Reading, error) {
	options := []string{"Already bought", "Want to read", "Both", "Neither"}
	choice, err := promptSelect("What is the status of this book?", options)
	if err != nil {
		return nil, err
	}

	switch options[choice] {
	case "Already bought":
		return []types.Reading{types.NewReading(bookID, types.EventBought)}, nil
	case "Want to read":
		return []types.Reading{types.NewReading(bookID, types.EventWantToRead)}, nil
	case "Both":
		return []types.Reading{
			types.NewReading(bookID, types.EventBought),
			types.NewReading(bookID, types.EventWantToRead),
		}, nil
	}
	return nil, nil
}

// List commands: the reading, finished, backlog and want-to-read views.
package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/benedicteb/bookmon/internal/store"
	"github.com/benedicteb/bookmon/internal/table"
	"github.com/benedicteb/bookmon/pkg/types"
)

var flagFinishedYear int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every book, reading first, finished last",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openCatalog()
		if err != nil {
			return err
		}

		books := s.SortedBooks()
		if len(books) == 0 {
			fmt.Println("No books in the catalog.")
			return nil
		}

		rows := [][]string{{"Title", "Author", "Category", "Status", "Want to read"}}
		for _, b := range books {
			category := ""
			if c, err := s.Category(b.CategoryID); err == nil {
				category = c.Name
			}
			wanted := ""
			if s.WantToRead(b.ID) {
				wanted = "yes"
			}
			rows = append(rows, []string{
				b.Title,
				s.AuthorNameForBook(b),
				category,
				s.Status(b.ID),
				wanted,
			})
		}
		fmt.Print(table.FormatSimple(rows))
		return nil
	},
}

var listReadingCmd = &cobra.Command{
	Use:   "reading",
	Short: "List books currently being read",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openCatalog()
		if err != nil {
			return err
		}

		books := s.StartedBooks()
		if len(books) == 0 {
			fmt.Println("No books currently being read.")
			return nil
		}

		now := time.Now()
		printBookTable(s, books,
			[]string{"Title", "Author", "Days since started", "Progress"},
			func(b types.Book, title string) []string {
				days := ""
				if started, ok := s.StartedOn(b.ID); ok {
					days = strconv.Itoa(int(now.Sub(started).Hours() / 24))
				}
				progress := ""
				if page, ok := s.Progress(b.ID); ok && b.TotalPages > 0 {
					progress = fmt.Sprintf("%.1f%%", float64(page)/float64(b.TotalPages)*100)
				}
				return []string{title, s.AuthorNameForBook(b), days, progress}
			})
		return nil
	},
}

var listFinishedCmd = &cobra.Command{
	Use:   "finished",
	Short: "List finished books",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openCatalog()
		if err != nil {
			return err
		}

		var books []types.Book
		if flagFinishedYear != 0 {
			books = s.BooksFinishedInYear(flagFinishedYear)
		} else {
			books = s.FinishedBooks()
		}
		if len(books) == 0 {
			fmt.Println("No finished books found.")
			return nil
		}

		printBookTable(s, books,
			[]string{"Title", "Author", "Finished on"},
			func(b types.Book, title string) []string {
				date := ""
				if finished, ok := s.FinishedOn(b.ID); ok {
					date = finished.Format("2006-01-02")
				}
				return []string{title, s.AuthorNameForBook(b), date}
			})
		return nil
	},
}

var listBacklogCmd = &cobra.Command{
	Use:   "backlog",
	Short: "List books not yet started",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openCatalog()
		if err != nil {
			return err
		}

		books := s.UnstartedBooks()
		if len(books) == 0 {
			fmt.Println("The backlog is empty.")
			return nil
		}

		printBookTable(s, books,
			[]string{"Title", "Author", "Added on", "Bought", "Want to read"},
			func(b types.Book, title string) []string {
				bought, wanted := "", ""
				if s.Bought(b.ID) {
					bought = "yes"
				}
				if s.WantToRead(b.ID) {
					wanted = "yes"
				}
				return []string{title, s.AuthorNameForBook(b), b.AddedOn.Format("2006-01-02"), bought, wanted}
			})
		return nil
	},
}

var listWantedCmd = &cobra.Command{
	Use:   "wanted",
	Short: "List the want-to-read list",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openCatalog()
		if err != nil {
			return err
		}

		books := s.WantToReadBooks()
		if len(books) == 0 {
			fmt.Println("The want-to-read list is empty.")
			return nil
		}

		printBookTable(s, books,
			[]string{"Title", "Author", "Bought"},
			func(b types.Book, title string) []string {
				bought := ""
				if s.Bought(b.ID) {
					bought = "yes"
				}
				return []string{title, s.AuthorNameForBook(b), bought}
			})
		return nil
	},
}

// printBookTable renders books, grouping by series when any book belongs to
// one. Grouped titles get a position prefix like "#2.5 " instead of a
// separate series column.
func printBookTable(s *store.Store, books []types.Book, header []string, rowFn func(b types.Book, title string) []string) {
	anySeries := false
	for _, b := range books {
		if b.SeriesID != "" {
			anySeries = true
			break
		}
	}

	if !anySeries {
		rows := [][]string{header}
		for _, b := range books {
			rows = append(rows, rowFn(b, b.Title))
		}
		fmt.Print(table.FormatSimple(rows))
		return
	}

	rows := []table.Row{table.Header(header...)}
	for _, entry := range s.GroupBySeries(books) {
		if entry.SeriesName == "" {
			for _, b := range entry.Books {
				rows = append(rows, table.Data(rowFn(b, b.Title)...))
			}
			continue
		}
		rows = append(rows, table.GroupHeader(entry.SeriesName, len(entry.Books)))
		for _, b := range entry.Books {
			title := types.PositionPrefix(b.PositionInSeries) + b.Title
			rows = append(rows, table.Data(rowFn(b, title)...))
		}
	}
	fmt.Print(table.Format(rows))
}

func init() {
	listFinishedCmd.Flags().IntVar(&flagFinishedYear, "year", 0, "only books finished in this year")

	listCmd.AddCommand(listReadingCmd)
	listCmd.AddCommand(listFinishedCmd)
	listCmd.AddCommand(listBacklogCmd)
	listCmd.AddCommand(listWantedCmd)
}

// Review commands for the bookmon CLI.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/benedicteb/bookmon/internal/editor"
	"github.com/benedicteb/bookmon/internal/table"
	"github.com/benedicteb/bookmon/pkg/types"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Write and read book reviews",
}

var reviewAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Write a review in your editor",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, path, err := openCatalog()
		if err != nil {
			return err
		}

		book, err := findBookByTitle(s, strings.Join(args, " "))
		if err != nil {
			return err
		}

		text, ok, err := editor.CaptureReview(book.Title, s.AuthorNameForBook(book))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Empty review, nothing saved.")
			return nil
		}

		if err := s.AddReview(types.NewReview(book.ID, text)); err != nil {
			return err
		}
		if err := saveCatalog(s, path); err != nil {
			return err
		}
		fmt.Printf("Review of %q saved.\n", book.Title)
		return nil
	},
}

var reviewListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reviewed books",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openCatalog()
		if err != nil {
			return err
		}

		reviews := s.Reviews()
		if len(reviews) == 0 {
			fmt.Println("No reviews yet.")
			return nil
		}

		rows := [][]string{{"Title", "Author", "Reviewed on"}}
		for _, r := range reviews {
			book, err := s.Book(r.BookID)
			if err != nil {
				continue
			}
			rows = append(rows, []string{
				book.Title,
				s.AuthorNameForBook(book),
				r.CreatedOn.Format("2006-01-02"),
			})
		}
		fmt.Print(table.FormatSimple(rows))
		return nil
	},
}

var reviewShowCmd = &cobra.Command{
	Use:   "show <title>",
	Short: "Show the reviews of a book",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openCatalog()
		if err != nil {
			return err
		}

		book, err := findBookByTitle(s, strings.Join(args, " "))
		if err != nil {
			return err
		}

		found := false
		for _, r := range s.Reviews() {
			if r.BookID != book.ID {
				continue
			}
			found = true
			fmt.Printf("%s by %s, reviewed %s:\n\n%s\n",
				book.Title, s.AuthorNameForBook(book),
				r.CreatedOn.Format("2006-01-02"), r.Text)
		}
		if !found {
			fmt.Printf("No review of %q yet.\n", book.Title)
		}
		return nil
	},
}

func init() {
	reviewCmd.AddCommand(reviewAddCmd)
	reviewCmd.AddCommand(reviewListCmd)
	reviewCmd.AddCommand(reviewShowCmd)
}

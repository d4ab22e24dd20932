// Reading event commands. Every command appends to the book's history;
// nothing is ever edited or removed.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/benedicteb/bookmon/pkg/types"
)

var startCmd = &cobra.Command{
	Use:   "start <title>",
	Short: "Mark a book as started",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return recordEvent(strings.Join(args, " "), types.EventStarted)
	},
}

var finishCmd = &cobra.Command{
	Use:   "finish <title>",
	Short: "Mark a book as finished",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.Join(args, " ")
		if err := recordEvent(title, types.EventFinished); err != nil {
			return err
		}
		return printGoalPace()
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress <title> <page>",
	Short: "Record the current page of a book",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := strconv.Atoi(args[len(args)-1])
		if err != nil || page < 0 {
			return fmt.Errorf("page must be a non-negative number, got %q", args[len(args)-1])
		}
		title := strings.Join(args[:len(args)-1], " ")

		s, path, err := openCatalog()
		if err != nil {
			return err
		}
		book, err := findBookByTitle(s, title)
		if err != nil {
			return err
		}
		if err := s.AddReading(types.NewReadingWithPage(book.ID, types.EventUpdate, page)); err != nil {
			return err
		}
		if err := saveCatalog(s, path); err != nil {
			return err
		}

		if book.TotalPages > 0 {
			fmt.Printf("%s: page %d of %d (%.1f%%).\n",
				book.Title, page, book.TotalPages,
				float64(page)/float64(book.TotalPages)*100)
		}
		return nil
	},
}

var buyCmd = &cobra.Command{
	Use:   "buy <title>",
	Short: "Mark a book as bought",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return recordEvent(strings.Join(args, " "), types.EventBought)
	},
}

var wantCmd = &cobra.Command{
	Use:     "want <title>",
	Aliases: []string{"want-to-read"},
	Short:   "Put a book on the want-to-read list",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return recordEvent(strings.Join(args, " "), types.EventWantToRead)
	},
}

var unmarkCmd = &cobra.Command{
	Use:   "unmark <title>",
	Short: "Take a book off the want-to-read list",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return recordEvent(strings.Join(args, " "), types.EventUnmarkedAsWantToRead)
	},
}

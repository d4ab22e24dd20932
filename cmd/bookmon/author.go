// Author commands for the bookmon CLI.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/benedicteb/bookmon/internal/table"
	"github.com/benedicteb/bookmon/pkg/types"
)

var authorCmd = &cobra.Command{
	Use:   "author",
	Short: "Manage authors",
}

var authorAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an author",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, path, err := openCatalog()
		if err != nil {
			return err
		}

		a := types.NewAuthor(strings.TrimSpace(strings.Join(args, " ")))
		if err := s.AddAuthor(a); err != nil {
			return err
		}
		if err := saveCatalog(s, path); err != nil {
			return err
		}
		fmt.Printf("Added author %q.\n", a.Name)
		return nil
	},
}

var authorListCmd = &cobra.Command{
	Use:   "list",
	Short: "List authors with their book counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openCatalog()
		if err != nil {
			return err
		}

		authors := s.Authors()
		if len(authors) == 0 {
			fmt.Println("No authors found.")
			return nil
		}

		counts := make(map[string]int)
		for _, b := range s.Books() {
			counts[b.AuthorID]++
		}

		rows := [][]string{{"Name", "Books"}}
		for _, a := range authors {
			rows = append(rows, []string{a.Name, fmt.Sprintf("%d", counts[a.ID])})
		}
		fmt.Print(table.FormatSimple(rows))
		return nil
	},
}

func init() {
	authorCmd.AddCommand(authorAddCmd)
	authorCmd.AddCommand(authorListCmd)
}

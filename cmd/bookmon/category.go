// Category commands for the bookmon CLI.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/benedicteb/bookmon/internal/table"
	"github.com/benedicteb/bookmon/pkg/types"
)

var flagCategoryDescription string

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage categories",
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a category",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, path, err := openCatalog()
		if err != nil {
			return err
		}

		c := types.NewCategory(strings.TrimSpace(strings.Join(args, " ")), flagCategoryDescription)
		if err := s.AddCategory(c); err != nil {
			return err
		}
		if err := saveCatalog(s, path); err != nil {
			return err
		}
		fmt.Printf("Added category %q.\n", c.Name)
		return nil
	},
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openCatalog()
		if err != nil {
			return err
		}

		categories := s.Categories()
		if len(categories) == 0 {
			fmt.Println("No categories found.")
			return nil
		}

		rows := [][]string{{"Name", "Description"}}
		for _, c := range categories {
			rows = append(rows, []string{c.Name, c.Description})
		}
		fmt.Print(table.FormatSimple(rows))
		return nil
	},
}

func init() {
	categoryAddCmd.Flags().StringVar(&flagCategoryDescription, "description", "", "category description")

	categoryCmd.AddCommand(categoryAddCmd)
	categoryCmd.AddCommand(categoryListCmd)
}

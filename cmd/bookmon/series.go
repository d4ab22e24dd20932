// Series commands for the bookmon CLI.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/benedicteb/bookmon/internal/table"
	"github.com/benedicteb/bookmon/pkg/types"
)

var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Manage series",
}

var seriesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a series",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, path, err := openCatalog()
		if err != nil {
			return err
		}

		sr := types.NewSeries(strings.TrimSpace(strings.Join(args, " ")))
		if err := s.AddSeries(sr); err != nil {
			return err
		}
		if err := saveCatalog(s, path); err != nil {
			return err
		}
		fmt.Printf("Added series %q.\n", sr.Name)
		return nil
	},
}

var seriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List series with their books",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openCatalog()
		if err != nil {
			return err
		}

		all := s.AllSeries()
		if len(all) == 0 {
			fmt.Println("No series found.")
			return nil
		}

		counts := make(map[string]int)
		for _, b := range s.Books() {
			if b.SeriesID != "" {
				counts[b.SeriesID]++
			}
		}

		rows := [][]string{{"Name", "Status", "Books"}}
		for _, sr := range all {
			have := fmt.Sprintf("%d", counts[sr.ID])
			if sr.TotalBooks > 0 {
				have = fmt.Sprintf("%d of %d", counts[sr.ID], sr.TotalBooks)
			}
			rows = append(rows, []string{sr.Name, sr.Status, have})
		}
		fmt.Print(table.FormatSimple(rows))
		return nil
	},
}

var seriesStatusCmd = &cobra.Command{
	Use:   "status <name> <status>",
	Short: "Set a series status (Ongoing, Completed, Abandoned; empty clears)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, path, err := openCatalog()
		if err != nil {
			return err
		}

		sr, found := s.SeriesByName(args[0])
		if !found {
			return fmt.Errorf("series %q: %w", args[0], types.ErrNotFound)
		}

		status := ""
		if len(args) == 2 {
			status = args[1]
		}
		if err := sr.SetStatus(status); err != nil {
			return err
		}
		if err := s.UpdateSeries(sr); err != nil {
			return err
		}
		if err := saveCatalog(s, path); err != nil {
			return err
		}
		fmt.Printf("Series %q is now %s.\n", sr.Name, displayStatus(sr.Status))
		return nil
	},
}

var seriesDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a series, keeping its books as standalone titles",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, path, err := openCatalog()
		if err != nil {
			return err
		}

		sr, found := s.SeriesByName(args[0])
		if !found {
			return fmt.Errorf("series %q: %w", args[0], types.ErrNotFound)
		}

		affected, err := s.DeleteSeries(sr.ID)
		if err != nil {
			return err
		}
		if err := saveCatalog(s, path); err != nil {
			return err
		}
		fmt.Printf("Deleted series %q; %d book(s) kept as standalone.\n", sr.Name, affected)
		return nil
	},
}

func displayStatus(status string) string {
	if status == "" {
		return "unset"
	}
	return status
}

func init() {
	seriesCmd.AddCommand(seriesAddCmd)
	seriesCmd.AddCommand(seriesListCmd)
	seriesCmd.AddCommand(seriesStatusCmd)
	seriesCmd.AddCommand(seriesDeleteCmd)
}

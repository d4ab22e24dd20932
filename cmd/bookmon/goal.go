// Yearly reading goal commands.
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

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage yearly reading goals",
}

var goalSetCmd = &cobra.Command{
	Use:   "set <year> <target>",
	Short: "Set the number of books to finish in a year",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("year must be a number, got %q", args[0])
		}
		target, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("target must be a number, got %q", args[1])
		}

		s, path, err := openCatalog()
		if err != nil {
			return err
		}
		if err := s.SetGoal(year, target); err != nil {
			return err
		}
		if err := saveCatalog(s, path); err != nil {
			return err
		}
		fmt.Printf("Goal for %d: %d book(s).\n", year, target)
		return nil
	},
}

var goalShowCmd = &cobra.Command{
	Use:   "show [year]",
	Short: "Show goal progress",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openCatalog()
		if err != nil {
			return err
		}

		now := time.Now()
		if len(args) == 1 {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("year must be a number, got %q", args[0])
			}
			return showGoalYear(s, year, now)
		}

		goals := s.Goals()
		if len(goals) == 0 {
			fmt.Println("No goals set.")
			return nil
		}

		rows := [][]string{{"Year", "Target", "Finished"}}
		for _, g := range goals {
			finished := len(s.BooksFinishedInYear(g.Year))
			rows = append(rows, []string{
				strconv.Itoa(g.Year),
				strconv.Itoa(g.Target),
				strconv.Itoa(finished),
			})
		}
		fmt.Print(table.FormatSimple(rows))

		return showGoalPace(s, now.Year(), now)
	},
}

func showGoalYear(s *store.Store, year int, now time.Time) error {
	goal, ok := s.Goal(year)
	if !ok {
		fmt.Printf("No goal set for %d.\n", year)
		return nil
	}
	finished := len(s.BooksFinishedInYear(year))
	fmt.Printf("%d: %d of %d book(s) finished.\n", year, finished, goal.Target)
	return showGoalPace(s, year, now)
}

func showGoalPace(s *store.Store, year int, now time.Time) error {
	goal, ok := s.Goal(year)
	if !ok {
		return nil
	}
	finished := len(s.BooksFinishedInYear(year))
	if text, ok := types.PaceText(finished, goal.Target, year, now); ok {
		fmt.Println(text)
	}
	return nil
}

// printGoalPace reloads the catalog and prints the pace line for the current
// year, used after a book is finished.
func printGoalPace() error {
	s, _, err := openCatalog()
	if err != nil {
		return err
	}
	now := time.Now()
	return showGoalPace(s, now.Year(), now)
}

func init() {
	goalCmd.AddCommand(goalSetCmd)
	goalCmd.AddCommand(goalShowCmd)
}

// Package main provides the bookmon CLI, a personal book catalog and
// reading tracker backed by a single JSON storage file.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/benedicteb/bookmon/pkg/types"
)

// Exit codes: user mistakes (bad input, missing entities) exit 1, system
// failures (unreadable storage, I/O errors) exit 2.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if isUserError(err) {
			os.Exit(exitUserError)
		}
		os.Exit(exitSysError)
	}
}

// isUserError classifies errors for the exit code. Everything rooted in the
// entity sentinels came from the user's input or data.
func isUserError(err error) bool {
	switch {
	case errors.Is(err, types.ErrNotFound),
		errors.Is(err, types.ErrEmptyTitle),
		errors.Is(err, types.ErrEmptyName),
		errors.Is(err, types.ErrDuplicateSeries),
		errors.Is(err, types.ErrEmptyReview),
		errors.Is(err, types.ErrInvalidGoal),
		errors.Is(err, types.ErrInvalidEvent),
		errors.Is(err, types.ErrInvalidSeriesState):
		return true
	}
	return false
}

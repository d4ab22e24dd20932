package types

import (
	"fmt"
	"math"
	"time"
)

// Goal is a yearly reading target, keyed by year rather than a generated ID.
type Goal struct {
	Year   int
	Target int
}

// PaceText returns a motivational line about the pace needed to reach a
// yearly goal, given how many books were finished so far. The current time
// is injected for testability. Returns false when no text applies (a past
// year with an unmet goal).
func PaceText(finished, target, year int, now time.Time) (string, bool) {
	currentYear := now.Year()

	if finished > target && target > 0 {
		exceededBy := finished - target
		return fmt.Sprintf("You've exceeded your goal by %d %s!", exceededBy, pluralizeBook(exceededBy)), true
	}
	if finished >= target {
		return "You've reached your goal — amazing!", true
	}

	// Past year with an unmet goal: no pace advice makes sense.
	if year < currentYear {
		return "", false
	}

	remaining := target - finished

	// Future years get the full twelve months; for the current year
	// January leaves 12 and December leaves 1.
	monthsLeft := 12
	if year == currentYear {
		monthsLeft = 13 - int(now.Month())
	}

	if monthsLeft == 1 {
		return fmt.Sprintf("Just %d more %s this month — you can do it!", remaining, pluralizeBook(remaining)), true
	}

	booksPerMonth := int(math.Ceil(float64(remaining) / float64(monthsLeft)))
	originalPacePerMonth := int(math.Ceil(float64(target) / 12.0))

	paceStr := fmt.Sprintf("%d %s per month", booksPerMonth, pluralizeBook(booksPerMonth))

	switch {
	case booksPerMonth <= 1:
		return fmt.Sprintf("That's about %s — smooth sailing!", paceStr), true
	case booksPerMonth <= originalPacePerMonth:
		return fmt.Sprintf("That's about %s — right on track!", paceStr), true
	default:
		return fmt.Sprintf("That's about %s — time to pick up the pace!", paceStr), true
	}
}

// pluralizeBook returns "book" or "books" depending on the count.
func pluralizeBook(count int) string {
	if count == 1 {
		return "book"
	}
	return "books"
}

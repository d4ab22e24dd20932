package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Review is free-form text about a book.
type Review struct {
	ID        string
	BookID    string
	CreatedOn time.Time
	Text      string
}

// NewReview creates a Review with a generated ID.
func NewReview(bookID, text string) Review {
	return Review{
		ID:        uuid.NewString(),
		BookID:    bookID,
		CreatedOn: time.Now().UTC(),
		Text:      text,
	}
}

// StripEditorText removes comment lines (starting with #) and surrounding
// whitespace from editor output. Returns false when nothing remains, which
// callers treat as an aborted review.
func StripEditorText(text string) (string, bool) {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		kept = append(kept, line)
	}
	stripped := strings.TrimSpace(strings.Join(kept, "\n"))
	if stripped == "" {
		return "", false
	}
	return stripped, true
}

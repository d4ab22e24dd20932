// Package editor captures long-form text through the user's editor, the way
// git captures commit messages.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/benedicteb/bookmon/pkg/types"
)

// Editor resolves the editor command from $EDITOR, then $VISUAL, falling
// back to vi. Values like "code --wait" keep their arguments.
func Editor() (bin string, args []string, err error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return "", nil, fmt.Errorf("editor command %q is empty", editor)
	}
	return parts[0], parts[1:], nil
}

// CaptureReview opens the editor on a temp file seeded with instructions and
// returns the cleaned text. ok is false when the user saved nothing, which
// callers treat as an abort.
func CaptureReview(bookTitle, authorName string) (text string, ok bool, err error) {
	template := fmt.Sprintf(
		"\n# Write your review of %q by %s above.\n"+
			"# Lines starting with # will be stripped.\n"+
			"# An empty review (after stripping comments) will abort.\n",
		bookTitle, authorName)
	return capture(template)
}

func capture(template string) (text string, ok bool, err error) {
	bin, args, err := Editor()
	if err != nil {
		return "", false, err
	}

	// The .md suffix gives editors something to key syntax highlighting on.
	tmp, err := os.CreateTemp("", "bookmon-review-*.md")
	if err != nil {
		return "", false, fmt.Errorf("creating temp file: %w", err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.WriteString(template); err != nil {
		tmp.Close()
		return "", false, fmt.Errorf("seeding temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", false, fmt.Errorf("closing temp file: %w", err)
	}

	cmd := exec.Command(bin, append(args, path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", false, fmt.Errorf("running editor %s: %w", bin, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", false, fmt.Errorf("reading edited file: %w", err)
	}

	text, ok = types.StripEditorText(string(content))
	return text, ok, nil
}

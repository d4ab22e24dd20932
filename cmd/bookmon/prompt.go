// Interactive prompting for the bookmon CLI. All prompts read from stdin
// line by line; selection lists are numbered.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/benedicteb/bookmon/internal/store"
)

// stdinReader is shared so buffered input survives across prompts.
var stdinReader = bufio.NewReader(os.Stdin)

// promptLine asks for one line of input and trims it.
func promptLine(label string) (string, error) {
	fmt.Printf("%s ", label)
	line, err := stdinReader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptDefault asks for one line, returning def when the user just presses
// Enter.
func promptDefault(label, def string) (string, error) {
	if def == "" {
		return promptLine(label)
	}
	line, err := promptLine(fmt.Sprintf("%s [%s]", label, def))
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

// promptSelect shows a numbered list and returns the chosen index.
func promptSelect(label string, options []string) (int, error) {
	fmt.Println(label)
	for i, opt := range options {
		fmt.Printf("  %d) %s\n", i+1, opt)
	}
	for {
		line, err := promptLine(fmt.Sprintf("Choose [1-%d]:", len(options)))
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		fmt.Println("Invalid choice.")
	}
}

// promptInt asks until the user enters a whole number.
func promptInt(label string) (int, error) {
	for {
		line, err := promptLine(label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil {
			return n, nil
		}
		fmt.Println("Enter a whole number.")
	}
}

// consoleResolver answers repair questions by asking the user.
type consoleResolver struct{}

func (consoleResolver) ChooseReplacement(orphan store.Orphan, existing []store.Candidate) (store.Resolution, error) {
	fmt.Printf("Storage problem: %s reference %q on %s does not resolve.\n",
		orphan.RefKind, orphan.MissingID, orphan.Context)

	options := []string{}
	for _, c := range existing {
		options = append(options, "Use existing: "+c.Name)
	}
	options = append(options, "Create new "+orphan.RefKind)
	options = append(options, "Skip (clear the reference)")

	choice, err := promptSelect("How should this be fixed?", options)
	if err != nil {
		return store.Resolution{}, err
	}

	switch {
	case choice < len(existing):
		return store.UseExisting(existing[choice].ID), nil
	case choice == len(existing):
		name, err := promptLine(fmt.Sprintf("Name for the new %s:", orphan.RefKind))
		if err != nil {
			return store.Resolution{}, err
		}
		return store.CreateNew(name), nil
	default:
		return store.Skip(), nil
	}
}

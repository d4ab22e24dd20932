package types

import (
	"fmt"
	"strconv"
	"strings"
)

// ComparePositions orders two series positions for display. Positions are
// free-form strings; values that parse as numbers ("1", "2.5", "0") compare
// numerically and always sort before non-numeric labels, which compare
// lexicographically. Absent positions sort last.
func ComparePositions(a, b string) int {
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	}

	af, aNum := parsePosition(a)
	bf, bNum := parsePosition(b)

	switch {
	case aNum && bNum:
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	case aNum:
		return -1
	case bNum:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// PositionPrefix formats a position for prepending to a book title in
// grouped series listings, e.g. "#1 " or "#2.5 ". Absent positions produce
// an empty prefix.
func PositionPrefix(pos string) string {
	if pos == "" {
		return ""
	}
	return fmt.Sprintf("#%s ", pos)
}

func parsePosition(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f, err == nil
}

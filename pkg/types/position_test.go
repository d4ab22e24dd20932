package types

import "testing"

func TestComparePositions(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"numeric order", "1", "2", -1},
		{"fractional between whole", "2.5", "3", -1},
		{"zero-based prequel first", "0", "1", -1},
		{"equal numbers", "2", "2", 0},
		{"numeric before label", "10", "Prequel", -1},
		{"label after numeric", "Prequel", "10", 1},
		{"labels compare lexicographically", "Extra", "Prequel", -1},
		{"absent sorts last", "1", "", -1},
		{"absent vs absent", "", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComparePositions(tt.a, tt.b); got != tt.want {
				t.Fatalf("ComparePositions(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestPositionPrefix(t *testing.T) {
	if got := PositionPrefix("2.5"); got != "#2.5 " {
		t.Fatalf("expected %q, got %q", "#2.5 ", got)
	}
	if got := PositionPrefix(""); got != "" {
		t.Fatalf("expected empty prefix, got %q", got)
	}
}

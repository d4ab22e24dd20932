package types

import (
	"testing"
	"time"
)

var base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// ev builds a reading event at base plus the given minute offset.
func ev(event string, minutes int) Reading {
	r := NewReading("book-1", event)
	r.CreatedOn = base.Add(time.Duration(minutes) * time.Minute)
	return r
}

func evPage(event string, minutes, page int) Reading {
	r := ev(event, minutes)
	r.Metadata.CurrentPage = &page
	return r
}

func TestIsStarted(t *testing.T) {
	t.Run("empty history", func(t *testing.T) {
		if IsStarted(nil) {
			t.Fatal("expected not started with no events")
		}
	})

	t.Run("started then finished", func(t *testing.T) {
		events := []Reading{ev(EventStarted, 0), ev(EventFinished, 10)}
		if IsStarted(events) {
			t.Fatal("expected not started after finish")
		}
	})

	t.Run("finished then started again", func(t *testing.T) {
		// Re-read in progress.
		events := []Reading{ev(EventFinished, 0), ev(EventStarted, 10)}
		if !IsStarted(events) {
			t.Fatal("expected started for a re-read")
		}
	})

	t.Run("non-status events are skipped", func(t *testing.T) {
		events := []Reading{
			ev(EventStarted, 0),
			evPage(EventUpdate, 5, 40),
			ev(EventBought, 8),
			ev(EventWantToRead, 9),
		}
		if !IsStarted(events) {
			t.Fatal("updates and flags must not mask a Started event")
		}
	})

	t.Run("two starts with no intervening finish", func(t *testing.T) {
		events := []Reading{ev(EventStarted, 0), ev(EventStarted, 20)}
		if !IsStarted(events) {
			t.Fatal("most recent start wins")
		}
	})

	t.Run("backdated start after finish", func(t *testing.T) {
		// Appending order differs from chronological order; derivation
		// must answer from timestamps alone.
		events := []Reading{ev(EventFinished, 10), ev(EventStarted, 0)}
		if IsStarted(events) {
			t.Fatal("backdated start precedes the finish")
		}
	})
}

func TestIsFinished(t *testing.T) {
	t.Run("finished last", func(t *testing.T) {
		events := []Reading{ev(EventStarted, 0), ev(EventFinished, 10)}
		if !IsFinished(events) {
			t.Fatal("expected finished")
		}
	})

	t.Run("trailing flag events do not clear finished", func(t *testing.T) {
		events := []Reading{ev(EventStarted, 0), ev(EventFinished, 10), ev(EventBought, 20)}
		if !IsFinished(events) {
			t.Fatal("Bought carries no status signal")
		}
	})

	t.Run("empty history", func(t *testing.T) {
		if IsFinished(nil) {
			t.Fatal("expected not finished with no events")
		}
	})
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name   string
		events []Reading
		want   string
	}{
		{"no events", nil, StatusNotStarted},
		{"started", []Reading{ev(EventStarted, 0)}, StatusStarted},
		{"started then finished", []Reading{ev(EventStarted, 0), ev(EventFinished, 10)}, StatusFinished},
		{"finished then restarted", []Reading{ev(EventFinished, 0), ev(EventStarted, 10)}, StatusStarted},
		{"only flags", []Reading{ev(EventBought, 0), ev(EventWantToRead, 5)}, StatusNotStarted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveStatus(tt.events); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestIsWantToRead(t *testing.T) {
	t.Run("marked", func(t *testing.T) {
		if !IsWantToRead([]Reading{ev(EventWantToRead, 0)}) {
			t.Fatal("expected want-to-read")
		}
	})

	t.Run("explicit unmark clears", func(t *testing.T) {
		events := []Reading{ev(EventWantToRead, 0), ev(EventUnmarkedAsWantToRead, 10)}
		if IsWantToRead(events) {
			t.Fatal("unmark should clear the flag")
		}
	})

	t.Run("starting clears implicitly", func(t *testing.T) {
		events := []Reading{ev(EventWantToRead, 0), ev(EventStarted, 10)}
		if IsWantToRead(events) {
			t.Fatal("a later Started clears want-to-read without an unmark")
		}
	})

	t.Run("re-marked after start", func(t *testing.T) {
		events := []Reading{ev(EventStarted, 0), ev(EventWantToRead, 10)}
		if !IsWantToRead(events) {
			t.Fatal("a WantToRead after the start re-sets the flag")
		}
	})

	t.Run("empty history", func(t *testing.T) {
		if IsWantToRead(nil) {
			t.Fatal("expected not want-to-read with no events")
		}
	})
}

func TestIsBought(t *testing.T) {
	t.Run("any bought event counts", func(t *testing.T) {
		events := []Reading{ev(EventBought, 0), ev(EventStarted, 10), ev(EventFinished, 20)}
		if !IsBought(events) {
			t.Fatal("bought is never un-set")
		}
	})

	t.Run("empty history", func(t *testing.T) {
		if IsBought(nil) {
			t.Fatal("expected not bought with no events")
		}
	})
}

func TestLatestProgress(t *testing.T) {
	t.Run("most recent update wins", func(t *testing.T) {
		events := []Reading{evPage(EventUpdate, 0, 40), evPage(EventUpdate, 10, 90)}
		page, ok := LatestProgress(events)
		if !ok || page != 90 {
			t.Fatalf("expected page 90, got %d (ok=%v)", page, ok)
		}
	})

	t.Run("finished payload after last update", func(t *testing.T) {
		events := []Reading{evPage(EventUpdate, 0, 40), evPage(EventFinished, 10, 300)}
		page, ok := LatestProgress(events)
		if !ok || page != 300 {
			t.Fatalf("expected page 300, got %d (ok=%v)", page, ok)
		}
	})

	t.Run("no payload", func(t *testing.T) {
		if _, ok := LatestProgress([]Reading{ev(EventStarted, 0)}); ok {
			t.Fatal("expected no progress")
		}
	})
}

// Reordering non-status events among themselves must not change the
// started answer as long as their position relative to Started/Finished
// events is preserved.
func TestIsStartedInvariantUnderFlagReordering(t *testing.T) {
	a := []Reading{ev(EventStarted, 0), evPage(EventUpdate, 5, 10), ev(EventBought, 6), ev(EventFinished, 10)}
	b := []Reading{ev(EventStarted, 0), ev(EventBought, 5), evPage(EventUpdate, 6, 10), ev(EventFinished, 10)}
	if IsStarted(a) != IsStarted(b) {
		t.Fatal("reordering Update/Bought between status events changed the answer")
	}
}

// Equal timestamps fall back to insertion order, so the answer is stable.
func TestTimestampTieBreak(t *testing.T) {
	started := ev(EventStarted, 0)
	finished := ev(EventFinished, 0)
	if got := DeriveStatus([]Reading{started, finished}); got != StatusFinished {
		t.Fatalf("later insertion should win the tie, got %s", got)
	}
	if got := DeriveStatus([]Reading{finished, started}); got != StatusStarted {
		t.Fatalf("later insertion should win the tie, got %s", got)
	}
}

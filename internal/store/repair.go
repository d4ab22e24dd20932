// Repair pass for freshly loaded stores. Scans for references that no
// longer resolve and asks a Resolver (interactive in the CLI, scripted in
// tests) how to fix each one. The core performs no I/O here; the resolver
// is the only boundary.
package store

import (
	"fmt"
	"sort"
	"strings"

	"github.com/benedicteb/bookmon/pkg/types"
)

// Reference kinds a dangling ID can point at.
const (
	RefAuthor   = "author"
	RefCategory = "category"
	RefSeries   = "series"
	RefBook     = "book"
)

// Resolution kinds.
const (
	ResolutionUseExisting = "use-existing"
	ResolutionCreateNew   = "create-new"
	ResolutionSkip        = "skip"
)

// Resolution is a resolver's answer for one dangling reference.
type Resolution struct {
	Kind       string
	ExistingID string // set for use-existing
	NewName    string // set for create-new
}

// UseExisting points the dangling reference at an existing entity.
func UseExisting(id string) Resolution {
	return Resolution{Kind: ResolutionUseExisting, ExistingID: id}
}

// CreateNew creates a replacement entity with the given name and points the
// reference at it.
func CreateNew(name string) Resolution {
	return Resolution{Kind: ResolutionCreateNew, NewName: name}
}

// Skip clears the dangling reference; for orphaned readings and reviews the
// whole record is dropped instead.
func Skip() Resolution {
	return Resolution{Kind: ResolutionSkip}
}

// Orphan describes one dangling reference found during the scan.
type Orphan struct {
	RefKind   string // what the missing ID should have pointed at
	MissingID string // the ID that does not resolve
	HolderID  string // the entity holding the reference
	Context   string // human-readable context, e.g. the book title
}

// Candidate is an existing entity offered as a replacement target.
type Candidate struct {
	ID   string
	Name string
}

// Resolver supplies repair decisions. Implementations may prompt a human,
// replay a script, or apply a policy; the repair algorithm is identical
// for all of them.
type Resolver interface {
	ChooseReplacement(orphan Orphan, existing []Candidate) (Resolution, error)
}

// RepairAction records one applied fix.
type RepairAction struct {
	Orphan     Orphan
	Resolution Resolution
	CreatedID  string // ID of the entity created for create-new
	Dropped    bool   // true when an orphaned record was removed
}

// Repair scans the store for referential-integrity violations and resolves
// each through the resolver. Fixes are applied to a clone; if the resolver
// fails, the error is surfaced and no partial fix escapes; the input store
// is returned to the caller untouched in either case. After a successful
// repair every reference resolves or is explicitly absent, and the mutation
// contract keeps it that way for the rest of the process.
func Repair(s *Store, r Resolver) (*Store, []RepairAction, error) {
	clean := s.Clone()
	var actions []RepairAction

	// Books are scanned in sorted-ID order so the resolver sees a stable
	// sequence of questions for the same file.
	for _, b := range clean.Books() {
		var err error
		actions, err = repairBookRef(clean, b.ID, RefAuthor, r, actions)
		if err != nil {
			return nil, nil, err
		}
		actions, err = repairBookRef(clean, b.ID, RefCategory, r, actions)
		if err != nil {
			return nil, nil, err
		}
		actions, err = repairBookRef(clean, b.ID, RefSeries, r, actions)
		if err != nil {
			return nil, nil, err
		}
	}

	actions, err := repairOrphanedReadings(clean, r, actions)
	if err != nil {
		return nil, nil, err
	}
	actions, err = repairOrphanedReviews(clean, r, actions)
	if err != nil {
		return nil, nil, err
	}

	return clean, actions, nil
}

// repairBookRef checks one reference on one book and applies the resolver's
// decision.
func repairBookRef(s *Store, bookID, refKind string, r Resolver, actions []RepairAction) ([]RepairAction, error) {
	b := s.books[bookID]

	var refID string
	switch refKind {
	case RefAuthor:
		refID = b.AuthorID
	case RefCategory:
		refID = b.CategoryID
	case RefSeries:
		refID = b.SeriesID
	}
	if refID == "" || refTargetExists(s, refKind, refID) {
		return actions, nil
	}

	orphan := Orphan{RefKind: refKind, MissingID: refID, HolderID: bookID, Context: b.Title}
	res, err := r.ChooseReplacement(orphan, refCandidates(s, refKind))
	if err != nil {
		return nil, fmt.Errorf("repair %s for book %q: %w", refKind, b.Title, err)
	}

	action := RepairAction{Orphan: orphan, Resolution: res}
	switch res.Kind {
	case ResolutionUseExisting:
		if !refTargetExists(s, refKind, res.ExistingID) {
			return nil, fmt.Errorf("repair %s for book %q: replacement %s: %w", refKind, b.Title, res.ExistingID, types.ErrNotFound)
		}
		setBookRef(s, bookID, refKind, res.ExistingID)
	case ResolutionCreateNew:
		createdID, err := createRefTarget(s, refKind, res.NewName)
		if err != nil {
			return nil, fmt.Errorf("repair %s for book %q: %w", refKind, b.Title, err)
		}
		setBookRef(s, bookID, refKind, createdID)
		action.CreatedID = createdID
	case ResolutionSkip:
		setBookRef(s, bookID, refKind, "")
	default:
		return nil, fmt.Errorf("repair %s for book %q: unknown resolution %q", refKind, b.Title, res.Kind)
	}

	return append(actions, action), nil
}

// repairOrphanedReadings handles events whose book no longer exists. The
// resolver may reassign them to an existing book, recreate a placeholder
// book, or drop them.
func repairOrphanedReadings(s *Store, r Resolver, actions []RepairAction) ([]RepairAction, error) {
	var orphanIDs []string
	for id, rd := range s.readings {
		if _, ok := s.books[rd.BookID]; !ok {
			orphanIDs = append(orphanIDs, id)
		}
	}
	sort.Strings(orphanIDs)

	for _, id := range orphanIDs {
		rd := s.readings[id]
		orphan := Orphan{RefKind: RefBook, MissingID: rd.BookID, HolderID: id, Context: fmt.Sprintf("%s event", rd.Event)}
		res, err := r.ChooseReplacement(orphan, refCandidates(s, RefBook))
		if err != nil {
			return nil, fmt.Errorf("repair reading %s: %w", id, err)
		}

		action := RepairAction{Orphan: orphan, Resolution: res}
		switch res.Kind {
		case ResolutionUseExisting:
			if _, ok := s.books[res.ExistingID]; !ok {
				return nil, fmt.Errorf("repair reading %s: replacement %s: %w", id, res.ExistingID, types.ErrNotFound)
			}
			rd.BookID = res.ExistingID
			s.readings[id] = rd
		case ResolutionCreateNew:
			createdID, err := createRefTarget(s, RefBook, res.NewName)
			if err != nil {
				return nil, fmt.Errorf("repair reading %s: %w", id, err)
			}
			rd.BookID = createdID
			s.readings[id] = rd
			action.CreatedID = createdID
		case ResolutionSkip:
			delete(s.readings, id)
			action.Dropped = true
		default:
			return nil, fmt.Errorf("repair reading %s: unknown resolution %q", id, res.Kind)
		}
		actions = append(actions, action)
	}
	return actions, nil
}

// repairOrphanedReviews handles reviews whose book no longer exists.
func repairOrphanedReviews(s *Store, r Resolver, actions []RepairAction) ([]RepairAction, error) {
	var orphanIDs []string
	for id, rv := range s.reviews {
		if _, ok := s.books[rv.BookID]; !ok {
			orphanIDs = append(orphanIDs, id)
		}
	}
	sort.Strings(orphanIDs)

	for _, id := range orphanIDs {
		rv := s.reviews[id]
		orphan := Orphan{RefKind: RefBook, MissingID: rv.BookID, HolderID: id, Context: "review"}
		res, err := r.ChooseReplacement(orphan, refCandidates(s, RefBook))
		if err != nil {
			return nil, fmt.Errorf("repair review %s: %w", id, err)
		}

		action := RepairAction{Orphan: orphan, Resolution: res}
		switch res.Kind {
		case ResolutionUseExisting:
			if _, ok := s.books[res.ExistingID]; !ok {
				return nil, fmt.Errorf("repair review %s: replacement %s: %w", id, res.ExistingID, types.ErrNotFound)
			}
			rv.BookID = res.ExistingID
			s.reviews[id] = rv
		case ResolutionCreateNew:
			createdID, err := createRefTarget(s, RefBook, res.NewName)
			if err != nil {
				return nil, fmt.Errorf("repair review %s: %w", id, err)
			}
			rv.BookID = createdID
			s.reviews[id] = rv
			action.CreatedID = createdID
		case ResolutionSkip:
			delete(s.reviews, id)
			action.Dropped = true
		default:
			return nil, fmt.Errorf("repair review %s: unknown resolution %q", id, res.Kind)
		}
		actions = append(actions, action)
	}
	return actions, nil
}

func refTargetExists(s *Store, refKind, id string) bool {
	switch refKind {
	case RefAuthor:
		_, ok := s.authors[id]
		return ok
	case RefCategory:
		_, ok := s.categories[id]
		return ok
	case RefSeries:
		_, ok := s.series[id]
		return ok
	case RefBook:
		_, ok := s.books[id]
		return ok
	}
	return false
}

func setBookRef(s *Store, bookID, refKind, refID string) {
	b := s.books[bookID]
	switch refKind {
	case RefAuthor:
		b.AuthorID = refID
	case RefCategory:
		b.CategoryID = refID
	case RefSeries:
		b.SeriesID = refID
		if refID == "" {
			b.PositionInSeries = ""
		}
	}
	s.books[bookID] = b
}

// createRefTarget creates a replacement entity of the given kind. Books
// created here are placeholders with absent author and category; those
// show up in the next scan pass only if readings point at them again,
// which cannot happen within one repair run.
func createRefTarget(s *Store, refKind, name string) (string, error) {
	name = strings.TrimSpace(name)
	switch refKind {
	case RefAuthor:
		a := types.NewAuthor(name)
		if err := s.AddAuthor(a); err != nil {
			return "", err
		}
		return a.ID, nil
	case RefCategory:
		c := types.NewCategory(name, "")
		if err := s.AddCategory(c); err != nil {
			return "", err
		}
		return c.ID, nil
	case RefSeries:
		sr, err := s.GetOrCreateSeries(name)
		if err != nil {
			return "", err
		}
		return sr.ID, nil
	case RefBook:
		if name == "" {
			return "", types.ErrEmptyTitle
		}
		b := types.NewBook(name, "", "", "", 0)
		s.books[b.ID] = b
		return b.ID, nil
	}
	return "", fmt.Errorf("unknown reference kind %q", refKind)
}

func refCandidates(s *Store, refKind string) []Candidate {
	var out []Candidate
	switch refKind {
	case RefAuthor:
		for _, a := range s.Authors() {
			out = append(out, Candidate{ID: a.ID, Name: a.Name})
		}
	case RefCategory:
		for _, c := range s.Categories() {
			out = append(out, Candidate{ID: c.ID, Name: c.Name})
		}
	case RefSeries:
		for _, sr := range s.AllSeries() {
			out = append(out, Candidate{ID: sr.ID, Name: sr.Name})
		}
	case RefBook:
		for _, b := range s.Books() {
			out = append(out, Candidate{ID: b.ID, Name: b.Title})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	}
	return out
}

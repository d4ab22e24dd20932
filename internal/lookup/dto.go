// Package lookup resolves book metadata from external catalog services by
// ISBN. Providers are consulted in order and the first hit wins; the rest of
// the program only sees the provider-neutral BookLookup result.
package lookup

// Author is one contributor as reported by a provider.
type Author struct {
	Name         string
	PersonalName string
	BirthDate    string
	DeathDate    string
	Bio          string
}

// BookLookup is the provider-neutral result of an ISBN lookup. Optional
// fields are empty when the provider had nothing for them.
type BookLookup struct {
	Title       string
	Authors     []Author
	Description string
	ISBN        string
	PublishDate string
	CoverURL    string

	// Series name and position within it, e.g. "Kingkiller Chronicle", "2.5".
	SeriesName     string
	SeriesPosition string
}

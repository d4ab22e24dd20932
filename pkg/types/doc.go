// Package types defines the entity model for the bookmon catalog (books,
// authors, categories, series, reading events, reviews, and yearly goals)
// together with the pure status-derivation functions over reading-event
// histories and the standard error values shared across the module.
package types

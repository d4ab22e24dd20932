package lookup

import "context"

// Provider fetches book metadata from one external catalog service.
// A (nil, nil) return means the service does not know the ISBN; errors are
// reserved for transport and decoding failures.
type Provider interface {
	Name() string
	GetBookByISBN(ctx context.Context, isbn string) (*BookLookup, error)
}

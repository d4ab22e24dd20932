package lookup

import (
	"context"

	"go.uber.org/zap"

	"github.com/benedicteb/bookmon/internal/log"
)

// Manager queries providers in order and returns the first hit.
type Manager struct {
	providers []Provider
}

// NewManager creates a Manager over the default provider chain.
func NewManager() *Manager {
	return &Manager{providers: []Provider{NewOpenLibrary()}}
}

// NewManagerWith creates a Manager over an explicit provider chain.
func NewManagerWith(providers ...Provider) *Manager {
	return &Manager{providers: providers}
}

// GetBookByISBN asks each provider in turn. Provider errors are logged and
// swallowed so one broken service does not hide a hit from the next. When
// every provider misses the result is (nil, nil).
func (m *Manager) GetBookByISBN(ctx context.Context, isbn string) (*BookLookup, error) {
	for _, p := range m.providers {
		book, err := p.GetBookByISBN(ctx, isbn)
		if err != nil {
			log.Warn("book lookup failed",
				zap.String("provider", p.Name()),
				zap.String("isbn", isbn),
				zap.Error(err))
			continue
		}
		if book != nil {
			log.Debug("book lookup hit",
				zap.String("provider", p.Name()),
				zap.String("isbn", isbn))
			return book, nil
		}
	}
	return nil, nil
}

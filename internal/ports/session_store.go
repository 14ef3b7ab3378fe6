package ports

import (
	"context"

	"github.com/outthegc/gc-cli/internal/domain"
)

// SessionStore persists the {trip, member} pair between invocations. Load
// returns domain.ErrNoSession when nothing usable is stored.
type SessionStore interface {
	Load(ctx context.Context) (domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
	Clear(ctx context.Context) error
}

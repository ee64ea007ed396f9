package repomanager

import (
	"context"
	"fmt"
	"net/url"

	"github.com/omkar-28/authd/internal/server/repositories/users"
)

// RepositoryManager owns the lifecycle of one store backend and vends the
// repositories bound to it.
type RepositoryManager interface {
	Users() users.Repository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// NewRepositoryManager picks a backend from the DSN scheme, connects to it and
// prepares its schema.
func NewRepositoryManager(ctx context.Context, dsn, dbName string) (RepositoryManager, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid database dsn: %w", err)
	}

	switch u.Scheme {
	case "mongodb", "mongodb+srv":
		return NewMongoRepositoryManager(ctx, dsn, dbName)
	case "postgres", "postgresql":
		return NewPostgresRepositoryManager(ctx, dsn)
	case "memory":
		return NewMemoryRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unsupported database scheme %q", u.Scheme)
	}
}

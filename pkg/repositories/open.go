package repositories

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Open creates the repository named by the scheme of connStr:
// memory://, sqlite://path, postgres:// or postgresql://, and redis://.
// migrationsDir holds one subdirectory of migrations per SQL driver.
func Open(ctx context.Context, connStr string, migrationsDir string) (Repository, error) {
	u, err := url.Parse(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %v", err)
	}

	switch u.Scheme {
	case "memory":
		return NewMemoryRepository(), nil
	case "sqlite":
		path := strings.TrimPrefix(connStr, "sqlite://")
		if path == "" {
			return nil, fmt.Errorf("sqlite connection string needs a path")
		}
		repository, err := NewSQLiteRepository(ctx, path, filepath.Join(migrationsDir, "sqlite"))
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite repository: %v", err)
		}
		return repository, nil
	case "postgres", "postgresql":
		repository, err := NewPostgresRepository(ctx, connStr, filepath.Join(migrationsDir, "postgres"))
		if err != nil {
			return nil, fmt.Errorf("failed to create Postgres repository: %v", err)
		}
		return repository, nil
	case "redis", "rediss":
		repository, err := NewRedisRepository(ctx, NewRedisRepositoryOptions{Address: connStr})
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis repository: %v", err)
		}
		return repository, nil
	}
	return nil, fmt.Errorf("unknown database type %q", u.Scheme)
}

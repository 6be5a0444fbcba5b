package repositories

import (
	"context"
	"fmt"
	"strings"
)

// Open returns the repository selected by the scheme of rawURL:
// file://<dir>, sqlite://<path> or postgres(ql)://<connection string>.
// A bare path is treated as a file directory.
func Open(ctx context.Context, rawURL string) (Repository, error) {
	scheme, rest, found := strings.Cut(rawURL, "://")
	if !found {
		return NewFileRepository(rawURL)
	}
	switch scheme {
	case "file":
		return NewFileRepository(rest)
	case "sqlite", "sqlite3":
		return NewSQLiteRepository(ctx, rest)
	case "postgres", "postgresql":
		return NewPostgresRepository(ctx, rawURL)
	default:
		return nil, fmt.Errorf("unsupported save storage scheme %q", scheme)
	}
}

// internal/adapters/storage/local.go
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ammerola/seller-sync/internal/core/ports"
)

// SchemeFile prefixes archive locations on the local filesystem
const SchemeFile = "file://"

// LocalSource reads vendor archives from the local filesystem. Useful for
// replaying a saved snapshot without network access.
type LocalSource struct {
	basePath string
	maxBytes int64
	logger   *slog.Logger
}

// Statically assert that *LocalSource implements the ArchiveSource interface.
var _ ports.ArchiveSource = (*LocalSource)(nil)

// NewLocalSource creates a local archive source. Relative locations are
// resolved against basePath. maxBytes of 0 means no limit.
func NewLocalSource(basePath string, maxBytes int64, logger *slog.Logger) *LocalSource {
	return &LocalSource{
		basePath: basePath,
		maxBytes: maxBytes,
		logger:   logger.With(slog.String("source", "local")),
	}
}

// Fetch reads the archive at location, with or without a file:// prefix
func (l *LocalSource) Fetch(ctx context.Context, location string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := strings.TrimPrefix(location, SchemeFile)
	if !filepath.IsAbs(path) && l.basePath != "" {
		path = filepath.Join(l.basePath, path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer file.Close()

	var reader io.Reader = file
	if l.maxBytes > 0 {
		reader = io.LimitReader(file, l.maxBytes+1)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}
	if l.maxBytes > 0 && int64(len(data)) > l.maxBytes {
		return nil, fmt.Errorf("archive %s exceeds %d bytes", path, l.maxBytes)
	}

	l.logger.DebugContext(ctx, "archive read",
		slog.String("path", path),
		slog.Int("bytes", len(data)))

	return data, nil
}

// internal/workers/cleanup_processor.go
package workers

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hibiken/asynq"
)

// CleanupProcessor removes spreadsheets left in the work dir by runs that
// died before they could clean up after themselves.
type CleanupProcessor struct {
	workDir string
	maxAge  time.Duration
	logger  *slog.Logger
}

// NewCleanupProcessor creates a new cleanup processor
func NewCleanupProcessor(workDir string, maxAge time.Duration, logger *slog.Logger) *CleanupProcessor {
	return &CleanupProcessor{
		workDir: workDir,
		maxAge:  maxAge,
		logger:  logger.With(slog.String("processor", "cleanup")),
	}
}

// CleanupWorkDir removes stale spreadsheet files from the work dir.
// Subdirectories and other files are left alone.
func (p *CleanupProcessor) CleanupWorkDir(ctx context.Context, t *asynq.Task) error {
	p.logger.InfoContext(ctx, "cleaning up work dir",
		slog.String("dir", p.workDir))

	entries, err := os.ReadDir(p.workDir)
	if err != nil {
		return fmt.Errorf("failed to read work dir: %w", err)
	}

	var deletedCount int
	for _, entry := range entries {
		if entry.IsDir() || !isStaleCandidate(entry) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) <= p.maxAge {
			continue
		}

		path := filepath.Join(p.workDir, entry.Name())
		if err := os.Remove(path); err != nil {
			p.logger.WarnContext(ctx, "failed to delete stale file",
				slog.String("file", path),
				slog.String("error", err.Error()))
			continue
		}
		deletedCount++
	}

	p.logger.InfoContext(ctx, "work dir cleaned up",
		slog.Int("files_deleted", deletedCount))

	return nil
}

func isStaleCandidate(entry fs.DirEntry) bool {
	switch strings.ToLower(filepath.Ext(entry.Name())) {
	case ".xlsx", ".xlsm", ".xls":
		return true
	}
	return false
}

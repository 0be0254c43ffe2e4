// internal/workers/cleanup_processor_test.go
package workers_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/seller-sync/internal/workers"
	"github.com/ammerola/seller-sync/test/helpers"
)

func TestCleanupProcessor_CleanupWorkDir(t *testing.T) {
	dir := t.TempDir()
	old := time.Now().Add(-48 * time.Hour)

	write := func(name string, modTime time.Time) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("data"), 0o600))
		require.NoError(t, os.Chtimes(path, modTime, modTime))
		return path
	}

	stale := write("ostatki.xlsx", old)
	staleUpper := write("previous.XLSX", old)
	staleLegacy := write("ostatki.xls", old)
	staleMacro := write("ostatki.xlsm", old)
	fresh := write("fresh.xlsx", time.Now())
	unrelated := write("notes.txt", old)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.xlsx"), 0o700))

	processor := workers.NewCleanupProcessor(dir, 24*time.Hour, helpers.TestLogger())
	require.NoError(t, processor.CleanupWorkDir(context.Background(), workers.NewCleanupWorkDirTask()))

	assert.NoFileExists(t, stale)
	assert.NoFileExists(t, staleUpper)
	assert.NoFileExists(t, staleLegacy)
	assert.NoFileExists(t, staleMacro)
	assert.FileExists(t, fresh)
	assert.FileExists(t, unrelated)
	assert.DirExists(t, filepath.Join(dir, "nested.xlsx"))
}

func TestCleanupProcessor_MissingDir(t *testing.T) {
	processor := workers.NewCleanupProcessor(filepath.Join(t.TempDir(), "missing"), time.Hour, helpers.TestLogger())

	err := processor.CleanupWorkDir(context.Background(), workers.NewCleanupWorkDirTask())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read work dir")
}

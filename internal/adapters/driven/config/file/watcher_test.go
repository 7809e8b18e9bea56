package file

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, "[log]\nlevel = \"info\"\n")
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	var changes atomic.Int32
	w := NewWatcher(store, func() { changes.Add(1) })
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	writeConfig(t, tmpDir, "[log]\nlevel = \"debug\"\n")

	assert.Eventually(t, func() bool {
		return changes.Load() >= 1 && store.GetString("log.level") == "debug"
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	var changes atomic.Int32
	w := NewWatcher(store, func() { changes.Add(1) })
	w.debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "other.txt"), []byte("x"), 0600))
	time.Sleep(200 * time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, int32(0), changes.Load())
}

func TestWatcher_MissingDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(tmpDir))

	err = NewWatcher(store, nil).Run(context.Background())

	assert.Error(t, err)
}

package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prithivirajmurugan/rs-compiler/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReportsDebouncedChanges(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a.rsc")
	require.NoError(t, os.WriteFile(target, []byte("1"), 0o600))

	w := New(Config{
		Paths:    []string{dir},
		Match:    func(p string) bool { return strings.HasSuffix(p, ".rsc") },
		Debounce: 50 * time.Millisecond,
		Logger:   testutil.NewTestLogger(t),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu      sync.Mutex
		changed []string
	)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(path string) {
			mu.Lock()
			changed = append(changed, path)
			mu.Unlock()
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(target, []byte(strings.Repeat("x", i+2)), 0o600))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o600))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(changed) > 0
	}, 2*time.Second, 20*time.Millisecond)

	// Let any trailing timers fire, then check only the matching file was
	// reported.
	time.Sleep(150 * time.Millisecond)
	mu.Lock()
	for _, p := range changed {
		assert.Equal(t, target, p)
	}
	assert.Less(t, len(changed), 3, "writes should be debounced")
	mu.Unlock()

	cancel()
	assert.NoError(t, <-done)
}

func TestWatcher_WaitsForCallInProgress(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a.rsc")
	require.NoError(t, os.WriteFile(target, []byte("1"), 0o600))

	w := New(Config{
		Paths:    []string{dir},
		Debounce: 10 * time.Millisecond,
		Logger:   testutil.NewTestLogger(t),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	started := make(chan struct{}, 1)
	var finished atomic.Bool
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(string) {
			select {
			case started <- struct{}{}:
			default:
			}
			time.Sleep(200 * time.Millisecond)
			finished.Store(true)
		})
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(target, []byte("2"), 0o600))

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("change was not reported")
	}
	cancel()

	require.NoError(t, <-done)
	assert.True(t, finished.Load(), "Run returned while onChange was still running")
}

func TestWatcher_SerializesCalls(t *testing.T) {
	dir := t.TempDir()
	files := []string{filepath.Join(dir, "a.rsc"), filepath.Join(dir, "b.rsc"), filepath.Join(dir, "c.rsc")}
	for _, f := range files {
		require.NoError(t, os.WriteFile(f, []byte("1"), 0o600))
	}

	w := New(Config{Paths: []string{dir}, Debounce: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		active  atomic.Int32
		overlap atomic.Bool
		calls   atomic.Int32
	)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(string) {
			if active.Add(1) > 1 {
				overlap.Store(true)
			}
			time.Sleep(30 * time.Millisecond)
			active.Add(-1)
			calls.Add(1)
		})
	}()

	time.Sleep(100 * time.Millisecond)
	for _, f := range files {
		require.NoError(t, os.WriteFile(f, []byte("2"), 0o600))
	}

	assert.Eventually(t, func() bool { return calls.Load() >= int32(len(files)) }, 2*time.Second, 20*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
	assert.False(t, overlap.Load(), "onChange calls overlapped")
}

func TestWatcher_MissingPath(t *testing.T) {
	w := New(Config{Paths: []string{filepath.Join(t.TempDir(), "missing")}})
	err := w.Run(context.Background(), func(string) {})
	assert.ErrorContains(t, err, "failed to watch")
}

func TestNew_DefaultDebounce(t *testing.T) {
	w := New(Config{})
	assert.Equal(t, 100*time.Millisecond, w.cfg.Debounce)
}

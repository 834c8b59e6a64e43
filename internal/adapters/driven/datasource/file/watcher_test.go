package file

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const testDebounce = 60 * time.Millisecond

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fsnotify windows goroutines are not tracked reliably by goleak")
	}
}

func receiveKey(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case key, ok := <-ch:
		require.True(t, ok, "channel closed before a key arrived")
		return key
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a changed key")
		return ""
	}
}

func TestWatcher_ReportsChangedProvince(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	w := NewWatcher(root, testDebounce)
	changes, err := w.Watch(context.Background())
	require.NoError(t, err)
	defer w.Close()

	writeResource(t, root, "gauteng", gautengJSON)

	assert.Equal(t, "gauteng", receiveKey(t, changes))
}

func TestWatcher_DebouncesRapidWrites(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	w := NewWatcher(root, testDebounce)
	changes, err := w.Watch(context.Background())
	require.NoError(t, err)
	defer w.Close()

	for i := 0; i < 5; i++ {
		writeResource(t, root, "limpopo", gautengJSON)
	}

	assert.Equal(t, "limpopo", receiveKey(t, changes))
	select {
	case key := <-changes:
		t.Fatalf("unexpected second event for %q", key)
	case <-time.After(4 * testDebounce):
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	w := NewWatcher(root, testDebounce)
	changes, err := w.Watch(context.Background())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(root, "README.txt"), []byte("hi"), 0600))
	writeResource(t, root, "free-state", gautengJSON)

	assert.Equal(t, "free-state", receiveKey(t, changes))
}

func TestWatcher_ContextCancelClosesChannel(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	w := NewWatcher(t.TempDir(), testDebounce)
	changes, err := w.Watch(ctx)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-changes:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
	assert.NoError(t, w.Close())
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	w := NewWatcher(t.TempDir(), 0)
	_, err := w.Watch(context.Background())
	require.NoError(t, err)

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestNewWatcher_Debounce(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want time.Duration
	}{
		{"zero uses default", 0, DefaultDebounce},
		{"negative uses default", -time.Second, DefaultDebounce},
		{"tiny is raised", time.Nanosecond, MinDebounce},
		{"just below minimum", MinDebounce - 1, MinDebounce},
		{"kept when large enough", testDebounce, testDebounce},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewWatcher(t.TempDir(), tt.in).debounce)
		})
	}
}

func TestWatcher_TinyDebounceRuns(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	w := NewWatcher(t.TempDir(), 2*time.Nanosecond)
	_, err := w.Watch(context.Background())
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	assert.NoError(t, w.Close())
}

func TestWatcher_Errors(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	t.Run("missing root", func(t *testing.T) {
		w := NewWatcher(filepath.Join(t.TempDir(), "missing"), 0)
		_, err := w.Watch(context.Background())
		assert.Error(t, err)
		assert.NoError(t, w.Close())
	})

	t.Run("started twice", func(t *testing.T) {
		w := NewWatcher(t.TempDir(), 0)
		_, err := w.Watch(context.Background())
		require.NoError(t, err)
		defer w.Close()

		_, err = w.Watch(context.Background())
		assert.ErrorIs(t, err, ErrWatcherStarted)
	})
}

func TestSettled(t *testing.T) {
	now := time.Now()
	pending := map[string]time.Time{
		"limpopo":      now.Add(-time.Second),
		"gauteng":      now.Add(-time.Second),
		"western-cape": now,
	}

	keys := settled(pending, now, 500*time.Millisecond)

	assert.Equal(t, []string{"gauteng", "limpopo"}, keys)
	assert.Len(t, pending, 1)
	assert.Contains(t, pending, "western-cape")
}

package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recLog struct {
	mu    sync.Mutex
	lines []string
}

func (l *recLog) Print(format string, _ ...any) { l.add(format) }
func (l *recLog) Warn(format string, _ ...any) { l.add(format) }

func (l *recLog) add(s string) {
	l.mu.Lock()
	l.lines = append(l.lines, s)
	l.mu.Unlock()
}

type batches struct {
	mu  sync.Mutex
	got [][]string
}

func (b *batches) add(_ context.Context, files []string) {
	b.mu.Lock()
	b.got = append(b.got, files)
	b.mu.Unlock()
}

func (b *batches) all() [][]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([][]string(nil), b.got...)
}

func startWatcher(t *testing.T, dir string, debounce time.Duration) (*batches, context.CancelFunc, chan error) {
	t.Helper()
	w, err := New([]string{dir}, Options{Debounce: debounce, Log: &recLog{}})
	require.NoError(t, err)
	b := &batches{}
	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, b.add) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return b, cancel, done
}

func TestNew(t *testing.T) {
	_, err := New(nil, Options{})
	require.Error(t, err)

	_, err = New([]string{filepath.Join(t.TempDir(), "missing")}, Options{})
	require.Error(t, err)

	dir := t.TempDir()
	w, err := New([]string{dir}, Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultDebounce, w.debounce)
	abs, err := filepath.Abs(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{abs}, w.Dirs())
	require.NoError(t, w.fsw.Close())
}

func TestWatcher_Run_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	b, _, _ := startWatcher(t, dir, 150*time.Millisecond)

	p := filepath.Join(dir, "login.yml")
	for range 3 {
		require.NoError(t, os.WriteFile(p, []byte("name: login\n"), 0o600))
		time.Sleep(20 * time.Millisecond)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))

	require.Eventually(t, func() bool { return len(b.all()) > 0 }, 3*time.Second, 20*time.Millisecond)
	time.Sleep(300 * time.Millisecond)

	got := b.all()
	require.Len(t, got, 1, "burst of writes delivered once")
	assert.Equal(t, []string{p}, got[0])
}

func TestWatcher_Run_BatchesFiles(t *testing.T) {
	dir := t.TempDir()
	b, _, _ := startWatcher(t, dir, 200*time.Millisecond)

	a := filepath.Join(dir, "a.yaml")
	z := filepath.Join(dir, "z.yml")
	require.NoError(t, os.WriteFile(z, []byte("name: z\n"), 0o600))
	require.NoError(t, os.WriteFile(a, []byte("name: a\n"), 0o600))

	require.Eventually(t, func() bool { return len(b.all()) > 0 }, 3*time.Second, 20*time.Millisecond)
	assert.Equal(t, []string{a, z}, b.all()[0], "sorted")
}

func TestWatcher_Run_StopsOnCancel(t *testing.T) {
	_, cancel, done := startWatcher(t, t.TempDir(), 50*time.Millisecond)
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
		done <- nil // let cleanup drain
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestRelevant(t *testing.T) {
	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"write yml", fsnotify.Event{Name: "/s/a.yml", Op: fsnotify.Write}, true},
		{"create yaml", fsnotify.Event{Name: "/s/a.YAML", Op: fsnotify.Create}, true},
		{"remove", fsnotify.Event{Name: "/s/a.yml", Op: fsnotify.Remove}, false},
		{"chmod", fsnotify.Event{Name: "/s/a.yml", Op: fsnotify.Chmod}, false},
		{"other ext", fsnotify.Event{Name: "/s/a.yml~", Op: fsnotify.Write}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, relevant(tc.ev))
		})
	}
}

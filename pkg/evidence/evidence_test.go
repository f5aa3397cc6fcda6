package evidence

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeShooter struct {
	err   error
	calls []string
}

func (f *fakeShooter) Screenshot(path string) error {
	f.calls = append(f.calls, path)
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(path, []byte("png"), 0o600)
}

func TestRecorder_Screenshot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "verification")
	r := NewRecorder(dir)
	page := &fakeShooter{}

	path, err := r.Screenshot(page, "login")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "login.png"), path)
	assert.FileExists(t, path)

	path, err = r.Screenshot(page, "dashboard.jpeg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "dashboard.jpeg"), path)

	assert.Equal(t, []string{filepath.Join(dir, "dashboard.jpeg"), filepath.Join(dir, "login.png")}, r.Paths())
	assert.Equal(t, dir, r.Dir())
}

func TestRecorder_AtMostOnce(t *testing.T) {
	r := NewRecorder(t.TempDir())
	page := &fakeShooter{}

	_, err := r.Screenshot(page, "verification.png")
	require.NoError(t, err)
	_, err = r.Screenshot(page, "verification")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAlreadyCaptured)
	assert.Len(t, page.calls, 1, "second capture must not touch the page")

	_, err = r.WriteText("verification.png", "text")
	assert.ErrorIs(t, err, ErrAlreadyCaptured)
}

func TestRecorder_FailedCaptureCanBeRetried(t *testing.T) {
	r := NewRecorder(t.TempDir())
	page := &fakeShooter{err: errors.New("page crashed")}

	_, err := r.Screenshot(page, "shot")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page crashed")
	assert.NotErrorIs(t, err, ErrAlreadyCaptured)
	assert.Empty(t, r.Paths())

	page.err = nil
	_, err = r.Screenshot(page, "shot")
	require.NoError(t, err)
}

func TestRecorder_ErrorScreenshot(t *testing.T) {
	dir := t.TempDir()
	r := NewRecorder(dir)
	path, err := r.ErrorScreenshot(&fakeShooter{}, "login-toast")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "login-toast-error.png"), path)
}

func TestRecorder_WriteText(t *testing.T) {
	dir := t.TempDir()
	r := NewRecorder(dir)

	path, err := r.WriteText("websockets-content.html", "<html></html>")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(data))
}

func TestRecorder_InvalidName(t *testing.T) {
	r := NewRecorder(t.TempDir())
	for _, name := range []string{"", "../escape.png", "sub/dir.png", `win\path.png`, ".."} {
		_, err := r.WriteText(name, "x")
		assert.Error(t, err, name)
	}
}

func TestRecorder_Concurrent(t *testing.T) {
	r := NewRecorder(t.TempDir())
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.WriteText("same.txt", "x"); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, succeeded)
}

// Package evidence writes screenshots and diagnostic dumps into the run output directory.
// Every path is written at most once per run.
package evidence

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// ErrAlreadyCaptured is returned when a path was already written during this run.
var ErrAlreadyCaptured = errors.New("already captured")

// Shooter takes a screenshot of the current page into path.
type Shooter interface {
	Screenshot(path string) error
}

// Recorder writes artifacts under a fixed directory.
type Recorder struct {
	dir string

	mu      sync.Mutex
	written map[string]bool
}

// NewRecorder makes a recorder rooted at dir. The directory is created on first write.
func NewRecorder(dir string) *Recorder {
	return &Recorder{dir: dir, written: map[string]bool{}}
}

// Dir returns the output directory.
func (r *Recorder) Dir() string { return r.dir }

// Screenshot captures the page into <dir>/<name>, adding .png when name has no extension.
func (r *Recorder) Screenshot(page Shooter, name string) (string, error) {
	if filepath.Ext(name) == "" {
		name += ".png"
	}
	return r.write(name, func(path string) error { return page.Screenshot(path) })
}

// ErrorScreenshot captures the page as <scenario>-error.png.
func (r *Recorder) ErrorScreenshot(page Shooter, scenario string) (string, error) {
	return r.Screenshot(page, scenario+"-error.png")
}

// WriteText writes content into <dir>/<name>.
func (r *Recorder) WriteText(name, content string) (string, error) {
	return r.write(name, func(path string) error {
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		return nil
	})
}

// Paths returns every path written so far, sorted.
func (r *Recorder) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]string, 0, len(r.written))
	for p := range r.written {
		res = append(res, p)
	}
	sort.Strings(res)
	return res
}

// write reserves path, runs fn and releases the reservation when fn fails.
func (r *Recorder) write(name string, fn func(path string) error) (string, error) {
	if err := CheckName(name); err != nil {
		return "", err
	}
	path := filepath.Join(r.dir, name)

	r.mu.Lock()
	if r.written[path] {
		r.mu.Unlock()
		return path, fmt.Errorf("%s: %w", path, ErrAlreadyCaptured)
	}
	r.written[path] = true
	r.mu.Unlock()

	err := os.MkdirAll(r.dir, 0o750)
	if err == nil {
		err = fn(path)
	}
	if err != nil {
		r.mu.Lock()
		delete(r.written, path)
		r.mu.Unlock()
		return "", fmt.Errorf("capture %s: %w", name, err)
	}
	return path, nil
}

// CheckName keeps artifacts inside the output directory.
func CheckName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid artifact name %q", name)
	}
	return nil
}

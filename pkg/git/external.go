package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const cliTimeout = 5 * time.Second

// externalBackend shells out to the git CLI for what go-git does not offer, i.e. describe.
type externalBackend struct {
	path string // absolute path to repository root
}

// newExternalBackend checks the git binary is available and path is inside a repository.
func newExternalBackend(path string) (*externalBackend, error) {
	if _, err := exec.LookPath("git"); err != nil {
		return nil, fmt.Errorf("git cli: %w", err)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}
	e := &externalBackend{path: absPath}
	if _, err := e.run("rev-parse", "--git-dir"); err != nil {
		return nil, fmt.Errorf("open git repository %s: %w", absPath, err)
	}
	return e, nil
}

// run executes a git command and returns combined stdout+stderr with trailing whitespace removed.
// on failure, returns error with the combined output for diagnostics.
func (e *externalBackend) run(args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cliTimeout)
	defer cancel()
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = e.path
	out, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return "", fmt.Errorf("git %s: %s", args[0], msg)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("git %s: exit %d", args[0], exitErr.ExitCode())
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return strings.TrimRight(string(out), " \t\n\r"), nil
}

// nearestTag returns the closest reachable tag, empty when there is none.
func (e *externalBackend) nearestTag() string {
	out, err := e.run("describe", "--tags", "--abbrev=0")
	if err != nil {
		return ""
	}
	return out
}

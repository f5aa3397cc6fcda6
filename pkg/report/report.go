// Package report builds the markdown summary of a run, writes it next to the screenshots
// and renders it for the terminal.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/umputun/uicheck/pkg/runner"
	"github.com/umputun/uicheck/pkg/status"
)

// FileName is the report file written into the output directory.
const FileName = "report.md"

// Meta describes the run the report is about.
type Meta struct {
	BaseURL  string
	Revision string // application revision, empty when unknown
	Browser  string
	Started  time.Time

	// Redact masks secrets in error text. nil leaves text unchanged.
	Redact func(string) string
}

// Build renders the summary as markdown. Screenshot paths are shown relative to outputDir.
func Build(sum runner.Summary, meta Meta, outputDir string) string {
	redact := meta.Redact
	if redact == nil {
		redact = func(s string) string { return s }
	}

	var b strings.Builder
	b.WriteString("# uicheck report\n\n")
	fmt.Fprintf(&b, "- **target:** %s\n", meta.BaseURL)
	if meta.Revision != "" {
		fmt.Fprintf(&b, "- **revision:** %s\n", meta.Revision)
	}
	if meta.Browser != "" {
		fmt.Fprintf(&b, "- **browser:** %s\n", meta.Browser)
	}
	if !meta.Started.IsZero() {
		fmt.Fprintf(&b, "- **started:** %s\n", meta.Started.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(&b, "- **duration:** %s\n", sum.Duration.Round(time.Millisecond))
	fmt.Fprintf(&b, "- **result:** %d passed, %d failed, %d skipped\n", sum.Passed, sum.Failed, sum.Skipped)
	if len(sum.NotRun) > 0 {
		fmt.Fprintf(&b, "- **not started:** %s\n", strings.Join(sum.NotRun, ", "))
	}

	if len(sum.Results) > 0 {
		b.WriteString("\n## Scenarios\n\n")
		b.WriteString("| scenario | state | duration | screenshots |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, r := range sum.Results {
			fmt.Fprintf(&b, "| %s | %s | %s | %d |\n", r.Scenario, stateLabel(r.State),
				r.Duration.Round(time.Millisecond), len(r.Captures))
		}
	}

	var failed []runner.Result
	for _, r := range sum.Results {
		if r.State == status.StateFailed {
			failed = append(failed, r)
		}
	}
	if len(failed) > 0 {
		b.WriteString("\n## Failures\n")
		for _, r := range failed {
			fmt.Fprintf(&b, "\n### %s\n\n", r.Scenario)
			if r.Phase != "" {
				fmt.Fprintf(&b, "- **phase:** %s\n", r.Phase)
			}
			if r.Err != nil {
				fmt.Fprintf(&b, "- **error:** `%s`\n", escapeTicks(redact(r.Err.Error())))
			}
			for _, a := range r.Artifacts {
				fmt.Fprintf(&b, "- **artifact:** %s\n", fileEntry(a, outputDir))
			}
		}
	}

	var shots []string
	for _, r := range sum.Results {
		for _, c := range r.Captures {
			shots = append(shots, fileEntry(c, outputDir))
		}
	}
	if len(shots) > 0 {
		b.WriteString("\n## Screenshots\n\n")
		for _, s := range shots {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	}
	return b.String()
}

// Write saves the report into dir and returns its path.
func Write(dir, content string) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

func stateLabel(s status.State) string {
	if s == status.StateFailed {
		return "**failed**"
	}
	return string(s)
}

func relative(path, dir string) string {
	if dir == "" {
		return path
	}
	if rel, err := filepath.Rel(dir, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

// fileEntry is the path relative to dir with the file size, the size is left out when the file can't be read.
func fileEntry(path, dir string) string {
	rel := relative(path, dir)
	fi, err := os.Stat(path)
	if err != nil || fi.IsDir() {
		return rel
	}
	return fmt.Sprintf("%s (%s)", rel, humanize.Bytes(uint64(fi.Size()))) //nolint:gosec // size is non-negative
}

func escapeTicks(s string) string {
	return strings.ReplaceAll(s, "`", "'")
}

package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// customChannel pipes the json Result into a user script.
type customChannel struct {
	scriptPath string
}

func newCustomChannel(scriptPath string) *customChannel {
	return &customChannel{scriptPath: scriptPath}
}

func (c *customChannel) send(ctx context.Context, r Result) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	var out bytes.Buffer
	cmd := exec.Command(c.scriptPath) //nolint:gosec,noctx // path comes from user config, ctx handled by the process group
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = &out
	cmd.Stderr = &out
	setupProcessGroup(cmd)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start script %s: %w", c.scriptPath, err)
	}
	err = newProcessGroupCleanup(cmd, ctx.Done()).Wait()
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	if err != nil {
		if o := strings.TrimSpace(out.String()); o != "" {
			return fmt.Errorf("script %s: %w, output: %s", c.scriptPath, err, o)
		}
		return fmt.Errorf("script %s: %w", c.scriptPath, err)
	}
	return nil
}

//go:build windows

package notify

import "os/exec"

// setupProcessGroup is a no-op on windows.
func setupProcessGroup(*exec.Cmd) {}

// processGroupCleanup kills only the script process on windows.
type processGroupCleanup struct {
	cmd  *exec.Cmd
	done chan struct{}
}

func newProcessGroupCleanup(cmd *exec.Cmd, cancelCh <-chan struct{}) *processGroupCleanup {
	pg := &processGroupCleanup{cmd: cmd, done: make(chan struct{})}
	go func() {
		select {
		case <-cancelCh:
			if cmd.Process != nil {
				_ = cmd.Process.Kill()
			}
		case <-pg.done:
		}
	}()
	return pg
}

func (pg *processGroupCleanup) Wait() error {
	err := pg.cmd.Wait()
	close(pg.done)
	return err
}

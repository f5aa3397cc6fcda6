//go:build !windows

package notify

import (
	"errors"
	"fmt"
	"os/exec"
	"sync"
	"syscall"
	"time"
)

// processGroupCleanup kills the whole process tree of a custom script when the send is canceled,
// a script may fork curl or mail helpers that would otherwise outlive the run.
type processGroupCleanup struct {
	cmd  *exec.Cmd
	done chan struct{}
	once sync.Once
	err  error
}

// setupProcessGroup configures command to run in its own process group.
func setupProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// newProcessGroupCleanup creates a cleanup handler for a started command.
// caller must call Wait to release the watcher goroutine.
func newProcessGroupCleanup(cmd *exec.Cmd, cancelCh <-chan struct{}) *processGroupCleanup {
	pg := &processGroupCleanup{cmd: cmd, done: make(chan struct{})}
	go pg.watchForCancel(cancelCh)
	return pg
}

func (pg *processGroupCleanup) watchForCancel(cancelCh <-chan struct{}) {
	select {
	case <-cancelCh:
		pg.killProcessGroup()
	case <-pg.done:
	}
}

// killProcessGroup sends SIGTERM followed by SIGKILL to the entire process group.
func (pg *processGroupCleanup) killProcessGroup() {
	if pg.cmd.Process == nil {
		return
	}
	pgid := -pg.cmd.Process.Pid
	if err := syscall.Kill(pgid, syscall.SIGTERM); err != nil {
		return // ESRCH, already gone
	}
	time.Sleep(100 * time.Millisecond)
	if err := syscall.Kill(pgid, syscall.SIGKILL); err != nil && !errors.Is(err, syscall.ESRCH) {
		fmt.Printf("[notify] SIGKILL failed for pgid %d: %v\n", pgid, err)
	}
}

// Wait waits for the command to complete. Repeated calls return the first result.
func (pg *processGroupCleanup) Wait() error {
	pg.once.Do(func() {
		pg.err = pg.cmd.Wait()
		close(pg.done)
	})
	return pg.err
}

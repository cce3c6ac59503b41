//go:build !windows

package download

import (
	"errors"
	"os"
	"syscall"
)

// terminate asks the child to exit gracefully
func terminate(p *os.Process) error {
	if p == nil {
		return nil
	}
	err := p.Signal(syscall.SIGTERM)
	if errors.Is(err, os.ErrProcessDone) {
		return nil
	}
	return err
}

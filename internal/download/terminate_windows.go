//go:build windows

package download

import (
	"errors"
	"os"
)

// terminate stops the child; Windows has no SIGTERM for console processes
func terminate(p *os.Process) error {
	if p == nil {
		return nil
	}
	err := p.Kill()
	if errors.Is(err, os.ErrProcessDone) {
		return nil
	}
	return err
}

//go:build linux

package mergetree

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// kernelUnmounter detaches mount points lazily: the mount disappears from
// the namespace now and is released once nothing uses it
type kernelUnmounter struct{}

// NewUnmounter returns the Unmounter for the running platform
func NewUnmounter() Unmounter {
	return kernelUnmounter{}
}

func (kernelUnmounter) SendUnmountable(target string) error {
	if err := unix.Unmount(target, unix.MNT_DETACH); err != nil {
		return fmt.Errorf("detach %s: %w", target, err)
	}
	return nil
}

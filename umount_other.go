//go:build !linux

package mergetree

// NewUnmounter returns the Unmounter for the running platform
func NewUnmounter() Unmounter {
	return NopUnmounter{}
}

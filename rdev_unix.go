//go:build unix

package mergetree

import "syscall"

// deviceNumber returns the device number recorded in a FileInfo's Sys value
func deviceNumber(sys any) (uint64, bool) {
	st, ok := sys.(*syscall.Stat_t)
	if !ok {
		return 0, false
	}
	return uint64(st.Rdev), true
}

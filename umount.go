package mergetree

// Unmounter marks mount points for removal on a best-effort basis
type Unmounter interface {
	SendUnmountable(target string) error
}

// NopUnmounter is used where the kernel offers no way to mark a mount
// point. It always succeeds, so callers cannot rely on it for cleanup.
type NopUnmounter struct{}

// SendUnmountable does nothing
func (NopUnmounter) SendUnmountable(string) error {
	return nil
}

//go:build !linux

package mergetree

import "errors"

func lgetxattr(name, attr string) ([]byte, error) {
	return nil, errors.ErrUnsupported
}

package btree

import "github.com/pkg/errors"

var (
	ErrKeyExists       = errors.New("key already exists")
	ErrNotFound        = errors.New("key not found")
	ErrOutOfMemory     = errors.New("arena out of memory")
	ErrInvalidArgument = errors.New("invalid argument")

	// errParentFull asks the caller to push the split one level up.
	errParentFull = errors.New("parent full")
	// errStalePath means the traced path changed before it was locked.
	errStalePath = errors.New("stale path")
)

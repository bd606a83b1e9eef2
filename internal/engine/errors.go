package engine

import (
	"github.com/pkg/errors"
)

// Every error returned by this package wraps exactly one of these. Use
// errors.Is to classify them.
var (
	// ErrConfiguration reports an invalid digest size, key, salt,
	// personalization or tree parameter. It is returned before any hashing
	// takes place.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrUsage reports misuse of the state machine: writing to or finalizing
	// a finalized state, or finalizing into a buffer of the wrong size.
	ErrUsage = errors.New("invalid use of hash state")

	// ErrBounds reports an offset/length pair outside the supplied buffer.
	ErrBounds = errors.New("range out of bounds")
)

func (v *Variant[W]) configErrorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrConfiguration, v.Name+": "+format, args...)
}

func (v *Variant[W]) usageErrorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrUsage, v.Name+": "+format, args...)
}

func (v *Variant[W]) boundsErrorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrBounds, v.Name+": "+format, args...)
}

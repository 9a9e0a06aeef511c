// Package problem defines the error kinds shared by rasterkit packages.
//
// Every failure returned by rgb, raster, seq and movie wraps exactly one of
// the sentinels below, so callers can branch with errors.Is.
package problem

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfRange        = errors.New("out of range")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrDecode            = errors.New("decode error")
	ErrEncode            = errors.New("encode error")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrEmptyCollection   = errors.New("empty collection")
)

// CheckRange returns an ErrOutOfRange error when value is not in
// [minInclusive, maxExclusive).
func CheckRange(name string, value, minInclusive, maxExclusive int) error {
	if value < minInclusive || value >= maxExclusive {
		return fmt.Errorf("%w: %s, %d not in [%d, %d)", ErrOutOfRange, name, value, minInclusive, maxExclusive)
	}
	return nil
}

// CheckNotNil returns an ErrInvalidArgument error when isNil is set.
func CheckNotNil(name string, isNil bool) error {
	if isNil {
		return fmt.Errorf("%w: %s cannot be nil", ErrInvalidArgument, name)
	}
	return nil
}

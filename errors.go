package tilekit

import (
	"errors"
)

var (
	// ErrDecode is returned when an asset file or field is missing or malformed.
	// A load that fails with ErrDecode returns no partial result.
	ErrDecode = errors.New("decode error")

	// ErrSchema is returned for layer types we don't know about.
	// Group layers are accepted (and skipped).
	ErrSchema = errors.New("schema error")

	// ErrIndex is returned when a tile or frame index is out of range
	ErrIndex = errors.New("index out of range")

	// ErrLookup is returned when a named animation, layer or anchor isn't found
	ErrLookup = errors.New("lookup failed")
)

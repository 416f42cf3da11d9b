package buildcfg

import "errors"

var (
	// ErrMissingContent is returned when the record declares no content globs.
	ErrMissingContent = errors.New("content must declare at least one glob pattern")
	// ErrInvalidGlob is returned when a content pattern is not valid glob syntax.
	ErrInvalidGlob = errors.New("content pattern is not valid glob syntax")
	// ErrInvalidColor is returned when a color value is not a 6-digit hex string.
	ErrInvalidColor = errors.New("color value must be '#' followed by 6 hex digits")
	// ErrEmptyName is returned when a palette or shade key is empty.
	ErrEmptyName = errors.New("palette and shade names must be non-empty")
	// ErrUnsupportedFormat is returned for formats other than YAML and JSON.
	ErrUnsupportedFormat = errors.New("unsupported configuration format")
)

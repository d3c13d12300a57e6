/*
 * Copyright (c) 2026 nasacj.
 * See the LICENSE file for more information.
 */

package compress

import "io"

// Level represents a stream compression level.
type Level int

const (
	// NoCompression represents no stream compression.
	NoCompression Level = iota

	// DefaultCompression represents 'default' stream compression level.
	DefaultCompression

	// BestCompression represents 'best for size' stream compression level.
	BestCompression

	// SpeedCompression represents 'best for speed' stream compression level.
	SpeedCompression
)

// String returns Level string representation.
func (cl Level) String() string {
	switch cl {
	case DefaultCompression:
		return "default"
	case BestCompression:
		return "best"
	case SpeedCompression:
		return "speed"
	}
	return ""
}

// ParseLevel returns the compression level associated to a configuration
// string.
func ParseLevel(s string) (Level, bool) {
	switch s {
	case "":
		return NoCompression, true
	case "default":
		return DefaultCompression, true
	case "best":
		return BestCompression, true
	case "speed":
		return SpeedCompression, true
	}
	return NoCompression, false
}

// Compressor represents a stream compression method.
type Compressor interface {
	io.ReadWriter
}

/*
 * Copyright (c) 2026 nasacj.
 * See the LICENSE file for more information.
 */

package version

import "fmt"

// Version represents the current woody library version.
var Version = NewVersion(0, 1, 0)

// SemanticVersion represents a semantic version (major.minor.patch).
type SemanticVersion struct {
	major uint
	minor uint
	patch uint
}

// NewVersion initializes a new instance of SemanticVersion.
func NewVersion(major, minor, patch uint) *SemanticVersion {
	return &SemanticVersion{
		major: major,
		minor: minor,
		patch: patch,
	}
}

// String returns a string that represents this instance.
func (v *SemanticVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.major, v.minor, v.patch)
}

// IsEqual returns true in case version is equal to v2.
func (v *SemanticVersion) IsEqual(v2 *SemanticVersion) bool {
	if v == v2 {
		return true
	}
	return v.major == v2.major && v.minor == v2.minor && v.patch == v2.patch
}

// IsLess returns true in case version is less than v2.
func (v *SemanticVersion) IsLess(v2 *SemanticVersion) bool {
	if v == v2 {
		return false
	}
	if v.major != v2.major {
		return v.major < v2.major
	}
	if v.minor != v2.minor {
		return v.minor < v2.minor
	}
	return v.patch < v2.patch
}

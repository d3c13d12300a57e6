/*
 * Copyright (c) 2026 nasacj.
 * See the LICENSE file for more information.
 */

package connection

import "fmt"

// SecurityMode represents the TLS policy applied when negotiating
// a connection.
type SecurityMode int

const (
	// SecurityEnabled upgrades to TLS whenever the server offers it and
	// proceeds unencrypted otherwise. This is the default mode.
	SecurityEnabled SecurityMode = iota

	// SecurityRequired makes TLS mandatory; a server not offering TLS
	// is a fatal connection error.
	SecurityRequired

	// SecurityDisabled never attempts TLS, even if offered.
	SecurityDisabled
)

// String returns SecurityMode string representation.
func (sm SecurityMode) String() string {
	switch sm {
	case SecurityEnabled:
		return "enabled"
	case SecurityRequired:
		return "required"
	case SecurityDisabled:
		return "disabled"
	}
	return ""
}

// ParseSecurityMode returns the security mode associated to a
// configuration string.
func ParseSecurityMode(s string) (SecurityMode, error) {
	switch s {
	case "", "enabled":
		return SecurityEnabled, nil
	case "required":
		return SecurityRequired, nil
	case "disabled":
		return SecurityDisabled, nil
	}
	return SecurityEnabled, fmt.Errorf("connection: unrecognized security mode: %s", s)
}

// UnmarshalYAML satisfies Unmarshaler interface.
func (sm *SecurityMode) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	mode, err := ParseSecurityMode(s)
	if err != nil {
		return err
	}
	*sm = mode
	return nil
}

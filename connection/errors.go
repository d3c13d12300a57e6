/*
 * Copyright (c) 2026 nasacj.
 * See the LICENSE file for more information.
 */

package connection

import "fmt"

// InvalidConfigError reports structurally invalid connection input.
// It is raised synchronously at construction and never retried.
type InvalidConfigError struct {
	Field  string
	Reason string
}

// Error satisfies error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("connection: invalid %s: %s", e.Field, e.Reason)
}

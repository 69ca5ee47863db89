/*
 * copyright (c) 2019 juniper networks, inc. all rights reserved.
 */

// Package errutil aggregates errors of best-effort batch operations.
package errutil

import (
	"strings"
)

// MultiError implements errors with multiple causes.
type MultiError []error

// Error implements default errors interface for MultiError.
func (m MultiError) Error() string {
	var msgs []string
	for _, e := range m {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "\n")
}

// Cause returns the first error.
func (m MultiError) Cause() error {
	if len(m) == 0 {
		return nil
	}
	return m[0]
}

// Append adds err to m unless it is nil.
func (m MultiError) Append(err error) MultiError {
	if err == nil {
		return m
	}
	return append(m, err)
}

// ErrorOrNil returns nil for an empty MultiError.
func (m MultiError) ErrorOrNil() error {
	if len(m) == 0 {
		return nil
	}
	return m
}

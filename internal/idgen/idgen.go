// Package idgen issues unique identifiers for decision-log entries.
package idgen

import "github.com/google/uuid"

// NewFunc returns a new globally unique identifier as string. It is a
// package variable so tests can stub it.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new unique identifier.
func New() string { return NewFunc() }

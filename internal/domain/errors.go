package domain

import "errors"

// The engine distinguishes two failure classes. ErrInvalidConfig covers
// malformed plan parameters caught before any computation runs;
// ErrInvalidInput covers values that violate a mathematical precondition
// while computing. Callers classify failures with errors.Is.
var (
	ErrInvalidConfig = errors.New("invalid spending config")
	ErrInvalidInput  = errors.New("invalid input")
)

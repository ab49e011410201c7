package repository

import "errors"

// ErrNotFound is returned when a requested row does not exist. Callers decide
// whether absence is fatal or benign; it is never wrapped in a system error.
var ErrNotFound = errors.New("not found")

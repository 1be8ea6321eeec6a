// Package repository defines the persistence contracts. Implementations live
// in subpackages (postgres). Lookups by id return sql.ErrNoRows when nothing
// matches.
package repository

import "errors"

var (
	// ErrDuplicate is returned when a write violates a unique constraint.
	ErrDuplicate = errors.New("duplicate key")
	// ErrInUse is returned when a delete is refused because other rows still
	// reference the target.
	ErrInUse = errors.New("row is still referenced")
)

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}

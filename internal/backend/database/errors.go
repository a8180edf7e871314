package database

import "errors"

var (
	// ErrMalformedIdentifier is returned when a lookup id is not a valid ObjectID.
	ErrMalformedIdentifier = errors.New("malformed identifier")
	// ErrStorageFailure wraps every error reported by the storage engine.
	ErrStorageFailure = errors.New("storage failure")
	// ErrInvalidField is returned when a field value cannot be cast to its schema type.
	ErrInvalidField = errors.New("invalid field")
)

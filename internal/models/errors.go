package models

import "errors"

// Common errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrSlugExists is returned when a service or city with the same slug already exists
	ErrSlugExists = errors.New("slug already exists")

	// ErrPageExists is returned when a page for the same (service, city) pair
	// or the same slug already exists
	ErrPageExists = errors.New("page already exists for this service and city")

	// ErrNoFieldsToUpdate is returned when no fields are provided for an update
	ErrNoFieldsToUpdate = errors.New("no fields to update")

	// ErrInvalidUUID is returned when a UUID is invalid
	ErrInvalidUUID = errors.New("invalid UUID")
)

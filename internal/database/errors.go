package database

import "errors"

var (
	// ErrShortIDExists is returned when an attempt is made to create
	// a new shortened URL with a short identifier that already exists.
	ErrShortIDExists = errors.New("short id exists")
	// ErrURLNotFound is returned when an attempt is made to retrieve
	// a URL using a short identifier that doesn't exist.
	ErrURLNotFound = errors.New("url not found")
)

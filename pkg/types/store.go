package types

import (
	"errors"
	"io"
)

// TextStore persists named documents as ordered text lines.
type TextStore interface {
	// ReadLines returns the lines stored under name.
	// Returns an error wrapping ErrNotFound if nothing is stored there.
	ReadLines(name string) ([]string, error)

	// WriteLines replaces whatever is stored under name with lines.
	WriteLines(name string, lines []string) error
}

// Store is a TextStore holding resources that must be released.
type Store interface {
	TextStore
	io.Closer
}

// Lister is a store that can enumerate the documents it holds.
type Lister interface {
	// Names returns the stored document names in sorted order.
	Names() ([]string, error)
}

// Storage and decoding errors.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidName     = errors.New("invalid name")
	ErrMalformed       = errors.New("malformed catalog data")
	ErrStoreClosed     = errors.New("store is closed")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// Session errors.
var (
	ErrDuplicateObject  = errors.New("object already exists")
	ErrCapacityExceeded = errors.New("too many properties for the inspector")
)

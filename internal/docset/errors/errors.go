package errors

// Package errors provides sentinel errors for loading the document set.

import "errors"

var (
	// ErrContentRootNotFound indicates the configured content directory does not exist.
	ErrContentRootNotFound = errors.New("content root not found")

	// ErrFileReadFailed indicates reading a document source failed.
	ErrFileReadFailed = errors.New("document file read failed")

	// ErrFrontmatterInvalid indicates a document's frontmatter could not be parsed.
	ErrFrontmatterInvalid = errors.New("document frontmatter invalid")

	// ErrInvalidRelativePath indicates calculating the path relative to the content root failed.
	ErrInvalidRelativePath = errors.New("invalid relative path calculation")
)

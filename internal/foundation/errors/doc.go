// Package errors provides classified error primitives used across docnav.
//
// A ClassifiedError carries a category, a severity and structured context so
// that callers can decide whether a failure aborts a generation pass or is
// only reported:
//
//   - CategoryOrdering: two tree nodes could not be ordered (fatal)
//   - CategoryNavigation: a render entry point lacks navigation context (warning)
//   - CategoryConfig, CategoryValidation, CategoryMetadata, CategoryFileSystem
//
// Example usage:
//
//	err := errors.OrderingError("comparing pages failed").
//		WithContext("path", a).
//		WithContext("other_path", b).
//		Build()
package errors

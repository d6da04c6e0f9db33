// Package errs holds the generic error types shared by the domain, the use cases
// and the adapters.
//
// Every error type follows the same shape:
//   - a sentinel (ErrValueIsRequired, ErrValueIsInvalid, ErrValueIsOutOfRange, ErrObjectNotFound)
//   - a struct carrying the offending parameter and an optional cause
//   - two constructors, with and without a cause
//   - Unwrap returning the sentinel, so callers can branch with errors.Is
//
// Repositories return ObjectNotFoundError for missing rows; use case handlers
// translate it into their own not-found sentinels.
package errs

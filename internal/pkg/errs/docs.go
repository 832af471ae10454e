// Package errs provides standardized error types for the marketplace backend.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type carrying error details
//   - Constructor functions with and without a cause
//   - Error() for formatting and Unwrap() for errors.Is classification
//
// Domain-specific error kinds (insufficient stock, invalid transition,
// already assigned, out of service area) live next to the aggregates and
// services that raise them; this package only carries the generic kinds.
package errs

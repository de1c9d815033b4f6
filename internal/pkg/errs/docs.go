// Package errs provides standardized error types for the shipment tracking
// application.
//
// Each error type follows the same pattern: a sentinel error variable
// (e.g. ErrObjectNotFound), a struct type carrying the error details,
// constructor functions with and without a cause, an Error() method for
// formatting, and an Unwrap() method so errors.Is can classify errors
// against the sentinels.
//
// The types cover the common failure scenarios of the application:
// a required value is missing, a value is invalid or out of range, an
// object cannot be found in the store, or an aggregate version is stale.
package errs

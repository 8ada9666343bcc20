// Package errs provides standardized error types for the fulfillment service.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value failed validation
//   - ValueIsOutOfRangeError: a numeric value is outside its bounds
//   - ObjectNotFoundError: an order, product or user lookup resolved to nothing
//
// Each error type carries its parameter name and an optional cause, and unwraps
// to a package-level sentinel so callers can classify failures with errors.Is.
package errs

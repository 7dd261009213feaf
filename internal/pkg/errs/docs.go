// Package errs provides the typed error taxonomy shared by the fulfillment
// service. Every expected business outcome (bad input, illegal status change,
// lost concurrent write) is returned as one of these types so callers can
// classify it with errors.Is / errors.As instead of parsing messages.
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel
//
// Errors that refine a broader category also implement Is so they match the
// broader sentinel:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError and
//     InsufficientStockError match ErrValidation
//   - OrderNotCancellableError matches ErrIllegalTransition
package errs

package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrUnauthorized indicates that the caller is not authenticated.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates that the caller lacks the role required for the operation.
var ErrForbidden = errors.New("forbidden")

// ErrStore indicates a failure reading or replacing the shared document.
// The in-memory mutation is discarded when this is returned, so a partial
// write never reaches the store.
var ErrStore = errors.New("document store failure")

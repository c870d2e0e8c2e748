package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
// It is also returned when a resource exists but belongs to another user,
// so callers cannot distinguish the two cases.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInsufficientBalance indicates a balance guard rejected the operation.
var ErrInsufficientBalance = errors.New("insufficient account balance")

// ErrInvalidState indicates the operation is not allowed in the entity's
// current state (e.g. paying a completed borrowing).
var ErrInvalidState = errors.New("invalid entity state")

// ErrRefreshTokenExpired indicates the presented refresh token has expired.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

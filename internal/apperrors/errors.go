package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found,
// or exists but does not belong to the calling owner.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation conflicts with the current state of a resource,
// e.g. deleting an account that still has transactions referencing it.
var ErrConflict = errors.New("resource conflict")

// ErrConsistency indicates that an atomic multi-record write was only partially applied.
// The enclosing database transaction must roll back; this must never be left half-applied.
var ErrConsistency = errors.New("ledger consistency violation")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

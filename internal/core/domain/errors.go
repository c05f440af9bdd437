package domain

import "errors"

// Sentinel errors for the authentication and authorization core. Callers
// classify failures with errors.Is; the HTTP layer maps each sentinel to a
// fixed status code and message.
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrSessionInvalid = errors.New("session invalid")
var ErrForbidden = errors.New("access forbidden")
var ErrOutOfScope = errors.New("store not assigned")

var ErrUserNotFound = errors.New("user not found")
var ErrRoleNotFound = errors.New("role not found")
var ErrStoreNotFound = errors.New("store not found")

// ErrIntegrity marks corrupt reference data, for example a user pointing at
// a role that no longer exists. It is an operator problem, never a client
// one, and must not surface in API responses.
var ErrIntegrity = errors.New("reference data integrity violation")

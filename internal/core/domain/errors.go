package domain

import "errors"

var ErrMissingCredentials = errors.New("missing credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInsufficientRole = errors.New("insufficient role")

// ErrTokenInvalid covers every claims-token decode failure: expired,
// malformed, and signature mismatch are deliberately indistinguishable.
var ErrTokenInvalid = errors.New("invalid token")

var ErrSessionNotFound = errors.New("session not found")
var ErrSessionExpired = errors.New("session expired")

// ErrStorageUnavailable means the durable store could not be reached.
// Authorization paths must treat it as a denial, never as success.
var ErrStorageUnavailable = errors.New("storage unavailable")

var ErrTemplateNotFound = errors.New("template not found")

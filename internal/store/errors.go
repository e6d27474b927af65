// Package store defines the data-access boundary shared by all storage
// backends, plus the sentinel errors callers match on with errors.Is. The
// sentinels let the UI layer distinguish expected outcomes (a missing row,
// an email already taken) from real storage failures, which are wrapped
// and propagated as-is.
package store

import "errors"

// ErrSchema is returned when the underlying storage cannot be opened or an
// existing table is incompatible with the expected schema. It is fatal:
// the application must not proceed without a usable schema.
var ErrSchema = errors.New("schema unusable")

// ErrSeed is returned when seeding the initial catalog fails on a storage
// error. An already-populated table is not an error.
var ErrSeed = errors.New("seed failed")

// ErrNotFound is returned for lookups and updates by an id or token that
// does not exist (or, for sessions, has expired).
var ErrNotFound = errors.New("not found")

// ErrEmailInUse is returned by Register when the email is already taken.
// It is an expected, recoverable outcome, including under concurrent
// registrations racing on the same email.
var ErrEmailInUse = errors.New("email already in use")

// ErrInvalidCredentials is returned by Authenticate for an unknown email
// or a wrong password, without distinguishing the two.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import "errors"

// Sentinel errors the service clients translate HTTP failures into. The
// selection manager absorbs ErrDuplicate and ErrNotFound as successful
// completion of the user's intent; everything else surfaces to the caller.
var (
	// ErrUnauthorized covers a missing, invalid, or expired token.
	ErrUnauthorized = errors.New("unauthorized: log in again")

	// ErrNotFound is returned when the target record or association does not
	// exist remotely.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when adding a paper already in the library.
	ErrDuplicate = errors.New("already in library")

	// ErrPersonalizedUnavailable is the domain precondition failure for
	// personalized recommendations requested before enough papers are
	// completed.
	ErrPersonalizedUnavailable = errors.New("personalized recommendations need at least 5 completed papers")
)

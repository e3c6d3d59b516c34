package domain

import "errors"

var (
	// ErrInvalidCoordinate is returned for latitude/longitude outside the valid range.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrInvalidParameter is returned for bad query parameters (non-positive radius,
	// missing reference point, skill outside the enumeration).
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNotAuthorized is returned when a mutation is attempted by a non-owner.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrProfileNotFound covers both genuinely absent profiles and hidden profiles
	// looked up by a non-owner. The two cases are not distinguishable to callers.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrProfileAlreadyExists is returned when an identity already owns a profile.
	ErrProfileAlreadyExists = errors.New("profile already exists")

	// ErrStoreUnavailable wraps transport-level storage failures. It is never
	// translated into ErrProfileNotFound.
	ErrStoreUnavailable = errors.New("store unavailable")
)

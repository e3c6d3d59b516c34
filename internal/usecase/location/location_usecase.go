package location

import (
	"context"
	"fmt"

	"github.com/vanmates/vanmates-backend/internal/domain"
	"github.com/vanmates/vanmates-backend/internal/repository"
)

// Invalidator is notified after a committed location change so that cached
// zone and proximity views refresh. A nil Invalidator is a no-op.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

// LocationUseCase is the location update pipeline: validate, check ownership,
// persist, invalidate. A profile's location may only ever be written by its
// own owner.
type LocationUseCase struct {
	profileRepo repository.ProfileRepository
	invalidator Invalidator
}

func NewLocationUseCase(profileRepo repository.ProfileRepository, invalidator Invalidator) *LocationUseCase {
	return &LocationUseCase{profileRepo: profileRepo, invalidator: invalidator}
}

// UpdateLocation commits the caller's new exact position. The returned flag is
// false when the coordinate is identical to the stored one, letting callers
// skip redundant refreshes; the timestamp and city are persisted either way.
// Any failure leaves the record untouched.
func (uc *LocationUseCase) UpdateLocation(ctx context.Context, callerID, profileID string, coords domain.Coordinates, city *string) (bool, error) {
	if err := coords.Validate(); err != nil {
		return false, err
	}
	if callerID == "" || profileID != callerID {
		return false, domain.ErrNotAuthorized
	}

	current, err := uc.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return false, err
	}

	changed := current.LocationLat == nil || current.LocationLon == nil ||
		*current.LocationLat != coords.Latitude || *current.LocationLon != coords.Longitude

	if err := uc.profileRepo.UpdateLocation(ctx, profileID, coords.Latitude, coords.Longitude, city); err != nil {
		return false, fmt.Errorf("failed to update location: %w", err)
	}

	if changed && uc.invalidator != nil {
		uc.invalidator.Invalidate(ctx)
	}
	return changed, nil
}

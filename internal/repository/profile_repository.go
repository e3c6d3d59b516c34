package repository

import (
	"context"

	"github.com/vanmates/vanmates-backend/internal/domain"
)

// ProfileRepository is the profile store contract. Implementations map driver
// no-row results to domain.ErrProfileNotFound and transport failures to
// domain.ErrStoreUnavailable; the two are never conflated.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	// ListDiscoverable returns every located profile eligible to appear in the
	// caller's discovery results: visible profiles plus the caller's own.
	ListDiscoverable(ctx context.Context, callerID string) ([]*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	// UpdateLocation commits the exact location as a unit, together with an
	// optional city label and a fresh last_location_update timestamp.
	UpdateLocation(ctx context.Context, id string, lat, lon float64, city *string) error
	UpdateVisibility(ctx context.Context, id string, visible bool) error
	Delete(ctx context.Context, id string) error
}

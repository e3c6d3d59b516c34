package nearby

import (
	"context"
	"fmt"
	"sort"

	"github.com/vanmates/vanmates-backend/internal/domain"
	"github.com/vanmates/vanmates-backend/internal/repository"
)

// DefaultRadiusKm is the radius applied when a radius query does not name one.
const DefaultRadiusKm = 50.0

// NearbyUseCase answers the two discovery query shapes: profiles within a
// radius of a point, and profiles inside a single map zone. Both are pure
// reads; distances are always computed from exact locations while only the
// blurred zone center ever leaves in the result.
type NearbyUseCase struct {
	profileRepo repository.ProfileRepository
}

func NewNearbyUseCase(profileRepo repository.ProfileRepository) *NearbyUseCase {
	return &NearbyUseCase{profileRepo: profileRepo}
}

// Radius returns visible profiles within radiusKm of the reference point,
// ascending by distance, ties broken by id. The boundary is inclusive.
func (uc *NearbyUseCase) Radius(ctx context.Context, callerID string, reference domain.Coordinates, radiusKm float64) ([]domain.NearbyProfile, error) {
	if radiusKm <= 0 {
		return nil, fmt.Errorf("%w: radius must be positive", domain.ErrInvalidParameter)
	}
	if err := reference.Validate(); err != nil {
		return nil, err
	}

	profiles, err := uc.profileRepo.ListDiscoverable(ctx, callerID)
	if err != nil {
		return nil, err
	}

	results := make([]domain.NearbyProfile, 0, len(profiles))
	for _, p := range profiles {
		loc := p.ExactLocation()
		if loc == nil {
			continue
		}
		d := domain.HaversineDistanceKm(reference, *loc)
		if d > radiusKm {
			continue
		}
		dist := d
		results = append(results, p.NearbyProjection(&dist))
	}

	sort.Slice(results, func(i, j int) bool {
		if *results[i].DistanceKm != *results[j].DistanceKm {
			return *results[i].DistanceKm < *results[j].DistanceKm
		}
		return results[i].ID < results[j].ID
	})
	return results, nil
}

// Zone returns visible profiles whose blurred center matches the given zone.
// The center is re-rounded first, so any point inside the cell selects it.
// Distances are filled in only when a reference point is supplied.
func (uc *NearbyUseCase) Zone(ctx context.Context, callerID string, center domain.ZoneCenter, reference *domain.Coordinates) ([]domain.NearbyProfile, error) {
	if reference != nil {
		if err := reference.Validate(); err != nil {
			return nil, err
		}
	}
	center = domain.Coordinates{Latitude: center.Latitude, Longitude: center.Longitude}.ZoneCenter()

	profiles, err := uc.profileRepo.ListDiscoverable(ctx, callerID)
	if err != nil {
		return nil, err
	}

	results := make([]domain.NearbyProfile, 0)
	for _, p := range profiles {
		loc := p.ExactLocation()
		if loc == nil || !loc.ZoneCenter().Equal(center) {
			continue
		}
		var dist *float64
		if reference != nil {
			d := domain.HaversineDistanceKm(*reference, *loc)
			dist = &d
		}
		results = append(results, p.NearbyProjection(dist))
	}

	sort.Slice(results, func(i, j int) bool {
		di, dj := results[i].DistanceKm, results[j].DistanceKm
		if di != nil && dj != nil && *di != *dj {
			return *di < *dj
		}
		return results[i].ID < results[j].ID
	})
	return results, nil
}

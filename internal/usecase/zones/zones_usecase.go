package zones

import (
	"context"
	"sort"

	"github.com/vanmates/vanmates-backend/internal/domain"
	"github.com/vanmates/vanmates-backend/internal/repository"
)

// Cache is an optional read-through cache for aggregated zone lists. Location
// updates, visibility changes and deletes invalidate it (see usecase/location
// and usecase/profile), so a query issued after a committed update never sees
// a pre-update snapshot. A nil Cache means every query recomputes.
// GetZones also returns the cache key of the lookup; after a miss, the list
// computed from the store must be written back under that exact key, so an
// invalidation between the lookup and the write orphans the entry instead of
// keying a pre-update list under the new generation. An empty key disables
// the write-back.
type Cache interface {
	GetZones(ctx context.Context, callerID string, bounds domain.MapBounds) ([]domain.MapZone, string, bool)
	SetZones(ctx context.Context, key string, zones []domain.MapZone)
}

// ZonesUseCase aggregates visible profiles into 0.1-degree map zones.
type ZonesUseCase struct {
	profileRepo repository.ProfileRepository
	cache       Cache
}

func NewZonesUseCase(profileRepo repository.ProfileRepository, cache Cache) *ZonesUseCase {
	return &ZonesUseCase{profileRepo: profileRepo, cache: cache}
}

// ZonesInBounds groups eligible profiles by blurred center and returns one
// zone per distinct center inside the viewport, with member counts. An empty
// or invalid viewport yields an empty list, not an error. Order is stable:
// ascending by (latitude, longitude).
func (uc *ZonesUseCase) ZonesInBounds(ctx context.Context, callerID string, bounds domain.MapBounds) ([]domain.MapZone, error) {
	if !bounds.IsValid() {
		return []domain.MapZone{}, nil
	}

	var cacheKey string
	if uc.cache != nil {
		zones, key, ok := uc.cache.GetZones(ctx, callerID, bounds)
		if ok {
			return zones, nil
		}
		cacheKey = key
	}

	profiles, err := uc.profileRepo.ListDiscoverable(ctx, callerID)
	if err != nil {
		return nil, err
	}

	counts := make(map[domain.ZoneCenter]int)
	for _, p := range profiles {
		loc := p.ExactLocation()
		if loc == nil {
			continue
		}
		center := loc.ZoneCenter()
		if !bounds.Contains(center) {
			continue
		}
		counts[center]++
	}

	zones := make([]domain.MapZone, 0, len(counts))
	for center, count := range counts {
		zones = append(zones, domain.MapZone{Center: center, Count: count})
	}
	sort.Slice(zones, func(i, j int) bool {
		if zones[i].Center.Latitude != zones[j].Center.Latitude {
			return zones[i].Center.Latitude < zones[j].Center.Latitude
		}
		return zones[i].Center.Longitude < zones[j].Center.Longitude
	})

	if uc.cache != nil && cacheKey != "" {
		uc.cache.SetZones(ctx, cacheKey, zones)
	}
	return zones, nil
}

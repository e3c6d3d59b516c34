package inmem

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vanmates/vanmates-backend/internal/domain"
	"github.com/vanmates/vanmates-backend/internal/repository"
)

// ProfileRepository is a mutex-guarded in-memory store implementing the same
// contract as the postgres repository. It backs unit tests and local runs
// without a database.
type ProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]*domain.Profile
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{profiles: make(map[string]*domain.Profile)}
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)

func clone(p *domain.Profile) *domain.Profile {
	cp := *p
	if p.Skills != nil {
		cp.Skills = append([]domain.Skill(nil), p.Skills...)
	}
	return &cp
}

func (r *ProfileRepository) Create(_ context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[profile.ID]; ok {
		return domain.ErrProfileAlreadyExists
	}
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	r.profiles[profile.ID] = clone(profile)
	return nil
}

func (r *ProfileRepository) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return clone(p), nil
}

func (r *ProfileRepository) ListDiscoverable(_ context.Context, callerID string) ([]*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Profile
	for _, p := range r.profiles {
		if !p.HasLocation() {
			continue
		}
		if !p.IsVisible && p.ID != callerID {
			continue
		}
		out = append(out, clone(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ProfileRepository) Update(_ context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.profiles[profile.ID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	profile.CreatedAt = stored.CreatedAt
	profile.LocationLat = stored.LocationLat
	profile.LocationLon = stored.LocationLon
	profile.LastLocationUpdate = stored.LastLocationUpdate
	profile.UpdatedAt = time.Now().UTC()
	r.profiles[profile.ID] = clone(profile)
	return nil
}

func (r *ProfileRepository) UpdateLocation(_ context.Context, id string, lat, lon float64, city *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return domain.ErrProfileNotFound
	}
	now := time.Now().UTC()
	p.LocationLat = &lat
	p.LocationLon = &lon
	if city != nil {
		p.City = city
	}
	p.LastLocationUpdate = &now
	p.UpdatedAt = now
	return nil
}

func (r *ProfileRepository) UpdateVisibility(_ context.Context, id string, visible bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.IsVisible = visible
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *ProfileRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[id]; !ok {
		return domain.ErrProfileNotFound
	}
	delete(r.profiles, id)
	return nil
}

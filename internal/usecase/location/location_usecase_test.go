package location

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanmates/vanmates-backend/internal/domain"
	"github.com/vanmates/vanmates-backend/internal/repository/inmem"
)

const (
	ownerUUID    = "00000000-0000-0000-0000-00000000aaaa"
	strangerUUID = "00000000-0000-0000-0000-00000000bbbb"
)

var paris = domain.Coordinates{Latitude: 48.8566, Longitude: 2.3522}

type countingInvalidator struct {
	calls int
}

func (i *countingInvalidator) Invalidate(context.Context) {
	i.calls++
}

func newOwnerRepo(t *testing.T) *inmem.ProfileRepository {
	t.Helper()
	repo := inmem.NewProfileRepository()
	p := &domain.Profile{ID: ownerUUID, Username: "owner", IsVisible: true}
	require.NoError(t, repo.Create(context.Background(), p))
	return repo
}

func TestUpdateLocationFirstTime(t *testing.T) {
	repo := newOwnerRepo(t)
	inv := &countingInvalidator{}
	uc := NewLocationUseCase(repo, inv)

	city := "Paris"
	changed, err := uc.UpdateLocation(context.Background(), ownerUUID, ownerUUID, paris, &city)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 1, inv.calls)

	stored, err := repo.GetByID(context.Background(), ownerUUID)
	require.NoError(t, err)
	require.True(t, stored.HasLocation())
	assert.Equal(t, paris, *stored.ExactLocation())
	require.NotNil(t, stored.City)
	assert.Equal(t, "Paris", *stored.City)
	assert.NotNil(t, stored.LastLocationUpdate)
}

func TestUpdateLocationUnchangedCoordinate(t *testing.T) {
	repo := newOwnerRepo(t)
	inv := &countingInvalidator{}
	uc := NewLocationUseCase(repo, inv)

	changed, err := uc.UpdateLocation(context.Background(), ownerUUID, ownerUUID, paris, nil)
	require.NoError(t, err)
	require.True(t, changed)

	// Same coordinate again: acknowledged as unchanged, no invalidation, but
	// the staleness timestamp still refreshes.
	before, err := repo.GetByID(context.Background(), ownerUUID)
	require.NoError(t, err)

	changed, err = uc.UpdateLocation(context.Background(), ownerUUID, ownerUUID, paris, nil)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 1, inv.calls)

	after, err := repo.GetByID(context.Background(), ownerUUID)
	require.NoError(t, err)
	assert.False(t, after.LastLocationUpdate.Before(*before.LastLocationUpdate))
}

func TestUpdateLocationKeepsCityWhenOmitted(t *testing.T) {
	repo := newOwnerRepo(t)
	uc := NewLocationUseCase(repo, nil)

	city := "Lyon"
	_, err := uc.UpdateLocation(context.Background(), ownerUUID, ownerUUID, paris, &city)
	require.NoError(t, err)

	elsewhere := domain.Coordinates{Latitude: 45.75, Longitude: 4.85}
	_, err = uc.UpdateLocation(context.Background(), ownerUUID, ownerUUID, elsewhere, nil)
	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), ownerUUID)
	require.NoError(t, err)
	require.NotNil(t, stored.City)
	assert.Equal(t, "Lyon", *stored.City)
}

func TestUpdateLocationNotOwner(t *testing.T) {
	repo := newOwnerRepo(t)
	uc := NewLocationUseCase(repo, nil)

	_, err := uc.UpdateLocation(context.Background(), strangerUUID, ownerUUID, paris, nil)
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)

	// The denied update must leave the target untouched.
	stored, err := repo.GetByID(context.Background(), ownerUUID)
	require.NoError(t, err)
	assert.False(t, stored.HasLocation())
	assert.Nil(t, stored.LastLocationUpdate)
}

func TestUpdateLocationAnonymousCaller(t *testing.T) {
	repo := newOwnerRepo(t)
	uc := NewLocationUseCase(repo, nil)

	_, err := uc.UpdateLocation(context.Background(), "", "", paris, nil)
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)
}

func TestUpdateLocationInvalidCoordinate(t *testing.T) {
	repo := newOwnerRepo(t)
	inv := &countingInvalidator{}
	uc := NewLocationUseCase(repo, inv)

	bad := domain.Coordinates{Latitude: 95, Longitude: 0}
	_, err := uc.UpdateLocation(context.Background(), ownerUUID, ownerUUID, bad, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidCoordinate)
	assert.Zero(t, inv.calls)

	stored, err := repo.GetByID(context.Background(), ownerUUID)
	require.NoError(t, err)
	assert.False(t, stored.HasLocation())
	assert.Nil(t, stored.LastLocationUpdate)
}

func TestUpdateLocationUnknownProfile(t *testing.T) {
	repo := inmem.NewProfileRepository()
	uc := NewLocationUseCase(repo, nil)

	_, err := uc.UpdateLocation(context.Background(), ownerUUID, ownerUUID, paris, nil)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

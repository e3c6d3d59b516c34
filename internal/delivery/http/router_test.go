package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanmates/vanmates-backend/internal/delivery/http/handler"
	"github.com/vanmates/vanmates-backend/internal/delivery/http/middleware"
	"github.com/vanmates/vanmates-backend/internal/domain"
	"github.com/vanmates/vanmates-backend/internal/repository/inmem"
	"github.com/vanmates/vanmates-backend/internal/usecase/location"
	"github.com/vanmates/vanmates-backend/internal/usecase/nearby"
	"github.com/vanmates/vanmates-backend/internal/usecase/profile"
	"github.com/vanmates/vanmates-backend/internal/usecase/zones"
)

const (
	testSecret   = "0123456789abcdef0123456789abcdef"
	ownerUUID    = "00000000-0000-0000-0000-00000000aaaa"
	neighborUUID = "00000000-0000-0000-0000-00000000bbbb"
)

func newTestRouter(t *testing.T) (*gin.Engine, *inmem.ProfileRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := inmem.NewProfileRepository()
	profileUC := profile.NewProfileUseCase(repo, nil)
	locationUC := location.NewLocationUseCase(repo, nil)
	nearbyUC := nearby.NewNearbyUseCase(repo)
	zonesUC := zones.NewZonesUseCase(repo, nil)

	router := NewRouter(
		handler.NewProfileHandler(profileUC),
		handler.NewLocationHandler(locationUC),
		handler.NewMapHandler(nearbyUC, zonesUC),
		middleware.NewAuthMiddleware(testSecret),
	)
	return router.Setup(), repo
}

func signToken(t *testing.T, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
		"iat": time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doRequest(engine *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func seedNeighbor(t *testing.T, repo *inmem.ProfileRepository, id string, lat, lon float64) {
	t.Helper()
	p := &domain.Profile{ID: id, Username: "neighbor", IsVisible: true}
	require.NoError(t, repo.Create(context.Background(), p))
	require.NoError(t, repo.UpdateLocation(context.Background(), id, lat, lon, nil))
}

func TestAuthRequired(t *testing.T) {
	engine, _ := newTestRouter(t)

	rec := doRequest(engine, http.MethodGet, "/api/v1/profile/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(engine, http.MethodGet, "/api/v1/nearby?lat=48.85&lng=2.35", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsNonUUIDSubject(t *testing.T) {
	engine, _ := newTestRouter(t)

	rec := doRequest(engine, http.MethodGet, "/api/v1/profile/me", signToken(t, "not-a-uuid"), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfileLifecycleOverHTTP(t *testing.T) {
	engine, _ := newTestRouter(t)
	token := signToken(t, ownerUUID)

	// Create
	rec := doRequest(engine, http.MethodPost, "/api/v1/profile", token, gin.H{
		"username":       "wanderlust",
		"van_name":       "Bertha",
		"main_specialty": "mechanic",
		"skills":         []string{"mechanic", "carpentry"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Duplicate create conflicts
	rec = doRequest(engine, http.MethodPost, "/api/v1/profile", token, gin.H{"username": "wanderlust"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Unknown skill is rejected at binding
	rec = doRequest(engine, http.MethodPut, "/api/v1/profile/me", token, gin.H{"skills": []string{"welding"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Location update
	rec = doRequest(engine, http.MethodPut, "/api/v1/profile/me/location", token, gin.H{
		"latitude":  48.8566,
		"longitude": 2.3522,
		"city":      "Paris",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var ack map[string]bool
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ack))
	assert.True(t, ack["changed"])

	// Out-of-range coordinate
	rec = doRequest(engine, http.MethodPut, "/api/v1/profile/me/location", token, gin.H{
		"latitude":  95.0,
		"longitude": 2.3522,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Own profile carries the exact location
	rec = doRequest(engine, http.MethodGet, "/api/v1/profile/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me struct {
		Location *domain.Coordinates `json:"location"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	require.NotNil(t, me.Location)
	assert.InDelta(t, 48.8566, me.Location.Latitude, 1e-9)

	// Delete
	rec = doRequest(engine, http.MethodDelete, "/api/v1/profile/me", token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = doRequest(engine, http.MethodGet, "/api/v1/profile/me", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNearbyOverHTTP(t *testing.T) {
	engine, repo := newTestRouter(t)
	token := signToken(t, ownerUUID)

	seedNeighbor(t, repo, neighborUUID, 48.856, 2.31)

	rec := doRequest(engine, http.MethodGet, "/api/v1/nearby?lat=48.8566&lng=2.3522", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var results []domain.NearbyProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, neighborUUID, results[0].ID)
	require.NotNil(t, results[0].ZoneCenter)
	assert.InDelta(t, 48.9, results[0].ZoneCenter.Latitude, 1e-9)
	assert.NotNil(t, results[0].DistanceKm)

	// Bad radius
	rec = doRequest(engine, http.MethodGet, "/api/v1/nearby?lat=48.85&lng=2.35&radius_km=-1", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Malformed radius is rejected, not defaulted
	rec = doRequest(engine, http.MethodGet, "/api/v1/nearby?lat=48.85&lng=2.35&radius_km=abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Missing reference point
	rec = doRequest(engine, http.MethodGet, "/api/v1/nearby", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestZonesOverHTTP(t *testing.T) {
	engine, repo := newTestRouter(t)
	token := signToken(t, ownerUUID)

	seedNeighbor(t, repo, neighborUUID, 48.856, 2.31)

	rec := doRequest(engine, http.MethodGet, "/api/v1/zones?north=49.5&south=48&east=3&west=1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var mapZones []domain.MapZone
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mapZones))
	require.Len(t, mapZones, 1)
	assert.Equal(t, 1, mapZones[0].Count)

	// Zone expansion
	rec = doRequest(engine, http.MethodGet, "/api/v1/zones/profiles?zone_lat=48.9&zone_lng=2.3", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var members []domain.NearbyProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &members))
	require.Len(t, members, 1)
	assert.Nil(t, members[0].DistanceKm)

	// Degenerate viewport yields an empty list, not an error
	rec = doRequest(engine, http.MethodGet, "/api/v1/zones?north=48&south=49.5&east=3&west=1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mapZones))
	assert.Empty(t, mapZones)

	// Malformed viewport parameter is rejected, unlike an absent one
	rec = doRequest(engine, http.MethodGet, "/api/v1/zones?north=oops&south=48&east=3&west=1", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHiddenProfileIndistinguishableOverHTTP(t *testing.T) {
	engine, repo := newTestRouter(t)
	token := signToken(t, ownerUUID)

	hidden := &domain.Profile{ID: neighborUUID, Username: "ghost", IsVisible: false}
	require.NoError(t, repo.Create(context.Background(), hidden))

	recHidden := doRequest(engine, http.MethodGet, "/api/v1/profile/"+neighborUUID, token, nil)
	recAbsent := doRequest(engine, http.MethodGet, "/api/v1/profile/00000000-0000-0000-0000-00000000cccc", token, nil)
	assert.Equal(t, http.StatusNotFound, recHidden.Code)
	assert.Equal(t, http.StatusNotFound, recAbsent.Code)
	assert.Equal(t, recHidden.Body.String(), recAbsent.Body.String())
}

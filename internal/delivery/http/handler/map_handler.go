package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vanmates/vanmates-backend/internal/domain"
	"github.com/vanmates/vanmates-backend/internal/usecase/nearby"
	"github.com/vanmates/vanmates-backend/internal/usecase/zones"
)

// MapHandler serves the discovery surfaces: radius search, map zones and zone
// expansion.
type MapHandler struct {
	nearbyUseCase *nearby.NearbyUseCase
	zonesUseCase  *zones.ZonesUseCase
}

func NewMapHandler(nearbyUseCase *nearby.NearbyUseCase, zonesUseCase *zones.ZonesUseCase) *MapHandler {
	return &MapHandler{
		nearbyUseCase: nearbyUseCase,
		zonesUseCase:  zonesUseCase,
	}
}

// queryFloat reads an optional float query parameter. Absence is not an
// error; a present but unparseable value is.
func queryFloat(c *gin.Context, name string) (float64, bool, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %s must be a number", domain.ErrInvalidParameter, name)
	}
	return v, true, nil
}

// Nearby handles GET /nearby?lat&lng&radius_km
// @Summary Nearby profiles
// @Description Profiles within radius_km of a point, ascending by distance
// @Tags map
// @Security BearerAuth
// @Produce json
// @Param lat query number true "Reference latitude"
// @Param lng query number true "Reference longitude"
// @Param radius_km query number false "Radius in km (default 50)"
// @Success 200 {array} domain.NearbyProfile
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /nearby [get]
func (h *MapHandler) Nearby(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		return
	}

	lat, latOK, err := queryFloat(c, "lat")
	if err != nil {
		respondError(c, err)
		return
	}
	lng, lngOK, err := queryFloat(c, "lng")
	if err != nil {
		respondError(c, err)
		return
	}
	if !latOK || !lngOK {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "lat and lng are required"})
		return
	}

	radiusKm := nearby.DefaultRadiusKm
	r, rOK, rErr := queryFloat(c, "radius_km")
	if rErr != nil {
		respondError(c, rErr)
		return
	}
	if rOK {
		radiusKm = r
	}

	reference := domain.Coordinates{Latitude: lat, Longitude: lng}
	profiles, err := h.nearbyUseCase.Radius(c.Request.Context(), id, reference, radiusKm)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profiles)
}

// Zones handles GET /zones?north&south&east&west
// @Summary Map zones
// @Description Aggregated zones with per-zone counts inside the viewport
// @Tags map
// @Security BearerAuth
// @Produce json
// @Param north query number true "Viewport north latitude"
// @Param south query number true "Viewport south latitude"
// @Param east query number true "Viewport east longitude"
// @Param west query number true "Viewport west longitude"
// @Success 200 {array} domain.MapZone
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /zones [get]
func (h *MapHandler) Zones(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		return
	}

	north, northOK, northErr := queryFloat(c, "north")
	south, southOK, southErr := queryFloat(c, "south")
	east, eastOK, eastErr := queryFloat(c, "east")
	west, westOK, westErr := queryFloat(c, "west")
	for _, err := range []error{northErr, southErr, eastErr, westErr} {
		if err != nil {
			respondError(c, err)
			return
		}
	}
	if !northOK || !southOK || !eastOK || !westOK {
		// Missing viewport behaves like an empty one.
		c.JSON(http.StatusOK, []domain.MapZone{})
		return
	}

	bounds := domain.MapBounds{North: north, South: south, East: east, West: west}
	mapZones, err := h.zonesUseCase.ZonesInBounds(c.Request.Context(), id, bounds)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapZones)
}

// ZoneProfiles handles GET /zones/profiles?zone_lat&zone_lng&lat&lng
// @Summary Zone members
// @Description Profiles inside one zone; distances only when lat/lng supplied
// @Tags map
// @Security BearerAuth
// @Produce json
// @Param zone_lat query number true "Zone center latitude"
// @Param zone_lng query number true "Zone center longitude"
// @Param lat query number false "Caller latitude for distance ranking"
// @Param lng query number false "Caller longitude for distance ranking"
// @Success 200 {array} domain.NearbyProfile
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /zones/profiles [get]
func (h *MapHandler) ZoneProfiles(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		return
	}

	zoneLat, zoneLatOK, err := queryFloat(c, "zone_lat")
	if err != nil {
		respondError(c, err)
		return
	}
	zoneLng, zoneLngOK, err := queryFloat(c, "zone_lng")
	if err != nil {
		respondError(c, err)
		return
	}
	if !zoneLatOK || !zoneLngOK {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "zone_lat and zone_lng are required"})
		return
	}

	var reference *domain.Coordinates
	lat, latOK, err := queryFloat(c, "lat")
	if err != nil {
		respondError(c, err)
		return
	}
	lng, lngOK, err := queryFloat(c, "lng")
	if err != nil {
		respondError(c, err)
		return
	}
	if latOK && lngOK {
		reference = &domain.Coordinates{Latitude: lat, Longitude: lng}
	}

	center := domain.ZoneCenter{Latitude: zoneLat, Longitude: zoneLng}
	profiles, err := h.nearbyUseCase.Zone(c.Request.Context(), id, center, reference)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profiles)
}

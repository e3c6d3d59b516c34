package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vanmates/vanmates-backend/internal/domain"
	"github.com/vanmates/vanmates-backend/internal/usecase/location"
)

type LocationHandler struct {
	locationUseCase *location.LocationUseCase
}

func NewLocationHandler(locationUseCase *location.LocationUseCase) *LocationHandler {
	return &LocationHandler{
		locationUseCase: locationUseCase,
	}
}

// UpdateLocationRequest carries the caller's new exact position. Range checks
// happen in the pipeline so out-of-range input maps to the coordinate error,
// not a generic binding failure.
type UpdateLocationRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
	City      *string  `json:"city" binding:"omitempty,max=100"`
}

// UpdateLocation handles PUT /profile/me/location
// @Summary Update location
// @Description Commit the caller's exact position; returns whether it changed
// @Tags location
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body UpdateLocationRequest true "New position"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profile/me/location [put]
func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		return
	}

	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	coords := domain.Coordinates{Latitude: *req.Latitude, Longitude: *req.Longitude}
	changed, err := h.locationUseCase.UpdateLocation(c.Request.Context(), id, id, coords, req.City)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"changed": changed})
}

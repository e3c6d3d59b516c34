package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vanmates/vanmates-backend/internal/usecase/profile"
)

type ProfileHandler struct {
	profileUseCase *profile.ProfileUseCase
}

func NewProfileHandler(profileUseCase *profile.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
	}
}

// CreateProfile handles POST /profile
// @Summary Create profile
// @Description Create the caller's profile (onboarding)
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body profile.CreateProfileRequest true "Profile data"
// @Success 201 {object} profile.OwnProfileResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profile [post]
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		return
	}

	var req profile.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	created, err := h.profileUseCase.CreateProfile(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetMyProfile handles GET /profile/me
// @Summary Get my profile
// @Description Get the caller's own profile, including exact location
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} profile.OwnProfileResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profile/me [get]
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		return
	}

	resp, err := h.profileUseCase.GetMyProfile(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateMyProfile handles PUT /profile/me
// @Summary Update my profile
// @Description Partially update the caller's profile
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body profile.UpdateProfileRequest true "Profile update data"
// @Success 200 {object} profile.OwnProfileResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profile/me [put]
func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		return
	}

	var req profile.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	updated, err := h.profileUseCase.UpdateMyProfile(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteMyProfile handles DELETE /profile/me
// @Summary Delete my profile
// @Description Delete the caller's profile; it disappears from all discovery results
// @Tags profile
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profile/me [delete]
func (h *ProfileHandler) DeleteMyProfile(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.profileUseCase.DeleteMyProfile(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// VisibilityRequest toggles the discovery opt-out.
type VisibilityRequest struct {
	IsVisible *bool `json:"is_visible" binding:"required"`
}

// SetVisibility handles PUT /profile/me/visibility
// @Summary Set visibility
// @Description Opt in or out of all discovery surfaces
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body VisibilityRequest true "Visibility flag"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profile/me/visibility [put]
func (h *ProfileHandler) SetVisibility(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		return
	}

	var req VisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.profileUseCase.SetVisibility(c.Request.Context(), id, *req.IsVisible); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_visible": *req.IsVisible})
}

// GetProfileByID handles GET /profile/:profile_id
// @Summary Get profile
// @Description Get another profile; non-owners receive the blurred projection
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Param profile_id path string true "Profile ID"
// @Success 200 {object} domain.NearbyProfile
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profile/{profile_id} [get]
func (h *ProfileHandler) GetProfileByID(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		return
	}

	targetID := c.Param("profile_id")
	resp, err := h.profileUseCase.GetProfileByID(c.Request.Context(), id, targetID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/vanmates/vanmates-backend/internal/domain"
	"github.com/vanmates/vanmates-backend/internal/repository"
)

// Invalidator is notified after mutations that change what discovery queries
// may return (visibility toggles, deletes). A nil Invalidator is a no-op.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
	invalidator Invalidator
}

func NewProfileUseCase(profileRepo repository.ProfileRepository, invalidator Invalidator) *ProfileUseCase {
	return &ProfileUseCase{profileRepo: profileRepo, invalidator: invalidator}
}

// CreateProfileRequest represents profile creation (onboarding) input.
type CreateProfileRequest struct {
	Username      string   `json:"username" binding:"required,min=2,max=30"`
	VanName       *string  `json:"van_name" binding:"omitempty,max=50"`
	VanPhotoURL   *string  `json:"van_photo_url" binding:"omitempty,url"`
	City          *string  `json:"city" binding:"omitempty,max=100"`
	MainSpecialty *string  `json:"main_specialty" binding:"omitempty,skill"`
	Skills        []string `json:"skills" binding:"omitempty,max=6,dive,skill"`
	DaysOnRoad    *int     `json:"days_on_road" binding:"omitempty,min=0"`
	IsVisible     *bool    `json:"is_visible"`
}

// UpdateProfileRequest represents a partial profile update.
type UpdateProfileRequest struct {
	Username      *string   `json:"username" binding:"omitempty,min=2,max=30"`
	VanName       *string   `json:"van_name" binding:"omitempty,max=50"`
	VanPhotoURL   *string   `json:"van_photo_url" binding:"omitempty,url"`
	City          *string   `json:"city" binding:"omitempty,max=100"`
	MainSpecialty *string   `json:"main_specialty" binding:"omitempty,skill"`
	Skills        *[]string `json:"skills" binding:"omitempty,max=6,dive,skill"`
	DaysOnRoad    *int      `json:"days_on_road" binding:"omitempty,min=0"`
}

// OwnProfileResponse is the owner's view of their profile, the only shape that
// carries the exact location.
type OwnProfileResponse struct {
	*domain.Profile
	Location *domain.Coordinates `json:"location"`
}

func ownView(p *domain.Profile) *OwnProfileResponse {
	return &OwnProfileResponse{Profile: p, Location: p.ExactLocation()}
}

func toSkills(raw []string) []domain.Skill {
	skills := make([]domain.Skill, len(raw))
	for i, s := range raw {
		skills[i] = domain.Skill(s)
	}
	return skills
}

// checkSpecialty enforces that main_specialty, when set, is a member of skills.
func checkSpecialty(specialty *domain.Skill, skills []domain.Skill) error {
	if specialty == nil {
		return nil
	}
	for _, s := range skills {
		if s == *specialty {
			return nil
		}
	}
	return fmt.Errorf("%w: main_specialty must be one of skills", domain.ErrInvalidParameter)
}

// CreateProfile creates the caller's profile. Each identity owns exactly one.
func (uc *ProfileUseCase) CreateProfile(ctx context.Context, callerID string, req *CreateProfileRequest) (*OwnProfileResponse, error) {
	profile := &domain.Profile{
		ID:          callerID,
		Username:    req.Username,
		VanName:     req.VanName,
		VanPhotoURL: req.VanPhotoURL,
		City:        req.City,
		Skills:      toSkills(req.Skills),
		IsVisible:   true,
	}
	if req.MainSpecialty != nil {
		s := domain.Skill(*req.MainSpecialty)
		profile.MainSpecialty = &s
	}
	if req.DaysOnRoad != nil {
		profile.DaysOnRoad = *req.DaysOnRoad
	}
	if req.IsVisible != nil {
		profile.IsVisible = *req.IsVisible
	}

	if err := checkSpecialty(profile.MainSpecialty, profile.Skills); err != nil {
		return nil, err
	}

	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		if errors.Is(err, domain.ErrProfileAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return ownView(profile), nil
}

// GetMyProfile returns the caller's own profile with exact location.
func (uc *ProfileUseCase) GetMyProfile(ctx context.Context, callerID string) (*OwnProfileResponse, error) {
	profile, err := uc.profileRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	return ownView(profile), nil
}

// GetProfileByID returns a single profile as seen by the caller. The owner
// gets the full profile; anyone else gets the blurred projection, and a hidden
// profile looks exactly like an absent one. Distance is filled in from the
// caller's own stored location when both sides are located.
func (uc *ProfileUseCase) GetProfileByID(ctx context.Context, callerID, targetID string) (interface{}, error) {
	profile, err := uc.profileRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if profile.ID == callerID {
		return ownView(profile), nil
	}
	if !profile.IsVisible {
		return nil, domain.ErrProfileNotFound
	}

	var distance *float64
	if targetLoc := profile.ExactLocation(); targetLoc != nil {
		caller, err := uc.profileRepo.GetByID(ctx, callerID)
		if err == nil {
			if callerLoc := caller.ExactLocation(); callerLoc != nil {
				d := domain.HaversineDistanceKm(*callerLoc, *targetLoc)
				distance = &d
			}
		}
	}

	view := profile.NearbyProjection(distance)
	return &view, nil
}

// UpdateMyProfile applies a partial update to the caller's profile. Location
// fields are not touchable here; they go through the location pipeline.
func (uc *ProfileUseCase) UpdateMyProfile(ctx context.Context, callerID string, req *UpdateProfileRequest) (*OwnProfileResponse, error) {
	profile, err := uc.profileRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		profile.Username = *req.Username
	}
	if req.VanName != nil {
		profile.VanName = req.VanName
	}
	if req.VanPhotoURL != nil {
		profile.VanPhotoURL = req.VanPhotoURL
	}
	if req.City != nil {
		profile.City = req.City
	}
	if req.MainSpecialty != nil {
		s := domain.Skill(*req.MainSpecialty)
		profile.MainSpecialty = &s
	}
	if req.Skills != nil {
		profile.Skills = toSkills(*req.Skills)
	}
	if req.DaysOnRoad != nil {
		profile.DaysOnRoad = *req.DaysOnRoad
	}

	if err := checkSpecialty(profile.MainSpecialty, profile.Skills); err != nil {
		return nil, err
	}

	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return ownView(profile), nil
}

// SetVisibility toggles the caller's discovery opt-out.
func (uc *ProfileUseCase) SetVisibility(ctx context.Context, callerID string, visible bool) error {
	if err := uc.profileRepo.UpdateVisibility(ctx, callerID, visible); err != nil {
		return err
	}
	if uc.invalidator != nil {
		uc.invalidator.Invalidate(ctx)
	}
	return nil
}

// DeleteMyProfile removes the caller's profile. Derived zone and proximity
// results must not show the profile once the delete commits.
func (uc *ProfileUseCase) DeleteMyProfile(ctx context.Context, callerID string) error {
	if err := uc.profileRepo.Delete(ctx, callerID); err != nil {
		return err
	}
	if uc.invalidator != nil {
		uc.invalidator.Invalidate(ctx)
	}
	return nil
}

package domain

import "time"

// Profile is a van-dweller's profile as stored. Location columns hold the exact
// position and are owner-only: every non-owner read goes through NearbyProjection.
type Profile struct {
	ID                 string     `json:"id" db:"id"`
	Username           string     `json:"username" db:"username"`
	VanName            *string    `json:"van_name" db:"van_name"`
	VanPhotoURL        *string    `json:"van_photo_url" db:"van_photo_url"`
	City               *string    `json:"city" db:"city"`
	MainSpecialty      *Skill     `json:"main_specialty" db:"main_specialty"`
	Skills             []Skill    `json:"skills" db:"skills"`
	DaysOnRoad         int        `json:"days_on_road" db:"days_on_road"`
	ConnectionsCount   int        `json:"connections_count" db:"connections_count"`
	IsVisible          bool       `json:"is_visible" db:"is_visible"`
	LocationLat        *float64   `json:"-" db:"location_lat"`
	LocationLon        *float64   `json:"-" db:"location_lon"`
	LastLocationUpdate *time.Time `json:"last_location_update" db:"last_location_update"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}

// ExactLocation returns the exact position, or nil before the first location update.
func (p *Profile) ExactLocation() *Coordinates {
	if p.LocationLat == nil || p.LocationLon == nil {
		return nil
	}
	return &Coordinates{Latitude: *p.LocationLat, Longitude: *p.LocationLon}
}

// HasLocation reports whether the profile has ever been located.
func (p *Profile) HasLocation() bool {
	return p.LocationLat != nil && p.LocationLon != nil
}

// VisibleTo reports whether the profile may appear in discovery results for the
// given caller. A hidden profile stays visible to its own owner.
func (p *Profile) VisibleTo(callerID string) bool {
	return p.IsVisible || p.ID == callerID
}

// NearbyProfile is the discovery projection of a profile: the exact location is
// replaced by the blurred zone center. distance_km is set only when the query
// supplied a reference point.
type NearbyProfile struct {
	ID                 string      `json:"id"`
	Username           string      `json:"username"`
	VanName            *string     `json:"van_name"`
	VanPhotoURL        *string     `json:"van_photo_url"`
	ZoneCenter         *ZoneCenter `json:"zone_center"`
	City               *string     `json:"city"`
	MainSpecialty      *Skill      `json:"main_specialty"`
	Skills             []Skill     `json:"skills"`
	DaysOnRoad         int         `json:"days_on_road"`
	DistanceKm         *float64    `json:"distance_km"`
	LastLocationUpdate *time.Time  `json:"last_location_update"`
}

// NearbyProjection builds the non-owner view of the profile. The distance, when
// given, must have been computed from exact locations, never from zone centers.
func (p *Profile) NearbyProjection(distanceKm *float64) NearbyProfile {
	var zone *ZoneCenter
	if loc := p.ExactLocation(); loc != nil {
		z := loc.ZoneCenter()
		zone = &z
	}
	return NearbyProfile{
		ID:                 p.ID,
		Username:           p.Username,
		VanName:            p.VanName,
		VanPhotoURL:        p.VanPhotoURL,
		ZoneCenter:         zone,
		City:               p.City,
		MainSpecialty:      p.MainSpecialty,
		Skills:             p.Skills,
		DaysOnRoad:         p.DaysOnRoad,
		DistanceKm:         distanceKm,
		LastLocationUpdate: p.LastLocationUpdate,
	}
}

// MapZone is one aggregated cell on the map. Members stays nil until the zone
// is expanded. Zones are recomputed per query and never persisted.
type MapZone struct {
	Center  ZoneCenter      `json:"center"`
	Count   int             `json:"count"`
	Members []NearbyProfile `json:"members,omitempty"`
}

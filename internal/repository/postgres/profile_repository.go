package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/vanmates/vanmates-backend/internal/domain"
	"github.com/vanmates/vanmates-backend/internal/repository"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

// storeErr normalizes driver failures into the domain taxonomy. sql.ErrNoRows
// becomes ErrProfileNotFound; anything else is a transport failure.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrProfileNotFound
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}

func skillStrings(skills []domain.Skill) []string {
	out := make([]string, len(skills))
	for i, s := range skills {
		out[i] = string(s)
	}
	return out
}

func toSkills(raw []string) []domain.Skill {
	out := make([]domain.Skill, len(raw))
	for i, s := range raw {
		out[i] = domain.Skill(s)
	}
	return out
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (
			id, username, van_name, van_photo_url, city,
			main_specialty, skills, days_on_road, is_visible
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING connections_count, created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.ID, profile.Username, profile.VanName, profile.VanPhotoURL, profile.City,
		profile.MainSpecialty, pq.Array(skillStrings(profile.Skills)),
		profile.DaysOnRoad, profile.IsVisible,
	).Scan(&profile.ConnectionsCount, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return domain.ErrProfileAlreadyExists
		}
		return storeErr(err)
	}
	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	var profile domain.Profile
	var skills pq.StringArray
	query := `
		SELECT id, username, van_name, van_photo_url, city,
		       main_specialty, skills, days_on_road, connections_count, is_visible,
		       location_lat, location_lon, last_location_update,
		       created_at, updated_at
		FROM profiles WHERE id = $1
	`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&profile.ID, &profile.Username, &profile.VanName, &profile.VanPhotoURL, &profile.City,
		&profile.MainSpecialty, &skills, &profile.DaysOnRoad, &profile.ConnectionsCount, &profile.IsVisible,
		&profile.LocationLat, &profile.LocationLon, &profile.LastLocationUpdate,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		return nil, storeErr(err)
	}
	profile.Skills = toSkills(skills)
	return &profile, nil
}

func (r *profileRepository) ListDiscoverable(ctx context.Context, callerID string) ([]*domain.Profile, error) {
	query := `
		SELECT id, username, van_name, van_photo_url, city,
		       main_specialty, skills, days_on_road, connections_count, is_visible,
		       location_lat, location_lon, last_location_update,
		       created_at, updated_at
		FROM profiles
		WHERE location_lat IS NOT NULL AND location_lon IS NOT NULL
		  AND (is_visible = TRUE OR id = $1)
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, callerID)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		var profile domain.Profile
		var skills pq.StringArray
		err := rows.Scan(
			&profile.ID, &profile.Username, &profile.VanName, &profile.VanPhotoURL, &profile.City,
			&profile.MainSpecialty, &skills, &profile.DaysOnRoad, &profile.ConnectionsCount, &profile.IsVisible,
			&profile.LocationLat, &profile.LocationLon, &profile.LastLocationUpdate,
			&profile.CreatedAt, &profile.UpdatedAt,
		)
		if err != nil {
			return nil, storeErr(err)
		}
		profile.Skills = toSkills(skills)
		profiles = append(profiles, &profile)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}
	return profiles, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET username = $1, van_name = $2, van_photo_url = $3, city = $4,
		    main_specialty = $5, skills = $6, days_on_road = $7, is_visible = $8,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $9
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.Username, profile.VanName, profile.VanPhotoURL, profile.City,
		profile.MainSpecialty, pq.Array(skillStrings(profile.Skills)),
		profile.DaysOnRoad, profile.IsVisible,
		profile.ID,
	).Scan(&profile.UpdatedAt)
	return storeErr(err)
}

func (r *profileRepository) UpdateLocation(ctx context.Context, id string, lat, lon float64, city *string) error {
	query := `
		UPDATE profiles
		SET location_lat = $1, location_lon = $2,
		    city = COALESCE($3, city),
		    last_location_update = CURRENT_TIMESTAMP,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query, lat, lon, city, id)
	if err != nil {
		return storeErr(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return storeErr(err)
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) UpdateVisibility(ctx context.Context, id string, visible bool) error {
	query := `
		UPDATE profiles
		SET is_visible = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`
	result, err := r.db.ExecContext(ctx, query, visible, id)
	if err != nil {
		return storeErr(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return storeErr(err)
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM profiles WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return storeErr(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return storeErr(err)
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

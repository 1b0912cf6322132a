package db

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskbuddy/internal/models"
)

// ProfileService reads and upserts account profiles.
type ProfileService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewProfileService creates a ProfileService over the injected handle.
func NewProfileService(gdb *gorm.DB) *ProfileService {
	return &ProfileService{db: gdb, now: time.Now}
}

// GetProfile fetches the profile for a user ID. A missing profile
// returns nil, not an error.
func (s *ProfileService) GetProfile(userID string) (*models.Profile, error) {
	if userID == "" {
		return nil, nil
	}
	var profile models.Profile
	err := s.db.Where("id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpsertProfile writes the full profile row, creating it if needed.
func (s *ProfileService) UpsertProfile(profile models.Profile) error {
	if profile.ID == "" {
		return errors.New("profile id is required")
	}
	profile.UpdatedAt = s.now()
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&profile).Error
}

// EnsureProfile creates a minimal profile row on first sign-in, keeping
// an existing row untouched.
func (s *ProfileService) EnsureProfile(userID, fullName string) error {
	existing, err := s.GetProfile(userID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	return s.UpsertProfile(models.Profile{ID: userID, FullName: fullName})
}

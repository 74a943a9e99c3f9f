package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/dishdash/backend/internal/models"
	"github.com/pageza/dishdash/backend/internal/types"
)

// PreferencesService manages the one-to-one preferences record of a user.
type PreferencesService struct {
	store
}

func NewPreferencesService(db *gorm.DB, queryTimeout time.Duration) *PreferencesService {
	return &PreferencesService{store: newStore(db, queryTimeout)}
}

// Get returns nil without error when the user has no preferences yet.
func (s *PreferencesService) Get(ctx context.Context, userID uint) (*models.UserPreferences, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	var prefs models.UserPreferences
	if err := db.Where("user_id = ?", userID).First(&prefs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}
	return &prefs, nil
}

// Create inserts the record. ErrPreferencesExist is returned if one exists.
func (s *PreferencesService) Create(ctx context.Context, userID uint, update types.PreferencesUpdate) (*models.UserPreferences, error) {
	existing, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPreferencesExist
	}

	prefs := &models.UserPreferences{UserID: userID}
	update.ApplyTo(prefs)

	db, cancel := s.conn(ctx)
	defer cancel()

	if err := db.Omit(clause.Associations).Create(prefs).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPreferencesExist
		}
		return nil, fmt.Errorf("failed to create preferences: %w", err)
	}
	return prefs, nil
}

// Update applies only the fields present in update. ErrPreferencesNotFound
// is returned when the user has no record.
func (s *PreferencesService) Update(ctx context.Context, userID uint, update types.PreferencesUpdate) (*models.UserPreferences, error) {
	prefs, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if prefs == nil {
		return nil, ErrPreferencesNotFound
	}

	update.ApplyTo(prefs)

	db, cancel := s.conn(ctx)
	defer cancel()

	if err := db.Omit(clause.Associations).Save(prefs).Error; err != nil {
		return nil, fmt.Errorf("failed to update preferences: %w", err)
	}
	return prefs, nil
}

// Upsert updates the record or creates it on first write. A create that
// loses a race against a concurrent create falls back to updating.
func (s *PreferencesService) Upsert(ctx context.Context, userID uint, update types.PreferencesUpdate) (*models.UserPreferences, error) {
	prefs, err := s.Update(ctx, userID, update)
	if !errors.Is(err, ErrPreferencesNotFound) {
		return prefs, err
	}

	prefs, err = s.Create(ctx, userID, update)
	if errors.Is(err, ErrPreferencesExist) {
		return s.Update(ctx, userID, update)
	}
	return prefs, err
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/pageza/dishdash/backend/internal/models"
)

// UserService maps usernames to stable user identities.
type UserService struct {
	store
}

func NewUserService(db *gorm.DB, queryTimeout time.Duration) *UserService {
	return &UserService{store: newStore(db, queryTimeout)}
}

// GetOrCreate returns the user with the exact username, creating it if needed.
// When a concurrent request wins the insert, its row is returned.
func (s *UserService) GetOrCreate(ctx context.Context, username string) (*models.User, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	db, cancel := s.conn(ctx)
	defer cancel()

	user = &models.User{Username: username}
	if err := db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, lookupErr := s.GetByUsername(ctx, username)
			if lookupErr != nil {
				return nil, lookupErr
			}
			if existing != nil {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetByUsername returns nil without error when no user matches.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// Delete removes the user together with its saved recipes and preferences
// in one transaction.
func (s *UserService) Delete(ctx context.Context, userID uint) error {
	db, cancel := s.conn(ctx)
	defer cancel()

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.SavedRecipe{}).Error; err != nil {
			return fmt.Errorf("failed to delete saved recipes: %w", err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserPreferences{}).Error; err != nil {
			return fmt.Errorf("failed to delete preferences: %w", err)
		}

		result := tx.Delete(&models.User{}, userID)
		if result.Error != nil {
			return fmt.Errorf("failed to delete user: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
}

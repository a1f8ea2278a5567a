package repositories

import (
	"context"
	"errors"
	"fmt"

	"portal/internal/models"

	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("username %q: %w", user.Username, ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// CreateIfAbsent inserts user when no user with the same username exists.
func (r *GORMUserRepository) CreateIfAbsent(ctx context.Context, user *models.User) (bool, error) {
	created := false
	err := atomically(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.User{}).Where("username = ?", user.Username).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost a race against a concurrent insert of the same username.
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to insert user %q: %w", user.Username, err)
	}
	return created, nil
}

// CreateIfNoUsers inserts user when the user table holds no rows at all.
func (r *GORMUserRepository) CreateIfNoUsers(ctx context.Context, user *models.User) (bool, error) {
	created := false
	err := atomically(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.User{}).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to insert user %q: %w", user.Username, err)
	}
	return created, nil
}

// GetByUsername retrieves a user by their username from the database.
func (r *GORMUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with username %s: %w", username, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by username %s: %w", username, err)
	}
	return &user, nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	return &user, nil
}

// Update saves username and password hash of an existing user. The collision
// check and the write share one transaction; the unique index backs it up.
func (r *GORMUserRepository) Update(ctx context.Context, user *models.User) error {
	err := atomically(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.User{}).
			Where("username = ? AND id <> ?", user.Username, user.ID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrDuplicate
		}
		res := tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]any{
			"username":        user.Username,
			"hashed_password": user.PasswordHash,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrDuplicate), errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("username %q: %w", user.Username, ErrDuplicate)
	case errors.Is(err, ErrNotFound):
		return fmt.Errorf("user with ID %d: %w", user.ID, ErrNotFound)
	default:
		return fmt.Errorf("failed to update user %d: %w", user.ID, err)
	}
}

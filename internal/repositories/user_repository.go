package repositories

import (
	"context"

	"portal/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	// CreateIfAbsent inserts user unless its username is taken. The lookup and
	// the insert run as one atomic unit.
	CreateIfAbsent(ctx context.Context, user *models.User) (bool, error)
	// CreateIfNoUsers inserts user only into an empty user table, atomically.
	CreateIfNoUsers(ctx context.Context, user *models.User) (bool, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	// Update persists user; ErrDuplicate if its username belongs to another user.
	Update(ctx context.Context, user *models.User) error
}

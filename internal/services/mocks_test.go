package services_test

import (
	"context"
	"fmt"
	"testing"

	"portal/internal/database"
	"portal/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) CreateIfAbsent(ctx context.Context, user *models.User) (bool, error) {
	args := m.Called(ctx, user)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) CreateIfNoUsers(ctx context.Context, user *models.User) (bool, error) {
	args := m.Called(ctx, user)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockTileRepository is a mock implementation of repositories.TileRepository
type MockTileRepository struct {
	mock.Mock
}

func (m *MockTileRepository) GetAll(ctx context.Context) ([]models.Tile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tile), args.Error(1)
}

func (m *MockTileRepository) GetByID(ctx context.Context, id uint) (*models.Tile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tile), args.Error(1)
}

func (m *MockTileRepository) SeedIfEmpty(ctx context.Context, seeds []models.Tile) (bool, error) {
	args := m.Called(ctx, seeds)
	return args.Bool(0), args.Error(1)
}

func (m *MockTileRepository) Create(ctx context.Context, tile *models.Tile) error {
	args := m.Called(ctx, tile)
	return args.Error(0)
}

func (m *MockTileRepository) CreateIfTitleAbsent(ctx context.Context, tile *models.Tile) (bool, error) {
	args := m.Called(ctx, tile)
	return args.Bool(0), args.Error(1)
}

func (m *MockTileRepository) Update(ctx context.Context, id uint, patch models.TilePatch) (*models.Tile, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tile), args.Error(1)
}

func (m *MockTileRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishTileEvent(event models.TileEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

// newTestDB opens a private in-memory SQLite database with the schema applied.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func strPtr(s string) *string { return &s }

package store

import (
	"context"

	"github.com/gardenhq/gardenapi/internal/core/domain"
)

// =============================================================================
// Store Interface
// =============================================================================

// Store defines the persistence interface for Garden API entities.
// List orderings are fixed per entity: users and plants ascend by id,
// gardens descend by id (newest first), placements ascend by id within
// their garden, comments descend by date within their garden.
type Store interface {
	// User operations
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id int) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	DeleteUser(ctx context.Context, id int) error
	ListUsers(ctx context.Context) ([]domain.User, error)

	// Garden operations
	CreateGarden(ctx context.Context, garden *domain.Garden) error
	GetGarden(ctx context.Context, id int) (*domain.Garden, error)
	UpdateGarden(ctx context.Context, garden *domain.Garden) error
	DeleteGarden(ctx context.Context, id int) error
	ListGardens(ctx context.Context) ([]domain.Garden, error)
	ListGardensByUser(ctx context.Context, userID int) ([]domain.Garden, error)

	// Plant operations
	CreatePlant(ctx context.Context, plant *domain.Plant) error
	GetPlant(ctx context.Context, id int) (*domain.Plant, error)
	UpdatePlant(ctx context.Context, plant *domain.Plant) error
	DeletePlant(ctx context.Context, id int) error
	ListPlants(ctx context.Context) ([]domain.Plant, error)

	// GardenPlant operations. Lookups are scoped by garden id: a
	// placement id that exists under a different garden is not found.
	CreateGardenPlant(ctx context.Context, gp *domain.GardenPlant) error
	GetGardenPlant(ctx context.Context, gardenID, id int) (*domain.GardenPlant, error)
	UpdateGardenPlant(ctx context.Context, gp *domain.GardenPlant) error
	DeleteGardenPlant(ctx context.Context, gardenID, id int) error
	ListGardenPlants(ctx context.Context, gardenID int) ([]domain.GardenPlant, error)
	ListGardenPlantsByPlant(ctx context.Context, plantID int) ([]domain.GardenPlant, error)
	CountGardenPlantsAtPosition(ctx context.Context, gardenID int, pos domain.Position) (int, error)

	// Comment operations, scoped by garden id like placements.
	CreateComment(ctx context.Context, comment *domain.Comment) error
	GetComment(ctx context.Context, gardenID, id int) (*domain.Comment, error)
	UpdateComment(ctx context.Context, comment *domain.Comment) error
	DeleteComment(ctx context.Context, gardenID, id int) error
	ListComments(ctx context.Context, gardenID int) ([]domain.Comment, error)
	ListCommentsByUser(ctx context.Context, userID int) ([]domain.Comment, error)

	// Transaction support
	WithTx(ctx context.Context, fn func(Store) error) error

	// Lifecycle
	Close() error
}

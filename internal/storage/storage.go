package storage

import (
	"context"
	"errors"

	"github.com/oceandash/ocean-api/internal/domain/models"
)

var (
	// ErrUserExists signals a registration against an already-taken
	// username. It is driven by the unique index on users, not by a
	// separate existence check.
	ErrUserExists = errors.New("user already exists")
	// ErrNotFound is returned both when a row does not exist and when
	// it exists but belongs to another user.
	ErrNotFound = errors.New("not found")
)

// Storage is the persistence surface the API server depends on. Every
// resource operation takes the owning user id and must filter by it.
type Storage interface {
	SaveUser(ctx context.Context, usuario string, passHash []byte) (int, error)
	GetUserByUsername(ctx context.Context, usuario string) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)

	SaveTask(ctx context.Context, task *models.Task) (int, error)
	ListTasks(ctx context.Context, userID int) ([]models.Task, error)
	GetTask(ctx context.Context, id, userID int) (*models.Task, error)
	UpdateTask(ctx context.Context, task *models.Task) error
	DeleteTask(ctx context.Context, id, userID int) error

	SaveGoal(ctx context.Context, goal *models.Goal) (int, error)
	ListGoals(ctx context.Context, userID int) ([]models.Goal, error)
	GetGoal(ctx context.Context, id, userID int) (*models.Goal, error)
	UpdateGoal(ctx context.Context, goal *models.Goal) error
	DeleteGoal(ctx context.Context, id, userID int) error

	SaveFinance(ctx context.Context, entry *models.FinanceEntry) (int, error)
	ListFinances(ctx context.Context, userID int) ([]models.FinanceEntry, error)
	GetFinance(ctx context.Context, id, userID int) (*models.FinanceEntry, error)
	UpdateFinance(ctx context.Context, entry *models.FinanceEntry) error
	DeleteFinance(ctx context.Context, id, userID int) error
}

package port

import (
	"context"

	"taskboard/internal/core/domain"
)

// Lookups return nil (or false) without error when the record does not
// exist. Errors are reserved for storage failures.

type ListRepository interface {
	Create(ctx context.Context, list domain.List) (*domain.List, error)
	FindByID(ctx context.Context, id string) (*domain.List, error)
	FindByUserID(ctx context.Context, userID string) ([]domain.List, error)
	FindAll(ctx context.Context) ([]domain.List, error)
	Update(ctx context.Context, id string, patch domain.ListPatch) (*domain.List, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
}

type TodoRepository interface {
	Create(ctx context.Context, todo domain.Todo) (*domain.Todo, error)
	FindByID(ctx context.Context, id string) (*domain.Todo, error)
	FindByListID(ctx context.Context, listID string) ([]domain.Todo, error)
	FindByUserID(ctx context.Context, userID string) ([]domain.Todo, error)
	FindAll(ctx context.Context) ([]domain.Todo, error)
	Update(ctx context.Context, id string, patch domain.TodoPatch) (*domain.Todo, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
}

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
}

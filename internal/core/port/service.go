package port

import (
	"context"

	"taskboard/internal/core/domain"
)

type ListService interface {
	Create(ctx context.Context, in domain.CreateListInput) (*domain.List, error)
	Get(ctx context.Context, id string) (*domain.List, error)
	ListByUser(ctx context.Context, userID string) ([]domain.List, error)
	ListAll(ctx context.Context) ([]domain.List, error)
	Update(ctx context.Context, id string, in domain.UpdateListInput) (*domain.List, error)
	Delete(ctx context.Context, id string, userID string) error
	Reorder(ctx context.Context, id string, priority int, userID string) ([]domain.List, error)
	EnsureDefaults(ctx context.Context, userID string) ([]domain.List, error)
}

type TodoService interface {
	Create(ctx context.Context, in domain.CreateTodoInput) (*domain.Todo, error)
	Get(ctx context.Context, id string) (*domain.Todo, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Todo, error)
	ListByList(ctx context.Context, listID string) ([]domain.Todo, error)
	ListAll(ctx context.Context) ([]domain.Todo, error)
	Update(ctx context.Context, id string, in domain.UpdateTodoInput) (*domain.Todo, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, id string, priority int, userID string) ([]domain.Todo, error)
	Move(ctx context.Context, id string, listID string) (*domain.Todo, error)
}

type UserService interface {
	Create(ctx context.Context, in domain.CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id string) error
	Login(ctx context.Context, username string, password string) (*domain.User, error)
}

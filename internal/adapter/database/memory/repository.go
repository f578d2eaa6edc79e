package memory

import (
	"context"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/port"
)

type ListRepository struct {
	store *Store[domain.List]
}

func NewListRepository(store *Store[domain.List]) port.ListRepository {
	if store == nil {
		store = NewStore[domain.List](nil, nil)
	}

	return &ListRepository{store: store}
}

func (r *ListRepository) Create(ctx context.Context, list domain.List) (*domain.List, error) {
	if err := r.store.Insert(list); err != nil {
		return nil, err
	}

	return &list, nil
}

func (r *ListRepository) FindByID(ctx context.Context, id string) (*domain.List, error) {
	list, ok := r.store.Get(id)

	if !ok {
		return nil, nil
	}

	return &list, nil
}

func (r *ListRepository) FindByUserID(ctx context.Context, userID string) ([]domain.List, error) {
	return r.store.Filter(func(l domain.List) bool { return l.UserID == userID }), nil
}

func (r *ListRepository) FindAll(ctx context.Context) ([]domain.List, error) {
	return r.store.Filter(nil), nil
}

func (r *ListRepository) Update(ctx context.Context, id string, patch domain.ListPatch) (*domain.List, error) {
	list, ok, err := r.store.Mutate(id, func(l *domain.List) { l.Apply(patch) })

	if err != nil || !ok {
		return nil, err
	}

	return &list, nil
}

func (r *ListRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	return r.store.Remove(id)
}

type TodoRepository struct {
	store *Store[domain.Todo]
}

func NewTodoRepository(store *Store[domain.Todo]) port.TodoRepository {
	if store == nil {
		store = NewStore[domain.Todo](nil, nil)
	}

	return &TodoRepository{store: store}
}

func (r *TodoRepository) Create(ctx context.Context, todo domain.Todo) (*domain.Todo, error) {
	if err := r.store.Insert(todo); err != nil {
		return nil, err
	}

	return &todo, nil
}

func (r *TodoRepository) FindByID(ctx context.Context, id string) (*domain.Todo, error) {
	todo, ok := r.store.Get(id)

	if !ok {
		return nil, nil
	}

	return &todo, nil
}

func (r *TodoRepository) FindByListID(ctx context.Context, listID string) ([]domain.Todo, error) {
	return r.store.Filter(func(t domain.Todo) bool { return t.ListID == listID }), nil
}

func (r *TodoRepository) FindByUserID(ctx context.Context, userID string) ([]domain.Todo, error) {
	return r.store.Filter(func(t domain.Todo) bool { return t.UserID == userID }), nil
}

func (r *TodoRepository) FindAll(ctx context.Context) ([]domain.Todo, error) {
	return r.store.Filter(nil), nil
}

func (r *TodoRepository) Update(ctx context.Context, id string, patch domain.TodoPatch) (*domain.Todo, error) {
	todo, ok, err := r.store.Mutate(id, func(t *domain.Todo) { t.Apply(patch) })

	if err != nil || !ok {
		return nil, err
	}

	return &todo, nil
}

func (r *TodoRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	return r.store.Remove(id)
}

type UserRepository struct {
	store *Store[domain.User]
}

func NewUserRepository(store *Store[domain.User]) port.UserRepository {
	if store == nil {
		store = NewStore[domain.User](nil, nil)
	}

	return &UserRepository{store: store}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (*domain.User, error) {
	if err := r.store.Insert(user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok := r.store.Get(id)

	if !ok {
		return nil, nil
	}

	return &user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, ok := r.store.Find(func(u domain.User) bool { return u.Username == username })

	if !ok {
		return nil, nil
	}

	return &user, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	return r.store.Filter(nil), nil
}

func (r *UserRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	return r.store.Remove(id)
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/port"
	"taskboard/internal/core/telemetry"
)

type TodoService struct {
	todos  port.TodoRepository
	lists  port.ListRepository
	locker *ScopeLocker
	probe  port.Telemetry
	logger *zap.Logger
	now    func() time.Time
}

func NewTodoService(todos port.TodoRepository, lists port.ListRepository, locker *ScopeLocker, probe port.Telemetry, logger *zap.Logger) *TodoService {
	if locker == nil {
		locker = NewScopeLocker()
	}

	if probe == nil {
		probe = telemetry.NewNoOpProbe()
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &TodoService{
		todos:  todos,
		lists:  lists,
		locker: locker,
		probe:  probe,
		logger: logger,
		now:    time.Now,
	}
}

// Create appends a todo to the end of its list. The list must exist.
func (s *TodoService) Create(ctx context.Context, in domain.CreateTodoInput) (todo *domain.Todo, err error) {
	ctx, end := startOperation(ctx, s.probe, "todo", "Create", in.UserID, attribute.String("list.id", in.ListID))
	defer func() { end(err) }()

	unlock := s.locker.Lock(todoScope(in.ListID))
	defer unlock()

	if err := s.requireList(ctx, in.ListID); err != nil {
		return nil, err
	}

	existing, err := s.todos.FindByListID(ctx, in.ListID)

	if err != nil {
		return nil, fmt.Errorf("loading todos of list %s: %w", in.ListID, err)
	}

	now := s.now()

	todo, err = s.todos.Create(ctx, domain.Todo{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		ListID:      in.ListID,
		UserID:      in.UserID,
		Priority:    nextPriority(existing),
		CreatedAt:   now,
		UpdatedAt:   now,
	})

	if err != nil {
		return nil, fmt.Errorf("creating todo: %w", err)
	}

	s.probe.RecordBusinessEvent(ctx, "created", "todo", todo.ID, todo.UserID, map[string]interface{}{
		"list_id":  todo.ListID,
		"priority": todo.Priority,
	})

	return todo, nil
}

func (s *TodoService) Get(ctx context.Context, id string) (*domain.Todo, error) {
	todo, err := s.todos.FindByID(ctx, id)

	if err != nil {
		return nil, err
	}

	if todo == nil {
		return nil, domain.NewNotFoundError("Todo", id)
	}

	return todo, nil
}

func (s *TodoService) ListByUser(ctx context.Context, userID string) ([]domain.Todo, error) {
	return s.todos.FindByUserID(ctx, userID)
}

// ListByList returns the todos of a list in display order.
func (s *TodoService) ListByList(ctx context.Context, listID string) ([]domain.Todo, error) {
	todos, err := s.todos.FindByListID(ctx, listID)

	if err != nil {
		return nil, err
	}

	return sortByPriority(todos), nil
}

func (s *TodoService) ListAll(ctx context.Context) ([]domain.Todo, error) {
	return s.todos.FindAll(ctx)
}

// Update changes the display fields of a todo. A different ListID moves the
// todo to the end of that list.
func (s *TodoService) Update(ctx context.Context, id string, in domain.UpdateTodoInput) (*domain.Todo, error) {
	todo, err := s.Get(ctx, id)

	if err != nil {
		return nil, err
	}

	if in.ListID != nil && *in.ListID != todo.ListID {
		if todo, err = s.Move(ctx, id, *in.ListID); err != nil {
			return nil, err
		}
	}

	if in.Title == nil && in.Description == nil {
		return todo, nil
	}

	updated, err := s.todos.Update(ctx, id, domain.TodoPatch{
		Title:       in.Title,
		Description: in.Description,
		UpdatedAt:   s.now(),
	})

	if err != nil {
		return nil, fmt.Errorf("updating todo %s: %w", id, err)
	}

	if updated == nil {
		return nil, domain.NewNotFoundError("Todo", id)
	}

	return updated, nil
}

// Delete removes a todo. Its former siblings keep their priorities.
func (s *TodoService) Delete(ctx context.Context, id string) error {
	_, unlock, err := s.lockTodo(ctx, id)

	if err != nil {
		return err
	}

	defer unlock()

	deleted, err := s.todos.DeleteByID(ctx, id)

	if err != nil {
		return fmt.Errorf("deleting todo %s: %w", id, err)
	}

	if !deleted {
		return domain.NewNotFoundError("Todo", id)
	}

	return nil
}

// Reorder moves the todo to newPriority within its list and shifts the todos
// in between by one. A todo owned by someone else is reported as not found.
func (s *TodoService) Reorder(ctx context.Context, id string, newPriority int, userID string) (todos []domain.Todo, err error) {
	ctx, end := startOperation(ctx, s.probe, "todo", "Reorder", userID,
		attribute.String("todo.id", id),
		attribute.Int("todo.priority", newPriority),
	)
	defer func() { end(err) }()

	todo, unlock, err := s.lockTodo(ctx, id)

	if err != nil {
		return nil, err
	}

	defer unlock()

	if !todo.BelongsToUser(userID) {
		return nil, domain.NewNotFoundError("Todo", id)
	}

	siblings, err := s.todos.FindByListID(ctx, todo.ListID)

	if err != nil {
		return nil, fmt.Errorf("loading todos of list %s: %w", todo.ListID, err)
	}

	oldPriority := todo.Priority

	if oldPriority == newPriority {
		return sortByPriority(siblings), nil
	}

	now := s.now()

	if _, err := s.todos.Update(ctx, id, domain.TodoPatch{Priority: &newPriority, UpdatedAt: now}); err != nil {
		return nil, fmt.Errorf("moving todo %s: %w", id, err)
	}

	shifts := shiftSiblings(siblings, id, oldPriority, newPriority)

	for _, shift := range shifts {
		if _, err := s.todos.Update(ctx, shift.ID, domain.TodoPatch{Priority: &shift.Priority, UpdatedAt: now}); err != nil {
			s.logger.Error("Todo reorder interrupted",
				zap.String("todo_id", id),
				zap.String("sibling_id", shift.ID),
				zap.Error(err))

			return nil, fmt.Errorf("shifting todo %s: %w", shift.ID, err)
		}
	}

	s.logger.Debug("Todo reordered",
		zap.String("todo_id", id),
		zap.String("list_id", todo.ListID),
		zap.Int("from", oldPriority),
		zap.Int("to", newPriority),
		zap.Int("shifted", len(shifts)))

	todos, err = s.todos.FindByListID(ctx, todo.ListID)

	if err != nil {
		return nil, err
	}

	return sortByPriority(todos), nil
}

// Move places the todo last in listID. Moving to the current list returns the
// todo untouched. The source list keeps its gap.
func (s *TodoService) Move(ctx context.Context, id string, listID string) (todo *domain.Todo, err error) {
	ctx, end := startOperation(ctx, s.probe, "todo", "Move", "",
		attribute.String("todo.id", id),
		attribute.String("list.id", listID),
	)
	defer func() { end(err) }()

	for {
		current, err := s.Get(ctx, id)

		if err != nil {
			return nil, err
		}

		if current.ListID == listID {
			return current, nil
		}

		unlock := s.locker.Lock(todoScope(current.ListID), todoScope(listID))

		moved, retry, err := s.moveLocked(ctx, id, current.ListID, listID)
		unlock()

		if retry {
			continue
		}

		return moved, err
	}
}

// moveLocked runs with both scopes held. It asks for a retry when the todo
// left sourceID before the locks were taken.
func (s *TodoService) moveLocked(ctx context.Context, id, sourceID, targetID string) (*domain.Todo, bool, error) {
	todo, err := s.Get(ctx, id)

	if err != nil {
		return nil, false, err
	}

	if todo.ListID != sourceID {
		return nil, true, nil
	}

	if err := s.requireList(ctx, targetID); err != nil {
		return nil, false, err
	}

	targets, err := s.todos.FindByListID(ctx, targetID)

	if err != nil {
		return nil, false, fmt.Errorf("loading todos of list %s: %w", targetID, err)
	}

	priority := nextPriority(targets)

	moved, err := s.todos.Update(ctx, id, domain.TodoPatch{
		ListID:    &targetID,
		Priority:  &priority,
		UpdatedAt: s.now(),
	})

	if err != nil {
		return nil, false, fmt.Errorf("moving todo %s: %w", id, err)
	}

	if moved == nil {
		return nil, false, domain.NewNotFoundError("Todo", id)
	}

	s.probe.RecordBusinessEvent(ctx, "moved", "todo", id, moved.UserID, map[string]interface{}{
		"from_list": sourceID,
		"to_list":   targetID,
		"priority":  priority,
	})

	return moved, false, nil
}

// lockTodo locks the scope of the todo's current list. The todo is read
// again under the lock until its list is stable.
func (s *TodoService) lockTodo(ctx context.Context, id string) (*domain.Todo, func(), error) {
	for {
		todo, err := s.Get(ctx, id)

		if err != nil {
			return nil, nil, err
		}

		unlock := s.locker.Lock(todoScope(todo.ListID))

		current, err := s.todos.FindByID(ctx, id)

		if err != nil {
			unlock()
			return nil, nil, err
		}

		if current == nil {
			unlock()
			return nil, nil, domain.NewNotFoundError("Todo", id)
		}

		if current.ListID == todo.ListID {
			return current, unlock, nil
		}

		unlock()
	}
}

func (s *TodoService) requireList(ctx context.Context, listID string) error {
	list, err := s.lists.FindByID(ctx, listID)

	if err != nil {
		return fmt.Errorf("loading list %s: %w", listID, err)
	}

	if list == nil {
		return domain.NewNotFoundError("List", listID)
	}

	return nil
}

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

const listHasTodosMessage = "Cannot delete list with todos. Please move or delete todos first."

type ListService struct {
	lists  port.ListRepository
	todos  port.TodoRepository
	locker *ScopeLocker
	probe  port.Telemetry
	logger *zap.Logger
	now    func() time.Time
}

func NewListService(lists port.ListRepository, todos port.TodoRepository, locker *ScopeLocker, probe port.Telemetry, logger *zap.Logger) *ListService {
	if locker == nil {
		locker = NewScopeLocker()
	}

	if probe == nil {
		probe = telemetry.NewNoOpProbe()
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &ListService{
		lists:  lists,
		todos:  todos,
		locker: locker,
		probe:  probe,
		logger: logger,
		now:    time.Now,
	}
}

func (s *ListService) Create(ctx context.Context, in domain.CreateListInput) (list *domain.List, err error) {
	ctx, end := startOperation(ctx, s.probe, "list", "Create", in.UserID)
	defer func() { end(err) }()

	unlock := s.locker.Lock(listScope(in.UserID))
	defer unlock()

	existing, err := s.lists.FindByUserID(ctx, in.UserID)

	if err != nil {
		return nil, fmt.Errorf("loading lists of user %s: %w", in.UserID, err)
	}

	now := s.now()

	list, err = s.lists.Create(ctx, domain.List{
		ID:        uuid.NewString(),
		Name:      in.Name,
		UserID:    in.UserID,
		Priority:  nextPriority(existing),
		CreatedAt: now,
		UpdatedAt: now,
	})

	if err != nil {
		return nil, fmt.Errorf("creating list: %w", err)
	}

	s.probe.RecordBusinessEvent(ctx, "created", "list", list.ID, list.UserID, map[string]interface{}{
		"priority": list.Priority,
	})

	return list, nil
}

func (s *ListService) Get(ctx context.Context, id string) (*domain.List, error) {
	list, err := s.lists.FindByID(ctx, id)

	if err != nil {
		return nil, err
	}

	if list == nil {
		return nil, domain.NewNotFoundError("List", id)
	}

	return list, nil
}

// ListByUser returns the user's lists in display order.
func (s *ListService) ListByUser(ctx context.Context, userID string) ([]domain.List, error) {
	lists, err := s.lists.FindByUserID(ctx, userID)

	if err != nil {
		return nil, err
	}

	return sortByPriority(lists), nil
}

func (s *ListService) ListAll(ctx context.Context) ([]domain.List, error) {
	return s.lists.FindAll(ctx)
}

func (s *ListService) Update(ctx context.Context, id string, in domain.UpdateListInput) (*domain.List, error) {
	list, err := s.lists.Update(ctx, id, domain.ListPatch{
		Name:      in.Name,
		UpdatedAt: s.now(),
	})

	if err != nil {
		return nil, fmt.Errorf("updating list %s: %w", id, err)
	}

	if list == nil {
		return nil, domain.NewNotFoundError("List", id)
	}

	return list, nil
}

// Delete removes a list owned by userID. A list that still holds todos is
// kept. The remaining lists are not renumbered.
func (s *ListService) Delete(ctx context.Context, id string, userID string) (err error) {
	ctx, end := startOperation(ctx, s.probe, "list", "Delete", userID, attribute.String("list.id", id))
	defer func() { end(err) }()

	unlock := s.locker.Lock(listScope(userID), todoScope(id))
	defer unlock()

	list, err := s.lists.FindByID(ctx, id)

	if err != nil {
		return err
	}

	if list == nil || !list.BelongsToUser(userID) {
		return domain.NewNotFoundError("List", id)
	}

	todos, err := s.todos.FindByListID(ctx, id)

	if err != nil {
		return fmt.Errorf("loading todos of list %s: %w", id, err)
	}

	if len(todos) > 0 {
		return domain.NewReferentialError(listHasTodosMessage)
	}

	deleted, err := s.lists.DeleteByID(ctx, id)

	if err != nil {
		return fmt.Errorf("deleting list %s: %w", id, err)
	}

	if !deleted {
		return domain.NewNotFoundError("List", id)
	}

	return nil
}

// Reorder moves the list to newPriority among the user's lists and shifts the
// lists in between by one. newPriority is not bounds checked.
func (s *ListService) Reorder(ctx context.Context, id string, newPriority int, userID string) (lists []domain.List, err error) {
	ctx, end := startOperation(ctx, s.probe, "list", "Reorder", userID,
		attribute.String("list.id", id),
		attribute.Int("list.priority", newPriority),
	)
	defer func() { end(err) }()

	unlock := s.locker.Lock(listScope(userID))
	defer unlock()

	list, err := s.lists.FindByID(ctx, id)

	if err != nil {
		return nil, err
	}

	if list == nil || !list.BelongsToUser(userID) {
		return nil, domain.NewNotFoundError("List", id)
	}

	siblings, err := s.lists.FindByUserID(ctx, userID)

	if err != nil {
		return nil, fmt.Errorf("loading lists of user %s: %w", userID, err)
	}

	oldPriority := list.Priority

	if oldPriority == newPriority {
		return sortByPriority(siblings), nil
	}

	now := s.now()

	if _, err := s.lists.Update(ctx, id, domain.ListPatch{Priority: &newPriority, UpdatedAt: now}); err != nil {
		return nil, fmt.Errorf("moving list %s: %w", id, err)
	}

	shifts := shiftSiblings(siblings, id, oldPriority, newPriority)

	for _, shift := range shifts {
		if _, err := s.lists.Update(ctx, shift.ID, domain.ListPatch{Priority: &shift.Priority, UpdatedAt: now}); err != nil {
			s.logger.Error("List reorder interrupted",
				zap.String("list_id", id),
				zap.String("sibling_id", shift.ID),
				zap.Error(err))

			return nil, fmt.Errorf("shifting list %s: %w", shift.ID, err)
		}
	}

	s.logger.Debug("List reordered",
		zap.String("list_id", id),
		zap.Int("from", oldPriority),
		zap.Int("to", newPriority),
		zap.Int("shifted", len(shifts)))

	lists, err = s.lists.FindByUserID(ctx, userID)

	if err != nil {
		return nil, err
	}

	return sortByPriority(lists), nil
}

// EnsureDefaults creates the default lists for a user that has none and
// returns the user's lists either way.
func (s *ListService) EnsureDefaults(ctx context.Context, userID string) (lists []domain.List, err error) {
	ctx, end := startOperation(ctx, s.probe, "list", "EnsureDefaults", userID)
	defer func() { end(err) }()

	unlock := s.locker.Lock(listScope(userID))
	defer unlock()

	existing, err := s.lists.FindByUserID(ctx, userID)

	if err != nil {
		return nil, err
	}

	if len(existing) > 0 {
		return sortByPriority(existing), nil
	}

	now := s.now()
	lists = make([]domain.List, 0, len(domain.DefaultListNames))

	for i, name := range domain.DefaultListNames {
		list, err := s.lists.Create(ctx, domain.List{
			ID:        uuid.NewString(),
			Name:      name,
			UserID:    userID,
			Priority:  i + 1,
			CreatedAt: now,
			UpdatedAt: now,
		})

		if err != nil {
			return nil, fmt.Errorf("creating default list %q: %w", name, err)
		}

		lists = append(lists, *list)
	}

	s.logger.Info("Default lists created", zap.String("user_id", userID))

	return lists, nil
}

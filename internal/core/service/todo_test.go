package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	"taskboard/internal/adapter/database/memory"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/port"
	"taskboard/internal/core/service"
	"taskboard/internal/core/util"
)

type TodoServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	Lists    *service.ListService
	Todos    *service.TodoService
	TodoRepo port.TodoRepository
	Inbox    domain.List
	Done     domain.List
}

func (s *TodoServiceTestSuite) SetupTest() {
	s.ctx = context.Background()

	listRepo := memory.NewListRepository(nil)
	s.TodoRepo = memory.NewTodoRepository(nil)

	locker := service.NewScopeLocker()

	s.Lists = service.NewListService(listRepo, s.TodoRepo, locker, nil, nil)
	s.Todos = service.NewTodoService(s.TodoRepo, listRepo, locker, nil, nil)

	defaults, err := s.Lists.EnsureDefaults(s.ctx, "u1")
	s.Require().NoError(err)

	s.Inbox = defaults[0]
	s.Done = defaults[2]
}

func TestTodoServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(TodoServiceTestSuite))
}

func (s *TodoServiceTestSuite) createTodos(listID string, titles ...string) []domain.Todo {
	created := make([]domain.Todo, 0, len(titles))

	for _, title := range titles {
		todo, err := s.Todos.Create(s.ctx, domain.CreateTodoInput{Title: title, ListID: listID, UserID: "u1"})
		s.Require().NoError(err)
		created = append(created, *todo)
	}

	return created
}

func (s *TodoServiceTestSuite) TestCreate_AppendsAtEnd() {
	created := s.createTodos(s.Inbox.ID, "A", "B", "C")

	Expect(prioritiesOf(created)).To(Equal([]int{1, 2, 3}))
	Expect(created[0].ListID).To(Equal(s.Inbox.ID))
	Expect(created[0].UserID).To(Equal("u1"))
}

func (s *TodoServiceTestSuite) TestCreate_UnknownList() {
	_, err := s.Todos.Create(s.ctx, domain.CreateTodoInput{Title: "A", ListID: "nope", UserID: "u1"})

	Expect(errors.Is(err, domain.ErrNotFound)).To(BeTrue())
	Expect(err.Error()).To(Equal("List with id 'nope' not found"))
}

func (s *TodoServiceTestSuite) TestReorder_Directionality() {
	created := s.createTodos(s.Inbox.ID, "A", "B", "C")

	ordered, err := s.Todos.Reorder(s.ctx, created[0].ID, 3, "u1")

	Expect(err).To(BeNil())
	Expect(titles(ordered)).To(Equal([]string{"B", "C", "A"}))
	Expect(prioritiesOf(ordered)).To(Equal([]int{1, 2, 3}))

	ordered, err = s.Todos.Reorder(s.ctx, created[0].ID, 1, "u1")

	Expect(err).To(BeNil())
	Expect(titles(ordered)).To(Equal([]string{"A", "B", "C"}))
}

func (s *TodoServiceTestSuite) TestReorder_LastToFirst() {
	created := s.createTodos(s.Inbox.ID, "A", "B", "C")

	ordered, err := s.Todos.Reorder(s.ctx, created[2].ID, 1, "u1")

	Expect(err).To(BeNil())
	Expect(titles(ordered)).To(Equal([]string{"C", "A", "B"}))
}

func (s *TodoServiceTestSuite) TestReorder_BumpsUpdatedAtOfTouchedItems() {
	created := s.createTodos(s.Inbox.ID, "A", "B", "C", "D")

	_, err := s.Todos.Reorder(s.ctx, created[0].ID, 2, "u1")
	Expect(err).To(BeNil())

	untouched, _ := s.TodoRepo.FindByID(s.ctx, created[3].ID)
	shifted, _ := s.TodoRepo.FindByID(s.ctx, created[1].ID)

	Expect(untouched.UpdatedAt).To(Equal(created[3].UpdatedAt))
	Expect(shifted.UpdatedAt).ToNot(Equal(created[1].UpdatedAt))
	Expect(shifted.Priority).To(Equal(1))
}

func (s *TodoServiceTestSuite) TestReorder_OtherOwnerLooksLikeMissing() {
	created := s.createTodos(s.Inbox.ID, "A")

	_, foreignErr := s.Todos.Reorder(s.ctx, created[0].ID, 1, "u2")
	_, missingErr := s.Todos.Reorder(s.ctx, "missing", 1, "u2")

	Expect(errors.Is(foreignErr, domain.ErrNotFound)).To(BeTrue())
	Expect(errors.Is(missingErr, domain.ErrNotFound)).To(BeTrue())
	Expect(foreignErr.Error()).To(Equal(fmt.Sprintf("Todo with id '%s' not found", created[0].ID)))
}

func (s *TodoServiceTestSuite) TestReorder_ConcurrentCallsKeepDensity() {
	created := s.createTodos(s.Inbox.ID, "A", "B", "C", "D", "E", "F")

	var wg sync.WaitGroup

	for i := 0; i < 30; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			todo := created[i%len(created)]
			_, err := s.Todos.Reorder(s.ctx, todo.ID, (i*7)%len(created)+1, "u1")
			Expect(err).To(BeNil())
		}(i)
	}

	wg.Wait()

	ordered, err := s.Todos.ListByList(s.ctx, s.Inbox.ID)

	Expect(err).To(BeNil())
	Expect(prioritiesOf(ordered)).To(Equal(dense(6)))
}

func (s *TodoServiceTestSuite) TestMove_PlacesLastAndLeavesGap() {
	source := s.createTodos(s.Inbox.ID, "A", "B", "C")
	s.createTodos(s.Done.ID, "X", "Y")

	moved, err := s.Todos.Move(s.ctx, source[1].ID, s.Done.ID)

	Expect(err).To(BeNil())
	Expect(moved.ListID).To(Equal(s.Done.ID))
	Expect(moved.Priority).To(Equal(3))

	remaining, _ := s.Todos.ListByList(s.ctx, s.Inbox.ID)
	Expect(prioritiesOf(remaining)).To(Equal([]int{1, 3}))

	target, _ := s.Todos.ListByList(s.ctx, s.Done.ID)
	Expect(titles(target)).To(Equal([]string{"X", "Y", "B"}))
}

func (s *TodoServiceTestSuite) TestMove_SameListIsNoop() {
	created := s.createTodos(s.Inbox.ID, "A", "B")

	moved, err := s.Todos.Move(s.ctx, created[0].ID, s.Inbox.ID)

	Expect(err).To(BeNil())
	Expect(*moved).To(Equal(created[0]))
}

func (s *TodoServiceTestSuite) TestMove_UnknownTodoOrList() {
	created := s.createTodos(s.Inbox.ID, "A")

	_, err := s.Todos.Move(s.ctx, "missing", s.Done.ID)
	Expect(errors.Is(err, domain.ErrNotFound)).To(BeTrue())

	_, err = s.Todos.Move(s.ctx, created[0].ID, "nowhere")
	Expect(err).To(MatchError("List with id 'nowhere' not found"))
}

func (s *TodoServiceTestSuite) TestMove_IntoEmptyList() {
	created := s.createTodos(s.Inbox.ID, "A")

	moved, err := s.Todos.Move(s.ctx, created[0].ID, s.Done.ID)

	Expect(err).To(BeNil())
	Expect(moved.Priority).To(Equal(1))
}

func (s *TodoServiceTestSuite) TestUpdate_DisplayFields() {
	created := s.createTodos(s.Inbox.ID, "A")

	todo, err := s.Todos.Update(s.ctx, created[0].ID, domain.UpdateTodoInput{
		Title:       util.Ptr("Buy milk"),
		Description: util.Ptr("two litres"),
	})

	Expect(err).To(BeNil())
	Expect(todo.Title).To(Equal("Buy milk"))
	Expect(todo.Description).To(Equal("two litres"))
	Expect(todo.Priority).To(Equal(1))
}

func (s *TodoServiceTestSuite) TestUpdate_ListChangeMoves() {
	s.createTodos(s.Done.ID, "X")
	created := s.createTodos(s.Inbox.ID, "A")

	todo, err := s.Todos.Update(s.ctx, created[0].ID, domain.UpdateTodoInput{
		Title:  util.Ptr("A2"),
		ListID: util.Ptr(s.Done.ID),
	})

	Expect(err).To(BeNil())
	Expect(todo.Title).To(Equal("A2"))
	Expect(todo.ListID).To(Equal(s.Done.ID))
	Expect(todo.Priority).To(Equal(2))
}

func (s *TodoServiceTestSuite) TestUpdate_Missing() {
	_, err := s.Todos.Update(s.ctx, "missing", domain.UpdateTodoInput{Title: util.Ptr("x")})

	Expect(err).To(MatchError("Todo with id 'missing' not found"))
}

func (s *TodoServiceTestSuite) TestDelete_LeavesGap() {
	created := s.createTodos(s.Inbox.ID, "A", "B", "C")

	Expect(s.Todos.Delete(s.ctx, created[1].ID)).To(Succeed())

	remaining, _ := s.Todos.ListByList(s.ctx, s.Inbox.ID)
	Expect(prioritiesOf(remaining)).To(Equal([]int{1, 3}))

	err := s.Todos.Delete(s.ctx, created[1].ID)
	Expect(errors.Is(err, domain.ErrNotFound)).To(BeTrue())
}

func (s *TodoServiceTestSuite) TestListByUser() {
	s.createTodos(s.Inbox.ID, "A", "B")
	s.createTodos(s.Done.ID, "C")

	todos, err := s.Todos.ListByUser(s.ctx, "u1")

	Expect(err).To(BeNil())
	Expect(todos).To(HaveLen(3))

	none, err := s.Todos.ListByUser(s.ctx, "u2")

	Expect(err).To(BeNil())
	Expect(none).To(BeEmpty())
}

func (s *TodoServiceTestSuite) TestDensityAcrossCreateReorderAndSequence() {
	created := s.createTodos(s.Inbox.ID, "A", "B")

	for i := 0; i < 4; i++ {
		more := s.createTodos(s.Inbox.ID, fmt.Sprintf("N%d", i))
		created = append(created, more...)

		ordered, err := s.Todos.Reorder(s.ctx, more[0].ID, 1, "u1")

		Expect(err).To(BeNil())
		Expect(prioritiesOf(ordered)).To(Equal(dense(len(created))))
	}

	ordered, _ := s.Todos.ListByList(s.ctx, s.Inbox.ID)
	Expect(titles(ordered)).To(Equal([]string{"N3", "N2", "N1", "N0", "A", "B"}))
}

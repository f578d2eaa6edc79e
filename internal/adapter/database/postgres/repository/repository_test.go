package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	. "taskboard/pkg/test"
	"taskboard/pkg/test/factory"

	"taskboard/internal/adapter/database/postgres"
	"taskboard/internal/adapter/database/postgres/repository"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/port"
	"taskboard/internal/core/telemetry"
	"taskboard/internal/core/util"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type RepositoryTestSuite struct {
	suite.Suite
	container testcontainers.Container
	DB        *postgres.DB
	ListRepo  port.ListRepository
	TodoRepo  port.TodoRepository
	UserRepo  port.UserRepository
}

// databaseURL prefers DATABASE_URL and falls back to a throwaway container.
func (s *RepositoryTestSuite) databaseURL(ctx context.Context) string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	testcontainers.SkipIfProviderIsNotHealthy(s.T())

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		Started: true,
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_DB":       "taskboard",
				"POSTGRES_USER":     "test",
				"POSTGRES_PASSWORD": "test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
	})
	s.Require().NoError(err)
	s.container = container

	host, err := container.Host(ctx)
	s.Require().NoError(err)

	mapped, err := container.MappedPort(ctx, "5432/tcp")
	s.Require().NoError(err)

	return fmt.Sprintf("postgres://test:test@%s:%s/taskboard?sslmode=disable", host, mapped.Port())
}

func (s *RepositoryTestSuite) SetupSuite() {
	if testing.Short() {
		s.T().Skip("postgres suite skipped in short mode")
	}

	ctx := context.Background()

	db, err := postgres.NewDB(ctx, postgres.Options{
		URL:            s.databaseURL(ctx),
		MigrationsPath: MigrationsPath("postgres"),
	})
	s.Require().NoError(err)

	probe := telemetry.NewNoOpProbe()
	s.DB = db
	s.ListRepo = repository.NewListRepository(db, probe)
	s.TodoRepo = repository.NewTodoRepository(db, probe)
	s.UserRepo = repository.NewUserRepository(db, probe)
}

func (s *RepositoryTestSuite) SetupTest() {
	s.Require().NoError(s.DB.Truncate(context.Background()))
}

func (s *RepositoryTestSuite) TearDownSuite() {
	if s.DB != nil {
		s.DB.Close()
	}

	if s.container != nil {
		s.container.Terminate(context.Background())
	}
}

func TestRepositoryTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(RepositoryTestSuite))
}

func (s *RepositoryTestSuite) TestLists_CreateFindUpdateDelete() {
	ctx := context.Background()

	list, err := s.ListRepo.Create(ctx, factory.NewList[domain.List](map[string]any{"Name": "Work", "UserID": "user-1", "Priority": 1}))
	assert.NoError(s.T(), err)

	found, err := s.ListRepo.FindByID(ctx, list.ID)
	assert.NoError(s.T(), err)
	Expect(found.Name).To(Equal("Work"))

	updated, err := s.ListRepo.Update(ctx, list.ID, domain.ListPatch{Priority: util.Ptr(3), UpdatedAt: time.Now()})
	assert.NoError(s.T(), err)
	Expect(updated.Priority).To(Equal(3))
	Expect(updated.Name).To(Equal("Work"))

	deleted, err := s.ListRepo.DeleteByID(ctx, list.ID)
	assert.NoError(s.T(), err)
	assert.True(s.T(), deleted)

	missing, err := s.ListRepo.FindByID(ctx, list.ID)
	assert.NoError(s.T(), err)
	assert.Nil(s.T(), missing)
}

func (s *RepositoryTestSuite) TestLists_FindByUserID_OrdersByPriority() {
	ctx := context.Background()

	for _, p := range []int{2, 3, 1} {
		s.ListRepo.Create(ctx, factory.NewList[domain.List](map[string]any{"UserID": "user-1", "Priority": p}))
	}

	lists, err := s.ListRepo.FindByUserID(ctx, "user-1")

	assert.NoError(s.T(), err)
	Expect(lists).To(HaveLen(3))
	Expect(lists[0].Priority).To(Equal(1))
	Expect(lists[2].Priority).To(Equal(3))

	none, err := s.ListRepo.FindByUserID(ctx, "nobody")
	assert.NoError(s.T(), err)
	Expect(none).To(BeEmpty())
}

func (s *RepositoryTestSuite) TestTodos_MoveAndDelete() {
	ctx := context.Background()

	source, _ := s.ListRepo.Create(ctx, factory.NewList[domain.List](map[string]any{"UserID": "user-1", "Priority": 1}))
	target, _ := s.ListRepo.Create(ctx, factory.NewList[domain.List](map[string]any{"UserID": "user-1", "Priority": 2}))

	todo, err := s.TodoRepo.Create(ctx, factory.NewTodo[domain.Todo](map[string]any{"ListID": source.ID, "UserID": "user-1"}))
	assert.NoError(s.T(), err)

	moved, err := s.TodoRepo.Update(ctx, todo.ID, domain.TodoPatch{ListID: util.Ptr(target.ID), Priority: util.Ptr(1), UpdatedAt: time.Now()})
	assert.NoError(s.T(), err)
	Expect(moved.ListID).To(Equal(target.ID))

	inTarget, _ := s.TodoRepo.FindByListID(ctx, target.ID)
	Expect(inTarget).To(HaveLen(1))

	deleted, err := s.TodoRepo.DeleteByID(ctx, todo.ID)
	assert.NoError(s.T(), err)
	assert.True(s.T(), deleted)
}

func (s *RepositoryTestSuite) TestUsers_UniqueUsername() {
	ctx := context.Background()

	_, err := s.UserRepo.Create(ctx, factory.NewUser[domain.User](map[string]any{"Username": "alice"}))
	assert.NoError(s.T(), err)

	_, err = s.UserRepo.Create(ctx, factory.NewUser[domain.User](map[string]any{"Username": "alice"}))
	assert.Error(s.T(), err)

	found, err := s.UserRepo.FindByUsername(ctx, "alice")
	assert.NoError(s.T(), err)
	Expect(found).NotTo(BeNil())
}

package repository_test

import (
	"context"
	"testing"

	. "taskboard/pkg/test"
	"taskboard/pkg/test/factory"

	"taskboard/internal/adapter/database/sqlite/repository"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/port"
	"taskboard/internal/core/telemetry"
	"taskboard/internal/core/util"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ListRepositoryTestSuite struct {
	suite.Suite
	repo port.ListRepository
}

func (s *ListRepositoryTestSuite) SetupTest() {
	db := InitTestDB()
	s.T().Cleanup(func() { db.Close() })

	s.repo = repository.NewListRepository(db, telemetry.NewNoOpProbe())
}

func TestListRepositoryTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(ListRepositoryTestSuite))
}

func (s *ListRepositoryTestSuite) TestRepository_CreateList_Success() {
	ctx := context.Background()

	list, err := s.repo.Create(ctx, factory.NewList[domain.List](map[string]any{
		"Name":   "Groceries",
		"UserID": "user-1",
	}))

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "Groceries", list.Name)

	found, err := s.repo.FindByID(ctx, list.ID)

	assert.NoError(s.T(), err)
	Expect(found).NotTo(BeNil())
	Expect(found.Name).To(Equal("Groceries"))
	Expect(found.UserID).To(Equal("user-1"))
	Expect(found.Priority).To(Equal(1))
	Expect(found.CreatedAt.Equal(list.CreatedAt)).To(BeTrue())
}

func (s *ListRepositoryTestSuite) TestRepository_FindByID_Missing() {
	found, err := s.repo.FindByID(context.Background(), "does-not-exist")

	assert.NoError(s.T(), err)
	assert.Nil(s.T(), found)
}

func (s *ListRepositoryTestSuite) TestRepository_FindByUserID_OrdersByPriority() {
	ctx := context.Background()

	for _, p := range []int{3, 1, 2} {
		s.repo.Create(ctx, factory.NewList[domain.List](map[string]any{"UserID": "user-1", "Priority": p}))
	}
	s.repo.Create(ctx, factory.NewList[domain.List](map[string]any{"UserID": "user-2", "Priority": 1}))

	lists, err := s.repo.FindByUserID(ctx, "user-1")

	assert.NoError(s.T(), err)
	Expect(lists).To(HaveLen(3))
	Expect([]int{lists[0].Priority, lists[1].Priority, lists[2].Priority}).To(Equal([]int{1, 2, 3}))

	all, err := s.repo.FindAll(ctx)

	assert.NoError(s.T(), err)
	Expect(all).To(HaveLen(4))
}

func (s *ListRepositoryTestSuite) TestRepository_FindByUserID_Empty() {
	lists, err := s.repo.FindByUserID(context.Background(), "nobody")

	assert.NoError(s.T(), err)
	Expect(lists).NotTo(BeNil())
	Expect(lists).To(BeEmpty())
}

func (s *ListRepositoryTestSuite) TestRepository_Update_AppliesOnlyGivenFields() {
	ctx := context.Background()
	list, _ := s.repo.Create(ctx, factory.NewList[domain.List](map[string]any{"Name": "Old", "UserID": "user-1", "Priority": 2}))

	updated, err := s.repo.Update(ctx, list.ID, domain.ListPatch{
		Priority:  util.Ptr(5),
		UpdatedAt: list.UpdatedAt.Add(1000),
	})

	assert.NoError(s.T(), err)
	Expect(updated.Name).To(Equal("Old"))
	Expect(updated.Priority).To(Equal(5))

	updated, err = s.repo.Update(ctx, list.ID, domain.ListPatch{Name: util.Ptr("New"), UpdatedAt: list.UpdatedAt})

	assert.NoError(s.T(), err)
	Expect(updated.Name).To(Equal("New"))
	Expect(updated.Priority).To(Equal(5))
}

func (s *ListRepositoryTestSuite) TestRepository_Update_Missing() {
	updated, err := s.repo.Update(context.Background(), "missing", domain.ListPatch{Name: util.Ptr("x")})

	assert.NoError(s.T(), err)
	assert.Nil(s.T(), updated)
}

func (s *ListRepositoryTestSuite) TestRepository_DeleteByID() {
	ctx := context.Background()
	list, _ := s.repo.Create(ctx, factory.NewList[domain.List](map[string]any{"UserID": "user-1"}))

	deleted, err := s.repo.DeleteByID(ctx, list.ID)
	assert.NoError(s.T(), err)
	assert.True(s.T(), deleted)

	deleted, err = s.repo.DeleteByID(ctx, list.ID)
	assert.NoError(s.T(), err)
	assert.False(s.T(), deleted)

	found, _ := s.repo.FindByID(ctx, list.ID)
	assert.Nil(s.T(), found)
}

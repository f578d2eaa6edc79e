package request

import (
	"strings"

	"taskboard/internal/core/domain"
)

type CreateListRequest struct {
	Name   string `json:"name" validate:"required,max=50"`
	UserID string `json:"userId" validate:"required"`
}

func (r *CreateListRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.UserID = strings.TrimSpace(r.UserID)
}

func (r CreateListRequest) ToInput() domain.CreateListInput {
	return domain.CreateListInput{Name: r.Name, UserID: r.UserID}
}

type UpdateListRequest struct {
	Name *string `json:"name" validate:"omitnil,min=1,max=50"`
}

func (r *UpdateListRequest) Normalize() {
	r.Name = trimmed(r.Name)
}

func (r UpdateListRequest) IsEmpty() bool {
	return r.Name == nil
}

func (r UpdateListRequest) ToInput() domain.UpdateListInput {
	return domain.UpdateListInput{Name: r.Name}
}

// ReorderRequest is shared by lists and todos.
type ReorderRequest struct {
	Priority *int   `json:"priority" validate:"required"`
	UserID   string `json:"userId" validate:"required"`
}

type EnsureDefaultsRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type CreateTodoRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=1000"`
	ListID      string `json:"listId" validate:"required"`
	UserID      string `json:"userId" validate:"required"`
}

func (r *CreateTodoRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.ListID = strings.TrimSpace(r.ListID)
	r.UserID = strings.TrimSpace(r.UserID)
}

func (r CreateTodoRequest) ToInput() domain.CreateTodoInput {
	return domain.CreateTodoInput{
		Title:       r.Title,
		Description: r.Description,
		ListID:      r.ListID,
		UserID:      r.UserID,
	}
}

type UpdateTodoRequest struct {
	Title       *string `json:"title" validate:"omitnil,min=1,max=200"`
	Description *string `json:"description" validate:"omitnil,max=1000"`
	ListID      *string `json:"listId" validate:"omitnil,min=1"`
}

func (r *UpdateTodoRequest) Normalize() {
	r.Title = trimmed(r.Title)
	r.Description = trimmed(r.Description)
	r.ListID = trimmed(r.ListID)
}

func (r UpdateTodoRequest) ToInput() domain.UpdateTodoInput {
	return domain.UpdateTodoInput{
		Title:       r.Title,
		Description: r.Description,
		ListID:      r.ListID,
	}
}

type MoveTodoRequest struct {
	ListID string `json:"listId" validate:"required"`
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
}

func (r *CreateUserRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
}

func (r CreateUserRequest) ToInput() domain.CreateUserInput {
	return domain.CreateUserInput{Username: r.Username, Password: r.Password}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}

	v := strings.TrimSpace(*s)

	return &v
}

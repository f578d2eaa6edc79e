package response

import (
	"time"

	"taskboard/internal/core/domain"
)

// UserResponse never carries the password hash.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func NewUserResponses(users []domain.User) []UserResponse {
	return mapAll(users, NewUserResponse)
}

type ListResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UserID    string    `json:"userId"`
	Priority  int       `json:"priority"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewListResponse(l domain.List) ListResponse {
	return ListResponse{
		ID:        l.ID,
		Name:      l.Name,
		UserID:    l.UserID,
		Priority:  l.Priority,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func NewListResponses(lists []domain.List) []ListResponse {
	return mapAll(lists, NewListResponse)
}

type TodoResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ListID      string    `json:"listId"`
	UserID      string    `json:"userId"`
	Priority    int       `json:"priority"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewTodoResponse(t domain.Todo) TodoResponse {
	return TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		ListID:      t.ListID,
		UserID:      t.UserID,
		Priority:    t.Priority,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func NewTodoResponses(todos []domain.Todo) []TodoResponse {
	return mapAll(todos, NewTodoResponse)
}

func mapAll[T, R any](items []T, convert func(T) R) []R {
	out := make([]R, 0, len(items))

	for _, item := range items {
		out = append(out, convert(item))
	}

	return out
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ResponseError struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	StatusCode int               `json:"statusCode"`
	Errors     []ValidationError `json:"errors,omitempty"`
	Details    any               `json:"details,omitempty"`
}

type SuccessResponse struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type LoginResponse struct {
	Data  UserResponse `json:"data"`
	Token string       `json:"token"`
}

type ErrorResponse struct {
	Error ResponseError `json:"error"`
}

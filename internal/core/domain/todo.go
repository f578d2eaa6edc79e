package domain

import "time"

// Todo is ordered by Priority among the todos sharing its ListID. Its owner
// (UserID) never changes, its list can.
type Todo struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ListID      string    `json:"listId"`
	UserID      string    `json:"userId"`
	Priority    int       `json:"priority"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (t Todo) GetID() string {
	return t.ID
}

func (t Todo) GetPriority() int {
	return t.Priority
}

func (t Todo) BelongsToUser(userID string) bool {
	return t.UserID == userID
}

type TodoPatch struct {
	Title       *string
	Description *string
	ListID      *string
	Priority    *int
	UpdatedAt   time.Time
}

func (t *Todo) Apply(patch TodoPatch) {
	if patch.Title != nil {
		t.Title = *patch.Title
	}

	if patch.Description != nil {
		t.Description = *patch.Description
	}

	if patch.ListID != nil {
		t.ListID = *patch.ListID
	}

	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}

	t.UpdatedAt = patch.UpdatedAt
}

type CreateTodoInput struct {
	Title       string
	Description string
	ListID      string
	UserID      string
}

type UpdateTodoInput struct {
	Title       *string
	Description *string
	ListID      *string
}

func (in UpdateTodoInput) IsEmpty() bool {
	return in.Title == nil && in.Description == nil && in.ListID == nil
}

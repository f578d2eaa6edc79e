package domain

import "time"

// DefaultListNames are created, in order, for a user without lists.
var DefaultListNames = []string{"To Do", "In Progress", "Done"}

// List is ordered by Priority among the lists sharing its UserID.
type List struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UserID    string    `json:"userId"`
	Priority  int       `json:"priority"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (l List) GetID() string {
	return l.ID
}

func (l List) GetPriority() int {
	return l.Priority
}

func (l List) BelongsToUser(userID string) bool {
	return l.UserID == userID
}

// ListPatch carries the fields to change; nil fields are left untouched.
type ListPatch struct {
	Name      *string
	Priority  *int
	UpdatedAt time.Time
}

func (l *List) Apply(patch ListPatch) {
	if patch.Name != nil {
		l.Name = *patch.Name
	}

	if patch.Priority != nil {
		l.Priority = *patch.Priority
	}

	l.UpdatedAt = patch.UpdatedAt
}

type CreateListInput struct {
	Name   string
	UserID string
}

type UpdateListInput struct {
	Name *string
}

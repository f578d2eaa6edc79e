package repository

import (
	"database/sql"
	"errors"

	"taskboard/internal/core/domain"
)

var (
	listColumns = []string{"id", "name", "user_id", "priority", "created_at", "updated_at"}
	todoColumns = []string{"id", "title", "description", "list_id", "user_id", "priority", "created_at", "updated_at"}
	userColumns = []string{"id", "username", "password_hash", "created_at", "updated_at"}
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanList(row rowScanner) (domain.List, error) {
	var l domain.List
	err := row.Scan(&l.ID, &l.Name, &l.UserID, &l.Priority, &l.CreatedAt, &l.UpdatedAt)

	return l, err
}

func scanTodo(row rowScanner) (domain.Todo, error) {
	var t domain.Todo
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.ListID, &t.UserID, &t.Priority, &t.CreatedAt, &t.UpdatedAt)

	return t, err
}

func scanUser(row rowScanner) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)

	return u, err
}

func collect[T any](rows *sql.Rows, scan func(rowScanner) (T, error)) ([]T, error) {
	defer rows.Close()

	items := []T{}

	for rows.Next() {
		item, err := scan(rows)

		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, rows.Err()
}

// one turns sql.ErrNoRows into a nil result.
func one[T any](item T, err error) (*T, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &item, nil
}

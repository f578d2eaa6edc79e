package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"

	"taskboard/internal/core/domain"
)

var (
	listColumns = []string{"id", "name", "user_id", "priority", "created_at", "updated_at"}
	todoColumns = []string{"id", "title", "description", "list_id", "user_id", "priority", "created_at", "updated_at"}
	userColumns = []string{"id", "username", "password_hash", "created_at", "updated_at"}
)

func scanList(row pgx.Row) (domain.List, error) {
	var l domain.List
	err := row.Scan(&l.ID, &l.Name, &l.UserID, &l.Priority, &l.CreatedAt, &l.UpdatedAt)

	return l, err
}

func scanTodo(row pgx.Row) (domain.Todo, error) {
	var t domain.Todo
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.ListID, &t.UserID, &t.Priority, &t.CreatedAt, &t.UpdatedAt)

	return t, err
}

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)

	return u, err
}

func collect[T any](rows pgx.Rows, scan func(pgx.Row) (T, error)) ([]T, error) {
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (T, error) {
		return scan(row)
	})

	if err != nil {
		return nil, err
	}

	if items == nil {
		items = []T{}
	}

	return items, nil
}

func one[T any](item T, err error) (*T, error) {
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &item, nil
}

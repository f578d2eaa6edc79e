package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"go.opentelemetry.io/otel/attribute"

	"taskboard/internal/adapter/database/sqlite"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/port"
	tel "taskboard/internal/core/telemetry"
)

type TodoRepository struct {
	db        *sqlite.DB
	telemetry port.Telemetry
}

func NewTodoRepository(db *sqlite.DB, telemetry port.Telemetry) port.TodoRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &TodoRepository{
		db:        db,
		telemetry: telemetry,
	}
}

func (tr *TodoRepository) Create(ctx context.Context, todo domain.Todo) (created *domain.Todo, err error) {
	ctx, op := tel.StartOperation(ctx, tr.telemetry, "Create", "todo",
		attribute.String("db.operation", "INSERT"),
		attribute.String("todo.id", todo.ID),
		attribute.String("list.id", todo.ListID),
		attribute.String("user.id", todo.UserID),
	)
	defer func() { op.End(err) }()

	query, args, err := tr.db.QueryBuilder.Insert("todos").
		Columns(todoColumns...).
		Values(todo.ID, todo.Title, todo.Description, todo.ListID, todo.UserID, todo.Priority, todo.CreatedAt.UTC(), todo.UpdatedAt.UTC()).
		ToSql()

	if err != nil {
		return nil, err
	}

	if _, err = tr.db.ExecContext(ctx, query, args...); err != nil {
		return nil, err
	}

	return &todo, nil
}

func (tr *TodoRepository) FindByID(ctx context.Context, id string) (todo *domain.Todo, err error) {
	ctx, op := tel.StartOperation(ctx, tr.telemetry, "FindByID", "todo", attribute.String("todo.id", id))
	defer func() { op.End(err) }()

	query, args, err := tr.db.QueryBuilder.Select(todoColumns...).
		From("todos").
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, err
	}

	found, err := scanTodo(tr.db.QueryRowContext(ctx, query, args...))

	return one(found, err)
}

func (tr *TodoRepository) FindByListID(ctx context.Context, listID string) (todos []domain.Todo, err error) {
	ctx, op := tel.StartOperation(ctx, tr.telemetry, "FindByListID", "todo", attribute.String("list.id", listID))
	defer func() { op.End(err) }()

	return tr.selectTodos(ctx, sq.Eq{"list_id": listID})
}

func (tr *TodoRepository) FindByUserID(ctx context.Context, userID string) (todos []domain.Todo, err error) {
	ctx, op := tel.StartOperation(ctx, tr.telemetry, "FindByUserID", "todo", attribute.String("user.id", userID))
	defer func() { op.End(err) }()

	return tr.selectTodos(ctx, sq.Eq{"user_id": userID})
}

func (tr *TodoRepository) FindAll(ctx context.Context) (todos []domain.Todo, err error) {
	ctx, op := tel.StartOperation(ctx, tr.telemetry, "FindAll", "todo")
	defer func() { op.End(err) }()

	return tr.selectTodos(ctx, nil)
}

func (tr *TodoRepository) selectTodos(ctx context.Context, where sq.Sqlizer) ([]domain.Todo, error) {
	builder := tr.db.QueryBuilder.Select(todoColumns...).
		From("todos").
		OrderBy("priority ASC", "created_at ASC")

	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := tr.db.QueryContext(ctx, query, args...)

	if err != nil {
		return nil, err
	}

	return collect(rows, scanTodo)
}

func (tr *TodoRepository) Update(ctx context.Context, id string, patch domain.TodoPatch) (todo *domain.Todo, err error) {
	ctx, op := tel.StartOperation(ctx, tr.telemetry, "Update", "todo",
		attribute.String("db.operation", "UPDATE"),
		attribute.String("todo.id", id),
	)
	defer func() { op.End(err) }()

	builder := tr.db.QueryBuilder.Update("todos").
		Set("updated_at", patch.UpdatedAt.UTC()).
		Where(sq.Eq{"id": id})

	if patch.Title != nil {
		builder = builder.Set("title", *patch.Title)
	}

	if patch.Description != nil {
		builder = builder.Set("description", *patch.Description)
	}

	if patch.ListID != nil {
		builder = builder.Set("list_id", *patch.ListID)
	}

	if patch.Priority != nil {
		builder = builder.Set("priority", *patch.Priority)
	}

	query, args, err := builder.ToSql()

	if err != nil {
		return nil, err
	}

	result, err := tr.db.ExecContext(ctx, query, args...)

	if err != nil {
		return nil, err
	}

	if affected, err := result.RowsAffected(); err != nil || affected == 0 {
		return nil, err
	}

	return tr.FindByID(ctx, id)
}

func (tr *TodoRepository) DeleteByID(ctx context.Context, id string) (deleted bool, err error) {
	ctx, op := tel.StartOperation(ctx, tr.telemetry, "DeleteByID", "todo",
		attribute.String("db.operation", "DELETE"),
		attribute.String("todo.id", id),
	)
	defer func() { op.End(err) }()

	query, args, err := tr.db.QueryBuilder.Delete("todos").
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return false, err
	}

	result, err := tr.db.ExecContext(ctx, query, args...)

	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()

	return affected > 0, err
}

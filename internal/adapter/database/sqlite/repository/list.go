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

type ListRepository struct {
	db        *sqlite.DB
	telemetry port.Telemetry
}

func NewListRepository(db *sqlite.DB, telemetry port.Telemetry) port.ListRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &ListRepository{
		db:        db,
		telemetry: telemetry,
	}
}

func (lr *ListRepository) Create(ctx context.Context, list domain.List) (created *domain.List, err error) {
	ctx, op := tel.StartOperation(ctx, lr.telemetry, "Create", "list",
		attribute.String("db.operation", "INSERT"),
		attribute.String("list.id", list.ID),
		attribute.String("user.id", list.UserID),
	)
	defer func() { op.End(err) }()

	query, args, err := lr.db.QueryBuilder.Insert("lists").
		Columns(listColumns...).
		Values(list.ID, list.Name, list.UserID, list.Priority, list.CreatedAt.UTC(), list.UpdatedAt.UTC()).
		ToSql()

	if err != nil {
		return nil, err
	}

	if _, err = lr.db.ExecContext(ctx, query, args...); err != nil {
		return nil, err
	}

	return &list, nil
}

func (lr *ListRepository) FindByID(ctx context.Context, id string) (list *domain.List, err error) {
	ctx, op := tel.StartOperation(ctx, lr.telemetry, "FindByID", "list", attribute.String("list.id", id))
	defer func() { op.End(err) }()

	query, args, err := lr.db.QueryBuilder.Select(listColumns...).
		From("lists").
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, err
	}

	found, err := scanList(lr.db.QueryRowContext(ctx, query, args...))

	return one(found, err)
}

func (lr *ListRepository) FindByUserID(ctx context.Context, userID string) (lists []domain.List, err error) {
	ctx, op := tel.StartOperation(ctx, lr.telemetry, "FindByUserID", "list", attribute.String("user.id", userID))
	defer func() { op.End(err) }()

	return lr.selectLists(ctx, sq.Eq{"user_id": userID})
}

func (lr *ListRepository) FindAll(ctx context.Context) (lists []domain.List, err error) {
	ctx, op := tel.StartOperation(ctx, lr.telemetry, "FindAll", "list")
	defer func() { op.End(err) }()

	return lr.selectLists(ctx, nil)
}

func (lr *ListRepository) selectLists(ctx context.Context, where sq.Sqlizer) ([]domain.List, error) {
	builder := lr.db.QueryBuilder.Select(listColumns...).
		From("lists").
		OrderBy("priority ASC", "created_at ASC")

	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := lr.db.QueryContext(ctx, query, args...)

	if err != nil {
		return nil, err
	}

	return collect(rows, scanList)
}

func (lr *ListRepository) Update(ctx context.Context, id string, patch domain.ListPatch) (list *domain.List, err error) {
	ctx, op := tel.StartOperation(ctx, lr.telemetry, "Update", "list",
		attribute.String("db.operation", "UPDATE"),
		attribute.String("list.id", id),
	)
	defer func() { op.End(err) }()

	builder := lr.db.QueryBuilder.Update("lists").
		Set("updated_at", patch.UpdatedAt.UTC()).
		Where(sq.Eq{"id": id})

	if patch.Name != nil {
		builder = builder.Set("name", *patch.Name)
	}

	if patch.Priority != nil {
		builder = builder.Set("priority", *patch.Priority)
	}

	query, args, err := builder.ToSql()

	if err != nil {
		return nil, err
	}

	result, err := lr.db.ExecContext(ctx, query, args...)

	if err != nil {
		return nil, err
	}

	if affected, err := result.RowsAffected(); err != nil || affected == 0 {
		return nil, err
	}

	return lr.FindByID(ctx, id)
}

func (lr *ListRepository) DeleteByID(ctx context.Context, id string) (deleted bool, err error) {
	ctx, op := tel.StartOperation(ctx, lr.telemetry, "DeleteByID", "list",
		attribute.String("db.operation", "DELETE"),
		attribute.String("list.id", id),
	)
	defer func() { op.End(err) }()

	query, args, err := lr.db.QueryBuilder.Delete("lists").
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return false, err
	}

	result, err := lr.db.ExecContext(ctx, query, args...)

	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()

	return affected > 0, err
}

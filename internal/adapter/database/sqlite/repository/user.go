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

type UserRepository struct {
	db        *sqlite.DB
	telemetry port.Telemetry
}

func NewUserRepository(db *sqlite.DB, telemetry port.Telemetry) port.UserRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &UserRepository{
		db:        db,
		telemetry: telemetry,
	}
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (created *domain.User, err error) {
	ctx, op := tel.StartOperation(ctx, ur.telemetry, "Create", "user",
		attribute.String("db.operation", "INSERT"),
		attribute.String("user.id", user.ID),
	)
	defer func() { op.End(err) }()

	query, args, err := ur.db.QueryBuilder.Insert("users").
		Columns(userColumns...).
		Values(user.ID, user.Username, user.PasswordHash, user.CreatedAt.UTC(), user.UpdatedAt.UTC()).
		ToSql()

	if err != nil {
		return nil, err
	}

	if _, err = ur.db.ExecContext(ctx, query, args...); err != nil {
		return nil, err
	}

	return &user, nil
}

func (ur *UserRepository) FindByID(ctx context.Context, id string) (user *domain.User, err error) {
	ctx, op := tel.StartOperation(ctx, ur.telemetry, "FindByID", "user", attribute.String("user.id", id))
	defer func() { op.End(err) }()

	return ur.findOne(ctx, sq.Eq{"id": id})
}

func (ur *UserRepository) FindByUsername(ctx context.Context, username string) (user *domain.User, err error) {
	ctx, op := tel.StartOperation(ctx, ur.telemetry, "FindByUsername", "user")
	defer func() { op.End(err) }()

	return ur.findOne(ctx, sq.Eq{"username": username})
}

func (ur *UserRepository) findOne(ctx context.Context, where sq.Sqlizer) (*domain.User, error) {
	query, args, err := ur.db.QueryBuilder.Select(userColumns...).
		From("users").
		Where(where).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, err
	}

	found, err := scanUser(ur.db.QueryRowContext(ctx, query, args...))

	return one(found, err)
}

func (ur *UserRepository) FindAll(ctx context.Context) (users []domain.User, err error) {
	ctx, op := tel.StartOperation(ctx, ur.telemetry, "FindAll", "user")
	defer func() { op.End(err) }()

	query, args, err := ur.db.QueryBuilder.Select(userColumns...).
		From("users").
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := ur.db.QueryContext(ctx, query, args...)

	if err != nil {
		return nil, err
	}

	return collect(rows, scanUser)
}

func (ur *UserRepository) DeleteByID(ctx context.Context, id string) (deleted bool, err error) {
	ctx, op := tel.StartOperation(ctx, ur.telemetry, "DeleteByID", "user",
		attribute.String("db.operation", "DELETE"),
		attribute.String("user.id", id),
	)
	defer func() { op.End(err) }()

	query, args, err := ur.db.QueryBuilder.Delete("users").
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return false, err
	}

	result, err := ur.db.ExecContext(ctx, query, args...)

	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()

	return affected > 0, err
}

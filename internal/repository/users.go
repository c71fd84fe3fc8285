package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ueser-furina/noote-website/internal/entity"
)

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

type userRow struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r userRow) toEntity() entity.User {
	return entity.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
	}
}

func (r *Repo) CreateUser(ctx context.Context, username, email, passwordHash string) (entity.User, error) {
	sql, args, err := psql.Insert("users").
		Columns("username", "email", "password_hash").
		Values(username, email, passwordHash).
		Suffix("RETURNING id, username, email, password_hash, created_at").
		ToSql()
	if err != nil {
		return entity.User{}, fmt.Errorf("build create user query: %v", err)
	}

	var row userRow
	if err := pgxscan.Get(ctx, r.db, &row, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return entity.User{}, entity.ErrUserAlreadyExists
		}
		return entity.User{}, fmt.Errorf("create user: %v", err)
	}

	return row.toEntity(), nil
}

func (r *Repo) GetUserByUsername(ctx context.Context, username string) (entity.User, error) {
	sql, args, err := psql.Select("id", "username", "email", "password_hash", "created_at").
		From("users").
		Where(squirrel.Eq{"username": username}).
		ToSql()
	if err != nil {
		return entity.User{}, fmt.Errorf("build get user query: %v", err)
	}

	var row userRow
	if err := pgxscan.Get(ctx, r.db, &row, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.User{}, entity.ErrUserNotFound
		}
		return entity.User{}, fmt.Errorf("get user by username: %v", err)
	}

	return row.toEntity(), nil
}

func (r *Repo) GetUserByID(ctx context.Context, id int64) (entity.User, error) {
	sql, args, err := psql.Select("id", "username", "email", "password_hash", "created_at").
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return entity.User{}, fmt.Errorf("build get user query: %v", err)
	}

	var row userRow
	if err := pgxscan.Get(ctx, r.db, &row, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.User{}, entity.ErrUserNotFound
		}
		return entity.User{}, fmt.Errorf("get user by id: %v", err)
	}

	return row.toEntity(), nil
}

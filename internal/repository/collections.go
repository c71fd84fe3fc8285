package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/ueser-furina/noote-website/internal/entity"
)

type collectionRow struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	CoverImage  string    `db:"cover_image"`
	IsPublic    bool      `db:"is_public"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r collectionRow) toEntity() entity.Collection {
	return entity.Collection{
		ID:          r.ID,
		UserID:      r.UserID,
		Name:        r.Name,
		Description: r.Description,
		CoverImage:  r.CoverImage,
		IsPublic:    r.IsPublic,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type collectionMetaRow struct {
	collectionRow
	OwnerUsername string `db:"owner_username"`
	NoteCount     int    `db:"note_count"`
}

func (r collectionMetaRow) toEntity() entity.CollectionWithMeta {
	return entity.CollectionWithMeta{
		Collection:    r.collectionRow.toEntity(),
		OwnerUsername: r.OwnerUsername,
		NoteCount:     r.NoteCount,
	}
}

func collectionMetaRowsToEntity(rows []collectionMetaRow) []entity.CollectionWithMeta {
	collections := make([]entity.CollectionWithMeta, len(rows))
	for i, row := range rows {
		collections[i] = row.toEntity()
	}

	return collections
}

const collectionColumns = "id, user_id, name, description, cover_image, is_public, created_at, updated_at"

func collectionMetaSelect() squirrel.SelectBuilder {
	return psql.Select(
		"c.id", "c.user_id", "c.name", "c.description", "c.cover_image",
		"c.is_public", "c.created_at", "c.updated_at",
		"u.username AS owner_username",
		"(SELECT COUNT(*) FROM collection_notes cn WHERE cn.collection_id = c.id) AS note_count",
	).
		From("collections c").
		Join("users u ON u.id = c.user_id")
}

func (r *Repo) CreateCollection(ctx context.Context, userID int64, name, description string, isPublic bool) (entity.Collection, error) {
	sql, args, err := psql.Insert("collections").
		Columns("user_id", "name", "description", "is_public").
		Values(userID, name, description, isPublic).
		Suffix("RETURNING " + collectionColumns).
		ToSql()
	if err != nil {
		return entity.Collection{}, fmt.Errorf("build create collection query: %v", err)
	}

	var row collectionRow
	if err := pgxscan.Get(ctx, r.db, &row, sql, args...); err != nil {
		return entity.Collection{}, fmt.Errorf("create collection: %v", err)
	}

	return row.toEntity(), nil
}

func (r *Repo) GetCollection(ctx context.Context, id int64) (entity.Collection, error) {
	sql, args, err := psql.Select(
		"id", "user_id", "name", "description", "cover_image",
		"is_public", "created_at", "updated_at",
	).
		From("collections").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return entity.Collection{}, fmt.Errorf("build get collection query: %v", err)
	}

	var row collectionRow
	if err := pgxscan.Get(ctx, r.db, &row, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Collection{}, entity.ErrCollectionNotFound
		}
		return entity.Collection{}, fmt.Errorf("get collection: %v", err)
	}

	return row.toEntity(), nil
}

func (r *Repo) GetCollectionMeta(ctx context.Context, id int64) (entity.CollectionWithMeta, error) {
	sql, args, err := collectionMetaSelect().
		Where(squirrel.Eq{"c.id": id}).
		ToSql()
	if err != nil {
		return entity.CollectionWithMeta{}, fmt.Errorf("build get collection query: %v", err)
	}

	var row collectionMetaRow
	if err := pgxscan.Get(ctx, r.db, &row, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.CollectionWithMeta{}, entity.ErrCollectionNotFound
		}
		return entity.CollectionWithMeta{}, fmt.Errorf("get collection meta: %v", err)
	}

	return row.toEntity(), nil
}

func (r *Repo) ListPublicCollections(ctx context.Context, limit, offset uint64) ([]entity.CollectionWithMeta, error) {
	sql, args, err := collectionMetaSelect().
		Where(squirrel.Eq{"c.is_public": true}).
		OrderBy("c.created_at DESC").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list collections query: %v", err)
	}

	var rows []collectionMetaRow
	if err := pgxscan.Select(ctx, r.db, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list public collections: %v", err)
	}

	return collectionMetaRowsToEntity(rows), nil
}

func (r *Repo) GetCollectionsByUserID(ctx context.Context, userID int64) ([]entity.CollectionWithMeta, error) {
	sql, args, err := collectionMetaSelect().
		Where(squirrel.Eq{"c.user_id": userID}).
		OrderBy("c.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list collections query: %v", err)
	}

	var rows []collectionMetaRow
	if err := pgxscan.Select(ctx, r.db, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("get collections by user: %v", err)
	}

	return collectionMetaRowsToEntity(rows), nil
}

func (r *Repo) UpdateCollection(ctx context.Context, col entity.Collection) (entity.Collection, error) {
	sql, args, err := psql.Update("collections").
		Set("name", col.Name).
		Set("description", col.Description).
		Set("cover_image", col.CoverImage).
		Set("is_public", col.IsPublic).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": col.ID}).
		Suffix("RETURNING " + collectionColumns).
		ToSql()
	if err != nil {
		return entity.Collection{}, fmt.Errorf("build update collection query: %v", err)
	}

	var row collectionRow
	if err := pgxscan.Get(ctx, r.db, &row, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Collection{}, entity.ErrCollectionNotFound
		}
		return entity.Collection{}, fmt.Errorf("update collection: %v", err)
	}

	return row.toEntity(), nil
}

// DeleteCollection removes the collection; memberships go with it via the
// schema cascade.
func (r *Repo) DeleteCollection(ctx context.Context, id int64) error {
	sql, args, err := psql.Delete("collections").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete collection query: %v", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete collection: %v", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrCollectionNotFound
	}

	return nil
}

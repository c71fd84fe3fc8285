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
	"github.com/ueser-furina/noote-website/pkg/logger/slogx"
)

type noteRow struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	FileType  string    `db:"file_type"`
	IsPublic  bool      `db:"is_public"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r noteRow) toEntity() entity.Note {
	return entity.Note{
		ID:        r.ID,
		UserID:    r.UserID,
		Title:     r.Title,
		Content:   r.Content,
		FileType:  r.FileType,
		IsPublic:  r.IsPublic,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type noteOwnerRow struct {
	noteRow
	OwnerUsername string `db:"owner_username"`
}

func (r noteOwnerRow) toEntity() entity.NoteWithOwner {
	return entity.NoteWithOwner{
		Note:          r.noteRow.toEntity(),
		OwnerUsername: r.OwnerUsername,
	}
}

func noteOwnerRowsToEntity(rows []noteOwnerRow) []entity.NoteWithOwner {
	notes := make([]entity.NoteWithOwner, len(rows))
	for i, row := range rows {
		notes[i] = row.toEntity()
	}

	return notes
}

const noteColumns = "id, user_id, title, content, file_type, is_public, created_at, updated_at"

func noteOwnerSelect() squirrel.SelectBuilder {
	return psql.Select(
		"n.id", "n.user_id", "n.title", "n.content", "n.file_type",
		"n.is_public", "n.created_at", "n.updated_at",
		"u.username AS owner_username",
	).
		From("notes n").
		Join("users u ON u.id = n.user_id")
}

func (r *Repo) CreateNote(ctx context.Context, userID int64, title, content, fileType string, isPublic bool) (entity.Note, error) {
	sql, args, err := psql.Insert("notes").
		Columns("user_id", "title", "content", "file_type", "is_public").
		Values(userID, title, content, fileType, isPublic).
		Suffix("RETURNING " + noteColumns).
		ToSql()
	if err != nil {
		return entity.Note{}, fmt.Errorf("build create note query: %v", err)
	}

	var row noteRow
	if err := pgxscan.Get(ctx, r.db, &row, sql, args...); err != nil {
		return entity.Note{}, fmt.Errorf("create note: %v", err)
	}

	slogx.Debug(ctx, "success to create note", slogx.UserId(userID))

	return row.toEntity(), nil
}

func (r *Repo) GetNote(ctx context.Context, id int64) (entity.Note, error) {
	sql, args, err := psql.Select(
		"id", "user_id", "title", "content", "file_type",
		"is_public", "created_at", "updated_at",
	).
		From("notes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return entity.Note{}, fmt.Errorf("build get note query: %v", err)
	}

	var row noteRow
	if err := pgxscan.Get(ctx, r.db, &row, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Note{}, entity.ErrNoteNotFound
		}
		return entity.Note{}, fmt.Errorf("get note: %v", err)
	}

	return row.toEntity(), nil
}

func (r *Repo) GetNotesByUserID(ctx context.Context, userID int64) ([]entity.Note, error) {
	sql, args, err := psql.Select(
		"id", "user_id", "title", "content", "file_type",
		"is_public", "created_at", "updated_at",
	).
		From("notes").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get notes query: %v", err)
	}

	var rows []noteRow
	if err := pgxscan.Select(ctx, r.db, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("get notes by user: %v", err)
	}

	notes := make([]entity.Note, len(rows))
	for i, row := range rows {
		notes[i] = row.toEntity()
	}

	return notes, nil
}

func (r *Repo) ListPublicNotes(ctx context.Context, limit, offset uint64) ([]entity.NoteWithOwner, error) {
	sql, args, err := noteOwnerSelect().
		Where(squirrel.Eq{"n.is_public": true}).
		OrderBy("n.created_at DESC").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list public notes query: %v", err)
	}

	var rows []noteOwnerRow
	if err := pgxscan.Select(ctx, r.db, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list public notes: %v", err)
	}

	return noteOwnerRowsToEntity(rows), nil
}

func (r *Repo) SearchPublicNotes(ctx context.Context, query string) ([]entity.NoteWithOwner, error) {
	pattern := "%" + query + "%"

	sql, args, err := noteOwnerSelect().
		Where(squirrel.Eq{"n.is_public": true}).
		Where(squirrel.Or{
			squirrel.ILike{"n.title": pattern},
			squirrel.ILike{"n.content": pattern},
		}).
		OrderBy("n.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search notes query: %v", err)
	}

	var rows []noteOwnerRow
	if err := pgxscan.Select(ctx, r.db, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("search public notes: %v", err)
	}

	return noteOwnerRowsToEntity(rows), nil
}

func (r *Repo) SearchUserNotes(ctx context.Context, userID int64, query string) ([]entity.NoteWithOwner, error) {
	pattern := "%" + query + "%"

	sql, args, err := noteOwnerSelect().
		Where(squirrel.Eq{"n.user_id": userID}).
		Where(squirrel.Or{
			squirrel.ILike{"n.title": pattern},
			squirrel.ILike{"n.content": pattern},
		}).
		OrderBy("n.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search notes query: %v", err)
	}

	var rows []noteOwnerRow
	if err := pgxscan.Select(ctx, r.db, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("search user notes: %v", err)
	}

	return noteOwnerRowsToEntity(rows), nil
}

func (r *Repo) UpdateNote(ctx context.Context, note entity.Note) (entity.Note, error) {
	sql, args, err := psql.Update("notes").
		Set("title", note.Title).
		Set("content", note.Content).
		Set("is_public", note.IsPublic).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": note.ID}).
		Suffix("RETURNING " + noteColumns).
		ToSql()
	if err != nil {
		return entity.Note{}, fmt.Errorf("build update note query: %v", err)
	}

	var row noteRow
	if err := pgxscan.Get(ctx, r.db, &row, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Note{}, entity.ErrNoteNotFound
		}
		return entity.Note{}, fmt.Errorf("update note: %v", err)
	}

	return row.toEntity(), nil
}

func (r *Repo) DeleteNote(ctx context.Context, id int64) error {
	sql, args, err := psql.Delete("notes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete note query: %v", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete note: %v", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrNoteNotFound
	}

	return nil
}

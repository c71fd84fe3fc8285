package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/ueser-furina/noote-website/internal/entity"
	"github.com/ueser-furina/noote-website/pkg/logger/slogx"
)

type membershipRow struct {
	ID           int64     `db:"id"`
	CollectionID int64     `db:"collection_id"`
	NoteID       int64     `db:"note_id"`
	Position     int       `db:"position"`
	AddedAt      time.Time `db:"added_at"`
}

func (r membershipRow) toEntity() entity.CollectionNote {
	return entity.CollectionNote{
		ID:           r.ID,
		CollectionID: r.CollectionID,
		NoteID:       r.NoteID,
		Position:     r.Position,
		AddedAt:      r.AddedAt,
	}
}

// AddNoteToCollection appends the note at the current tail position.
func (r *Repo) AddNoteToCollection(ctx context.Context, collectionID, noteID int64) (entity.CollectionNote, error) {
	position := squirrel.Expr(
		"(SELECT COALESCE(MAX(position) + 1, 0) FROM collection_notes WHERE collection_id = ?)",
		collectionID,
	)

	sql, args, err := psql.Insert("collection_notes").
		Columns("collection_id", "note_id", "position").
		Values(collectionID, noteID, position).
		Suffix("RETURNING id, collection_id, note_id, position, added_at").
		ToSql()
	if err != nil {
		return entity.CollectionNote{}, fmt.Errorf("build add note query: %v", err)
	}

	var row membershipRow
	if err := pgxscan.Get(ctx, r.db, &row, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return entity.CollectionNote{}, entity.ErrNoteAlreadyInCollection
		}
		return entity.CollectionNote{}, fmt.Errorf("add note to collection: %v", err)
	}

	slogx.Debug(ctx, "success to add note to collection",
		slogx.CollectionId(collectionID), slogx.NoteId(noteID))

	return row.toEntity(), nil
}

func (r *Repo) RemoveNoteFromCollection(ctx context.Context, collectionID, noteID int64) error {
	sql, args, err := psql.Delete("collection_notes").
		Where(squirrel.Eq{"collection_id": collectionID, "note_id": noteID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build remove note query: %v", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("remove note from collection: %v", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrNoteNotInCollection
	}

	return nil
}

// UpdateNotePosition rewrites one membership's ordering key. Missing
// memberships are skipped silently; reorder payloads may reference notes
// that were removed concurrently.
func (r *Repo) UpdateNotePosition(ctx context.Context, collectionID, noteID int64, position int) error {
	sql, args, err := psql.Update("collection_notes").
		Set("position", position).
		Where(squirrel.Eq{"collection_id": collectionID, "note_id": noteID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update position query: %v", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("update note position: %v", err)
	}

	return nil
}

// GetCollectionNotes returns the member notes in ascending position order.
func (r *Repo) GetCollectionNotes(ctx context.Context, collectionID int64) ([]entity.NoteWithOwner, error) {
	sql, args, err := psql.Select(
		"n.id", "n.user_id", "n.title", "n.content", "n.file_type",
		"n.is_public", "n.created_at", "n.updated_at",
		"u.username AS owner_username",
	).
		From("collection_notes cn").
		Join("notes n ON n.id = cn.note_id").
		Join("users u ON u.id = n.user_id").
		Where(squirrel.Eq{"cn.collection_id": collectionID}).
		OrderBy("cn.position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build collection notes query: %v", err)
	}

	var rows []noteOwnerRow
	if err := pgxscan.Select(ctx, r.db, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("get collection notes: %v", err)
	}

	return noteOwnerRowsToEntity(rows), nil
}

// DeleteMembershipsByNote clears every membership referencing the note.
// Called from the note-delete transaction so plain SQL paths cannot leave
// dangling rows even without the schema cascade.
func (r *Repo) DeleteMembershipsByNote(ctx context.Context, noteID int64) error {
	sql, args, err := psql.Delete("collection_notes").
		Where(squirrel.Eq{"note_id": noteID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete memberships query: %v", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete memberships by note: %v", err)
	}

	return nil
}

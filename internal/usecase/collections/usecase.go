// Package collections manages named ordered groupings of notes and their
// memberships.
package collections

import (
	"context"
	"fmt"
	"strings"

	"github.com/ueser-furina/noote-website/internal/entity"
	"github.com/ueser-furina/noote-website/pkg/logger/slogx"
)

type collectionsRepository interface {
	CreateCollection(ctx context.Context, userID int64, name, description string, isPublic bool) (entity.Collection, error)
	GetCollection(ctx context.Context, id int64) (entity.Collection, error)
	GetCollectionMeta(ctx context.Context, id int64) (entity.CollectionWithMeta, error)
	ListPublicCollections(ctx context.Context, limit, offset uint64) ([]entity.CollectionWithMeta, error)
	GetCollectionsByUserID(ctx context.Context, userID int64) ([]entity.CollectionWithMeta, error)
	UpdateCollection(ctx context.Context, col entity.Collection) (entity.Collection, error)
	DeleteCollection(ctx context.Context, id int64) error

	GetNote(ctx context.Context, id int64) (entity.Note, error)
	AddNoteToCollection(ctx context.Context, collectionID, noteID int64) (entity.CollectionNote, error)
	RemoveNoteFromCollection(ctx context.Context, collectionID, noteID int64) error
	UpdateNotePosition(ctx context.Context, collectionID, noteID int64, position int) error
	GetCollectionNotes(ctx context.Context, collectionID int64) ([]entity.NoteWithOwner, error)
}

type transactor interface {
	RunInTx(ctx context.Context, f func(context.Context) error) error
}

//go:generate go run github.com/kazhuravlev/options-gen/cmd/options-gen@v0.55.2 -out-filename=usecase_options.gen.go -from-struct=Options
type Options struct {
	repo collectionsRepository `option:"mandatory" validate:"required"`
	tx   transactor            `option:"mandatory" validate:"required"`
}

type Usecase struct {
	Options
}

func New(opts Options) (*Usecase, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validate collections usecase options: %v", err)
	}

	return &Usecase{Options: opts}, nil
}

// UpdateParams carries the optional fields of a collection update.
type UpdateParams struct {
	Name        *string
	Description *string
	CoverImage  *string
	IsPublic    *bool
}

func (u *Usecase) Create(ctx context.Context, userID int64, name, description string, isPublic bool) (entity.Collection, error) {
	if strings.TrimSpace(name) == "" {
		return entity.Collection{}, fmt.Errorf("%w: name must not be empty", entity.ErrInvalidRequest)
	}

	col, err := u.repo.CreateCollection(ctx, userID, name, description, isPublic)
	if err != nil {
		return entity.Collection{}, fmt.Errorf("usecase create collection: %w", err)
	}

	slogx.Info(ctx, "success to create collection", slogx.UserId(userID))
	return col, nil
}

// Get returns one collection; private collections are readable by their
// owner only.
func (u *Usecase) Get(ctx context.Context, id, viewerID int64) (entity.CollectionWithMeta, error) {
	col, err := u.repo.GetCollectionMeta(ctx, id)
	if err != nil {
		return entity.CollectionWithMeta{}, fmt.Errorf("usecase get collection: %w", err)
	}

	if !col.IsPublic && col.UserID != viewerID {
		return entity.CollectionWithMeta{}, fmt.Errorf(
			"%w: collection %d is private", entity.ErrForbidden, id,
		)
	}

	return col, nil
}

func (u *Usecase) ListPublic(ctx context.Context, limit, offset uint64) ([]entity.CollectionWithMeta, error) {
	if limit == 0 || limit > 100 {
		limit = 20
	}

	cols, err := u.repo.ListPublicCollections(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("usecase list public collections: %w", err)
	}

	return cols, nil
}

func (u *Usecase) ListByUser(ctx context.Context, userID int64) ([]entity.CollectionWithMeta, error) {
	cols, err := u.repo.GetCollectionsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("usecase list collections by user: %w", err)
	}

	return cols, nil
}

func (u *Usecase) Update(ctx context.Context, userID, id int64, params UpdateParams) (entity.Collection, error) {
	col, err := u.ownedCollection(ctx, userID, id)
	if err != nil {
		return entity.Collection{}, fmt.Errorf("usecase update collection: %w", err)
	}

	if params.Name != nil {
		if strings.TrimSpace(*params.Name) == "" {
			return entity.Collection{}, fmt.Errorf("%w: name must not be empty", entity.ErrInvalidRequest)
		}
		col.Name = *params.Name
	}
	if params.Description != nil {
		col.Description = *params.Description
	}
	if params.CoverImage != nil {
		col.CoverImage = *params.CoverImage
	}
	if params.IsPublic != nil {
		col.IsPublic = *params.IsPublic
	}

	updated, err := u.repo.UpdateCollection(ctx, col)
	if err != nil {
		return entity.Collection{}, fmt.Errorf("usecase update collection: %w", err)
	}

	return updated, nil
}

func (u *Usecase) Delete(ctx context.Context, userID, id int64) error {
	if _, err := u.ownedCollection(ctx, userID, id); err != nil {
		return fmt.Errorf("usecase delete collection: %w", err)
	}

	if err := u.repo.DeleteCollection(ctx, id); err != nil {
		return fmt.Errorf("usecase delete collection: %w", err)
	}

	slogx.Info(ctx, "success to delete collection", slogx.UserId(userID), slogx.CollectionId(id))
	return nil
}

// AddNote appends an existing note to the owner's collection.
func (u *Usecase) AddNote(ctx context.Context, userID, collectionID, noteID int64) (entity.CollectionNote, error) {
	if _, err := u.ownedCollection(ctx, userID, collectionID); err != nil {
		return entity.CollectionNote{}, fmt.Errorf("usecase add note: %w", err)
	}

	if _, err := u.repo.GetNote(ctx, noteID); err != nil {
		return entity.CollectionNote{}, fmt.Errorf("usecase add note: %w", err)
	}

	membership, err := u.repo.AddNoteToCollection(ctx, collectionID, noteID)
	if err != nil {
		return entity.CollectionNote{}, fmt.Errorf("usecase add note: %w", err)
	}

	return membership, nil
}

func (u *Usecase) RemoveNote(ctx context.Context, userID, collectionID, noteID int64) error {
	if _, err := u.ownedCollection(ctx, userID, collectionID); err != nil {
		return fmt.Errorf("usecase remove note: %w", err)
	}

	if err := u.repo.RemoveNoteFromCollection(ctx, collectionID, noteID); err != nil {
		return fmt.Errorf("usecase remove note: %w", err)
	}

	return nil
}

// Reorder rewrites membership positions to match the given note id order:
// positions become 0..n-1 in list order. Ids not in the collection are
// skipped.
func (u *Usecase) Reorder(ctx context.Context, userID, collectionID int64, noteIDs []int64) error {
	if len(noteIDs) == 0 {
		return fmt.Errorf("%w: note id list must not be empty", entity.ErrInvalidRequest)
	}

	if _, err := u.ownedCollection(ctx, userID, collectionID); err != nil {
		return fmt.Errorf("usecase reorder: %w", err)
	}

	err := u.tx.RunInTx(ctx, func(ctx context.Context) error {
		for position, noteID := range noteIDs {
			if err := u.repo.UpdateNotePosition(ctx, collectionID, noteID, position); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("usecase reorder: %w", err)
	}

	slogx.Info(ctx, "success to reorder collection", slogx.CollectionId(collectionID))
	return nil
}

// Notes returns the member notes visible to the viewer in position order.
// In a public collection private notes of other users are skipped; a
// private collection shows everything to its owner and nothing to others.
func (u *Usecase) Notes(ctx context.Context, collectionID, viewerID int64) ([]entity.NoteWithOwner, error) {
	col, err := u.repo.GetCollection(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("usecase collection notes: %w", err)
	}

	if !col.IsPublic && col.UserID != viewerID {
		return nil, fmt.Errorf("%w: collection %d is private", entity.ErrForbidden, collectionID)
	}

	rows, err := u.repo.GetCollectionNotes(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("usecase collection notes: %w", err)
	}

	if !col.IsPublic {
		return rows, nil
	}

	visible := make([]entity.NoteWithOwner, 0, len(rows))
	for _, row := range rows {
		if row.IsPublic || (viewerID != 0 && row.UserID == viewerID) {
			visible = append(visible, row)
		}
	}

	return visible, nil
}

func (u *Usecase) ownedCollection(ctx context.Context, userID, id int64) (entity.Collection, error) {
	col, err := u.repo.GetCollection(ctx, id)
	if err != nil {
		return entity.Collection{}, err
	}
	if col.UserID != userID {
		return entity.Collection{}, fmt.Errorf(
			"%w: only the owner can modify collection %d", entity.ErrForbidden, id,
		)
	}

	return col, nil
}

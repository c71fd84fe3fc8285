package notes

import (
	"context"
	"fmt"
	"strings"

	"github.com/imkira/go-observer"

	"github.com/ueser-furina/noote-website/internal/entity"
	"github.com/ueser-furina/noote-website/pkg/logger/slogx"
)

type notesRepository interface {
	CreateNote(ctx context.Context, userID int64, title, content, fileType string, isPublic bool) (entity.Note, error)
	GetNote(ctx context.Context, id int64) (entity.Note, error)
	GetNotesByUserID(ctx context.Context, userID int64) ([]entity.Note, error)
	ListPublicNotes(ctx context.Context, limit, offset uint64) ([]entity.NoteWithOwner, error)
	SearchPublicNotes(ctx context.Context, query string) ([]entity.NoteWithOwner, error)
	SearchUserNotes(ctx context.Context, userID int64, query string) ([]entity.NoteWithOwner, error)
	UpdateNote(ctx context.Context, note entity.Note) (entity.Note, error)
	DeleteNote(ctx context.Context, id int64) error
	DeleteMembershipsByNote(ctx context.Context, noteID int64) error
}

type transactor interface {
	RunInTx(ctx context.Context, f func(context.Context) error) error
}

//go:generate go run github.com/kazhuravlev/options-gen/cmd/options-gen@v0.55.2 -out-filename=usecase_options.gen.go -from-struct=Options
type Options struct {
	repo notesRepository `option:"mandatory" validate:"required"`
	tx   transactor      `option:"mandatory" validate:"required"`
}

type Usecase struct {
	Options
	observer observer.Property
}

func New(opts Options) (*Usecase, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validate notes usecase options: %v", err)
	}

	prop := observer.NewProperty(entity.Note{})

	return &Usecase{Options: opts, observer: prop}, nil
}

// UpdateParams carries the optional fields of a note update; nil means keep.
type UpdateParams struct {
	Title    *string
	Content  *string
	IsPublic *bool
}

func (u *Usecase) CreateNote(ctx context.Context, userID int64, title, content, fileType string, isPublic bool) (entity.Note, error) {
	if strings.TrimSpace(title) == "" {
		return entity.Note{}, fmt.Errorf("%w: title must not be empty", entity.ErrInvalidRequest)
	}
	if fileType == "" {
		fileType = "md"
	}

	note, err := u.repo.CreateNote(ctx, userID, title, content, fileType, isPublic)
	if err != nil {
		return entity.Note{}, fmt.Errorf("usecase create note: %w", err)
	}

	u.observer.Update(note)

	slogx.Info(ctx, "success to create note", slogx.UserId(userID))
	return note, nil
}

// GetNote returns one note; private notes are readable by their owner only.
func (u *Usecase) GetNote(ctx context.Context, id, viewerID int64) (entity.Note, error) {
	note, err := u.repo.GetNote(ctx, id)
	if err != nil {
		return entity.Note{}, fmt.Errorf("usecase get note: %w", err)
	}

	if !note.IsPublic && note.UserID != viewerID {
		return entity.Note{}, fmt.Errorf("%w: note %d is private", entity.ErrForbidden, id)
	}

	return note, nil
}

func (u *Usecase) GetNotesByUserID(ctx context.Context, userID int64) ([]entity.Note, error) {
	notes, err := u.repo.GetNotesByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("usecase get notes by user: %w", err)
	}

	return notes, nil
}

func (u *Usecase) ListPublicNotes(ctx context.Context, limit, offset uint64) ([]entity.NoteWithOwner, error) {
	if limit == 0 || limit > 100 {
		limit = 20
	}

	notes, err := u.repo.ListPublicNotes(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("usecase list public notes: %w", err)
	}

	return notes, nil
}

// SearchNotes looks for the query in titles and contents. Scope "my" limits
// the search to the viewer's own notes and requires authentication.
func (u *Usecase) SearchNotes(ctx context.Context, query, scope string, viewerID int64) ([]entity.NoteWithOwner, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: search query must not be empty", entity.ErrInvalidRequest)
	}

	switch scope {
	case "", "public":
		notes, err := u.repo.SearchPublicNotes(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("usecase search notes: %w", err)
		}
		return notes, nil

	case "my":
		if viewerID == 0 {
			return nil, fmt.Errorf("%w: sign in to search own notes", entity.ErrUnauthenticated)
		}
		notes, err := u.repo.SearchUserNotes(ctx, viewerID, query)
		if err != nil {
			return nil, fmt.Errorf("usecase search notes: %w", err)
		}
		return notes, nil
	}

	return nil, fmt.Errorf("%w: unknown search scope %q", entity.ErrInvalidRequest, scope)
}

func (u *Usecase) UpdateNote(ctx context.Context, userID, id int64, params UpdateParams) (entity.Note, error) {
	note, err := u.repo.GetNote(ctx, id)
	if err != nil {
		return entity.Note{}, fmt.Errorf("usecase update note: %w", err)
	}
	if note.UserID != userID {
		return entity.Note{}, fmt.Errorf("%w: only the owner can update a note", entity.ErrForbidden)
	}

	if params.Title != nil {
		if strings.TrimSpace(*params.Title) == "" {
			return entity.Note{}, fmt.Errorf("%w: title must not be empty", entity.ErrInvalidRequest)
		}
		note.Title = *params.Title
	}
	if params.Content != nil {
		note.Content = *params.Content
	}
	if params.IsPublic != nil {
		note.IsPublic = *params.IsPublic
	}

	updated, err := u.repo.UpdateNote(ctx, note)
	if err != nil {
		return entity.Note{}, fmt.Errorf("usecase update note: %w", err)
	}

	return updated, nil
}

// DeleteNote removes the note together with its collection memberships in
// one transaction.
func (u *Usecase) DeleteNote(ctx context.Context, userID, id int64) error {
	note, err := u.repo.GetNote(ctx, id)
	if err != nil {
		return fmt.Errorf("usecase delete note: %w", err)
	}
	if note.UserID != userID {
		return fmt.Errorf("%w: only the owner can delete a note", entity.ErrForbidden)
	}

	err = u.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := u.repo.DeleteMembershipsByNote(ctx, id); err != nil {
			return err
		}

		return u.repo.DeleteNote(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("usecase delete note: %w", err)
	}

	slogx.Info(ctx, "success to delete note", slogx.UserId(userID), slogx.NoteId(id))
	return nil
}

// SubscribeToEvents streams created notes until the context is done.
func (u *Usecase) SubscribeToEvents(ctx context.Context, userID int64) (<-chan entity.CreateNoteEvent, error) {
	// ignore user id for simplicity

	stream := u.observer.Observe()

	result := make(chan entity.CreateNoteEvent)
	go func() {
		defer close(result)
		for {
			select {
			case <-ctx.Done():
				return

			case <-stream.Changes():
				note := stream.Next().(entity.Note)

				select {
				case <-ctx.Done():
					return
				case result <- entity.CreateNoteEvent{CreatedNote: note}:
				}
			}
		}
	}()

	return result, nil
}

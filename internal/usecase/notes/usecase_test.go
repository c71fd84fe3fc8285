package notes

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ueser-furina/noote-website/internal/entity"
)

type stubRepo struct {
	notes  map[int64]entity.Note
	nextID int64

	searchPublicCalls int
	searchUserCalls   int
	deletions         []string
}

func newStubRepo() *stubRepo {
	return &stubRepo{notes: map[int64]entity.Note{}, nextID: 1}
}

func (s *stubRepo) CreateNote(_ context.Context, userID int64, title, content, fileType string, isPublic bool) (entity.Note, error) {
	note := entity.Note{ID: s.nextID, UserID: userID, Title: title, Content: content, FileType: fileType, IsPublic: isPublic}
	s.nextID++
	s.notes[note.ID] = note
	return note, nil
}

func (s *stubRepo) GetNote(_ context.Context, id int64) (entity.Note, error) {
	note, ok := s.notes[id]
	if !ok {
		return entity.Note{}, entity.ErrNoteNotFound
	}
	return note, nil
}

func (s *stubRepo) GetNotesByUserID(context.Context, int64) ([]entity.Note, error) {
	return nil, nil
}

func (s *stubRepo) ListPublicNotes(context.Context, uint64, uint64) ([]entity.NoteWithOwner, error) {
	return nil, nil
}

func (s *stubRepo) SearchPublicNotes(context.Context, string) ([]entity.NoteWithOwner, error) {
	s.searchPublicCalls++
	return nil, nil
}

func (s *stubRepo) SearchUserNotes(context.Context, int64, string) ([]entity.NoteWithOwner, error) {
	s.searchUserCalls++
	return nil, nil
}

func (s *stubRepo) UpdateNote(_ context.Context, note entity.Note) (entity.Note, error) {
	s.notes[note.ID] = note
	return note, nil
}

func (s *stubRepo) DeleteNote(_ context.Context, id int64) error {
	delete(s.notes, id)
	s.deletions = append(s.deletions, "note")
	return nil
}

func (s *stubRepo) DeleteMembershipsByNote(context.Context, int64) error {
	s.deletions = append(s.deletions, "memberships")
	return nil
}

type stubTx struct{ calls int }

func (s *stubTx) RunInTx(ctx context.Context, f func(context.Context) error) error {
	s.calls++
	return f(ctx)
}

func newTestUsecase(t *testing.T) (*Usecase, *stubRepo, *stubTx) {
	t.Helper()

	repo := newStubRepo()
	tx := &stubTx{}
	uc, err := New(NewOptions(repo, tx))
	require.NoError(t, err)

	return uc, repo, tx
}

func TestCreateNote(t *testing.T) {
	uc, _, _ := newTestUsecase(t)

	note, err := uc.CreateNote(context.Background(), 1, "Title", "body", "", true)
	require.NoError(t, err)

	assert.Equal(t, "md", note.FileType)
	assert.True(t, note.IsPublic)
}

func TestCreateNote_EmptyTitle(t *testing.T) {
	uc, _, _ := newTestUsecase(t)

	_, err := uc.CreateNote(context.Background(), 1, "  ", "body", "md", true)
	assert.ErrorIs(t, err, entity.ErrInvalidRequest)
}

func TestCreateNote_PublishesEvent(t *testing.T) {
	uc, _, _ := newTestUsecase(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := uc.SubscribeToEvents(ctx, 1)
	require.NoError(t, err)

	created, err := uc.CreateNote(context.Background(), 1, "Title", "body", "md", true)
	require.NoError(t, err)

	select {
	case event := <-events:
		assert.Equal(t, created.ID, event.CreatedNote.ID)
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestGetNote_Visibility(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	repo.notes[1] = entity.Note{ID: 1, UserID: 1, IsPublic: false}

	t.Run("owner", func(t *testing.T) {
		_, err := uc.GetNote(context.Background(), 1, 1)
		assert.NoError(t, err)
	})

	t.Run("other user", func(t *testing.T) {
		_, err := uc.GetNote(context.Background(), 1, 2)
		assert.ErrorIs(t, err, entity.ErrForbidden)
	})

	t.Run("unknown note", func(t *testing.T) {
		_, err := uc.GetNote(context.Background(), 99, 1)
		assert.ErrorIs(t, err, entity.ErrNoteNotFound)
	})
}

func TestSearchNotes_Scopes(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)

	_, err := uc.SearchNotes(context.Background(), "query", "", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.searchPublicCalls)

	_, err = uc.SearchNotes(context.Background(), "query", "public", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.searchPublicCalls)

	_, err = uc.SearchNotes(context.Background(), "query", "my", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.searchUserCalls)
}

func TestSearchNotes_Errors(t *testing.T) {
	uc, _, _ := newTestUsecase(t)

	t.Run("empty query", func(t *testing.T) {
		_, err := uc.SearchNotes(context.Background(), "  ", "", 0)
		assert.ErrorIs(t, err, entity.ErrInvalidRequest)
	})

	t.Run("my scope without auth", func(t *testing.T) {
		_, err := uc.SearchNotes(context.Background(), "query", "my", 0)
		assert.ErrorIs(t, err, entity.ErrUnauthenticated)
	})

	t.Run("unknown scope", func(t *testing.T) {
		_, err := uc.SearchNotes(context.Background(), "query", "everything", 0)
		assert.ErrorIs(t, err, entity.ErrInvalidRequest)
	})
}

func TestUpdateNote_OwnerOnly(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	repo.notes[1] = entity.Note{ID: 1, UserID: 1, Title: "old"}

	title := "new"
	_, err := uc.UpdateNote(context.Background(), 2, 1, UpdateParams{Title: &title})
	assert.ErrorIs(t, err, entity.ErrForbidden)

	updated, err := uc.UpdateNote(context.Background(), 1, 1, UpdateParams{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Title)
}

func TestDeleteNote_CleansMembershipsInTx(t *testing.T) {
	uc, repo, tx := newTestUsecase(t)
	repo.notes[1] = entity.Note{ID: 1, UserID: 1}

	err := uc.DeleteNote(context.Background(), 1, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, []string{"memberships", "note"}, repo.deletions)
}

func TestDeleteNote_OwnerOnly(t *testing.T) {
	uc, repo, tx := newTestUsecase(t)
	repo.notes[1] = entity.Note{ID: 1, UserID: 1}

	err := uc.DeleteNote(context.Background(), 2, 1)
	assert.ErrorIs(t, err, entity.ErrForbidden)
	assert.Zero(t, tx.calls)
}

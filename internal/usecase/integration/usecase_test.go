package integration

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ueser-furina/noote-website/internal/entity"
)

type stubRepo struct {
	col       entity.Collection
	colErr    error
	notes     []entity.NoteWithOwner
	notesErr  error
	notesCall int
}

func (s *stubRepo) GetCollection(context.Context, int64) (entity.Collection, error) {
	return s.col, s.colErr
}

func (s *stubRepo) GetCollectionNotes(context.Context, int64) ([]entity.NoteWithOwner, error) {
	s.notesCall++
	return s.notes, s.notesErr
}

type stubGenerator struct {
	prompts []string
	text    string
	err     error
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.text, s.err
}

func newTestUsecase(t *testing.T, repo *stubRepo, gen *stubGenerator) (*Usecase, *int) {
	t.Helper()

	factoryCalls := 0
	uc, err := New(NewOptions(repo, func(apiKey string) (Generator, error) {
		factoryCalls++
		if apiKey == "" {
			return nil, entity.ErrMissingAPIKey
		}
		return gen, nil
	}))
	require.NoError(t, err)

	return uc, &factoryCalls
}

func member(id, userID int64, title string, public bool) entity.NoteWithOwner {
	return entity.NoteWithOwner{
		Note: entity.Note{ID: id, UserID: userID, Title: title, Content: title + " content", IsPublic: public},
	}
}

func TestIntegrate_HappyPath(t *testing.T) {
	repo := &stubRepo{
		col: entity.Collection{ID: 10, UserID: 1, IsPublic: true},
		notes: []entity.NoteWithOwner{
			member(1, 1, "Alpha", true),
			member(2, 1, "Beta", true),
			member(3, 1, "Gamma", true),
		},
	}
	gen := &stubGenerator{text: "MERGED"}
	uc, _ := newTestUsecase(t, repo, gen)

	result, err := uc.Integrate(context.Background(), 10, 0, "", "key")
	require.NoError(t, err)

	assert.Equal(t, "MERGED", result.IntegratedContent)
	assert.Equal(t, 3, result.NoteCount)
	assert.False(t, result.CreatedAt.IsZero())

	require.Len(t, gen.prompts, 1)
	prompt := gen.prompts[0]
	assert.Less(t, strings.Index(prompt, "Alpha"), strings.Index(prompt, "Beta"))
	assert.Less(t, strings.Index(prompt, "Beta"), strings.Index(prompt, "Gamma"))
}

func TestIntegrate_CustomPrompt(t *testing.T) {
	repo := &stubRepo{
		col:   entity.Collection{ID: 10, UserID: 1, IsPublic: true},
		notes: []entity.NoteWithOwner{member(1, 1, "Alpha", true)},
	}
	gen := &stubGenerator{text: "MERGED"}
	uc, _ := newTestUsecase(t, repo, gen)

	_, err := uc.Integrate(context.Background(), 10, 0, "Keep it short.", "key")
	require.NoError(t, err)

	require.Len(t, gen.prompts, 1)
	assert.True(t, strings.HasPrefix(gen.prompts[0], "Keep it short."))
}

func TestIntegrate_PrivateCollectionForbidden(t *testing.T) {
	repo := &stubRepo{
		col:   entity.Collection{ID: 10, UserID: 1, IsPublic: false},
		notes: []entity.NoteWithOwner{member(1, 1, "Alpha", true)},
	}
	gen := &stubGenerator{text: "MERGED"}
	uc, factoryCalls := newTestUsecase(t, repo, gen)

	for _, viewerID := range []int64{0, 2} {
		_, err := uc.Integrate(context.Background(), 10, viewerID, "", "key")
		assert.ErrorIs(t, err, entity.ErrForbidden)
	}

	// Rejection happens before membership lookup and provider use.
	assert.Zero(t, repo.notesCall)
	assert.Zero(t, *factoryCalls)
	assert.Empty(t, gen.prompts)
}

func TestIntegrate_PrivateCollectionOwner(t *testing.T) {
	repo := &stubRepo{
		col: entity.Collection{ID: 10, UserID: 1, IsPublic: false},
		notes: []entity.NoteWithOwner{
			member(1, 1, "Alpha", false),
			member(2, 1, "Beta", true),
		},
	}
	gen := &stubGenerator{text: "MERGED"}
	uc, _ := newTestUsecase(t, repo, gen)

	result, err := uc.Integrate(context.Background(), 10, 1, "", "key")
	require.NoError(t, err)
	assert.Equal(t, 2, result.NoteCount)
}

func TestIntegrate_FiltersInvisibleNotes(t *testing.T) {
	repo := &stubRepo{
		col: entity.Collection{ID: 10, UserID: 1, IsPublic: true},
		notes: []entity.NoteWithOwner{
			member(1, 1, "Visible", true),
			member(2, 2, "Hidden", false),
		},
	}
	gen := &stubGenerator{text: "MERGED"}
	uc, _ := newTestUsecase(t, repo, gen)

	result, err := uc.Integrate(context.Background(), 10, 0, "", "key")
	require.NoError(t, err)

	assert.Equal(t, 1, result.NoteCount)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Visible")
	assert.NotContains(t, gen.prompts[0], "Hidden")
}

func TestIntegrate_EmptyCollection(t *testing.T) {
	repo := &stubRepo{col: entity.Collection{ID: 10, UserID: 1, IsPublic: true}}
	gen := &stubGenerator{text: "MERGED"}
	uc, factoryCalls := newTestUsecase(t, repo, gen)

	_, err := uc.Integrate(context.Background(), 10, 0, "", "key")
	assert.ErrorIs(t, err, entity.ErrNoIntegrableNotes)
	assert.Zero(t, *factoryCalls)
}

func TestIntegrate_AllNotesFilteredOut(t *testing.T) {
	repo := &stubRepo{
		col:   entity.Collection{ID: 10, UserID: 1, IsPublic: true},
		notes: []entity.NoteWithOwner{member(1, 2, "Hidden", false)},
	}
	gen := &stubGenerator{text: "MERGED"}
	uc, factoryCalls := newTestUsecase(t, repo, gen)

	_, err := uc.Integrate(context.Background(), 10, 0, "", "key")
	assert.ErrorIs(t, err, entity.ErrNoIntegrableNotes)
	assert.Zero(t, *factoryCalls)
	assert.Empty(t, gen.prompts)
}

func TestIntegrate_MissingAPIKey(t *testing.T) {
	repo := &stubRepo{
		col:   entity.Collection{ID: 10, UserID: 1, IsPublic: true},
		notes: []entity.NoteWithOwner{member(1, 1, "Alpha", true)},
	}
	gen := &stubGenerator{text: "MERGED"}
	uc, _ := newTestUsecase(t, repo, gen)

	_, err := uc.Integrate(context.Background(), 10, 0, "", "")
	assert.ErrorIs(t, err, entity.ErrMissingAPIKey)
	assert.Empty(t, gen.prompts)
}

func TestIntegrate_UnknownCollection(t *testing.T) {
	repo := &stubRepo{colErr: entity.ErrCollectionNotFound}
	gen := &stubGenerator{text: "MERGED"}
	uc, _ := newTestUsecase(t, repo, gen)

	_, err := uc.Integrate(context.Background(), 99, 0, "", "key")
	assert.ErrorIs(t, err, entity.ErrCollectionNotFound)
}

func TestIntegrate_ProviderFailure(t *testing.T) {
	repo := &stubRepo{
		col:   entity.Collection{ID: 10, UserID: 1, IsPublic: true},
		notes: []entity.NoteWithOwner{member(1, 1, "Alpha", true)},
	}
	gen := &stubGenerator{err: entity.ErrProvider}
	uc, _ := newTestUsecase(t, repo, gen)

	_, err := uc.Integrate(context.Background(), 10, 0, "", "key")
	assert.ErrorIs(t, err, entity.ErrProvider)
}

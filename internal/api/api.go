// Package api exposes the application over HTTP with a JSON body on every
// response.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ueser-furina/noote-website/internal/entity"
	"github.com/ueser-furina/noote-website/internal/usecase/collections"
	"github.com/ueser-furina/noote-website/internal/usecase/notes"
	"github.com/ueser-furina/noote-website/pkg/logger/slogx"
)

type authUsecase interface {
	Register(ctx context.Context, username, email, password string) (entity.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	Authenticate(ctx context.Context, token string) (entity.User, error)
}

type notesUsecase interface {
	CreateNote(ctx context.Context, userID int64, title, content, fileType string, isPublic bool) (entity.Note, error)
	GetNote(ctx context.Context, id, viewerID int64) (entity.Note, error)
	GetNotesByUserID(ctx context.Context, userID int64) ([]entity.Note, error)
	ListPublicNotes(ctx context.Context, limit, offset uint64) ([]entity.NoteWithOwner, error)
	SearchNotes(ctx context.Context, query, scope string, viewerID int64) ([]entity.NoteWithOwner, error)
	UpdateNote(ctx context.Context, userID, id int64, params notes.UpdateParams) (entity.Note, error)
	DeleteNote(ctx context.Context, userID, id int64) error
	SubscribeToEvents(ctx context.Context, userID int64) (<-chan entity.CreateNoteEvent, error)
}

type collectionsUsecase interface {
	Create(ctx context.Context, userID int64, name, description string, isPublic bool) (entity.Collection, error)
	Get(ctx context.Context, id, viewerID int64) (entity.CollectionWithMeta, error)
	ListPublic(ctx context.Context, limit, offset uint64) ([]entity.CollectionWithMeta, error)
	ListByUser(ctx context.Context, userID int64) ([]entity.CollectionWithMeta, error)
	Update(ctx context.Context, userID, id int64, params collections.UpdateParams) (entity.Collection, error)
	Delete(ctx context.Context, userID, id int64) error
	AddNote(ctx context.Context, userID, collectionID, noteID int64) (entity.CollectionNote, error)
	RemoveNote(ctx context.Context, userID, collectionID, noteID int64) error
	Reorder(ctx context.Context, userID, collectionID int64, noteIDs []int64) error
	Notes(ctx context.Context, collectionID, viewerID int64) ([]entity.NoteWithOwner, error)
}

type integrationUsecase interface {
	Integrate(ctx context.Context, collectionID, viewerID int64, customPrompt, apiKey string) (entity.IntegrationResult, error)
}

//go:generate go run github.com/kazhuravlev/options-gen/cmd/options-gen@v0.55.2 -out-filename=api_options.gen.go -from-struct=Options
type Options struct {
	auth        authUsecase        `option:"mandatory" validate:"required"`
	notes       notesUsecase       `option:"mandatory" validate:"required"`
	collections collectionsUsecase `option:"mandatory" validate:"required"`
	integration integrationUsecase `option:"mandatory" validate:"required"`
}

type Handler struct {
	Options
}

func New(opts Options) (*Handler, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validate api options: %v", err)
	}

	return &Handler{Options: opts}, nil
}

// Router builds the route tree under /api/v1.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(slogx.Middleware)

	r.Get("/", h.welcome)
	r.Get("/health", h.health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", h.register)
		r.Post("/auth/login", h.login)

		r.Route("/notes", func(r chi.Router) {
			r.With(h.authOptional).Get("/", h.listPublicNotes)
			r.With(h.authOptional).Get("/search", h.searchNotes)
			r.With(h.authRequired).Get("/my", h.listMyNotes)
			r.With(h.authRequired).Post("/", h.createNote)
			r.With(h.authRequired).Get("/events", h.noteEvents)
			r.With(h.authOptional).Get("/{id}", h.getNote)
			r.With(h.authRequired).Put("/{id}", h.updateNote)
			r.With(h.authRequired).Delete("/{id}", h.deleteNote)
		})

		r.Route("/collections", func(r chi.Router) {
			r.Get("/", h.listPublicCollections)
			r.With(h.authRequired).Get("/my", h.listMyCollections)
			r.With(h.authRequired).Post("/", h.createCollection)
			r.With(h.authOptional).Get("/{id}", h.getCollection)
			r.With(h.authRequired).Put("/{id}", h.updateCollection)
			r.With(h.authRequired).Delete("/{id}", h.deleteCollection)
			r.With(h.authOptional).Get("/{id}/notes", h.collectionNotes)
			r.With(h.authRequired).Post("/{id}/notes", h.addNoteToCollection)
			r.With(h.authRequired).Delete("/{id}/notes/{noteID}", h.removeNoteFromCollection)
			r.With(h.authRequired).Put("/{id}/notes/reorder", h.reorderCollection)
			r.With(h.authOptional).Post("/{id}/integrate", h.integrateCollection)
		})
	})

	return r
}

func (h *Handler) welcome(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Noote API"})
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

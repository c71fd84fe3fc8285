// Package integration merges a collection's notes into one document through
// an external text generation provider.
package integration

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ueser-furina/noote-website/internal/entity"
	"github.com/ueser-furina/noote-website/pkg/logger/slogx"
)

type collectionsRepository interface {
	GetCollection(ctx context.Context, id int64) (entity.Collection, error)
	GetCollectionNotes(ctx context.Context, collectionID int64) ([]entity.NoteWithOwner, error)
}

// Generator is the narrow provider capability the orchestrator needs.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFactory builds a Generator for one caller-supplied API key. It
// fails with entity.ErrMissingAPIKey when the key is empty. A fresh client
// per call keeps concurrent requests with different credentials apart.
type GeneratorFactory func(apiKey string) (Generator, error)

//go:generate go run github.com/kazhuravlev/options-gen/cmd/options-gen@v0.55.2 -out-filename=usecase_options.gen.go -from-struct=Options
type Options struct {
	repo         collectionsRepository `option:"mandatory" validate:"required"`
	newGenerator GeneratorFactory      `option:"mandatory" validate:"required"`
}

type Usecase struct {
	Options
}

func New(opts Options) (*Usecase, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validate integration usecase options: %v", err)
	}

	return &Usecase{Options: opts}, nil
}

// Integrate runs the whole pipeline for one collection: permission check,
// ordered member resolution, visibility filtering, prompt formatting and a
// single provider call. viewerID 0 means anonymous; customPrompt "" selects
// the built-in instruction. All-or-nothing: no partial results.
func (u *Usecase) Integrate(
	ctx context.Context,
	collectionID int64,
	viewerID int64,
	customPrompt string,
	apiKey string,
) (entity.IntegrationResult, error) {
	col, err := u.repo.GetCollection(ctx, collectionID)
	if err != nil {
		return entity.IntegrationResult{}, fmt.Errorf("integrate: get collection: %w", err)
	}

	if !col.IsPublic && (viewerID == 0 || viewerID != col.UserID) {
		return entity.IntegrationResult{}, fmt.Errorf(
			"%w: collection %d is private", entity.ErrForbidden, col.ID,
		)
	}

	rows, err := u.repo.GetCollectionNotes(ctx, collectionID)
	if err != nil {
		return entity.IntegrationResult{}, fmt.Errorf("integrate: get collection notes: %w", err)
	}
	if len(rows) == 0 {
		return entity.IntegrationResult{}, fmt.Errorf(
			"%w: collection has no notes", entity.ErrNoIntegrableNotes,
		)
	}

	notes := make([]entity.Note, len(rows))
	for i, row := range rows {
		notes[i] = row.Note
	}

	visible, err := VisibleNotes(col, notes, viewerID)
	if err != nil {
		return entity.IntegrationResult{}, err
	}
	if len(visible) == 0 {
		return entity.IntegrationResult{}, fmt.Errorf(
			"%w: no member notes are visible to the viewer", entity.ErrNoIntegrableNotes,
		)
	}

	gen, err := u.newGenerator(apiKey)
	if err != nil {
		return entity.IntegrationResult{}, err
	}

	text, err := gen.Generate(ctx, BuildPrompt(visible, customPrompt))
	if err != nil {
		return entity.IntegrationResult{}, err
	}

	slogx.Info(ctx, "success to integrate collection",
		slogx.CollectionId(collectionID), slog.Int("note_count", len(visible)))

	return entity.IntegrationResult{
		IntegratedContent: text,
		NoteCount:         len(visible),
		CreatedAt:         time.Now().UTC(),
	}, nil
}

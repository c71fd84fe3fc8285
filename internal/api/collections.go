package api

import (
	"net/http"
	"time"

	"github.com/ueser-furina/noote-website/internal/ctxtr"
	"github.com/ueser-furina/noote-website/internal/entity"
	"github.com/ueser-furina/noote-website/internal/usecase/collections"
)

type createCollectionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPublic    *bool  `json:"is_public"`
}

type updateCollectionRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	CoverImage  *string `json:"cover_image"`
	IsPublic    *bool   `json:"is_public"`
}

type addNoteRequest struct {
	NoteID int64 `json:"note_id"`
}

type reorderRequest struct {
	NoteIDs []int64 `json:"note_ids"`
}

type integrateRequest struct {
	CustomPrompt string `json:"custom_prompt"`
	APIKey       string `json:"api_key"`
}

type collectionResponse struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	CoverImage    string    `json:"cover_image"`
	IsPublic      bool      `json:"is_public"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	OwnerUsername string    `json:"owner_username,omitempty"`
	NoteCount     *int      `json:"note_count,omitempty"`
}

type membershipResponse struct {
	ID           int64     `json:"id"`
	CollectionID int64     `json:"collection_id"`
	NoteID       int64     `json:"note_id"`
	Position     int       `json:"position"`
	AddedAt      time.Time `json:"added_at"`
}

type integrationResponse struct {
	IntegratedContent string    `json:"integrated_content"`
	NoteCount         int       `json:"note_count"`
	CreatedAt         time.Time `json:"created_at"`
}

func toCollectionResponse(c entity.Collection) collectionResponse {
	return collectionResponse{
		ID:          c.ID,
		UserID:      c.UserID,
		Name:        c.Name,
		Description: c.Description,
		CoverImage:  c.CoverImage,
		IsPublic:    c.IsPublic,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toCollectionMetaResponse(c entity.CollectionWithMeta) collectionResponse {
	resp := toCollectionResponse(c.Collection)
	resp.OwnerUsername = c.OwnerUsername
	noteCount := c.NoteCount
	resp.NoteCount = &noteCount

	return resp
}

func toCollectionListResponse(rows []entity.CollectionWithMeta) []collectionResponse {
	result := make([]collectionResponse, 0, len(rows))
	for _, row := range rows {
		result = append(result, toCollectionMetaResponse(row))
	}

	return result
}

func (h *Handler) createCollection(w http.ResponseWriter, r *http.Request) {
	userID, err := ctxtr.UserID(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	var req createCollectionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	col, err := h.collections.Create(r.Context(), userID, req.Name, req.Description, isPublic)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCollectionResponse(col))
}

func (h *Handler) getCollection(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	col, err := h.collections.Get(r.Context(), id, ctxtr.UserIDOrZero(r.Context()))
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCollectionMetaResponse(col))
}

func (h *Handler) listPublicCollections(w http.ResponseWriter, r *http.Request) {
	limit := queryUint(r, "limit", 20)
	offset := queryUint(r, "offset", 0)

	rows, err := h.collections.ListPublic(r.Context(), limit, offset)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCollectionListResponse(rows))
}

func (h *Handler) listMyCollections(w http.ResponseWriter, r *http.Request) {
	userID, err := ctxtr.UserID(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	rows, err := h.collections.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCollectionListResponse(rows))
}

func (h *Handler) updateCollection(w http.ResponseWriter, r *http.Request) {
	userID, err := ctxtr.UserID(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	var req updateCollectionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	col, err := h.collections.Update(r.Context(), userID, id, collections.UpdateParams{
		Name:        req.Name,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCollectionResponse(col))
}

func (h *Handler) deleteCollection(w http.ResponseWriter, r *http.Request) {
	userID, err := ctxtr.UserID(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	if err := h.collections.Delete(r.Context(), userID, id); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) collectionNotes(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	rows, err := h.collections.Notes(r.Context(), id, ctxtr.UserIDOrZero(r.Context()))
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, toNoteListResponse(rows))
}

func (h *Handler) addNoteToCollection(w http.ResponseWriter, r *http.Request) {
	userID, err := ctxtr.UserID(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	var req addNoteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	membership, err := h.collections.AddNote(r.Context(), userID, id, req.NoteID)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusCreated, membershipResponse{
		ID:           membership.ID,
		CollectionID: membership.CollectionID,
		NoteID:       membership.NoteID,
		Position:     membership.Position,
		AddedAt:      membership.AddedAt,
	})
}

func (h *Handler) removeNoteFromCollection(w http.ResponseWriter, r *http.Request) {
	userID, err := ctxtr.UserID(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	noteID, err := pathID(r, "noteID")
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	if err := h.collections.RemoveNote(r.Context(), userID, id, noteID); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) reorderCollection(w http.ResponseWriter, r *http.Request) {
	userID, err := ctxtr.UserID(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	var req reorderRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	if err := h.collections.Reorder(r.Context(), userID, id, req.NoteIDs); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) integrateCollection(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	var req integrateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	result, err := h.integration.Integrate(r.Context(), id, ctxtr.UserIDOrZero(r.Context()), req.CustomPrompt, req.APIKey)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, integrationResponse{
		IntegratedContent: result.IntegratedContent,
		NoteCount:         result.NoteCount,
		CreatedAt:         result.CreatedAt,
	})
}

package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ueser-furina/noote-website/internal/ctxtr"
	"github.com/ueser-furina/noote-website/internal/entity"
	"github.com/ueser-furina/noote-website/internal/usecase/notes"
	"github.com/ueser-furina/noote-website/pkg/logger/slogx"
)

type createNoteRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	FileType string `json:"file_type"`
	IsPublic *bool  `json:"is_public"`
}

type updateNoteRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	IsPublic *bool   `json:"is_public"`
}

type noteResponse struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	FileType      string    `json:"file_type"`
	IsPublic      bool      `json:"is_public"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	OwnerUsername string    `json:"owner_username,omitempty"`
}

func toNoteResponse(n entity.Note) noteResponse {
	return noteResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Content:   n.Content,
		FileType:  n.FileType,
		IsPublic:  n.IsPublic,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func toNoteListResponse(rows []entity.NoteWithOwner) []noteResponse {
	result := make([]noteResponse, 0, len(rows))
	for _, row := range rows {
		resp := toNoteResponse(row.Note)
		resp.OwnerUsername = row.OwnerUsername
		result = append(result, resp)
	}

	return result
}

func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	userID, err := ctxtr.UserID(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	var req createNoteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	note, err := h.notes.CreateNote(r.Context(), userID, req.Title, req.Content, req.FileType, isPublic)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toNoteResponse(note))
}

func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	note, err := h.notes.GetNote(r.Context(), id, ctxtr.UserIDOrZero(r.Context()))
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, toNoteResponse(note))
}

func (h *Handler) listPublicNotes(w http.ResponseWriter, r *http.Request) {
	limit := queryUint(r, "limit", 20)
	offset := queryUint(r, "offset", 0)

	rows, err := h.notes.ListPublicNotes(r.Context(), limit, offset)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, toNoteListResponse(rows))
}

func (h *Handler) listMyNotes(w http.ResponseWriter, r *http.Request) {
	userID, err := ctxtr.UserID(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	myNotes, err := h.notes.GetNotesByUserID(r.Context(), userID)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	result := make([]noteResponse, 0, len(myNotes))
	for _, n := range myNotes {
		result = append(result, toNoteResponse(n))
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) searchNotes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	scope := r.URL.Query().Get("scope")

	rows, err := h.notes.SearchNotes(r.Context(), query, scope, ctxtr.UserIDOrZero(r.Context()))
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, toNoteListResponse(rows))
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
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

	var req updateNoteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	note, err := h.notes.UpdateNote(r.Context(), userID, id, notes.UpdateParams{
		Title:    req.Title,
		Content:  req.Content,
		IsPublic: req.IsPublic,
	})
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, toNoteResponse(note))
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
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

	if err := h.notes.DeleteNote(r.Context(), userID, id); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// noteEvents streams note creation events as server-sent events until the
// client disconnects.
func (h *Handler) noteEvents(w http.ResponseWriter, r *http.Request) {
	userID, err := ctxtr.UserID(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(r.Context(), w, fmt.Errorf("%w: streaming is not supported", entity.ErrInvalidRequest))
		return
	}

	events, err := h.notes.SubscribeToEvents(r.Context(), userID)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for event := range events {
		payload, err := json.Marshal(toNoteResponse(event.CreatedNote))
		if err != nil {
			slogx.Error(r.Context(), "marshal note event", slogx.Err(err))
			continue
		}

		fmt.Fprintf(w, "data: %s\n\n", payload)
		flusher.Flush()
	}
}

package entity

import (
	"errors"
	"time"
)

var ErrNoteNotFound = errors.New("note not found")

type Note struct {
	ID        int64
	UserID    int64
	Title     string
	Content   string
	FileType  string
	IsPublic  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NoteWithOwner is a note joined with its owner's username for responses.
type NoteWithOwner struct {
	Note
	OwnerUsername string
}

type CreateNoteEvent struct {
	CreatedNote Note
}

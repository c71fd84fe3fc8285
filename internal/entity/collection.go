package entity

import (
	"errors"
	"time"
)

var (
	ErrCollectionNotFound      = errors.New("collection not found")
	ErrNoteAlreadyInCollection = errors.New("note already in collection")
	ErrNoteNotInCollection     = errors.New("note not in collection")
)

type Collection struct {
	ID          int64
	UserID      int64
	Name        string
	Description string
	CoverImage  string
	IsPublic    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CollectionWithMeta is a collection joined with its owner's username and
// the number of member notes.
type CollectionWithMeta struct {
	Collection
	OwnerUsername string
	NoteCount     int
}

// CollectionNote links a note to a collection. Position is a dense 0-based
// ordering key, unique note per collection.
type CollectionNote struct {
	ID           int64
	CollectionID int64
	NoteID       int64
	Position     int
	AddedAt      time.Time
}

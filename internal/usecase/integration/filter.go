package integration

import (
	"fmt"

	"github.com/ueser-furina/noote-website/internal/entity"
)

// VisibleNotes applies the collection visibility rules to an ordered member
// list and keeps the order intact. viewerID 0 means anonymous.
//
// A private collection is readable by its owner only; anyone else gets
// entity.ErrForbidden regardless of the member notes. In a public collection
// each note is kept when it is public or owned by the viewer; the rest are
// skipped silently.
func VisibleNotes(col entity.Collection, notes []entity.Note, viewerID int64) ([]entity.Note, error) {
	if !col.IsPublic {
		if viewerID == 0 || viewerID != col.UserID {
			return nil, fmt.Errorf("%w: collection %d is private", entity.ErrForbidden, col.ID)
		}

		// The owner sees every member note.
		visible := make([]entity.Note, len(notes))
		copy(visible, notes)
		return visible, nil
	}

	visible := make([]entity.Note, 0, len(notes))
	for _, n := range notes {
		if n.IsPublic || (viewerID != 0 && n.UserID == viewerID) {
			visible = append(visible, n)
		}
	}

	return visible, nil
}

package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ueser-furina/noote-website/internal/entity"
)

func TestVisibleNotes_PrivateCollection(t *testing.T) {
	col := entity.Collection{ID: 10, UserID: 1, IsPublic: false}
	notes := []entity.Note{
		{ID: 1, UserID: 1, IsPublic: false},
		{ID: 2, UserID: 2, IsPublic: true},
	}

	t.Run("owner sees every member note", func(t *testing.T) {
		visible, err := VisibleNotes(col, notes, 1)
		require.NoError(t, err)
		assert.Len(t, visible, 2)
	})

	t.Run("other user is rejected", func(t *testing.T) {
		_, err := VisibleNotes(col, notes, 2)
		assert.ErrorIs(t, err, entity.ErrForbidden)
	})

	t.Run("anonymous is rejected", func(t *testing.T) {
		_, err := VisibleNotes(col, notes, 0)
		assert.ErrorIs(t, err, entity.ErrForbidden)
	})

	t.Run("empty member list still rejects non-owner", func(t *testing.T) {
		_, err := VisibleNotes(col, nil, 2)
		assert.ErrorIs(t, err, entity.ErrForbidden)
	})
}

func TestVisibleNotes_PublicCollection(t *testing.T) {
	col := entity.Collection{ID: 10, UserID: 1, IsPublic: true}
	notes := []entity.Note{
		{ID: 1, UserID: 1, IsPublic: true},
		{ID: 2, UserID: 1, IsPublic: false},
		{ID: 3, UserID: 2, IsPublic: false},
		{ID: 4, UserID: 2, IsPublic: true},
	}

	t.Run("anonymous sees public notes only", func(t *testing.T) {
		visible, err := VisibleNotes(col, notes, 0)
		require.NoError(t, err)
		require.Len(t, visible, 2)
		assert.EqualValues(t, 1, visible[0].ID)
		assert.EqualValues(t, 4, visible[1].ID)
	})

	t.Run("viewer also sees own private notes", func(t *testing.T) {
		visible, err := VisibleNotes(col, notes, 2)
		require.NoError(t, err)
		require.Len(t, visible, 3)
		assert.EqualValues(t, 1, visible[0].ID)
		assert.EqualValues(t, 3, visible[1].ID)
		assert.EqualValues(t, 4, visible[2].ID)
	})

	t.Run("order is preserved", func(t *testing.T) {
		visible, err := VisibleNotes(col, notes, 1)
		require.NoError(t, err)
		ids := make([]int64, 0, len(visible))
		for _, n := range visible {
			ids = append(ids, n.ID)
		}
		assert.Equal(t, []int64{1, 2, 4}, ids)
	})

	t.Run("all private foreign notes filter to empty", func(t *testing.T) {
		onlyPrivate := []entity.Note{{ID: 3, UserID: 2, IsPublic: false}}
		visible, err := VisibleNotes(col, onlyPrivate, 0)
		require.NoError(t, err)
		assert.Empty(t, visible)
	})
}

func TestVisibleNotes_DoesNotShareBackingArray(t *testing.T) {
	col := entity.Collection{ID: 10, UserID: 1, IsPublic: false}
	notes := []entity.Note{{ID: 1, UserID: 1, Title: "original"}}

	visible, err := VisibleNotes(col, notes, 1)
	require.NoError(t, err)

	visible[0].Title = "changed"
	assert.Equal(t, "original", notes[0].Title)
}

// Package ctxtr carries the authenticated viewer identity through contexts.
package ctxtr

import (
	"context"
	"errors"
)

type ctxKey string

const UserIDKey ctxKey = "user_id"

var ErrUserNotFound = errors.New("user not found")

func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

func UserID(ctx context.Context) (int64, error) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	if !ok {
		return 0, ErrUserNotFound
	}

	return userID, nil
}

// UserIDOrZero returns the viewer id, or 0 for anonymous requests.
func UserIDOrZero(ctx context.Context) int64 {
	userID, _ := ctx.Value(UserIDKey).(int64)

	return userID
}

package slogx

import "log/slog"

func Err(err error) slog.Attr {
	return slog.Any("err", err)
}

func UserId(id int64) slog.Attr {
	return slog.Int64("user_id", id)
}

func NoteId(id int64) slog.Attr {
	return slog.Int64("note_id", id)
}

func CollectionId(id int64) slog.Attr {
	return slog.Int64("collection_id", id)
}

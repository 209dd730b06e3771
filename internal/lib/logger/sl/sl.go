package sl

import (
	"io"
	"log/slog"
)

func Err(er error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(er.Error()),
	}
}

// Discard returns a logger that drops every record. Used by tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

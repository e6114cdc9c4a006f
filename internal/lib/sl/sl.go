// Package sl contains small helpers for structured slog fields.
package sl

import "log/slog"

// Err returns a slog.Attr with key "error" and the error text, so error
// logging stays uniform across the service.
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

package serializer

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
)

// RespondJSON writes value as the JSON body of an HTTP response. The body is
// rendered through a Writer into a buffer first, so a value that cannot be
// encoded never leaves a partial body behind a success status.
func RespondJSON(w http.ResponseWriter, statusCode int, value any) {
	var body bytes.Buffer
	if err := NewWriter(FormatJSON, &body).Serialize(context.Background(), value); err != nil {
		slog.Error("response encoding failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := body.WriteTo(w); err != nil {
		slog.Warn("response write failed", "error", err)
	}
}

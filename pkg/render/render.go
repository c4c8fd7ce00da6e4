// Package render writes JSON responses outside the request-scoped render
// pipeline, for middleware that has no chi render context.
package render

import (
	"encoding/json"
	"fmt"
	"net/http"
)

func JSON(w http.ResponseWriter, statusCode int, v any) error {
	const op = "render.JSON"

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("%s: failed to encode v: %w", op, err)
	}

	return nil
}

package recoverer

import (
	"log/slog"
	"net/http"

	"github.com/zipway/zipway/pkg/middleware"
	"github.com/zipway/zipway/pkg/render"
	"github.com/zipway/zipway/pkg/response"
)

// New returns a middleware that recovers from handler panics, logs them and
// responds with a JSON server error.
func New(logger *slog.Logger) middleware.Middleware {
	const op = "middleware.recoverer.New"

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error(
						"panic occurred while handling request",
						slog.Group(op, slog.Any("err", err)),
					)

					render.JSON(w, http.StatusInternalServerError, response.ServerErrorResponse)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

package http

import (
	"crypto/subtle"
	"net/http"
	"strings"

	chirender "github.com/go-chi/render"
	"github.com/zipway/zipway/pkg/middleware"
	"github.com/zipway/zipway/pkg/response"
)

// adminOnly guards the admin surface with a bearer token. The comparison is
// constant-time to avoid leaking the token length prefix through timing.
// An empty configured token is a deployment fault, reported as a server
// error rather than an auth failure.
func adminOnly(token string) middleware.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				chirender.Status(r, http.StatusInternalServerError)
				chirender.JSON(w, r, response.ServerMisconfiguredResponse)
				return
			}

			presented, ok := bearerToken(r)
			if !ok || subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				w.Header().Set("WWW-Authenticate", "Bearer")
				chirender.Status(r, http.StatusUnauthorized)
				chirender.JSON(w, r, response.UnauthorizedResponse)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	const prefix = "Bearer "

	auth := r.Header.Get("Authorization")
	if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return "", false
	}

	return auth[len(prefix):], true
}

// Package middleware provides framework-agnostic HTTP middleware.
package middleware

import "net/http"

// Middleware wraps an http.Handler with additional behavior.
type Middleware func(next http.Handler) http.Handler

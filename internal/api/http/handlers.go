package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/zipway/zipway/internal/alias"
	"github.com/zipway/zipway/internal/database"
	"github.com/zipway/zipway/internal/service"
	"github.com/zipway/zipway/pkg/response"
)

const defaultStatsLimit = 20

func handlePing(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]string{"status": "ok"})
}

func handleRoot(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]any{
		"app": "Zipway URL Shortener",
		"endpoints": map[string]string{
			"POST /url/shorten":   "create a short URL",
			"GET /url/{short_id}": "redirect to the original URL",
			"GET /ping":           "liveness check",
		},
	})
}

func handleShortenURL(svc URLService, validate *validator.Validate, baseURL string) http.HandlerFunc {
	const op = "api.http.handleShortenURL"

	return func(w http.ResponseWriter, r *http.Request) {
		var req shortenRequest

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			if errors.Is(err, io.EOF) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.EmptyRequestBodyResponse)
				return
			}

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.InvalidRequestBodyResponse)
			return
		}

		if err := validate.Struct(req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationErrorResponse(err))
			return
		}

		url, err := svc.ShortenURL(r.Context(), req.TargetURL, req.CustomID)
		if err != nil {
			if reason, ok := rejectionReason(err); ok {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error(reason))
				return
			}

			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ServerErrorResponse)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, toShortenResponse(url, baseURL))
	}
}

// rejectionReason maps creation failures caused by bad input to the single
// client-facing reason the response carries. Storage and generation failures
// are not client errors and fall through.
func rejectionReason(err error) (string, bool) {
	switch {
	case errors.Is(err, service.ErrInvalidURL):
		return "invalid URL format, please provide a valid URL", true
	case errors.Is(err, service.ErrReservedID):
		return "this custom ID is reserved for system use, please choose another one", true
	case errors.Is(err, service.ErrIDTaken):
		return "custom ID already exists", true
	case errors.Is(err, alias.ErrAliasEmpty),
		errors.Is(err, alias.ErrAliasTooShort),
		errors.Is(err, alias.ErrAliasNumericOnly),
		errors.Is(err, alias.ErrAliasDisallowed),
		errors.Is(err, alias.ErrAliasSymbolsOnly):
		return err.Error(), true
	}

	return "", false
}

func handleRedirect(svc URLService) http.HandlerFunc {
	const op = "api.http.handleRedirect"

	return func(w http.ResponseWriter, r *http.Request) {
		shortID := chi.URLParam(r, "shortID")

		url, err := svc.Resolve(r.Context(), shortID)
		if err != nil {
			if errors.Is(err, database.ErrURLNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.URLNotFoundResponse)
				return
			}

			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ServerErrorResponse)
			return
		}

		http.Redirect(w, r, url.TargetURL, http.StatusTemporaryRedirect)
	}
}

func handleAdminStats(svc URLService, baseURL string) http.HandlerFunc {
	const op = "api.http.handleAdminStats"

	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultStatsLimit

		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("limit must be a positive integer"))
				return
			}
			limit = parsed
		}

		urls, err := svc.TopURLs(r.Context(), limit)
		if err != nil {
			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ServerErrorResponse)
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, toAdminStatsResponse(urls, limit, baseURL))
	}
}

func handleDeleteURL(svc URLService) http.HandlerFunc {
	const op = "api.http.handleDeleteURL"

	return func(w http.ResponseWriter, r *http.Request) {
		shortID := r.URL.Query().Get("short_id")
		if shortID == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("short_id query parameter is required"))
			return
		}

		if err := svc.DeleteURL(r.Context(), shortID); err != nil {
			if errors.Is(err, database.ErrURLNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.URLNotFoundResponse)
				return
			}

			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ServerErrorResponse)
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, deleteURLResponse{
			Message:   "URL deleted successfully",
			DeletedID: shortID,
			Success:   true,
		})
	}
}

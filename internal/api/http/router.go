// Package http provides the HTTP delivery layer for the URL shortener.
package http

import (
	"context"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/go-playground/validator/v10"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/zipway/zipway/internal/config"
	"github.com/zipway/zipway/internal/models"
	"github.com/zipway/zipway/pkg/middleware/ratelimit"
	"github.com/zipway/zipway/pkg/middleware/recoverer"
)

type URLService interface {
	ShortenURL(ctx context.Context, targetURL, customID string) (*models.URL, error)
	Resolve(ctx context.Context, shortID string) (*models.URL, error)
	TopURLs(ctx context.Context, limit int) ([]models.URL, error)
	DeleteURL(ctx context.Context, shortID string) error
}

func NewRouter(logger *httplog.Logger, urlSvc URLService, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*"},
		AllowedMethods:   []string{"POST", "GET", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept", "Authorization"},
		AllowCredentials: false,
		MaxAge:           84600,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(recoverer.New(logger.Logger))

	r.Get("/", handleRoot)
	r.Get("/ping", handlePing)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/swagger.yml"),
	))
	r.Get("/docs/swagger.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./docs/swagger.yml")
	})

	validate := getValidate()

	shortenLimit := ratelimit.New(cfg.RateLimit.Shorten.PerMinute, cfg.RateLimit.Shorten.Burst)
	redirectLimit := ratelimit.New(cfg.RateLimit.Redirect.PerMinute, cfg.RateLimit.Redirect.Burst)
	adminLimit := ratelimit.New(cfg.RateLimit.Admin.PerMinute, cfg.RateLimit.Admin.Burst)

	r.Route("/url", func(r chi.Router) {
		r.With(shortenLimit.Middleware(), middleware.AllowContentType("application/json")).
			Post("/shorten", handleShortenURL(urlSvc, validate, cfg.BaseURL))

		r.With(redirectLimit.Middleware()).
			Get("/{shortID}", handleRedirect(urlSvc))
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(adminLimit.Middleware())
		r.Use(adminOnly(cfg.AdminToken))

		r.Get("/stats", handleAdminStats(urlSvc, cfg.BaseURL))
		r.Delete("/delete_url", handleDeleteURL(urlSvc))
	})

	return r
}

func getValidate() *validator.Validate {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}

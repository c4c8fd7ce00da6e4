package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/zipway/zipway/internal/alias"
	"github.com/zipway/zipway/internal/database"
	"github.com/zipway/zipway/internal/models"
	"github.com/zipway/zipway/internal/shortid"
)

var (
	// ErrInvalidURL is returned when the target URL is not a well-formed absolute URL.
	ErrInvalidURL = errors.New("invalid target url")
	// ErrReservedID is returned when a custom alias collides with a reserved system path.
	ErrReservedID = errors.New("short id is reserved")
	// ErrIDTaken is returned when a custom alias is already assigned to another URL.
	ErrIDTaken = errors.New("short id already exists")
	// ErrGenerationExhausted is returned when the maximum number of retries
	// for generating an unused short id is exceeded.
	ErrGenerationExhausted = errors.New("maximum retries exceeded for generating short id")
)

// maxGenerateRetries bounds the generate-and-check loop. With a 57-char
// alphabet and 7-char ids, repeated collisions signal a storage problem
// rather than bad luck.
const maxGenerateRetries = 10

// URLRepository defines the interface for working with URLs at the business logic layer.
type URLRepository interface {
	// Create inserts a new shortened URL into the repository.
	// Returns database.ErrShortIDExists if the short id is already taken.
	Create(ctx context.Context, shortID, targetURL string) (*models.URL, error)

	// Get retrieves a URL by its short id without side effects.
	// Returns database.ErrURLNotFound if the short id doesn't exist.
	Get(ctx context.Context, shortID string) (*models.URL, error)

	// Exists reports whether a URL record with the given short id exists.
	Exists(ctx context.Context, shortID string) (bool, error)

	// IncrementClicks atomically increments the click counter for a short id.
	IncrementClicks(ctx context.Context, shortID string) error

	// Delete removes a URL by its short id.
	// Returns database.ErrURLNotFound if the short id doesn't exist.
	Delete(ctx context.Context, shortID string) error

	// TopByClicks retrieves up to limit URLs ordered by click count descending,
	// ties broken by short id.
	TopByClicks(ctx context.Context, limit int) ([]models.URL, error)
}

// URLService orchestrates alias sanitization, validation, reserved-path and
// uniqueness checks, id generation and persistence for shortened URLs.
type URLService struct {
	repo   URLRepository
	logger *slog.Logger
}

// NewURLService creates a new instance of URLService with the provided repository.
// The logger reports best-effort failures that are not surfaced to callers.
func NewURLService(repo URLRepository, logger *slog.Logger) *URLService {
	return &URLService{
		repo:   repo,
		logger: logger,
	}
}

// ShortenURL assigns a short id to targetURL and persists the record.
// If customID is non-empty it is sanitized and validated and must be neither
// reserved nor taken; otherwise a random id is generated. Exactly one record
// is inserted on success and none on any failure path.
func (s *URLService) ShortenURL(ctx context.Context, targetURL, customID string) (*models.URL, error) {
	const op = "service.URLService.ShortenURL"

	if !isValidURL(targetURL) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidURL)
	}

	if customID != "" {
		return s.shortenWithCustomID(ctx, targetURL, customID)
	}

	return s.shortenWithGeneratedID(ctx, targetURL)
}

func (s *URLService) shortenWithCustomID(ctx context.Context, targetURL, customID string) (*models.URL, error) {
	const op = "service.URLService.shortenWithCustomID"

	shortID := alias.Sanitize(customID)

	if err := alias.Validate(shortID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if alias.IsReserved(shortID) {
		return nil, fmt.Errorf("%s: %w", op, ErrReservedID)
	}

	exists, err := s.repo.Exists(ctx, shortID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to check short id existence: %w", op, err)
	}
	if exists {
		return nil, fmt.Errorf("%s: %w", op, ErrIDTaken)
	}

	url, err := s.repo.Create(ctx, shortID, targetURL)
	if err != nil {
		// Two concurrent requests for the same alias can both pass the
		// existence check; the primary key is the authoritative guard.
		if errors.Is(err, database.ErrShortIDExists) {
			return nil, fmt.Errorf("%s: %w", op, ErrIDTaken)
		}

		return nil, fmt.Errorf("%s: failed to shorten url: %w", op, err)
	}

	return url, nil
}

func (s *URLService) shortenWithGeneratedID(ctx context.Context, targetURL string) (*models.URL, error) {
	const op = "service.URLService.shortenWithGeneratedID"

	for i := 0; i < maxGenerateRetries; i++ {
		shortID, err := shortid.New()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		exists, err := s.repo.Exists(ctx, shortID)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to check short id existence: %w", op, err)
		}
		if exists {
			continue
		}

		url, err := s.repo.Create(ctx, shortID, targetURL)
		if err != nil {
			if errors.Is(err, database.ErrShortIDExists) {
				continue
			}

			return nil, fmt.Errorf("%s: failed to shorten url: %w", op, err)
		}

		return url, nil
	}

	return nil, fmt.Errorf("%s: %w", op, ErrGenerationExhausted)
}

// Resolve retrieves the URL associated with shortID and records a click.
// A failed click increment is logged but never fails the resolve, so a
// redirect is never blocked by counter bookkeeping.
func (s *URLService) Resolve(ctx context.Context, shortID string) (*models.URL, error) {
	const op = "service.URLService.Resolve"

	url, err := s.repo.Get(ctx, shortID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to resolve short id: %w", op, err)
	}

	if err := s.repo.IncrementClicks(ctx, shortID); err != nil {
		s.logger.Error(
			"failed to increment clicks",
			slog.String("op", op),
			slog.String("short_id", shortID),
			slog.Any("err", err),
		)
	}

	return url, nil
}

// TopURLs retrieves up to limit URLs ordered by click count for the admin
// statistics surface.
func (s *URLService) TopURLs(ctx context.Context, limit int) ([]models.URL, error) {
	const op = "service.URLService.TopURLs"

	urls, err := s.repo.TopByClicks(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get top urls: %w", op, err)
	}

	return urls, nil
}

// DeleteURL removes the URL associated with shortID.
func (s *URLService) DeleteURL(ctx context.Context, shortID string) error {
	const op = "service.URLService.DeleteURL"

	if err := s.repo.Delete(ctx, shortID); err != nil {
		return fmt.Errorf("%s: failed to delete url: %w", op, err)
	}

	return nil
}

// isValidURL reports whether raw is a syntactically valid absolute URL
// with an http or https scheme.
func isValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/zipway/zipway/internal/alias"
	"github.com/zipway/zipway/internal/database"
	"github.com/zipway/zipway/internal/models"
	"github.com/zipway/zipway/internal/shortid"
)

var errUnknown = errors.New("unknown error")

type MockURLRepository struct {
	mock.Mock
}

func (r *MockURLRepository) Create(ctx context.Context, shortID, targetURL string) (*models.URL, error) {
	args := r.Called(ctx, shortID, targetURL)
	url, _ := args.Get(0).(*models.URL)
	return url, args.Error(1)
}

func (r *MockURLRepository) Get(ctx context.Context, shortID string) (*models.URL, error) {
	args := r.Called(ctx, shortID)
	url, _ := args.Get(0).(*models.URL)
	return url, args.Error(1)
}

func (r *MockURLRepository) Exists(ctx context.Context, shortID string) (bool, error) {
	args := r.Called(ctx, shortID)
	return args.Bool(0), args.Error(1)
}

func (r *MockURLRepository) IncrementClicks(ctx context.Context, shortID string) error {
	args := r.Called(ctx, shortID)
	return args.Error(0)
}

func (r *MockURLRepository) Delete(ctx context.Context, shortID string) error {
	args := r.Called(ctx, shortID)
	return args.Error(0)
}

func (r *MockURLRepository) TopByClicks(ctx context.Context, limit int) ([]models.URL, error) {
	args := r.Called(ctx, limit)
	urls, _ := args.Get(0).([]models.URL)
	return urls, args.Error(1)
}

func setupURLService(t testing.TB) (*URLService, *MockURLRepository) {
	t.Helper()

	repoMock := new(MockURLRepository)
	svc := NewURLService(repoMock, slog.New(slog.NewTextHandler(io.Discard, nil)))

	t.Cleanup(func() {
		repoMock.AssertExpectations(t)
	})

	return svc, repoMock
}

func TestURLService_ShortenURL(t *testing.T) {
	t.Run("invalid target url", func(t *testing.T) {
		svc, repoMock := setupURLService(t)

		for _, target := range []string{"not a url", "example.com", "ftp://example.com", ""} {
			url, err := svc.ShortenURL(context.TODO(), target, "")

			assert.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidURL)
			assert.Nil(t, url)
		}

		repoMock.AssertNotCalled(t, "Create")
	})

	t.Run("invalid target url with custom id", func(t *testing.T) {
		svc, repoMock := setupURLService(t)

		url, err := svc.ShortenURL(context.TODO(), "not a url", "my-link")

		assert.ErrorIs(t, err, ErrInvalidURL)
		assert.Nil(t, url)
		repoMock.AssertNotCalled(t, "Create")
	})

	t.Run("custom id rejected by validator", func(t *testing.T) {
		tests := []struct {
			customID string
			wantErr  error
		}{
			{"!!!", alias.ErrAliasEmpty},
			{"a", alias.ErrAliasTooShort},
			{"12345", alias.ErrAliasNumericOnly},
			{"Admin", alias.ErrAliasDisallowed},
		}

		for _, tt := range tests {
			svc, repoMock := setupURLService(t)

			url, err := svc.ShortenURL(context.TODO(), "https://example.com", tt.customID)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, url)
			repoMock.AssertNotCalled(t, "Create")
		}
	})

	t.Run("custom id reserved", func(t *testing.T) {
		svc, repoMock := setupURLService(t)

		// Sanitization happens before the reserved check.
		url, err := svc.ShortenURL(context.TODO(), "https://example.com", "  Dashboard  ")

		assert.ErrorIs(t, err, ErrReservedID)
		assert.Nil(t, url)
		repoMock.AssertNotCalled(t, "Exists")
		repoMock.AssertNotCalled(t, "Create")
	})

	t.Run("custom id taken", func(t *testing.T) {
		svc, repoMock := setupURLService(t)

		repoMock.On("Exists", mock.Anything, "my-link").Once().Return(true, nil)

		url, err := svc.ShortenURL(context.TODO(), "https://example.com", "my-link")

		assert.ErrorIs(t, err, ErrIDTaken)
		assert.Nil(t, url)
		repoMock.AssertNotCalled(t, "Create")
	})

	t.Run("custom id taken by concurrent insert", func(t *testing.T) {
		svc, repoMock := setupURLService(t)

		repoMock.On("Exists", mock.Anything, "my-link").Once().Return(false, nil)
		repoMock.On("Create", mock.Anything, "my-link", "https://example.com").
			Once().
			Return(nil, database.ErrShortIDExists)

		url, err := svc.ShortenURL(context.TODO(), "https://example.com", "my-link")

		assert.ErrorIs(t, err, ErrIDTaken)
		assert.Nil(t, url)
	})

	t.Run("custom id success", func(t *testing.T) {
		svc, repoMock := setupURLService(t)

		wantURL := &models.URL{ShortID: "my-link", TargetURL: "https://example.com"}

		repoMock.On("Exists", mock.Anything, "my-link").Once().Return(false, nil)
		repoMock.On("Create", mock.Anything, "my-link", "https://example.com").
			Once().
			Return(wantURL, nil)

		url, err := svc.ShortenURL(context.TODO(), "https://example.com", "My Link")

		assert.NoError(t, err)
		assert.Equal(t, wantURL, url)
	})

	t.Run("generated id success", func(t *testing.T) {
		svc, repoMock := setupURLService(t)

		wantURL := &models.URL{TargetURL: "https://example.com"}

		repoMock.On("Exists", mock.Anything, mock.MatchedBy(func(id string) bool {
			return len(id) == shortid.Length
		})).Once().Return(false, nil)
		repoMock.On("Create", mock.Anything, mock.Anything, "https://example.com").
			Once().
			Return(wantURL, nil)

		url, err := svc.ShortenURL(context.TODO(), "https://example.com", "")

		assert.NoError(t, err)
		assert.Equal(t, wantURL, url)
	})

	t.Run("generated id retries on collision", func(t *testing.T) {
		svc, repoMock := setupURLService(t)

		wantURL := &models.URL{TargetURL: "https://example.com"}

		repoMock.On("Exists", mock.Anything, mock.Anything).Once().Return(true, nil)
		repoMock.On("Exists", mock.Anything, mock.Anything).Once().Return(false, nil)
		repoMock.On("Create", mock.Anything, mock.Anything, "https://example.com").
			Once().
			Return(wantURL, nil)

		url, err := svc.ShortenURL(context.TODO(), "https://example.com", "")

		assert.NoError(t, err)
		assert.Equal(t, wantURL, url)
	})

	t.Run("generation exhausted", func(t *testing.T) {
		svc, repoMock := setupURLService(t)

		repoMock.On("Exists", mock.Anything, mock.Anything).
			Times(maxGenerateRetries).
			Return(true, nil)

		url, err := svc.ShortenURL(context.TODO(), "https://example.com", "")

		assert.ErrorIs(t, err, ErrGenerationExhausted)
		assert.Nil(t, url)
		repoMock.AssertNotCalled(t, "Create")
	})

	t.Run("storage failure", func(t *testing.T) {
		svc, repoMock := setupURLService(t)

		repoMock.On("Exists", mock.Anything, "my-link").Once().Return(false, nil)
		repoMock.On("Create", mock.Anything, "my-link", "https://example.com").
			Once().
			Return(nil, errUnknown)

		url, err := svc.ShortenURL(context.TODO(), "https://example.com", "my-link")

		assert.ErrorIs(t, err, errUnknown)
		assert.Nil(t, url)
	})
}

func TestURLService_Resolve(t *testing.T) {
	t.Run("url not found", func(t *testing.T) {
		svc, repoMock := setupURLService(t)

		repoMock.On("Get", mock.Anything, "missing").Once().Return(nil, database.ErrURLNotFound)

		url, err := svc.Resolve(context.TODO(), "missing")

		assert.ErrorIs(t, err, database.ErrURLNotFound)
		assert.Nil(t, url)
		repoMock.AssertNotCalled(t, "IncrementClicks")
	})

	t.Run("success increments clicks", func(t *testing.T) {
		svc, repoMock := setupURLService(t)

		wantURL := &models.URL{ShortID: "my-link", TargetURL: "https://example.com"}

		repoMock.On("Get", mock.Anything, "my-link").Once().Return(wantURL, nil)
		repoMock.On("IncrementClicks", mock.Anything, "my-link").Once().Return(nil)

		url, err := svc.Resolve(context.TODO(), "my-link")

		assert.NoError(t, err)
		assert.Equal(t, wantURL, url)
	})

	t.Run("increment failure does not fail resolve", func(t *testing.T) {
		svc, repoMock := setupURLService(t)

		wantURL := &models.URL{ShortID: "my-link", TargetURL: "https://example.com"}

		repoMock.On("Get", mock.Anything, "my-link").Once().Return(wantURL, nil)
		repoMock.On("IncrementClicks", mock.Anything, "my-link").Once().Return(errUnknown)

		url, err := svc.Resolve(context.TODO(), "my-link")

		assert.NoError(t, err)
		assert.Equal(t, wantURL, url)
	})
}

func TestURLService_TopURLs(t *testing.T) {
	t.Run("storage failure", func(t *testing.T) {
		svc, repoMock := setupURLService(t)

		repoMock.On("TopByClicks", mock.Anything, 20).Once().Return(nil, errUnknown)

		urls, err := svc.TopURLs(context.TODO(), 20)

		assert.ErrorIs(t, err, errUnknown)
		assert.Nil(t, urls)
	})

	t.Run("success", func(t *testing.T) {
		svc, repoMock := setupURLService(t)

		wantURLs := []models.URL{
			{ShortID: "a", Clicks: 10},
			{ShortID: "b", Clicks: 5},
		}

		repoMock.On("TopByClicks", mock.Anything, 2).Once().Return(wantURLs, nil)

		urls, err := svc.TopURLs(context.TODO(), 2)

		assert.NoError(t, err)
		assert.Equal(t, wantURLs, urls)
	})
}

func TestURLService_DeleteURL(t *testing.T) {
	t.Run("url not found", func(t *testing.T) {
		svc, repoMock := setupURLService(t)

		repoMock.On("Delete", mock.Anything, "missing").Once().Return(database.ErrURLNotFound)

		err := svc.DeleteURL(context.TODO(), "missing")

		assert.ErrorIs(t, err, database.ErrURLNotFound)
	})

	t.Run("success", func(t *testing.T) {
		svc, repoMock := setupURLService(t)

		repoMock.On("Delete", mock.Anything, "my-link").Once().Return(nil)

		err := svc.DeleteURL(context.TODO(), "my-link")

		assert.NoError(t, err)
	})
}

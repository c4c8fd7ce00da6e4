package http

import (
	"strings"
	"time"

	"github.com/zipway/zipway/internal/models"
)

// shortenRequest represents the structure for a request to shorten a URL.
type shortenRequest struct {
	TargetURL string `json:"target_url" validate:"required,url"`
	CustomID  string `json:"custom_id" validate:"omitempty,max=100"`
}

// shortenResponse represents the structure for a response to a successful
// shortening request.
type shortenResponse struct {
	ID        string `json:"id"`
	TargetURL string `json:"target_url"`
	ShortURL  string `json:"short_url"`
}

func toShortenResponse(url *models.URL, baseURL string) shortenResponse {
	return shortenResponse{
		ID:        url.ShortID,
		TargetURL: url.TargetURL,
		ShortURL:  shortURL(baseURL, url.ShortID),
	}
}

// urlStatsResponse represents the statistics for an individual URL.
type urlStatsResponse struct {
	ID        string    `json:"id"`
	TargetURL string    `json:"target_url"`
	Clicks    int64     `json:"clicks"`
	CreatedAt time.Time `json:"created_at"`
	ShortURL  string    `json:"short_url"`
}

// adminStatsResponse represents the admin statistics report.
type adminStatsResponse struct {
	TopURLs []urlStatsResponse `json:"top_urls"`
	Total   int                `json:"total"`
	Limit   int                `json:"limit"`
	Message string             `json:"message"`
}

func toAdminStatsResponse(urls []models.URL, limit int, baseURL string) adminStatsResponse {
	stats := make([]urlStatsResponse, 0, len(urls))
	for _, url := range urls {
		stats = append(stats, urlStatsResponse{
			ID:        url.ShortID,
			TargetURL: url.TargetURL,
			Clicks:    url.Clicks,
			CreatedAt: url.CreatedAt,
			ShortURL:  shortURL(baseURL, url.ShortID),
		})
	}

	return adminStatsResponse{
		TopURLs: stats,
		Total:   len(stats),
		Limit:   limit,
		Message: "statistics obtained successfully",
	}
}

// deleteURLResponse represents the structure for a response to a successful
// URL deletion.
type deleteURLResponse struct {
	Message   string `json:"message"`
	DeletedID string `json:"deleted_id"`
	Success   bool   `json:"success"`
}

func shortURL(baseURL, shortID string) string {
	return strings.TrimSuffix(baseURL, "/") + "/url/" + shortID
}

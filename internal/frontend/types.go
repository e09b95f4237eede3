package frontend

import (
	"github.com/giterra/giterra/internal/planet/domain"
)

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	Status string `json:"status"`
}

// APIError is the body of every non-2xx response.
type APIError struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// ThemeInfo describes one theme in GET /api/themes.
type ThemeInfo struct {
	Key         domain.Theme `json:"key"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Color       string       `json:"color"`
}

// ThemeListResponse is returned by GET /api/themes.
type ThemeListResponse struct {
	Themes []ThemeInfo                  `json:"themes"`
	Assets map[domain.AssetType]string `json:"assets"`
}

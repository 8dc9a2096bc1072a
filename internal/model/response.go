package model

// PaginatedResponse is the uniform envelope for list endpoints
type PaginatedResponse[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// ErrorResponse is the uniform error body
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HealthResponse is returned by the health and readiness probes
type HealthResponse struct {
	Status      string          `json:"status"`
	Version     string          `json:"version,omitempty"`
	BuildNumber string          `json:"build_number,omitempty"`
	BuildDate   string          `json:"build_date,omitempty"`
	Timestamp   string          `json:"timestamp,omitempty"`
	Database    *DatabaseHealth `json:"database,omitempty"`
	Error       string          `json:"error,omitempty"`
}

// DatabaseHealth reports the store round-trip result and pool state
type DatabaseHealth struct {
	Status     string `json:"status"`
	Version    string `json:"version,omitempty"`
	ServerTime string `json:"server_time,omitempty"`
	PoolSize   int    `json:"pool_size"`
	PoolFree   int    `json:"pool_free"`
}

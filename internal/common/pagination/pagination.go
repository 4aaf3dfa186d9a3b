// Package pagination provides offset-based paging for list endpoints.
package pagination

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	pkgconfig "line-dispatch/pkg/config"
)

// MaxOffset bounds the row offset a page may address.
const MaxOffset = math.MaxInt32

// Config holds pagination settings.
type Config struct {
	DefaultLimit int
	MaxLimit     int
}

// DefaultConfig returns limit=20, max=100.
func DefaultConfig() Config {
	return Config{DefaultLimit: 20, MaxLimit: 100}
}

// LoadFromEnv reads PAGINATION_DEFAULT_LIMIT and PAGINATION_MAX_LIMIT,
// falling back to DefaultConfig.
func LoadFromEnv() Config {
	d := DefaultConfig()
	cfg := Config{
		DefaultLimit: pkgconfig.GetEnvInt("PAGINATION_DEFAULT_LIMIT", d.DefaultLimit),
		MaxLimit:     pkgconfig.GetEnvInt("PAGINATION_MAX_LIMIT", d.MaxLimit),
	}
	if cfg.MaxLimit < 1 {
		cfg.MaxLimit = d.MaxLimit
	}
	if cfg.DefaultLimit < 1 || cfg.DefaultLimit > cfg.MaxLimit {
		cfg.DefaultLimit = min(d.DefaultLimit, cfg.MaxLimit)
	}
	return cfg
}

// Params are the paging query parameters of a request.
type Params struct {
	Page  int // 1-based
	Limit int
}

// Offset is the number of rows skipped before this page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParseQueryParams reads page and limit from the query string. Missing values
// take the configured defaults; malformed or out-of-range values are an error.
func ParseQueryParams(r *http.Request, cfg Config) (Params, error) {
	params := Params{Page: 1, Limit: cfg.DefaultLimit}

	if s := r.URL.Query().Get("page"); s != "" {
		page, err := strconv.Atoi(s)
		if err != nil || page < 1 {
			return params, fmt.Errorf("invalid query parameter: page must be a positive integer")
		}
		params.Page = page
	}

	if s := r.URL.Query().Get("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil || limit < 1 || limit > cfg.MaxLimit {
			return params, fmt.Errorf("invalid query parameter: limit must be between 1 and %d", cfg.MaxLimit)
		}
		params.Limit = limit
	}

	if params.Page-1 > MaxOffset/params.Limit {
		return params, fmt.Errorf("invalid query parameter: page is out of range")
	}

	return params, nil
}

// Metadata describes the page returned alongside the data.
type Metadata struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// NewMetadata builds the metadata for params over total items.
func NewMetadata(params Params, total int64) Metadata {
	return Metadata{
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: TotalPages(total, params.Limit),
	}
}

// TotalPages is ceil(total/limit), never less than 1.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// Response is a page of T plus its metadata.
type Response[T any] struct {
	Data       []T      `json:"data"`
	Pagination Metadata `json:"pagination"`
}

// NewResponse wraps data and metadata.
func NewResponse[T any](data []T, meta Metadata) Response[T] {
	if data == nil {
		data = []T{}
	}
	return Response[T]{Data: data, Pagination: meta}
}

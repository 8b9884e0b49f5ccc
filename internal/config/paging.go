package config

import "fmt"

// PagingConfig bounds the page size accepted by the paged search endpoints.
type PagingConfig struct {
	// DefaultSize is used when the request carries no size.
	DefaultSize int
	// MaxSize caps any requested size.
	MaxSize int
}

// LoadPagingConfigFromEnv loads paging configuration from environment variables.
func LoadPagingConfigFromEnv() PagingConfig {
	return PagingConfig{
		DefaultSize: GetEnvInt("PAGE_DEFAULT_SIZE", 20),
		MaxSize:     GetEnvInt("PAGE_MAX_SIZE", 100),
	}
}

// Validate validates paging configuration.
func (c PagingConfig) Validate() error {
	if c.DefaultSize <= 0 {
		return fmt.Errorf("DefaultSize must be greater than 0")
	}
	if c.MaxSize < c.DefaultSize {
		return fmt.Errorf("MaxSize (%d) cannot be less than DefaultSize (%d)", c.MaxSize, c.DefaultSize)
	}
	return nil
}

// Package sheets exports expenses to a Google Sheets spreadsheet.
package sheets

import (
	"errors"
	"time"
)

// Configuration errors.
var (
	ErrNoAuth        = errors.New("no authentication method configured")
	ErrMultipleAuth  = errors.New("multiple authentication methods configured; use either OAuth2 or service account")
	ErrBatchSize     = errors.New("batch size must be positive")
	ErrRetryAttempts = errors.New("retry attempts cannot be negative")
	ErrRetryDelay    = errors.New("retry delay cannot be negative")
	ErrSheetName     = errors.New("sheet name cannot be empty")
)

// Config holds the configuration for the Google Sheets writer.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	SpreadsheetID      string
	SpreadsheetName    string
	SheetName          string
	TimeZone           string
	BatchSize          int
	RetryAttempts      int
	RetryDelay         time.Duration
	EnableFormatting   bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		EnableFormatting: true,
		SpreadsheetName:  "Expenses",
		SheetName:        "Expenses",
		TimeZone:         "UTC",
		BatchSize:        1000,
		RetryAttempts:    3,
		RetryDelay:       time.Second,
	}
}

// HasOAuth reports whether a complete set of OAuth2 credentials is present.
func (c *Config) HasOAuth() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	hasServiceAccount := c.ServiceAccountPath != ""

	if !c.HasOAuth() && !hasServiceAccount {
		return ErrNoAuth
	}
	if c.HasOAuth() && hasServiceAccount {
		return ErrMultipleAuth
	}
	if c.SheetName == "" {
		return ErrSheetName
	}
	if c.BatchSize <= 0 {
		return ErrBatchSize
	}
	if c.RetryAttempts < 0 {
		return ErrRetryAttempts
	}
	if c.RetryDelay < 0 {
		return ErrRetryDelay
	}
	return nil
}

package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	valid := func(mutate func(*Config)) Config {
		c := DefaultConfig()
		c.ServiceAccountPath = "/path/to/key.json"
		mutate(&c)
		return c
	}

	tests := []struct {
		wantErr error
		name    string
		config  Config
	}{
		{
			name:   "valid service account config",
			config: valid(func(*Config) {}),
		},
		{
			name: "valid oauth config",
			config: valid(func(c *Config) {
				c.ServiceAccountPath = ""
				c.ClientID = "test-client"
				c.ClientSecret = "test-secret"
				c.RefreshToken = "test-token"
			}),
		},
		{
			name: "partial oauth credentials",
			config: valid(func(c *Config) {
				c.ServiceAccountPath = ""
				c.ClientID = "test-client"
				c.RefreshToken = "test-token"
			}),
			wantErr: ErrNoAuth,
		},
		{
			name: "multiple auth methods",
			config: valid(func(c *Config) {
				c.ClientID = "test-client"
				c.ClientSecret = "test-secret"
				c.RefreshToken = "test-token"
			}),
			wantErr: ErrMultipleAuth,
		},
		{
			name:    "empty sheet name",
			config:  valid(func(c *Config) { c.SheetName = "" }),
			wantErr: ErrSheetName,
		},
		{
			name:    "zero batch size",
			config:  valid(func(c *Config) { c.BatchSize = 0 }),
			wantErr: ErrBatchSize,
		},
		{
			name: "zero retry delay is valid",
			config: valid(func(c *Config) {
				c.RetryAttempts = 0
				c.RetryDelay = 0
			}),
		},
		{
			name:    "negative retry attempts",
			config:  valid(func(c *Config) { c.RetryAttempts = -1 }),
			wantErr: ErrRetryAttempts,
		},
		{
			name:    "negative retry delay",
			config:  valid(func(c *Config) { c.RetryDelay = -1 * time.Second }),
			wantErr: ErrRetryDelay,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()

	assert.Equal(t, "Expenses", c.SheetName)
	assert.Equal(t, 1000, c.BatchSize)
	assert.Equal(t, 3, c.RetryAttempts)
	assert.True(t, c.EnableFormatting)
	assert.ErrorIs(t, c.Validate(), ErrNoAuth)
}

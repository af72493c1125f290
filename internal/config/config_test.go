package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromReaderDefaults(t *testing.T) {
	cfg, err := LoadConfigFromReader(strings.NewReader("{}"))
	require.NoError(t, err)

	assert.Equal(t, "FO", cfg.Calendar.Segment)
	assert.Equal(t, "csv", cfg.Archive.Format)
	assert.Equal(t, "data", cfg.Archive.Dir)
	assert.Equal(t, 0.10, cfg.Pricing.RiskFreeRate)
	assert.Equal(t, 365, cfg.Pricing.TradingDaysPerYear)
	assert.Zero(t, cfg.Client.Timeout)
}

func TestLoadConfigFromReaderFull(t *testing.T) {
	doc := `
client:
  base_url: https://example.test/api
  timeout: 45s
  max_retries: 5
pricing:
  risk_free_rate: 0.07
  trading_days_per_year: 252
calendar:
  segment: CM
archive:
  format: parquet
  dir: /tmp/bars
log_level: debug
`
	cfg, err := LoadConfigFromReader(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "https://example.test/api", cfg.Client.BaseURL)
	assert.Equal(t, 45*time.Second, cfg.Client.Timeout)
	assert.Equal(t, 5, cfg.Client.MaxRetries)
	assert.Equal(t, 0.07, cfg.Pricing.RiskFreeRate)
	assert.Equal(t, 252, cfg.Pricing.TradingDaysPerYear)
	assert.Equal(t, "CM", cfg.Calendar.Segment)
	assert.Equal(t, "parquet", cfg.Archive.Format)
	assert.Equal(t, "/tmp/bars", cfg.Archive.Dir)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigExpandsEnv(t *testing.T) {
	t.Setenv("STOCKFETCH_TEST_DIR", "/srv/archive")
	doc := "archive:\n  dir: ${STOCKFETCH_TEST_DIR}\n"

	cfg, err := LoadConfigFromReader(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "/srv/archive", cfg.Archive.Dir)
}

func TestLoadConfigBadTimeout(t *testing.T) {
	_, err := LoadConfigFromReader(strings.NewReader("client:\n  timeout: soon\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"negative retries", "client:\n  max_retries: -1\n"},
		{"negative rate", "pricing:\n  risk_free_rate: -0.01\n"},
		{"negative trading days", "pricing:\n  trading_days_per_year: -5\n"},
		{"unknown archive format", "archive:\n  format: xml\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfigFromReader(strings.NewReader(tc.doc))
			assert.Error(t, err)
		})
	}
}

func TestBuildClient(t *testing.T) {
	cfg, err := LoadConfigFromReader(strings.NewReader("client:\n  base_url: https://example.test/api\n"))
	require.NoError(t, err)
	assert.NotNil(t, cfg.BuildClient())
}

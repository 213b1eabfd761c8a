package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson_OverlaysValues(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	body := `{
		"endpoint_addr_http": ":9999",
		"database_dsn": "postgres://json:json@db:5432/shopapi",
		"secret_key": "json-secret",
		"access_token_validity_duration": "45m",
		"bcrypt_cost": 11,
		"s3_bucket": "json-bucket",
		"image_base_url": "https://img.example.com"
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	os.Args = []string{"server", "-c", path}

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, ":9999", c.EndpointAddrHTTP)
	assert.Equal(t, "postgres://json:json@db:5432/shopapi", c.DatabaseDSN)
	assert.Equal(t, "json-secret", c.SecretKey)
	assert.Equal(t, 45*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, 11, c.BcryptCost)
	assert.Equal(t, "json-bucket", c.S3Bucket)
	assert.Equal(t, "https://img.example.com", c.ImageBaseURL)
}

func TestParseJson_NoFileConfigured(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"server"}

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, ":4000", c.EndpointAddrHTTP, "defaults must survive when no JSON file is given")
}

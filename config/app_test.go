package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadApp_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("CORS_ORIGINS", "")

	a, err := LoadApp()
	require.NoError(t, err)

	assert.Equal(t, "8080", a.Port)
	assert.Equal(t, 24*time.Hour, a.JWTTTL)
	assert.Equal(t, 5*time.Minute, a.CacheTTL)
	assert.Equal(t, "local", a.Storage.Driver)
	assert.Equal(t, []string{"*"}, a.CORSOrigins)
	assert.Equal(t, 5, a.LoginAttempts)
}

func TestLoadApp_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadApp()
	assert.Error(t, err)
}

func TestLoadApp_StorageDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	t.Setenv("STORAGE_DRIVER", "s3")
	t.Setenv("S3_BUCKET", "")
	_, err := LoadApp()
	assert.Error(t, err)

	t.Setenv("S3_BUCKET", "portfolio")
	a, err := LoadApp()
	require.NoError(t, err)
	assert.Equal(t, "portfolio", a.Storage.S3Bucket)

	t.Setenv("STORAGE_DRIVER", "ftp")
	_, err = LoadApp()
	assert.Error(t, err)
}

func TestEnvDuration(t *testing.T) {
	t.Setenv("X_TIMEOUT", "90")
	assert.Equal(t, 90*time.Second, envDuration("X_TIMEOUT", time.Second))

	t.Setenv("X_TIMEOUT", "1m30s")
	assert.Equal(t, 90*time.Second, envDuration("X_TIMEOUT", time.Second))

	t.Setenv("X_TIMEOUT", "soon")
	assert.Equal(t, time.Second, envDuration("X_TIMEOUT", time.Second))
}

func TestEnvList(t *testing.T) {
	t.Setenv("X_ORIGINS", " https://a.dev , ,https://b.dev")
	assert.Equal(t, []string{"https://a.dev", "https://b.dev"}, envList("X_ORIGINS", nil))
}

func TestLoadCLI(t *testing.T) {
	t.Setenv("SHOWCASE_API_URL", "")
	t.Setenv("SHOWCASE_HTTP_TIMEOUT", "")
	t.Setenv("SHOWCASE_POLL_INTERVAL", "")
	t.Setenv("SHOWCASE_TOKEN_FILE", "/tmp/showcase-token")

	c := LoadCLI()
	assert.Equal(t, "http://localhost:8080", c.APIURL)
	assert.Zero(t, c.HTTPTimeout)
	assert.Equal(t, 30*time.Second, c.PollInterval)
	assert.Equal(t, "/tmp/showcase-token", c.TokenFile)

	t.Setenv("SHOWCASE_HTTP_TIMEOUT", "5s")
	assert.Equal(t, 5*time.Second, LoadCLI().HTTPTimeout)
}

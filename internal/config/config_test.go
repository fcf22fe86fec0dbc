package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
app:
  name: vidtube-test
  port: 9001
jwt:
  access_secret: a-secret
  refresh_secret: r-secret
kafka:
  topics:
    media_cleanup: custom.cleanup
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "vidtube-test", cfg.App.Name)
	assert.Equal(t, 9001, cfg.App.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL())
	assert.Equal(t, 240*time.Hour, cfg.JWT.RefreshTTL())
	assert.Equal(t, "images", cfg.MinIO.ImageBucket)
	assert.True(t, cfg.Cookie.Secure)
	assert.Equal(t, int64(5<<20), cfg.Upload.MaxImageBytes)
	assert.Equal(t, "custom.cleanup", cfg.Kafka.Topic("media_cleanup", "media.cleanup"))
	assert.Equal(t, "comments", cfg.Elasticsearch.IndexName("comments", "comments"))
	assert.Same(t, cfg, Get())
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("JWT_ACCESS_EXPIRE_MINUTES", "5")
	t.Setenv("APP_PORT", "7000")

	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.JWT.AccessTTL())
	assert.Equal(t, 7000, cfg.App.Port)
}

func TestLoadRejectsMissingSecrets(t *testing.T) {
	_, err := Load(writeConfig(t, "app:\n  name: x\n"))
	require.Error(t, err)
}

func TestValidateRejectsSharedSecret(t *testing.T) {
	cfg := &Config{JWT: JWTConfig{
		AccessSecret:        "same",
		RefreshSecret:       "same",
		AccessExpireMinutes: 1,
		RefreshExpireHours:  1,
	}}
	assert.Error(t, cfg.Validate())

	cfg.JWT.RefreshSecret = "other"
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

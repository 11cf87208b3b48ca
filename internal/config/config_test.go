package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validKey = "0123456789abcdef0123456789abcdef"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PASETO_KEY", validKey)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.Server.IsDevelopment())
	assert.Equal(t, 5*time.Minute, cfg.Redis.PortfolioTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenDuration)
	assert.Equal(t, 1, cfg.Upload.MaxImages)
	assert.Equal(t, int64(5<<20), cfg.Upload.MaxFileSize)
}

func TestLoad_RejectsBadPasetoKey(t *testing.T) {
	t.Setenv("PASETO_KEY", "too-short")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PASETO_KEY")
}

func TestLoad_RejectsZeroImageCap(t *testing.T) {
	t.Setenv("PASETO_KEY", validKey)
	t.Setenv("UPLOAD_MAX_IMAGES", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UPLOAD_MAX_IMAGES")
}

func TestConnectionString(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db", Port: "5432", User: "u", Password: "p",
		DBName: "portfolio", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=db port=5432 user=u password=p dbname=portfolio sslmode=disable",
		cfg.ConnectionString(),
	)

	cfg.ChannelBinding = "require"
	assert.Contains(t, cfg.ConnectionString(), "channel_binding=require")
}

func TestDurationEnvParsedAsSeconds(t *testing.T) {
	t.Setenv("PASETO_KEY", validKey)
	t.Setenv("S3_UPLOAD_TIMEOUT", "45")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, cfg.Storage.UploadTimeout)
}

func TestTrustedOriginsSplitAndTrimmed(t *testing.T) {
	t.Setenv("PASETO_KEY", validKey)
	t.Setenv("TRUSTED_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.TrustedOrigins)
}

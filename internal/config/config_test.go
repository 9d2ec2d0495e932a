package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
app:
  name: "frontdesk-test"
server:
  port: 9000
  allowed_origin: "http://localhost:3000"
auth:
  jwt_secret: "test-secret"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "frontdesk-test", cfg.App.Name)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "http://localhost:3000", cfg.Server.AllowedOrigin)
	assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)

	// defaults filled in
	assert.Equal(t, 30, cfg.Stream.HeartbeatSeconds)
	assert.Equal(t, 64, cfg.Stream.Buffer)
	assert.Equal(t, "memory", cfg.Sessions.Backend)
	assert.Equal(t, 60, cfg.Auth.AccessTTLMinutes)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
}

func TestLoadConfigExpandsEnv(t *testing.T) {
	t.Setenv("FRONTDESK_TEST_SECRET", "from-env")
	path := writeConfig(t, `
auth:
  jwt_secret: "${FRONTDESK_TEST_SECRET}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing jwt secret",
			mutate:  func(c *Config) { c.Auth.JWTSecret = "" },
			wantErr: true,
		},
		{
			name:    "placeholder jwt secret",
			mutate:  func(c *Config) { c.Auth.JWTSecret = "CHANGE_ME" },
			wantErr: true,
		},
		{
			name:    "unknown sessions backend",
			mutate:  func(c *Config) { c.Sessions.Backend = "etcd" },
			wantErr: true,
		},
		{
			name:    "redis backend without address",
			mutate:  func(c *Config) { c.Sessions.Backend = "redis" },
			wantErr: true,
		},
		{
			name: "redis backend with address",
			mutate: func(c *Config) {
				c.Sessions.Backend = "redis"
				c.Redis.Address = "localhost:6379"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Auth: AuthConfig{JWTSecret: "secret"}}
			cfg.applyDefaults()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConsumerDefaults(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: "secret"
consumer:
  reconnect: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Consumer.Reconnect)
	assert.Equal(t, 10, cfg.Consumer.MaxRetries)
	assert.Equal(t, 1000, cfg.Consumer.InitialDelayMS)
	assert.Equal(t, 30000, cfg.Consumer.MaxDelayMS)
}

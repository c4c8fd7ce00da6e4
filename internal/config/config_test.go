package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("non-existent config file", func(t *testing.T) {
		cfg, err := Load("invalid/path/to/config.yml")

		assert.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Nil(t, cfg)
	})

	t.Run("invalid config file", func(t *testing.T) {
		data := `http_server:
  port: not number
postgres:
  user: test
  password: test
  db: test`

		f := createTempFile(t, []byte(data))
		cfg, err := Load(f.Name())

		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("success", func(t *testing.T) {
		data := `base_url: https://zpw.io
admin_token: file-token
postgres:
  user: test
  password: test
  db: test`

		f := createTempFile(t, []byte(data))
		cfg, err := Load(f.Name())

		assert.NoError(t, err)
		assert.NotNil(t, cfg)

		var wantCfg Config
		setDefaults(&wantCfg)

		wantCfg.BaseURL = "https://zpw.io"
		wantCfg.AdminToken = "file-token"
		wantCfg.Postgres.User = "test"
		wantCfg.Postgres.Password = "test"
		wantCfg.Postgres.DB = "test"

		assert.Equal(t, wantCfg, *cfg)
	})

	t.Run("admin token env override", func(t *testing.T) {
		data := `admin_token: file-token
postgres:
  user: test
  password: test
  db: test`

		t.Setenv(adminTokenEnv, "env-token")

		f := createTempFile(t, []byte(data))
		cfg, err := Load(f.Name())

		assert.NoError(t, err)
		assert.NotNil(t, cfg)
		assert.Equal(t, "env-token", cfg.AdminToken)
	})

	t.Run("defaults", func(t *testing.T) {
		f := createTempFile(t, []byte(`{}`))
		cfg, err := Load(f.Name())

		assert.NoError(t, err)
		assert.NotNil(t, cfg)
		assert.Equal(t, EnvDev, cfg.Env)
		assert.Equal(t, 8080, cfg.HTTPServer.Port)
		assert.Equal(t, 20, cfg.RateLimit.Shorten.PerMinute)
		assert.Equal(t, 200, cfg.RateLimit.Redirect.PerMinute)
		assert.Equal(t, 10, cfg.RateLimit.Admin.PerMinute)
	})
}

func createTempFile(t testing.TB, data []byte) *os.File {
	t.Helper()

	f, err := os.CreateTemp("", "config.yml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	t.Cleanup(func() {
		f.Close()
		os.Remove(f.Name())
	})

	if _, err := f.Write(data); err != nil {
		t.Fatalf("Failed to write to file: %v", err)
	}

	return f
}

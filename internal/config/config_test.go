package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, BackendLocal, cfg.General.Backend)
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	assert.True(t, cfg.UI.ConfirmDelete)
	assert.False(t, cfg.UI.ShowHidden)
	assert.Equal(t, int64(256*1024), cfg.UI.PreviewMaxBytes)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[log]
level = "debug"
format = "json"

[general]
start_dir = "/srv"
operation_timeout = 5

[ui]
show_hidden = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("KUPO_LOG_FORMAT", "text")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format, "environment wins over the file")
	assert.Equal(t, "/srv", cfg.General.StartDir)
	assert.Equal(t, 5*time.Second, cfg.Timeout())
	assert.True(t, cfg.UI.ShowHidden)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log\nlevel="), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to read config file")
}

func validConfig() *Config {
	return &Config{
		Log:     LogConfig{Level: "info", Format: "text"},
		General: GeneralConfig{Backend: BackendLocal, OperationTimeout: 30},
		UI:      UIConfig{PreviewMaxBytes: 1024, PreviewWidth: 40},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "invalid log level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "invalid log format"},
		{"bad backend", func(c *Config) { c.General.Backend = "ftp" }, "invalid backend"},
		{"bad timeout", func(c *Config) { c.General.OperationTimeout = 0 }, "operation_timeout"},
		{"bad preview", func(c *Config) { c.UI.PreviewMaxBytes = 0 }, "preview_max_bytes"},
		{"bad width", func(c *Config) { c.UI.PreviewWidth = 95 }, "preview_width"},
		{"r2 needs credentials", func(c *Config) { c.General.Backend = BackendR2 }, "account_id is required"},
		{"r2 bad bucket", func(c *Config) {
			c.General.Backend = BackendR2
			c.R2 = R2Config{AccountID: "acc", AccessKeyID: "id", AccessKeySecret: "secret", BucketName: "-bad"}
		}, "invalid bucket_name"},
		{"r2 ok", func(c *Config) {
			c.General.Backend = BackendR2
			c.R2 = R2Config{AccountID: "acc", AccessKeyID: "id", AccessKeySecret: "secret", BucketName: "photos"}
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestSessionState_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.yaml")

	state := LoadState(path)
	assert.Empty(t, state.LastDir)

	state.Remember("local", "/home/u/src", "/home/u/src/main.go")
	require.NoError(t, state.Save(path))

	loaded := LoadState(path)
	assert.Equal(t, "/home/u/src", loaded.LastDir)
	assert.Equal(t, "/home/u/src/main.go", loaded.LastEntry)
	assert.Equal(t, "local", loaded.Backend)
	assert.False(t, loaded.UpdatedAt.IsZero())
}

func TestSessionState_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	require.NoError(t, os.WriteFile(path, []byte("last_dir: [unclosed"), 0o644))

	assert.Empty(t, LoadState(path).LastDir)
}

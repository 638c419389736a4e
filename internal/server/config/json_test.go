package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("overlays only present keys", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{
			"endpoint_addr_http":        "0.0.0.0:80",
			"database_dsn":              "postgres://json",
			"session_validity_duration": "30m",
			"listen_timeout":            "5s",
			"request_timeout":           int64(2 * time.Second),
			"login_rate_limit":          20,
			"tts_voice":                 "shimmer",
			"s3_bucket":                 "audio",
		})
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "0.0.0.0:80", cfg.EndpointAddrHTTP)
		assert.Equal(t, "postgres://json", cfg.DatabaseDSN)
		assert.Equal(t, 30*time.Minute, cfg.SessionValidityDuration)
		assert.Equal(t, 5*time.Second, cfg.ListenTimeout)
		assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
		assert.Equal(t, 20, cfg.LoginRateLimit)
		assert.Equal(t, "shimmer", cfg.TTSVoice)
		assert.Equal(t, "audio", cfg.S3Bucket)

		// untouched
		assert.Empty(t, cfg.SecretKey)
		assert.Equal(t, "whisper-1", cfg.STTModel)
	})

	t.Run("no config flag leaves values", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{EndpointAddrHTTP: "keep:1"}
		parseJson(cfg)
		assert.Equal(t, "keep:1", cfg.EndpointAddrHTTP)
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(t.TempDir(), "absent.json")}
		require.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ not json`), 0o600))
		os.Args = []string{"testbin", "-c", bad}
		require.Panics(t, func() { parseJson(&Config{}) })
	})
}

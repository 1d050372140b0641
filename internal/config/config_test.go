package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Data:   DataConfig{BasePath: "/var/lib/club"},
		Auth:   AuthConfig{AccessTokenDuration: 24 * time.Hour, LoginRatePerMinute: 10},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env
			if tt.valid {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.Error(t, cfg.Validate())
			}
		})
	}
}

func TestValidate_LogLevels(t *testing.T) {
	for _, level := range []string{"debug", "INFO", "warn", "error"} {
		cfg := validConfig()
		cfg.Logger.Level = level
		assert.NoError(t, cfg.Validate(), level)
	}

	cfg := validConfig()
	cfg.Logger.Level = "verbose"
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsBadAuth(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.AccessTokenDuration = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Auth.LoginRatePerMinute = -1
	assert.Error(t, cfg.Validate())
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("DATA_PATH", "")
	t.Setenv("ACCESS_TOKEN_DURATION", "")
	t.Setenv("TRUST_PROXY_HEADERS", "")
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.Auth.AccessTokenDuration)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Server.TrustProxyHeaders)
	assert.True(t, filepath.IsAbs(cfg.Data.BasePath))
	assert.Equal(t, filepath.Join(cfg.Data.BasePath, "club.db"), cfg.Data.DatabasePath())
}

func TestLoadConfig_FlagBeatsEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DATA_PATH", t.TempDir())

	cfg, err := LoadConfig([]string{"-port", "9100"})
	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.Server.Port)

	cfg, err = LoadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ACCESS_TOKEN_DURATION", "forever")

	_, err := LoadConfig(nil)
	assert.ErrorContains(t, err, "access_token_duration")
}

func TestGetConfigValue_Precedence(t *testing.T) {
	t.Setenv("CLUB_TEST_KEY", "from-env")

	assert.Equal(t, "from-flag", getConfigValue("from-flag", "CLUB_TEST_KEY", "default"))
	assert.Equal(t, "from-env", getConfigValue("", "CLUB_TEST_KEY", "default"))
	assert.Equal(t, "default", getConfigValue("", "CLUB_UNSET_KEY", "default"))
}

func TestGetIntConfigValue_FallsBackOnGarbage(t *testing.T) {
	t.Setenv("CLUB_TEST_INT", "ten")
	assert.Equal(t, 10, getIntConfigValue("", "CLUB_TEST_INT", 10))
	assert.Equal(t, 3, getIntConfigValue("3", "CLUB_TEST_INT", 10))
}

func TestGetBoolConfigValue(t *testing.T) {
	t.Setenv("CLUB_TEST_BOOL", "yes-please")
	assert.False(t, getBoolConfigValue("", "CLUB_TEST_BOOL", false))
	assert.True(t, getBoolConfigValue("true", "CLUB_TEST_BOOL", false))

	t.Setenv("CLUB_TEST_BOOL", "1")
	assert.True(t, getBoolConfigValue("", "CLUB_TEST_BOOL", false))
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# comment\n\nCLUB_ENVFILE_A=\"quoted\"\nCLUB_ENVFILE_B=kept\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CLUB_ENVFILE_A", "")
	t.Setenv("CLUB_ENVFILE_B", "already-set")

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "quoted", os.Getenv("CLUB_ENVFILE_A"))
	assert.Equal(t, "already-set", os.Getenv("CLUB_ENVFILE_B"))
}

func TestLoadEnvFile_InvalidLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("NOEQUALS\n"), 0o600))

	assert.ErrorContains(t, loadEnvFile(path), "line 1")
}

func TestLoadClientConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CLUB_API_URL", "https://club.example.com/api")
	t.Setenv("CLUB_SESSION_PATH", "")
	t.Setenv("CLUB_TIMEOUT", "3s")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := LoadClientConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://club.example.com/api", cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "session", filepath.Base(cfg.SessionPath))
}

func TestClientConfig_Validate(t *testing.T) {
	cfg := &ClientConfig{BaseURL: "ftp://x", Timeout: time.Second, LogLevel: "warn"}
	assert.Error(t, cfg.Validate())

	cfg.BaseURL = "not a url"
	assert.Error(t, cfg.Validate())

	cfg.BaseURL = "http://localhost:8080/api"
	assert.NoError(t, cfg.Validate())
}

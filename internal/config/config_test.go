package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTempConfig 写入临时配置文件并返回路径
func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeTempConfig(t, `
database:
  host: localhost
  port: 3306
  username: lotto
  password: secret
  database: lotto_bot
telegram:
  token: "123:abc"
  timeout: 60s
api:
  url: "https://example.com/draws"
  timeout: 10s
  retry_count: 3
  retry_delay: 1s
lottery:
  categories:
    - "Monday Special"
    - "Midweek"
  history_limit: 100
app:
  polling_interval: 30s
  log_level: debug
  cache_ttl: 10m
  cleanup_spec: "@daily"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "123:abc", cfg.Telegram.Token)
	assert.Equal(t, "https://example.com/draws", cfg.API.URL)
	assert.Equal(t, []string{"Monday Special", "Midweek"}, cfg.Lottery.Categories)
	assert.Equal(t, 100, cfg.Lottery.HistoryLimit)
	assert.Equal(t, 30*time.Second, cfg.App.PollingInterval)
	assert.Equal(t, 10*time.Minute, cfg.App.CacheTTL)
	assert.Equal(t, "@daily", cfg.App.CleanupSpec)
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeTempConfig(t, `
database:
  host: localhost
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// 缺省监控全部6个开奖类别
	assert.Len(t, cfg.Lottery.Categories, 6)
	assert.Equal(t, "Monday Special", cfg.Lottery.Categories[0])
	assert.Equal(t, "National Weekly", cfg.Lottery.Categories[5])
	assert.Equal(t, 200, cfg.Lottery.HistoryLimit)
	assert.Equal(t, "@hourly", cfg.App.CleanupSpec)
	assert.Equal(t, 5*time.Minute, cfg.App.CacheTTL)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := writeTempConfig(t, "database: [not: valid")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestGetDSN(t *testing.T) {
	db := Database{
		Host:     "localhost",
		Port:     3306,
		Username: "lotto",
		Password: "secret",
		Database: "lotto_bot",
	}

	assert.Equal(t,
		"lotto:secret@tcp(localhost:3306)/lotto_bot?charset=utf8mb4&parseTime=True&loc=Local",
		db.GetDSN())
}

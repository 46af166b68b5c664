package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Config 应用程序配置结构
type Config struct {
	Database Database `yaml:"database"`
	Telegram Telegram `yaml:"telegram"`
	API      API      `yaml:"api"`
	Lottery  Lottery  `yaml:"lottery"`
	App      App      `yaml:"app"`
}

// Database 数据库配置
type Database struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Username        string        `yaml:"username"`
	Database        string        `yaml:"database"`
	Password        string        `yaml:"password"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// Telegram Bot配置
type Telegram struct {
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
}

// API 外部开奖API配置
type API struct {
	URL        string        `yaml:"url"`
	Timeout    time.Duration `yaml:"timeout"`
	RetryCount int           `yaml:"retry_count"`
	RetryDelay time.Duration `yaml:"retry_delay"`
}

// Lottery 彩票玩法配置
type Lottery struct {
	Categories   []string `yaml:"categories"`    // 监控的开奖类别（如 Monday Special）
	HistoryLimit int      `yaml:"history_limit"` // 初始化时回填的历史期数
}

// App 应用程序配置
type App struct {
	PollingInterval time.Duration `yaml:"polling_interval"`
	LogLevel        string        `yaml:"log_level"`
	CacheTTL        time.Duration `yaml:"cache_ttl"`
	CleanupSpec     string        `yaml:"cleanup_spec"` // cron表达式，默认每小时
}

// LoadConfig 加载配置文件
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %v", err)
	}

	config.applyDefaults()
	return &config, nil
}

// applyDefaults 填充缺省配置
func (c *Config) applyDefaults() {
	if len(c.Lottery.Categories) == 0 {
		c.Lottery.Categories = []string{
			"Monday Special",
			"Lucky Tuesday",
			"Midweek",
			"Fortune Thursday",
			"Friday Bonanza",
			"National Weekly",
		}
	}
	if c.Lottery.HistoryLimit <= 0 {
		c.Lottery.HistoryLimit = 200
	}
	if c.App.CleanupSpec == "" {
		c.App.CleanupSpec = "@hourly"
	}
	if c.App.CacheTTL == 0 {
		c.App.CacheTTL = 5 * time.Minute
	}
}

// GetDSN 获取数据库连接字符串
func (d *Database) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

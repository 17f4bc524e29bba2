package config

import (
	"os"
	"time"

	"github.com/dachuang-plat/dcctl/internal/client"
	"github.com/dachuang-plat/dcctl/internal/session"
	"github.com/dachuang-plat/dcctl/pkg/conf"
	"github.com/dachuang-plat/dcctl/pkg/log"
)

// 环境与默认 API 地址。DCCTL_ENV 未设置时按开发环境处理。
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	devBaseURL  = "http://localhost:8000"
	prodBaseURL = "https://api.dachuang.com"
)

type API struct {
	BaseURL   string `mapstructure:"base_url"`
	Version   string `mapstructure:"version"`
	TimeoutMs int    `mapstructure:"timeout_ms"`
}

type Storage struct {
	Backend string `mapstructure:"backend"` // file 或 redis
	Path    string `mapstructure:"path"`    // file 后端的会话文件路径
}

type Redis struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
	UseTLS   bool   `mapstructure:"use_tls"`
}

type Config struct {
	API     API      `mapstructure:"api"`
	Storage Storage  `mapstructure:"storage"`
	Redis   Redis    `mapstructure:"redis"`
	Log     log.Conf `mapstructure:"log"`
}

// Default 按环境返回默认配置。
func Default() *Config {
	baseURL := devBaseURL
	if os.Getenv("DCCTL_ENV") == EnvProduction {
		baseURL = prodBaseURL
	}
	return &Config{
		API: API{
			BaseURL:   baseURL,
			Version:   "v1",
			TimeoutMs: 10000,
		},
		Storage: Storage{Backend: "file"},
		Log:     *log.SetDefaults(),
	}
}

// Load 读取 confDir 下的 config.toml 并叠加到默认配置上；
// confDir 为空或文件不存在时直接用默认配置。环境变量
// DCCTL_API_BASE_URL 优先级最高。
func Load(confDir string) (*Config, error) {
	cfg := Default()
	if confDir != "" {
		if err := conf.LoadConfigFile(confDir, cfg); err != nil {
			return nil, err
		}
	}
	if v := os.Getenv("DCCTL_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	return cfg, nil
}

// ClientConf 转成 transport 配置。
func (c *Config) ClientConf() *client.Conf {
	return &client.Conf{
		BaseURL:    c.API.BaseURL,
		APIVersion: c.API.Version,
		Timeout:    time.Duration(c.API.TimeoutMs) * time.Millisecond,
	}
}

// RedisConf 转成 redis 会话后端配置。
func (c *Config) RedisConf() session.RedisConf {
	return session.RedisConf{
		Address:      c.Redis.Address,
		Password:     c.Redis.Password,
		DB:           c.Redis.DB,
		PoolSize:     c.Redis.PoolSize,
		UseTLS:       c.Redis.UseTLS,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

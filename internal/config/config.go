package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 服務啟動時載入一次的設定，之後唯讀
type Config struct {
	HTTPAddr         string        `mapstructure:"http_addr"`
	DatabaseURL      string        `mapstructure:"database_url"`
	RedisAddr        string        `mapstructure:"redis_addr"`
	RedisPassword    string        `mapstructure:"redis_password"`
	RedisDB          int           `mapstructure:"redis_db"`
	JWTSecret        string        `mapstructure:"jwt_secret"`
	FaviconTimeout   time.Duration `mapstructure:"favicon_timeout"`
	CategoryCacheTTL time.Duration `mapstructure:"category_cache_ttl"`
	CORSAllowOrigins []string      `mapstructure:"cors_allow_origins"`
	AdminEmail       string        `mapstructure:"admin_email"`
	AdminPassword    string        `mapstructure:"admin_password"`

	// 未設定 endpoint 時不匯出 trace
	OTLPEndpoint string `mapstructure:"otel_exporter_otlp_endpoint"`
	OTLPInsecure bool   `mapstructure:"otel_exporter_otlp_insecure"`
}

var keys = []string{
	"http_addr",
	"database_url",
	"redis_addr",
	"redis_password",
	"redis_db",
	"jwt_secret",
	"favicon_timeout",
	"category_cache_ttl",
	"cors_allow_origins",
	"admin_email",
	"admin_password",
	"otel_exporter_otlp_endpoint",
	"otel_exporter_otlp_insecure",
}

// Load 從環境變數 (大寫，例如 DATABASE_URL) 與可選的 CONFIG_FILE (yaml) 讀取設定
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("redis_db", 0)
	v.SetDefault("favicon_timeout", 3*time.Second)
	v.SetDefault("category_cache_ttl", time.Minute)
	v.SetDefault("cors_allow_origins", []string{"*"})

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv 只對已知 key 生效，Unmarshal 前需逐一綁定
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("bind %s: %w", k, err)
		}
	}

	if path := v.GetString("config_file"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("讀取設定檔失敗: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析設定失敗: %w", err)
	}
	// 以逗號分隔的環境變數值
	if len(cfg.CORSAllowOrigins) == 1 && strings.Contains(cfg.CORSAllowOrigins[0], ",") {
		cfg.CORSAllowOrigins = splitList(cfg.CORSAllowOrigins[0])
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 檢查必填欄位
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("環境變數 DATABASE_URL 未設定")
	}
	if c.RedisAddr == "" {
		return errors.New("環境變數 REDIS_ADDR 未設定")
	}
	if c.JWTSecret == "" {
		return errors.New("環境變數 JWT_SECRET 未設定")
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("無效的 REDIS_DB: %d", c.RedisDB)
	}
	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		return errors.New("ADMIN_EMAIL 與 ADMIN_PASSWORD 需同時設定")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

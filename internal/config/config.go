package config

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	ServerAddr string `mapstructure:"SERVER_ADDR"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`
	LogFormat  string `mapstructure:"LOG_FORMAT"`

	StoreDriver  string        `mapstructure:"STORE_DRIVER"`
	StoreTimeout time.Duration `mapstructure:"STORE_TIMEOUT"`
	RedisURL     string        `mapstructure:"REDIS_URL"`
	DatabaseURL  string        `mapstructure:"DATABASE_URL"`
	RoomTTL      time.Duration `mapstructure:"ROOM_TTL"`

	MinPlayers int    `mapstructure:"MIN_PLAYERS"`
	MaxPlayers int    `mapstructure:"MAX_PLAYERS"`
	WordsFile  string `mapstructure:"WORDS_FILE"`

	WechatToken     string `mapstructure:"WECHAT_TOKEN"`
	WechatAppID     string `mapstructure:"WECHAT_APP_ID"`
	WechatAppSecret string `mapstructure:"WECHAT_APP_SECRET"`
	WechatAPIBase   string `mapstructure:"WECHAT_API_BASE"`

	NotifyMode    string `mapstructure:"NOTIFY_MODE"`
	NotifyWorkers int    `mapstructure:"NOTIFY_WORKERS"`
	NotifyBuffer  int    `mapstructure:"NOTIFY_BUFFER"`

	JWTSecret         string `mapstructure:"JWT_SECRET"`
	AdminUsername     string `mapstructure:"ADMIN_USERNAME"`
	AdminPasswordHash string `mapstructure:"ADMIN_PASSWORD_HASH"`

	CommandAPIEnabled bool `mapstructure:"COMMAND_API_ENABLED"`

	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`
}

// Store drivers.
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Notification delivery modes.
const (
	NotifyInline = "inline"
	NotifyQueue  = "queue"
)

var AppConfig *Config

// NotifierEnabled reports whether platform credentials are configured.
func (c *Config) NotifierEnabled() bool {
	return c.WechatAppID != "" && c.WechatAppSecret != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_ADDR", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("STORE_DRIVER", StoreMemory)
	v.SetDefault("STORE_TIMEOUT", 3*time.Second)
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("ROOM_TTL", 2*time.Hour)
	v.SetDefault("MIN_PLAYERS", 3)
	v.SetDefault("MAX_PLAYERS", 12)
	v.SetDefault("WORDS_FILE", "")
	v.SetDefault("WECHAT_TOKEN", "")
	v.SetDefault("WECHAT_APP_ID", "")
	v.SetDefault("WECHAT_APP_SECRET", "")
	v.SetDefault("WECHAT_API_BASE", "https://api.weixin.qq.com")
	v.SetDefault("NOTIFY_MODE", NotifyInline)
	v.SetDefault("NOTIFY_WORKERS", 4)
	v.SetDefault("NOTIFY_BUFFER", 256)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD_HASH", "")
	v.SetDefault("COMMAND_API_ENABLED", false)
	v.SetDefault("RATE_LIMIT_RPS", 2.0)
	v.SetDefault("RATE_LIMIT_BURST", 5)
}

// Load reads configuration from the given directory's .env file and the
// environment. A missing .env file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	setDefaults(v)

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		logrus.Warn(".env file not found, loading from environment variables")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig loads the configuration from a .env file and environment variables
// into AppConfig.
func LoadConfig() {
	cfg, err := Load(".")
	if err != nil {
		logrus.Fatalf("Unable to decode into struct, %v", err)
	}
	AppConfig = cfg
}

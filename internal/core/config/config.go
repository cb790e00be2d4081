package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
	// 每个请求的处理超时
	RequestTimeoutSec int
	MaxBodyBytes      int64
	MaxInFlight       int64
	// StrictStatus 为 false 时所有业务响应都是 200
	StrictStatus bool
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
}

type Log struct {
	Level      string
	JSON       bool
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Token 登录凭证的编码方式，legacy 或 jwt
type Token struct {
	Mode   string
	Issuer string
	TTLMin int
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTLSec   int    `mapstructure:"ttlsec"`
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type Product struct {
	EnforceOwnership bool
}

type Password struct {
	Cost int
}

type Config struct {
	App      App
	Log      Log
	Secret   string
	Token    Token
	DB       DB
	Redis    Redis `mapstructure:"redis"`
	Product  Product
	Password Password
}

var ErrNoSecret = errors.New("config: secret is required (APP_SECRET)")

func defaults(v *viper.Viper) {
	v.SetDefault("app.name", "product-api")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.readtimeoutsec", 10)
	v.SetDefault("app.http.writetimeoutsec", 15)
	v.SetDefault("app.http.idletimeoutsec", 60)
	v.SetDefault("app.http.requesttimeoutsec", 10)
	v.SetDefault("app.http.maxbodybytes", 1<<20)
	v.SetDefault("app.http.maxinflight", 256)
	v.SetDefault("app.http.strictstatus", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.maxsizemb", 100)
	v.SetDefault("log.maxbackups", 7)
	v.SetDefault("log.maxagedays", 30)
	v.SetDefault("log.compress", true)

	// 没有默认值也要注册，否则 AutomaticEnv 不会在 Unmarshal 时生效
	v.SetDefault("secret", "")
	v.SetDefault("token.mode", "legacy")
	v.SetDefault("token.issuer", "product-api")
	v.SetDefault("token.ttlmin", 1440)

	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.username", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.maxopenconns", 20)
	v.SetDefault("db.maxidleconns", 10)
	v.SetDefault("db.connmaxlifetimemin", 30)
	v.SetDefault("db.automigrate", false)
	v.SetDefault("db.loglevel", "warn")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttlsec", 60)

	v.SetDefault("product.enforceownership", false)
	v.SetDefault("password.cost", 0)
}

// Load 读 yaml（文件不存在时只用默认值和环境变量），APP_ 前缀的环境变量覆盖文件
func Load(path string) (*Config, error) {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	defaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); statErr == nil || !errors.Is(statErr, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Validate api 进程启动前调用；migrate 不需要 secret
func (c *Config) Validate() error {
	if c.Secret == "" {
		return ErrNoSecret
	}
	switch c.Token.Mode {
	case "legacy", "jwt":
	default:
		return fmt.Errorf("config: unknown token.mode %q", c.Token.Mode)
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strings"
	"time"

	"pos-exit-checker/pkg/logger"

	"github.com/spf13/viper"
)

var (
	ErrRootRPCMissing  = errors.New("RootRPC is required")
	ErrChildRPCMissing = errors.New("ChildRPC is required")
)

// Config 应用配置
type Config struct {
	Server ServerConfig
	Chain  ChainConfig
	Redis  RedisConfig
}

type ServerConfig struct {
	Host           string
	Port           string
	Mode           string
	SwaggerEnabled bool
	// StrictExitTimeValidation rejects /exit-time when either hash has the
	// wrong length. When false only a payload with both hashes wrong is
	// rejected.
	StrictExitTimeValidation bool
}

// ChainConfig 链配置
type ChainConfig struct {
	Network         string
	Version         string
	RootRPC         string
	ChildRPC        string
	NetworkMetaURL  string
	HeaderCacheSize int

	RootChainAddress        string
	WithdrawManagerAddress  string
	RootChainManagerAddress string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
}

// Addr 监听地址
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

// envKeys maps viper keys onto the environment names operators already use.
var envKeys = map[string]string{
	"network":                     "Network",
	"version":                     "Version",
	"rootrpc":                     "RootRPC",
	"childrpc":                    "ChildRPC",
	"host":                        "HOST",
	"port":                        "PORT",
	"gin_mode":                    "GIN_MODE",
	"swagger_enabled":             "SWAGGER_ENABLED",
	"strict_exit_time_validation": "STRICT_EXIT_TIME_VALIDATION",
	"network_meta_url":            "NETWORK_META_URL",
	"header_cache_size":           "HEADER_CACHE_SIZE",
	"root_chain_address":          "ROOT_CHAIN_ADDRESS",
	"withdraw_manager_address":    "WITHDRAW_MANAGER_ADDRESS",
	"root_chain_manager_address":  "ROOT_CHAIN_MANAGER_ADDRESS",
	"redis_enabled":               "REDIS_ENABLED",
	"redis_host":                  "REDIS_HOST",
	"redis_port":                  "REDIS_PORT",
	"redis_password":              "REDIS_PASSWORD",
	"redis_db":                    "REDIS_DB",
	"exit_cache_ttl":              "EXIT_CACHE_TTL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("network", "testnet")
	v.SetDefault("version", "mumbai")
	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("port", "7003")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("swagger_enabled", false)
	v.SetDefault("strict_exit_time_validation", true)
	v.SetDefault("network_meta_url", "https://static.matic.network/network")
	v.SetDefault("header_cache_size", 1024)

	// Redis defaults
	v.SetDefault("redis_enabled", false)
	v.SetDefault("redis_host", "localhost")
	v.SetDefault("redis_port", 6379)
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("exit_cache_ttl", time.Hour*24)
}

// LoadConfig 从工作目录下的 .env 文件和环境变量加载配置
func LoadConfig() (*Config, error) {
	return Load(".env")
}

// Load 从指定 dotenv 文件加载配置，文件不存在时仅使用环境变量
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	setDefaults(v)

	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			logger.Error("LoadConfig Error: ", err, "path", path)
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:                     v.GetString("host"),
			Port:                     v.GetString("port"),
			Mode:                     v.GetString("gin_mode"),
			SwaggerEnabled:           v.GetBool("swagger_enabled"),
			StrictExitTimeValidation: v.GetBool("strict_exit_time_validation"),
		},
		Chain: ChainConfig{
			Network:                 v.GetString("network"),
			Version:                 v.GetString("version"),
			RootRPC:                 strings.TrimSpace(v.GetString("rootrpc")),
			ChildRPC:                strings.TrimSpace(v.GetString("childrpc")),
			NetworkMetaURL:          strings.TrimRight(v.GetString("network_meta_url"), "/"),
			HeaderCacheSize:         v.GetInt("header_cache_size"),
			RootChainAddress:        v.GetString("root_chain_address"),
			WithdrawManagerAddress:  v.GetString("withdraw_manager_address"),
			RootChainManagerAddress: v.GetString("root_chain_manager_address"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis_enabled"),
			Host:     v.GetString("redis_host"),
			Port:     v.GetInt("redis_port"),
			Password: v.GetString("redis_password"),
			DB:       v.GetInt("redis_db"),
			TTL:      v.GetDuration("exit_cache_ttl"),
		},
	}

	if err := cfg.Validate(); err != nil {
		logger.Error("LoadConfig Error: ", err)
		return nil, err
	}

	logger.Info("LoadConfig: ", "network", cfg.Chain.Network, "version", cfg.Chain.Version, "addr", cfg.Server.Addr())
	return cfg, nil
}

// Validate 校验必填项
func (c *Config) Validate() error {
	if c.Chain.RootRPC == "" {
		return ErrRootRPCMissing
	}
	if c.Chain.ChildRPC == "" {
		return ErrChildRPCMissing
	}
	return nil
}

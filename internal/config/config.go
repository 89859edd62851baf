package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Chat    ChatConfig
	Log     LogConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	storage, err := loadStorageConfig()
	if err != nil {
		return nil, err
	}

	chat, err := loadChatConfig()
	if err != nil {
		return nil, err
	}

	logCfg, err := loadLogConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Storage: storage, Chat: chat, Log: logCfg}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// Backend 标识持久化存储的实现。
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendRedis  Backend = "redis"
	BackendSQLite Backend = "sqlite"
)

// StorageConfig 描述 currentUser / currentTheme 的持久化位置。
type StorageConfig struct {
	Backend    Backend
	SQLitePath string
	Redis      RedisConfig
}

// RedisConfig 描述 Redis 连接参数。
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

func loadStorageConfig() (StorageConfig, error) {
	backend := Backend(strings.ToLower(getEnvOrDefault("STORAGE_BACKEND", string(BackendSQLite))))
	switch backend {
	case BackendMemory, BackendRedis, BackendSQLite:
	default:
		return StorageConfig{}, fmt.Errorf("invalid STORAGE_BACKEND value %q", backend)
	}

	redisDB := 0
	if db, err := parseOptionalIntEnv("REDIS_DB"); err != nil {
		return StorageConfig{}, err
	} else if db != nil {
		redisDB = *db
	}

	return StorageConfig{
		Backend:    backend,
		SQLitePath: getEnvOrDefault("SQLITE_PATH", "bothub.db"),
		Redis: RedisConfig{
			Addr:      getEnvOrDefault("REDIS_ADDR", "127.0.0.1:6379"),
			Password:  os.Getenv("REDIS_PASSWORD"),
			DB:        redisDB,
			KeyPrefix: getEnvOrDefault("REDIS_KEY_PREFIX", "bothub:"),
		},
	}, nil
}

// ChatConfig 描述模拟回复的打字延迟窗口。
type ChatConfig struct {
	ReplyDelayMin time.Duration
	ReplyDelayMax time.Duration
}

func loadChatConfig() (ChatConfig, error) {
	minMS, err := parseIntEnv("REPLY_DELAY_MIN_MS", 1000)
	if err != nil {
		return ChatConfig{}, err
	}
	maxMS, err := parseIntEnv("REPLY_DELAY_MAX_MS", 2000)
	if err != nil {
		return ChatConfig{}, err
	}
	if minMS < 0 || maxMS < 0 {
		return ChatConfig{}, fmt.Errorf("reply delay must not be negative: min=%d max=%d", minMS, maxMS)
	}
	if minMS > maxMS {
		return ChatConfig{}, fmt.Errorf("REPLY_DELAY_MIN_MS (%d) exceeds REPLY_DELAY_MAX_MS (%d)", minMS, maxMS)
	}

	return ChatConfig{
		ReplyDelayMin: time.Duration(minMS) * time.Millisecond,
		ReplyDelayMax: time.Duration(maxMS) * time.Millisecond,
	}, nil
}

// LogConfig 描述 logrus 的级别与输出格式。
type LogConfig struct {
	Level  logrus.Level
	Format string
}

func loadLogConfig() (LogConfig, error) {
	raw := getEnvOrDefault("LOG_LEVEL", "info")
	level, err := logrus.ParseLevel(raw)
	if err != nil {
		return LogConfig{}, fmt.Errorf("invalid LOG_LEVEL value %q: %w", raw, err)
	}

	format := strings.ToLower(getEnvOrDefault("LOG_FORMAT", "text"))
	if format != "text" && format != "json" {
		return LogConfig{}, fmt.Errorf("invalid LOG_FORMAT value %q", format)
	}

	return LogConfig{Level: level, Format: format}, nil
}

// Apply 将日志配置应用到 logger。
func (c LogConfig) Apply(logger *logrus.Logger) {
	logger.SetLevel(c.Level)
	if c.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	val, err := parseOptionalIntEnv(key)
	if err != nil {
		return 0, err
	}
	if val == nil {
		return defaultValue, nil
	}
	return *val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

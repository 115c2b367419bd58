package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	j "github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// API 接口族，决定基础 URL
type API int

const (
	Trading API = iota
	MarketData
	Broker
)

func (a API) String() string {
	switch a {
	case Trading:
		return "trading"
	case MarketData:
		return "market-data"
	case Broker:
		return "broker"
	}
	return fmt.Sprintf("api(%d)", int(a))
}

const (
	PaperTradingURL = "https://paper-api.alpaca.markets"
	LiveTradingURL  = "https://api.alpaca.markets"
	MarketDataURL   = "https://data.alpaca.markets"
	BrokerURL       = "https://broker-api.sandbox.alpaca.markets"

	DefaultTimeout = 30 * time.Second
)

// 环境变量名
const (
	EnvKeyID     = "APCA_API_KEY_ID"
	EnvSecretKey = "APCA_API_SECRET_KEY"
	EnvPaper     = "APCA_PAPER"
	EnvBaseURL   = "APCA_API_BASE_URL"
	EnvDataURL   = "APCA_API_DATA_URL"
	EnvTimeout   = "APCA_API_TIMEOUT"
	EnvLogLevel  = "APCA_LOG_LEVEL"
	EnvLogFile   = "APCA_LOG_FILE"
)

// BaseURL 按接口族和 paper 标志选择基础 URL
func BaseURL(api API, paper bool) string {
	switch api {
	case MarketData:
		return MarketDataURL
	case Broker:
		return BrokerURL
	}
	if paper {
		return PaperTradingURL
	}
	return LiveTradingURL
}

// Config 客户端配置。启动时解析一次，之后按值传递，不再读取环境变量。
type Config struct {
	Key       string        `yaml:"key" json:"key"`
	Secret    string        `yaml:"secret" json:"secret"`
	Paper     bool          `yaml:"paper" json:"paper"`
	BaseURL   string        `yaml:"base_url" json:"base_url"`     // 覆盖交易接口地址（可选）
	DataURL   string        `yaml:"data_url" json:"data_url"`     // 覆盖行情接口地址（可选）
	BrokerURL string        `yaml:"broker_url" json:"broker_url"` // 覆盖 broker 接口地址（可选）
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`
	LogLevel  string        `yaml:"log_level" json:"log_level"`
	LogFile   string        `yaml:"log_file" json:"log_file"`
}

// Default 默认配置：paper 账户
func Default() Config {
	return Config{Paper: true, Timeout: DefaultTimeout, LogLevel: "info"}
}

// URL 返回接口族的基础 URL，优先使用显式覆盖
func (c Config) URL(api API) string {
	var override string
	switch api {
	case Trading:
		override = c.BaseURL
	case MarketData:
		override = c.DataURL
	case Broker:
		override = c.BrokerURL
	}
	if override != "" {
		return strings.TrimSuffix(override, "/")
	}
	return BaseURL(api, c.Paper)
}

// Validate 验证配置
func (c Config) Validate() error {
	if c.Key == "" {
		return fmt.Errorf("%s 未配置", EnvKeyID)
	}
	if c.Secret == "" {
		return fmt.Errorf("%s 未配置", EnvSecretKey)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout 不能为负数: %s", c.Timeout)
	}
	return nil
}

// LoadDotEnv 加载 .env 文件到环境变量；文件不存在时忽略
func LoadDotEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("加载 .env 失败: %w", err)
	}
	return nil
}

// FromEnv 从环境变量构建配置（先尝试加载 .env）
func FromEnv() (Config, error) {
	if err := LoadDotEnv(); err != nil {
		return Config{}, err
	}
	c := Default()
	applyEnv(&c)
	return c, nil
}

// LoadFromFile 从 YAML/JSON 文件加载配置；环境变量覆盖文件中的值
func LoadFromFile(filePath string) (Config, error) {
	c := Default()
	if filePath != "" {
		if err := loadConfigFile(filePath, &c); err != nil {
			return Config{}, fmt.Errorf("加载配置文件失败 %s: %w", filePath, err)
		}
	}
	if err := LoadDotEnv(); err != nil {
		return Config{}, err
	}
	applyEnv(&c)
	return c, nil
}

// loadConfigFile 加载配置文件（支持 YAML 和 JSON）
func loadConfigFile(filePath string, c *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("读取配置文件失败: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(filePath)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("解析 YAML 配置文件失败: %w", err)
		}
	case ".json":
		if err := j.Unmarshal(data, c); err != nil {
			return fmt.Errorf("解析 JSON 配置文件失败: %w", err)
		}
	default:
		return fmt.Errorf("不支持的配置文件格式: %s (支持 .yaml, .yml, .json)", ext)
	}
	return nil
}

func applyEnv(c *Config) {
	c.Key = getEnv(EnvKeyID, c.Key)
	c.Secret = getEnv(EnvSecretKey, c.Secret)
	c.Paper = parseBoolEnv(EnvPaper, c.Paper)
	c.BaseURL = getEnv(EnvBaseURL, c.BaseURL)
	c.DataURL = getEnv(EnvDataURL, c.DataURL)
	c.Timeout = parseDurationEnv(EnvTimeout, c.Timeout)
	c.LogLevel = getEnv(EnvLogLevel, c.LogLevel)
	c.LogFile = getEnv(EnvLogFile, c.LogFile)
}

// getEnv 获取环境变量，如果不存在则返回默认值
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseBoolEnv 解析布尔环境变量
func parseBoolEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// parseDurationEnv 解析时长环境变量，纯数字按秒处理
func parseDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

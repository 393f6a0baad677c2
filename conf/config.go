package conf

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// 配置加载（API密钥等）

type WebhookConfig struct {
	Secret string `yaml:"secret"`
}

type Mexc struct {
	ApiKey    string `yaml:"apiKey"`
	SecretKey string `yaml:"secretKey"`
	Testnet   bool   `yaml:"testnet"`
}

type TradeConfig struct {
	// 每次下单占可用余额的比例 (0~1]
	RiskRatio float64 `yaml:"risk-ratio"`
	// 杠杆倍数
	Leverage int `yaml:"leverage"`
	// 同符号同方向信号的最小间隔（秒），防止重复下单
	OrderInterval int `yaml:"order-interval"`
	// 行情订阅的symbol列表，给websocket价格缓存用
	Symbols []string `yaml:"symbols"`
}

type Db struct {
	DbName   string `yaml:"dbname"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	FileName   string `yaml:"file-name"`
	TimeFormat string `yaml:"time-format"`
	MaxSize    int    `yaml:"max-size"`
	MaxBackups int    `yaml:"max-backups"`
	MaxAge     int    `yaml:"max-age"`
	Compress   bool   `yaml:"compress"`
	LocalTime  bool   `yaml:"local-time"`
	Console    bool   `yaml:"console"`
}

// RedisConfig is used to configure redis
type RedisConfig struct {
	Addr         string `yaml:"address"`
	Password     string `yaml:"password"`
	Db           int    `yaml:"db"`
	PoolSize     int    `yaml:"pool-size"`
	MinIdleConns int    `yaml:"min-idle-conns"`
	IdleTimeout  int    `yaml:"idle-timeout"`
}

type Config struct {
	AppName      string `yaml:"app_name"`
	Listen       string `yaml:"listen"`
	Mode         string `yaml:"mode"`
	Language     string `yaml:"language"`
	MaxPingCount int    `yaml:"max-ping-count"`

	Webhook WebhookConfig `yaml:"webhook"`
	Mexc    `yaml:"mexc"`
	Trade   TradeConfig `yaml:"trade"`
	Db      `yaml:"database"`
	Log     LogConfig   `yaml:"log"`
	Redis   RedisConfig `yaml:"redis"`
}

var AppConfig Config

func LoadConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("Read config file error %w", err)
	}
	if err := yaml.Unmarshal(data, &AppConfig); err != nil {
		return fmt.Errorf("Unmarshal config yaml error: %w", err)
	}

	// 密钥优先从环境变量取，避免写进配置文件
	if v := os.Getenv("MEXC_API_KEY"); v != "" {
		AppConfig.Mexc.ApiKey = v
	}
	if v := os.Getenv("MEXC_API_SECRET"); v != "" {
		AppConfig.Mexc.SecretKey = v
	}
	if v := os.Getenv("WEBHOOK_SECRET"); v != "" {
		AppConfig.Webhook.Secret = v
	}

	if AppConfig.Trade.RiskRatio <= 0 || AppConfig.Trade.RiskRatio > 1 {
		return fmt.Errorf("invalid risk-ratio %v, must be in (0,1]", AppConfig.Trade.RiskRatio)
	}
	if AppConfig.Trade.Leverage <= 0 {
		return fmt.Errorf("invalid leverage %d, must be positive", AppConfig.Trade.Leverage)
	}
	return nil
}

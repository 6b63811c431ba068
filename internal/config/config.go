package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`     // 服务器配置
	Postgres   PostgresConfig   `mapstructure:"postgres"`   // PostgreSQL配置
	Popularity PopularityConfig `mapstructure:"popularity"` // 地区热度统计配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `mapstructure:"port"` // 服务端口
	Mode string `mapstructure:"mode"` // Gin运行模式：debug/release/test
}

// PostgresConfig PostgreSQL数据库配置
type PostgresConfig struct {
	DSN             string        `mapstructure:"dsn"`               // 连接DSN
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
}

// PopularityConfig 地区热度统计配置
type PopularityConfig struct {
	DefaultState       string `mapstructure:"default_state"`        // 用户无州档案时的默认州名（如 Georgia）
	StateTrendingSize  int    `mapstructure:"state_trending_size"`  // 单州热门电影条数
	GlobalTrendingSize int    `mapstructure:"global_trending_size"` // 全国热门电影条数
	PersonalSize       int    `mapstructure:"personal_size"`        // 个人购买汇总条数
	OtherUsersLimit    int    `mapstructure:"other_users_limit"`    // 其他用户列表人数上限
	PerUserPurchases   int    `mapstructure:"per_user_purchases"`   // 每个用户展示的购买条数
}

// LoadConfig 加载配置文件（config/config.yaml），敏感项从 .env 覆盖（不提交 git）
func LoadConfig() (*Config, error) {
	// 1. 加载 .env（若存在），env 中的值会覆盖 config.yaml 中同名字段
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	// 2. 读取 config.yaml
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	viper.SetTypeByDefaultValue(true)
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 敏感字段：用 env 覆盖（优先级 env > yaml）
	overrideFromEnv(&cfg)
	cfg.Popularity.ApplyDefaults()
	return &cfg, nil
}

// overrideFromEnv 用环境变量覆盖敏感配置
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("DEFAULT_STATE"); v != "" {
		cfg.Popularity.DefaultState = v
	}
}

// ApplyDefaults 查询条数未配置时按固定值兜底
func (p *PopularityConfig) ApplyDefaults() {
	if p.StateTrendingSize <= 0 {
		p.StateTrendingSize = 10
	}
	if p.GlobalTrendingSize <= 0 {
		p.GlobalTrendingSize = 20
	}
	if p.PersonalSize <= 0 {
		p.PersonalSize = 10
	}
	if p.OtherUsersLimit <= 0 {
		p.OtherUsersLimit = 15
	}
	if p.PerUserPurchases <= 0 {
		p.PerUserPurchases = 5
	}
}

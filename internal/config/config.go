package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	MinIO         MinIOConfig         `mapstructure:"minio"`
	Kafka         KafkaConfig         `mapstructure:"kafka"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	JWT           JWTConfig           `mapstructure:"jwt"`
	Cookie        CookieConfig        `mapstructure:"cookie"`
	CORS          CORSConfig          `mapstructure:"cors"`
	RateLimit     RateLimitConfig     `mapstructure:"rate_limit"`
	Upload        UploadConfig        `mapstructure:"upload"`
	Log           LogConfig           `mapstructure:"log"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name            string `mapstructure:"name"`
	Version         string `mapstructure:"version"`
	Mode            string `mapstructure:"mode"`
	Port            int    `mapstructure:"port"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // 秒
}

// ShutdownDuration 返回优雅退出的等待时间
func (a *AppConfig) ShutdownDuration() time.Duration {
	return time.Duration(a.ShutdownTimeout) * time.Second
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 秒
}

// DSN 返回PostgreSQL连接字符串
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// RedisConfig Redis配置
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// Addr 返回Redis地址
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// MinIOConfig MinIO配置（头像、封面图存储）
type MinIOConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	AccessKey   string `mapstructure:"access_key"`
	SecretKey   string `mapstructure:"secret_key"`
	UseSSL      bool   `mapstructure:"use_ssl"`
	ImageBucket string `mapstructure:"image_bucket"`
	PublicHost  string `mapstructure:"public_host"` // 为空时使用 Endpoint
}

// KafkaConfig Kafka配置
type KafkaConfig struct {
	Enabled bool              `mapstructure:"enabled"` // 关闭时事件在进程内同步处理
	Brokers []string          `mapstructure:"brokers"`
	Topics  map[string]string `mapstructure:"topics"`
	GroupID string            `mapstructure:"group_id"`
}

// Topic 返回指定用途的 topic，未配置时使用 fallback
func (k *KafkaConfig) Topic(name, fallback string) string {
	if t, ok := k.Topics[name]; ok && t != "" {
		return t
	}
	return fallback
}

// ElasticsearchConfig Elasticsearch配置
type ElasticsearchConfig struct {
	Enabled        bool              `mapstructure:"enabled"`
	Hosts          []string          `mapstructure:"hosts"`
	Index          map[string]string `mapstructure:"index"`
	ReindexOnStart bool              `mapstructure:"reindex_on_start"` // worker 启动时从数据库全量重建评论索引
	ReindexBatch   int               `mapstructure:"reindex_batch"`
}

// IndexName 返回索引名，未配置时使用 fallback
func (e *ElasticsearchConfig) IndexName(name, fallback string) string {
	if idx, ok := e.Index[name]; ok && idx != "" {
		return idx
	}
	return fallback
}

// JWTConfig JWT配置（access / refresh 使用不同密钥）
type JWTConfig struct {
	Issuer              string `mapstructure:"issuer"`
	AccessSecret        string `mapstructure:"access_secret"`
	AccessExpireMinutes int    `mapstructure:"access_expire_minutes"`
	RefreshSecret       string `mapstructure:"refresh_secret"`
	RefreshExpireHours  int    `mapstructure:"refresh_expire_hours"`
}

// AccessTTL 返回 access token 有效期
func (j *JWTConfig) AccessTTL() time.Duration {
	return time.Duration(j.AccessExpireMinutes) * time.Minute
}

// RefreshTTL 返回 refresh token 有效期
func (j *JWTConfig) RefreshTTL() time.Duration {
	return time.Duration(j.RefreshExpireHours) * time.Hour
}

// CookieConfig 令牌 Cookie 配置
type CookieConfig struct {
	Secure bool   `mapstructure:"secure"`
	Domain string `mapstructure:"domain"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// RateLimitConfig 认证接口限流配置
type RateLimitConfig struct {
	Requests int `mapstructure:"requests"`
	Window   int `mapstructure:"window"` // 秒
}

// WindowDuration 返回限流窗口
func (r *RateLimitConfig) WindowDuration() time.Duration {
	return time.Duration(r.Window) * time.Second
}

// UploadConfig 图片上传配置
type UploadConfig struct {
	MaxImageBytes int64    `mapstructure:"max_image_bytes"`
	ImageTypes    []string `mapstructure:"image_types"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

// 全局配置实例
var globalConfig *Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "vidtube-go")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.mode", "debug")
	v.SetDefault("app.port", 8000)
	v.SetDefault("app.shutdown_timeout", 10)

	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 3600)

	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("minio.image_bucket", "images")

	v.SetDefault("kafka.enabled", true)

	v.SetDefault("elasticsearch.reindex_batch", 500)
	v.SetDefault("kafka.group_id", "vidtube-worker")

	v.SetDefault("jwt.issuer", "vidtube-go")
	v.SetDefault("jwt.access_expire_minutes", 15)
	v.SetDefault("jwt.refresh_expire_hours", 240)

	v.SetDefault("cookie.secure", true)

	v.SetDefault("rate_limit.requests", 20)
	v.SetDefault("rate_limit.window", 60)

	v.SetDefault("upload.max_image_bytes", 5<<20)
	v.SetDefault("upload.image_types", []string{"image/jpeg", "image/png", "image/webp", "image/gif"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
}

// Load 加载配置文件（.env 中的变量会先注入环境变量）
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// 环境变量覆盖：JWT_ACCESS_SECRET -> jwt.access_secret
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	globalConfig = &cfg
	return &cfg, nil
}

// Validate 检查启动所必需的配置项
func (c *Config) Validate() error {
	if c.JWT.AccessSecret == "" || c.JWT.RefreshSecret == "" {
		return fmt.Errorf("jwt.access_secret and jwt.refresh_secret are required")
	}
	if c.JWT.AccessSecret == c.JWT.RefreshSecret {
		return fmt.Errorf("jwt.access_secret and jwt.refresh_secret must differ")
	}
	if c.JWT.AccessExpireMinutes <= 0 || c.JWT.RefreshExpireHours <= 0 {
		return fmt.Errorf("jwt token lifetimes must be positive")
	}
	return nil
}

// Set 直接设置全局配置（测试使用）
func Set(cfg *Config) {
	globalConfig = cfg
}

// Get 获取全局配置
func Get() *Config {
	if globalConfig == nil {
		panic("config not loaded, please call Load() first")
	}
	return globalConfig
}

// GetApp 获取应用配置
func GetApp() *AppConfig {
	return &Get().App
}

// GetJWT 获取JWT配置
func GetJWT() *JWTConfig {
	return &Get().JWT
}

// GetCookie 获取 Cookie 配置
func GetCookie() *CookieConfig {
	return &Get().Cookie
}

// GetUpload 获取上传配置
func GetUpload() *UploadConfig {
	return &Get().Upload
}

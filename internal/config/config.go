package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServiceConfig holds all configuration for the booking service.
type ServiceConfig struct {
	Port          string
	AppEnv        string
	DB            DatabaseConfig
	Kafka         KafkaConfig
	Redis         RedisConfig
	Auth          AuthConfig
	MediaDir      string
	LeadTimeHours int
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the connection string for the postgres driver.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// KafkaConfig holds Kafka broker settings.
type KafkaConfig struct {
	Brokers     []string
	GroupPrefix string
}

// RedisConfig holds settings for the public response cache. An empty Addr
// disables caching.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

// AuthConfig holds the admin credential and JWT session settings. The
// password hash and JWT secret come from the environment only; there is no
// baked-in fallback.
type AuthConfig struct {
	JWTSecret         string
	AdminUsername     string
	AdminPasswordHash string
	TokenTTL          time.Duration
}

// Load reads configuration from NT_-prefixed environment variables.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("NT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", ":8080")
	v.SetDefault("app_env", "development")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "postgres")
	v.SetDefault("db_name", "nilgiri_booking")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("kafka_brokers", "localhost:9092")
	v.SetDefault("kafka_group_prefix", "nilgiri-")
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("cache_ttl_seconds", 300)
	v.SetDefault("admin_username", "admin")
	v.SetDefault("token_ttl_minutes", 60)
	v.SetDefault("media_dir", "media")
	v.SetDefault("lead_time_hours", 24)

	jwtSecret := v.GetString("jwt_secret")
	if jwtSecret == "" {
		return nil, fmt.Errorf("NT_JWT_SECRET is required")
	}
	adminHash := v.GetString("admin_password_hash")
	if adminHash == "" {
		return nil, fmt.Errorf("NT_ADMIN_PASSWORD_HASH is required")
	}

	port := v.GetString("port")
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	return &ServiceConfig{
		Port:   port,
		AppEnv: v.GetString("app_env"),
		DB: DatabaseConfig{
			Host:     v.GetString("db_host"),
			Port:     v.GetString("db_port"),
			User:     v.GetString("db_user"),
			Password: v.GetString("db_password"),
			DBName:   v.GetString("db_name"),
			SSLMode:  v.GetString("db_sslmode"),
		},
		Kafka: KafkaConfig{
			Brokers:     strings.Split(v.GetString("kafka_brokers"), ","),
			GroupPrefix: v.GetString("kafka_group_prefix"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis_addr"),
			Password: v.GetString("redis_password"),
			DB:       v.GetInt("redis_db"),
			CacheTTL: time.Duration(v.GetInt("cache_ttl_seconds")) * time.Second,
		},
		Auth: AuthConfig{
			JWTSecret:         jwtSecret,
			AdminUsername:     v.GetString("admin_username"),
			AdminPasswordHash: adminHash,
			TokenTTL:          time.Duration(v.GetInt("token_ttl_minutes")) * time.Minute,
		},
		MediaDir:      v.GetString("media_dir"),
		LeadTimeHours: v.GetInt("lead_time_hours"),
	}, nil
}

package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	S3          S3Config          `mapstructure:"s3"`
	JWT         JWTConfig         `mapstructure:"jwt"`
	OpenAI      OpenAIConfig      `mapstructure:"openai"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Log         LogConfig         `mapstructure:"log"`
	Preferences PreferencesConfig `mapstructure:"preferences"`
	RateLimit   RateLimitConfig   `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// SeedExercises fills an empty exercise catalog on startup.
	SeedExercises bool `mapstructure:"seed_exercises"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// JWTConfig defines JWT specific configuration
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// OpenAIConfig configures the report text generator. An empty APIKey leaves
// the server running with report generation disabled.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
}

type LogConfig struct {
	File   string `mapstructure:"file"`
	Stdout bool   `mapstructure:"stdout"`
	Level  string `mapstructure:"level"`
	JSON   bool   `mapstructure:"json"`
}

type PreferencesConfig struct {
	DBPath string `mapstructure:"db_path"`
}

type RateLimitConfig struct {
	// ReportsPerMinute caps report generation per user.
	ReportsPerMinute int `mapstructure:"reports_per_minute"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// --- Environment Variable Handling ---
	v.AutomaticEnv()
	// server.address -> SERVER_ADDRESS, openai.api_key -> OPENAI_API_KEY
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	// --- Defaults ---
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.seed_exercises", true)
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "smartfit")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("jwt.expiration", "1h")
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.base_url", "")
	v.SetDefault("openai.model", "gpt-3.5-turbo")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("log.file", "")
	v.SetDefault("log.stdout", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("preferences.db_path", "data/preferences.db")
	v.SetDefault("rate_limit.reports_per_minute", 3)

	// --- Read Config File ---
	err = v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		// no file, rely on defaults and env vars
		err = nil
	} else if err != nil {
		return
	}

	err = v.Unmarshal(&config)
	if err != nil {
		return
	}

	return config, nil
}

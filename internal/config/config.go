package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	AccessSecret  string `yaml:"access_secret"`
	RefreshSecret string `yaml:"refresh_secret"`
	Issuer        string `yaml:"issuer"`
	AccessTTL     string `yaml:"access_ttl"`
	RefreshTTL    string `yaml:"refresh_ttl"`
}

type VerificationConfig struct {
	EmailTokenTTL string `yaml:"email_token_ttl"`
	ResetTokenTTL string `yaml:"reset_token_ttl"`
	FrontendURL   string `yaml:"frontend_url"`
}

type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
	Burst             int `yaml:"burst"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App          AppConfig          `yaml:"app"`
	Database     DatabaseConfig     `yaml:"database"`
	Redis        RedisConfig        `yaml:"redis"`
	JWT          JWTConfig          `yaml:"jwt"`
	Verification VerificationConfig `yaml:"verification"`
	RateLimit    RateLimitConfig    `yaml:"rate_limit"`
	Casbin       CasbinConfig       `yaml:"casbin"`
}

type Config struct {
	Port              string
	GinMode           string
	DSN               string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	JWTAccessSecret   string
	JWTRefreshSecret  string
	JWTIssuer         string
	AccessTTL         time.Duration
	RefreshTTL        time.Duration
	EmailTokenTTL     time.Duration
	ResetTokenTTL     time.Duration
	FrontendURL       string
	RateLimitPerMin   int
	RateLimitBurst    int
	CasbinModelPath   string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// Load reads config/config.yml and applies environment overrides for the
// values that differ per deployment (secrets, DSN, Redis address). A local
// .env file is honoured when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	configFile, err := loadConfigFile(env("CONFIG_PATH", "config/config.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	accTTL, err := time.ParseDuration(configFile.JWT.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}

	refTTL, err := time.ParseDuration(configFile.JWT.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT refresh TTL: %w", err)
	}

	emailTTL, err := time.ParseDuration(configFile.Verification.EmailTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid email token TTL: %w", err)
	}

	resetTTL, err := time.ParseDuration(configFile.Verification.ResetTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid reset token TTL: %w", err)
	}

	return &Config{
		Port:             env("PORT", fmt.Sprintf("%d", configFile.App.Port)),
		GinMode:          env("GIN_MODE", configFile.App.GinMode),
		DSN:              env("DATABASE_URL", configFile.Database.DSN),
		RedisAddr:        env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:    env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:          envInt("REDIS_DB", configFile.Redis.DB),
		JWTAccessSecret:  env("JWT_SECRET", configFile.JWT.AccessSecret),
		JWTRefreshSecret: env("JWT_REFRESH_SECRET", configFile.JWT.RefreshSecret),
		JWTIssuer:        configFile.JWT.Issuer,
		AccessTTL:        accTTL,
		RefreshTTL:       refTTL,
		EmailTokenTTL:    emailTTL,
		ResetTokenTTL:    resetTTL,
		FrontendURL:      env("FRONTEND_URL", configFile.Verification.FrontendURL),
		RateLimitPerMin:  configFile.RateLimit.RequestsPerMinute,
		RateLimitBurst:   configFile.RateLimit.Burst,
		CasbinModelPath:  configFile.Casbin.ModelPath,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}

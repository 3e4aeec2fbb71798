package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	S3        S3Config        `mapstructure:"s3"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Advisor   AdvisorConfig   `mapstructure:"advisor"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
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

// JWTConfig defines JWT specific configuration.
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// AdvisorConfig configures the plan-generation advisory service.
type AdvisorConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"` // optional, for OpenAI-compatible endpoints
}

// AnalyticsConfig carries the product-tuned energy score constants.
// The thresholds cut the progression rate into four score buckets; they have
// no stated derivation, so they are configurable rather than hard-coded.
type AnalyticsConfig struct {
	EnergyHighThreshold     float64 `mapstructure:"energy_high_threshold"`
	EnergyGoodThreshold     float64 `mapstructure:"energy_good_threshold"`
	EnergyModerateThreshold float64 `mapstructure:"energy_moderate_threshold"`
	EnergyHighScore         int     `mapstructure:"energy_high_score"`
	EnergyGoodScore         int     `mapstructure:"energy_good_score"`
	EnergyModerateScore     int     `mapstructure:"energy_moderate_score"`
	EnergyLowScore          int     `mapstructure:"energy_low_score"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Environment variable handling: server.address -> SERVER_ADDRESS,
	// advisor.api_key -> ADVISOR_API_KEY etc.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("database.uri", "mongodb://localhost:27017")
	viper.SetDefault("database.name", "ironlog")
	viper.SetDefault("s3.use_ssl", true)
	viper.SetDefault("jwt.expiration", "1h")
	viper.SetDefault("advisor.model", "gpt-4")
	viper.SetDefault("analytics.energy_high_threshold", 0.7)
	viper.SetDefault("analytics.energy_good_threshold", 0.5)
	viper.SetDefault("analytics.energy_moderate_threshold", 0.3)
	viper.SetDefault("analytics.energy_high_score", 90)
	viper.SetDefault("analytics.energy_good_score", 75)
	viper.SetDefault("analytics.energy_moderate_score", 50)
	viper.SetDefault("analytics.energy_low_score", 25)

	err = viper.ReadInConfig()
	// A missing config file is fine; env vars and defaults still apply.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return config, nil
}

/**
 * @description
 * Configuration management for the commerce service. Uses the 'viper'
 * library to load settings from environment variables, providing a
 * centralized and consistent way to manage application settings.
 */
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	ServerPort          string `mapstructure:"SERVER_PORT"`
	DatabaseURL         string `mapstructure:"DATABASE_URL"`
	JWTSecret           string `mapstructure:"JWT_SECRET"`
	AMQPURL             string `mapstructure:"AMQP_URL"`
	RedisURL            string `mapstructure:"REDIS_URL"`
	AllowedOrigin       string `mapstructure:"ALLOWED_ORIGIN"`
	DeliveryJobSchedule string `mapstructure:"DELIVERY_JOB_SCHEDULE"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (config Config, err error) {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("ALLOWED_ORIGIN", "*")
	// Hourly sweep keeps overdue next-delivery dates from drifting.
	viper.SetDefault("DELIVERY_JOB_SCHEDULE", "0 * * * *")
	viper.AutomaticEnv()

	// Bind environment variables explicitly to ensure they appear in Unmarshal
	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("DATABASE_URL")
	_ = viper.BindEnv("JWT_SECRET")
	_ = viper.BindEnv("AMQP_URL")
	_ = viper.BindEnv("REDIS_URL")
	_ = viper.BindEnv("ALLOWED_ORIGIN")
	_ = viper.BindEnv("DELIVERY_JOB_SCHEDULE")

	if err = viper.Unmarshal(&config); err != nil {
		return
	}

	if config.DatabaseURL == "" {
		return config, fmt.Errorf("DATABASE_URL is required")
	}
	if config.JWTSecret == "" {
		return config, fmt.Errorf("JWT_SECRET is required")
	}
	return
}

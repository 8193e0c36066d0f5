package config

import "time"

// Config holds all application configuration. It organizes settings into
// logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Redis  RedisConfig  `mapstructure:"redis" validate:"required"`
	Review ReviewConfig `mapstructure:"review" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"             validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level"        validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`
}

// RedisConfig contains the connection settings for the backing store.
type RedisConfig struct {
	Addr     string `mapstructure:"addr" validate:"required,hostname_port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
}

// ReviewConfig contains the tunables of the review engine's surroundings.
// The schedule offsets themselves live in the ebbinghaus package defaults.
type ReviewConfig struct {
	// RecordTTL is how long a problem review record is retained after its
	// last write.
	RecordTTL time.Duration `mapstructure:"record_ttl" validate:"required"`

	// StreakDailyGoal is how many problems a user must solve on a calendar
	// day before it counts toward the study streak.
	StreakDailyGoal int `mapstructure:"streak_daily_goal" validate:"required,gt=0"`
}

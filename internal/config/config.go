package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Study    StudyConfig    `mapstructure:"study" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// StudyConfig contains scheduling-related settings. DailyStudyLimit and
// TargetLanguage act as fallbacks when no settings row exists in the store;
// Timezone fixes the calendar used for streak day boundaries.
type StudyConfig struct {
	DailyStudyLimit int    `mapstructure:"daily_study_limit" validate:"required,gt=0"`
	TargetLanguage  string `mapstructure:"target_language"  validate:"required,len=2"`
	Timezone        string `mapstructure:"timezone"          validate:"required"`
}

package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Cache    CacheConfig    `mapstructure:"cache"    validate:"required"`
	Admin    AdminConfig    `mapstructure:"admin"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// CacheConfig contains settings for the shared task cache.
type CacheConfig struct {
	// TTLMinutes is the staleness window: reads within this window after a
	// successful fetch are served from the cache.
	TTLMinutes int `mapstructure:"ttl_minutes" validate:"required,gt=0"`

	// FetchTimeoutSeconds bounds a single refresh fetch so a hung request
	// cannot leave the cache loading forever.
	FetchTimeoutSeconds int `mapstructure:"fetch_timeout_seconds" validate:"required,gt=0"`
}

// AdminConfig optionally seeds an administrator account at startup.
// Empty values disable seeding.
type AdminConfig struct {
	Name     string `mapstructure:"name"`
	Email    string `mapstructure:"email"    validate:"omitempty,email"`
	Password string `mapstructure:"password" validate:"omitempty,min=8"`
}

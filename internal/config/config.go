package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/yasinhessnawi1/jcadmin/internal/constants"
)

// AppConfig represents the entire application configuration
type AppConfig struct {
	App       AppSettings       `yaml:"app"`
	Server    ServerSettings    `yaml:"server"`
	Files     FileSettings      `yaml:"files"`
	Limits    LimitSettings     `yaml:"limits"`
	Logging   LoggingSettings   `yaml:"logging"`
	CORS      CORSSettings      `yaml:"cors"`
	Metrics   MetricsSettings   `yaml:"metrics"`
	RateLimit RateLimitSettings `yaml:"rate_limit"`
}

// AppSettings contains general application settings
type AppSettings struct {
	Environment string `yaml:"environment" env:"APP_ENV"`
	Name        string `yaml:"name" env:"APP_NAME"`
	Version     string `yaml:"version" env:"APP_VERSION"`
}

// ServerSettings contains HTTP server settings
type ServerSettings struct {
	Host            string        `yaml:"host" env:"SERVER_HOST"`
	Port            int           `yaml:"port" env:"SERVER_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// FileSettings locates the files shared with the jcblock device. Relative
// file names are resolved against Dir.
type FileSettings struct {
	Dir         string `yaml:"dir" env:"JCBLOCK_DIR"`
	CallLog     string `yaml:"call_log" env:"JCBLOCK_CALL_LOG"`
	SafeList    string `yaml:"safe_list" env:"JCBLOCK_SAFE_LIST"`
	BlockedList string `yaml:"blocked_list" env:"JCBLOCK_BLOCKED_LIST"`
	Database    string `yaml:"database" env:"JCADMIN_DATABASE"`
	Watch       bool   `yaml:"watch" env:"JCBLOCK_WATCH"`
}

// LimitSettings contains caller name and matching limits
type LimitSettings struct {
	MaxNameLength    int    `yaml:"max_name_length" env:"MAX_NAME_LENGTH"`
	MatchMode        string `yaml:"match_mode" env:"MATCH_MODE"`
	DefaultCallLimit int    `yaml:"default_call_limit" env:"DEFAULT_CALL_LIMIT"`
}

// LoggingSettings contains logging configuration
type LoggingSettings struct {
	Level      string `yaml:"level" env:"LOG_LEVEL"`
	Format     string `yaml:"format" env:"LOG_FORMAT"`
	RequestLog bool   `yaml:"request_log" env:"LOG_REQUESTS"`
}

// CORSSettings contains CORS configuration
type CORSSettings struct {
	AllowedOrigins   []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS"`
	AllowCredentials bool     `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS"`
}

// RateLimitSettings throttles file mutations per client address
type RateLimitSettings struct {
	Enabled           bool    `yaml:"enabled" env:"RATE_LIMIT_ENABLED"`
	RequestsPerSecond float64 `yaml:"requests_per_second" env:"RATE_LIMIT_RPS"`
	Burst             int     `yaml:"burst" env:"RATE_LIMIT_BURST"`
}

// MetricsSettings controls the Prometheus endpoint
type MetricsSettings struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED"`
	Path    string `yaml:"path" env:"METRICS_PATH"`
}

// ServerAddress returns the complete server address
func (ss *ServerSettings) ServerAddress() string {
	return fmt.Sprintf("%s:%d", ss.Host, ss.Port)
}

// Path resolves one of the configured file names against the jcblock directory.
func (fs *FileSettings) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(fs.Dir, name)
}

// CallLogPath returns the full path of the call log.
func (fs *FileSettings) CallLogPath() string { return fs.Path(fs.CallLog) }

// SafeListPath returns the full path of the whitelist.
func (fs *FileSettings) SafeListPath() string { return fs.Path(fs.SafeList) }

// BlockedListPath returns the full path of the blacklist.
func (fs *FileSettings) BlockedListPath() string { return fs.Path(fs.BlockedList) }

// DatabasePath returns the full path of the name database.
func (fs *FileSettings) DatabasePath() string { return fs.Path(fs.Database) }

// IsProduction checks if the application is running in production mode
func (as *AppSettings) IsProduction() bool {
	return strings.ToLower(as.Environment) == constants.EnvProduction
}

var (
	// cfg holds the current application configuration
	cfg *AppConfig
)

// Load loads the configuration from a config file and environment variables
func Load(configPath string) (*AppConfig, error) {
	config := &AppConfig{}

	// Load configuration from file if it exists
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}

			err = yaml.Unmarshal(data, config)
			if err != nil {
				return nil, fmt.Errorf("error parsing config file: %w", err)
			}
		}
	}

	// Override with environment variables
	if err := LoadEnv(config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	// Set defaults for missing values
	setDefaults(config)

	// Validate the configuration
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Save the configuration globally
	cfg = config

	logConfig(config)

	return config, nil
}

// Get returns the current application configuration
func Get() *AppConfig {
	if cfg == nil {
		log.Fatal().Msg("configuration not loaded")
	}
	return cfg
}

// setDefaults sets default values for any missing configuration
func setDefaults(config *AppConfig) {
	// App defaults
	if config.App.Environment == "" {
		config.App.Environment = constants.EnvDevelopment
	}
	if config.App.Name == "" {
		config.App.Name = constants.DefaultAppName
	}
	if config.App.Version == "" {
		config.App.Version = "1.0.0"
	}

	if config.Server.Port == 0 {
		config.Server.Port = constants.DefaultServerPort
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = constants.DefaultReadTimeout
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = constants.DefaultWriteTimeout
	}
	if config.Server.ShutdownTimeout == 0 {
		config.Server.ShutdownTimeout = constants.DefaultShutdownTimeout
	}

	// File defaults
	if config.Files.Dir == "" {
		config.Files.Dir = constants.DefaultJCBlockDir
	}
	if config.Files.CallLog == "" {
		config.Files.CallLog = constants.DefaultCallLogFile
	}
	if config.Files.SafeList == "" {
		config.Files.SafeList = constants.DefaultSafeListFile
	}
	if config.Files.BlockedList == "" {
		config.Files.BlockedList = constants.DefaultBlockedListFile
	}
	if config.Files.Database == "" {
		config.Files.Database = constants.DefaultDatabaseFile
	}

	// Limit defaults
	if config.Limits.MaxNameLength == 0 {
		config.Limits.MaxNameLength = constants.DefaultMaxNameLength
	}
	if config.Limits.MatchMode == "" {
		config.Limits.MatchMode = constants.MatchModeSubstring
	}
	if config.Limits.DefaultCallLimit == 0 {
		config.Limits.DefaultCallLimit = constants.DefaultCallLimit
	}

	// Logging defaults
	if config.Logging.Level == "" {
		config.Logging.Level = constants.DefaultLogLevel
	}
	if config.Logging.Format == "" {
		config.Logging.Format = constants.DefaultLogFormat
	}

	// CORS defaults
	if len(config.CORS.AllowedOrigins) == 0 {
		config.CORS.AllowedOrigins = []string{"*"}
	}

	if config.Metrics.Path == "" {
		config.Metrics.Path = constants.DefaultMetricsPath
	}

	if config.RateLimit.RequestsPerSecond == 0 {
		config.RateLimit.RequestsPerSecond = constants.DefaultMutationRate
	}
	if config.RateLimit.Burst == 0 {
		config.RateLimit.Burst = constants.DefaultMutationBurst
	}
}

// validateConfig validates that the configuration has all required values
func validateConfig(config *AppConfig) error {
	env := strings.ToLower(config.App.Environment)
	if env != constants.EnvDevelopment && env != constants.EnvTesting && env != constants.EnvProduction {
		// Instead of failing, use a default and warn
		log.Warn().Str("environment", config.App.Environment).Msg("Invalid environment, defaulting to development")
		config.App.Environment = constants.EnvDevelopment
	}

	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Limits.MaxNameLength < 1 {
		return fmt.Errorf("max name length must be positive, got %d", config.Limits.MaxNameLength)
	}

	mode := strings.ToLower(config.Limits.MatchMode)
	if mode != constants.MatchModeSubstring && mode != constants.MatchModeExact {
		return fmt.Errorf("invalid match mode: %s", config.Limits.MatchMode)
	}
	config.Limits.MatchMode = mode

	if config.Limits.DefaultCallLimit < 0 {
		return fmt.Errorf("default call limit must not be negative, got %d", config.Limits.DefaultCallLimit)
	}

	if config.RateLimit.RequestsPerSecond < 0 || config.RateLimit.Burst < 0 {
		return fmt.Errorf("rate limit must not be negative")
	}

	// Validate log level
	logLevel := strings.ToLower(config.Logging.Level)
	validLevels := []string{"debug", "info", "warn", "error", "fatal", "panic"}
	validLevel := false
	for _, level := range validLevels {
		if logLevel == level {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	return nil
}

// logConfig logs the current configuration
func logConfig(config *AppConfig) {
	log.Info().
		Str("environment", config.App.Environment).
		Str("version", config.App.Version).
		Str("server", config.Server.ServerAddress()).
		Str("jcblock_dir", config.Files.Dir).
		Str("match_mode", config.Limits.MatchMode).
		Str("log_level", config.Logging.Level).
		Bool("metrics", config.Metrics.Enabled).
		Msg("Configuration loaded")
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Create a temporary config file
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	configContent := `
app:
  environment: testing
  name: TestApp
  version: 1.0.0
server:
  host: 127.0.0.1
  port: 8080
  read_timeout: 5s
  write_timeout: 10s
files:
  dir: /var/jcblock
  database: names.json
limits:
  max_name_length: 40
  match_mode: exact
metrics:
  enabled: true
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	// Load the configuration
	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Check the loaded values
	if cfg.App.Environment != "testing" {
		t.Errorf("Expected Environment = %s, got %s", "testing", cfg.App.Environment)
	}

	if cfg.App.Name != "TestApp" {
		t.Errorf("Expected Name = %s, got %s", "TestApp", cfg.App.Name)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Expected Port = %d, got %d", 8080, cfg.Server.Port)
	}

	if got := cfg.Files.DatabasePath(); got != filepath.Join("/var/jcblock", "names.json") {
		t.Errorf("Expected DatabasePath = %s, got %s", "/var/jcblock/names.json", got)
	}

	if got := cfg.Files.CallLogPath(); got != filepath.Join("/var/jcblock", "callerID.dat") {
		t.Errorf("Expected default CallLogPath under dir, got %s", got)
	}

	if cfg.Limits.MaxNameLength != 40 || cfg.Limits.MatchMode != "exact" {
		t.Errorf("Unexpected limits: %+v", cfg.Limits)
	}

	if !cfg.Metrics.Enabled || cfg.Metrics.Path != "/metrics" {
		t.Errorf("Unexpected metrics settings: %+v", cfg.Metrics)
	}
}

func TestLoadWithInvalidPath(t *testing.T) {
	// Try to load a non-existent file
	// This should still work with defaults
	cfg, err := Load("non_existent_config.yaml")

	// Should not error, just use defaults
	if err != nil {
		t.Fatalf("Load() with non-existent file should not error, got %v", err)
	}

	// Check that defaults were applied
	if cfg.App.Environment != "development" {
		t.Errorf("Expected default Environment = %s, got %s", "development", cfg.App.Environment)
	}
}

func TestGet(t *testing.T) {
	// Set up a test configuration
	origCfg := cfg
	defer func() { cfg = origCfg }() // Restore global config after test

	testCfg := &AppConfig{
		App: AppSettings{
			Name: "TestApp",
		},
	}

	// Set the global config
	cfg = testCfg

	// Get the config
	result := Get()

	// Check that it's the same instance
	if result != testCfg {
		t.Errorf("Get() = %v, want %v", result, testCfg)
	}
}

func TestFileSettings_Path(t *testing.T) {
	files := FileSettings{Dir: "/opt/jcblock"}

	if got := files.Path("whitelist.dat"); got != filepath.Join("/opt/jcblock", "whitelist.dat") {
		t.Errorf("Path(relative) = %v", got)
	}

	if got := files.Path("/etc/jcblock/blacklist.dat"); got != "/etc/jcblock/blacklist.dat" {
		t.Errorf("Path(absolute) = %v", got)
	}
}

func TestServerSettings_ServerAddress(t *testing.T) {
	settings := ServerSettings{
		Host: "localhost",
		Port: 8080,
	}

	want := "localhost:8080"
	if got := settings.ServerAddress(); got != want {
		t.Errorf("ServerAddress() = %v, want %v", got, want)
	}
}

func TestAppSettings_Environment(t *testing.T) {
	tests := []struct {
		name         string
		environment  string
		isProduction bool
	}{
		{
			name:         "Development",
			environment:  "development",
			isProduction: false,
		},
		{
			name:         "Production",
			environment:  "production",
			isProduction: true,
		},
		{
			name:         "Testing",
			environment:  "testing",
			isProduction: false,
		},
		{
			name:         "Unknown (defaults to dev)",
			environment:  "unknown",
			isProduction: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := AppSettings{
				Environment: tt.environment,
			}

			if got := settings.IsProduction(); got != tt.isProduction {
				t.Errorf("IsProduction() = %v, want %v", got, tt.isProduction)
			}
		})
	}
}

func TestSetDefaults(t *testing.T) {
	// Create a minimal config
	cfg := &AppConfig{}

	// Apply defaults
	setDefaults(cfg)

	// Check app defaults
	if cfg.App.Environment != "development" {
		t.Errorf("Default App.Environment = %v, want %v", cfg.App.Environment, "development")
	}

	if cfg.App.Name != "jcadmin" {
		t.Errorf("Default App.Name = %v, want %v", cfg.App.Name, "jcadmin")
	}

	// Check server defaults
	if cfg.Server.Port != 9393 {
		t.Errorf("Default Server.Port = %v, want %v", cfg.Server.Port, 9393)
	}

	if cfg.Server.ShutdownTimeout != 30*time.Second {
		t.Errorf("Default Server.ShutdownTimeout = %v, want %v", cfg.Server.ShutdownTimeout, 30*time.Second)
	}

	// Check file defaults
	want := FileSettings{
		Dir:         ".",
		CallLog:     "callerID.dat",
		SafeList:    "whitelist.dat",
		BlockedList: "blacklist.dat",
		Database:    "jcadmin.json",
	}
	if cfg.Files != want {
		t.Errorf("Default Files = %+v, want %+v", cfg.Files, want)
	}

	// Check limit defaults
	if cfg.Limits.MaxNameLength != 80 {
		t.Errorf("Default Limits.MaxNameLength = %v, want %v", cfg.Limits.MaxNameLength, 80)
	}

	if cfg.Limits.MatchMode != "substring" {
		t.Errorf("Default Limits.MatchMode = %v, want %v", cfg.Limits.MatchMode, "substring")
	}
}

func TestValidateConfig(t *testing.T) {
	valid := func() *AppConfig {
		c := &AppConfig{}
		setDefaults(c)
		return c
	}

	tests := []struct {
		name      string
		mutate    func(c *AppConfig)
		shouldErr bool
	}{
		{
			name:      "Valid config",
			mutate:    func(c *AppConfig) {},
			shouldErr: false,
		},
		{
			name:      "Invalid environment",
			mutate:    func(c *AppConfig) { c.App.Environment = "invalid" },
			shouldErr: false, // It will default to development with a warning
		},
		{
			name:      "Invalid port",
			mutate:    func(c *AppConfig) { c.Server.Port = 70000 },
			shouldErr: true,
		},
		{
			name:      "Negative name length",
			mutate:    func(c *AppConfig) { c.Limits.MaxNameLength = -1 },
			shouldErr: true,
		},
		{
			name:      "Unknown match mode",
			mutate:    func(c *AppConfig) { c.Limits.MatchMode = "regex" },
			shouldErr: true,
		},
		{
			name:      "Upper case match mode",
			mutate:    func(c *AppConfig) { c.Limits.MatchMode = "EXACT" },
			shouldErr: false,
		},
		{
			name:      "Invalid log level",
			mutate:    func(c *AppConfig) { c.Logging.Level = "invalid" },
			shouldErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)

			err := validateConfig(c)

			if (err != nil) != tt.shouldErr {
				t.Errorf("validateConfig() error = %v, shouldErr %v", err, tt.shouldErr)
			}
		})
	}
}

package internal

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	errMissingHome      = errors.New("home coordinates are required")
	errMissingPlanesURL = errors.New("planes_url is required")
)

// HomeConfig is the receiver location all distances are measured from.
type HomeConfig struct {
	Lat float64 `yaml:"lat"`
	Lon float64 `yaml:"lon"`
}

// MonitoringConfig holds the poll loop and state machine tunables.
type MonitoringConfig struct {
	PlanesURL               string `yaml:"planes_url"`
	PollIntervalSeconds     int    `yaml:"poll_interval_seconds"`
	ProximityTimeoutMinutes int    `yaml:"proximity_timeout_minutes"`
	ProximityCooldownHours  int    `yaml:"proximity_cooldown_hours"`
	EmergencySustainPolls   int    `yaml:"emergency_sustain_polls"`
	EmergencyStaleSeconds   int    `yaml:"emergency_stale_seconds"`
}

// SuppressionConfig holds the landing-suppression thresholds for code 7600.
type SuppressionConfig struct {
	ApproachAltitudeFt   float64 `yaml:"approach_altitude_ft"`
	ApproachRadiusMiles  float64 `yaml:"approach_radius_miles"`
	ApproachMinSpeedKt   float64 `yaml:"approach_min_speed_kt"`
	ApproachMaxSpeedKt   float64 `yaml:"approach_max_speed_kt"`
	CatchAllAltitudeFt   float64 `yaml:"catch_all_altitude_ft"`
	CatchAllDescentFtMin float64 `yaml:"catch_all_descent_ft_min"`
}

// EmailConfig holds the SMTP alert delivery settings. Alert mail is disabled
// unless a sender and at least one recipient are configured.
type EmailConfig struct {
	SMTPServer        string   `yaml:"smtp_server"`
	SMTPPort          int      `yaml:"smtp_port"`
	Sender            string   `yaml:"sender"`
	Password          string   `yaml:"password"`
	Recipients        []string `yaml:"recipients"`
	NotificationEmail string   `yaml:"notification_email"`
}

// Enabled reports whether alert mail can be sent at all.
func (e EmailConfig) Enabled() bool {
	return e.Sender != "" && len(e.Recipients) > 0
}

// DatabaseConfig holds the optional alert history store settings. The store
// is disabled when Hostname is empty.
type DatabaseConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Hostname string `yaml:"hostname"`
	Port     string `yaml:"port"`
	Database string `yaml:"database"`
}

// Enabled reports whether the history store should be connected.
func (d DatabaseConfig) Enabled() bool { return d.Hostname != "" }

// FilesConfig names the on-disk inputs and outputs.
type FilesConfig struct {
	Watchlist string `yaml:"watchlist"`
	LogFile   string `yaml:"log_file"`
}

// AlertsConfig holds alert channel toggles and retention.
type AlertsConfig struct {
	Desktop       bool `yaml:"desktop"`
	RetentionDays int  `yaml:"retention_days"`
}

// Config is the full configuration surface consumed by the service.
type Config struct {
	Home        HomeConfig        `yaml:"home"`
	Monitoring  MonitoringConfig  `yaml:"monitoring"`
	Suppression SuppressionConfig `yaml:"suppression"`
	Email       EmailConfig       `yaml:"email"`
	Database    DatabaseConfig    `yaml:"database"`
	Files       FilesConfig       `yaml:"files"`
	Alerts      AlertsConfig      `yaml:"alerts"`
	LogLevel    string            `yaml:"log_level"`
}

// DefaultConfig returns the configuration with every tunable at its default.
func DefaultConfig() Config {
	return Config{
		Monitoring: MonitoringConfig{
			PollIntervalSeconds:     15,
			ProximityTimeoutMinutes: 30,
			ProximityCooldownHours:  24,
			EmergencySustainPolls:   3,
			EmergencyStaleSeconds:   120,
		},
		Suppression: SuppressionConfig{
			ApproachAltitudeFt:   10000,
			ApproachRadiusMiles:  15,
			ApproachMinSpeedKt:   80,
			ApproachMaxSpeedKt:   300,
			CatchAllAltitudeFt:   5000,
			CatchAllDescentFtMin: 500,
		},
		Email: EmailConfig{
			SMTPServer: "smtp.gmail.com",
			SMTPPort:   587,
		},
		Database: DatabaseConfig{
			Port: "3306",
		},
		Files: FilesConfig{
			Watchlist: "aircraft_list.json",
		},
		Alerts: AlertsConfig{
			Desktop:       true,
			RetentionDays: 7,
		},
		LogLevel: "info",
	}
}

// LoadConfig reads the YAML config file (if it exists) over the defaults and
// then applies environment-variable overrides, which take precedence over
// the file. Validation is left to the caller, which may still apply command
// line overrides on top.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("loadConfig: parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("loadConfig: read %s: %w", path, err)
	}

	applyEnvOverrides(&cfg)

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	setString := func(key string, target *string) {
		if value := os.Getenv(key); value != "" {
			*target = value
		}
	}
	setFloat := func(key string, target *float64) {
		if value := os.Getenv(key); value != "" {
			if parsed, err := strconv.ParseFloat(value, 64); err == nil {
				*target = parsed
			}
		}
	}
	setInt := func(key string, target *int) {
		if value := os.Getenv(key); value != "" {
			if parsed, err := strconv.Atoi(value); err == nil {
				*target = parsed
			}
		}
	}

	setFloat("HOME_LAT", &cfg.Home.Lat)
	setFloat("HOME_LON", &cfg.Home.Lon)
	setString("PLANES_URL", &cfg.Monitoring.PlanesURL)
	setInt("POLL_INTERVAL_SECONDS", &cfg.Monitoring.PollIntervalSeconds)
	setString("SMTP_SERVER", &cfg.Email.SMTPServer)
	setInt("SMTP_PORT", &cfg.Email.SMTPPort)
	setString("EMAIL_SENDER", &cfg.Email.Sender)
	setString("EMAIL_PASSWORD", &cfg.Email.Password)
	setString("NOTIFICATION_EMAIL", &cfg.Email.NotificationEmail)
	setString("DB_USERNAME", &cfg.Database.Username)
	setString("DB_PASSWORD", &cfg.Database.Password)
	setString("DB_HOSTNAME", &cfg.Database.Hostname)
	setString("DB_PORT", &cfg.Database.Port)
	setString("DB_DATABASE", &cfg.Database.Database)
	setString("AIRCRAFT_LIST_FILE", &cfg.Files.Watchlist)
	setString("LOG_FILE", &cfg.Files.LogFile)
	setString("LOG_LEVEL", &cfg.LogLevel)
}

// Validate checks the values without which the service cannot run.
func (c Config) Validate() error {
	if c.Home.Lat == 0 && c.Home.Lon == 0 {
		return errMissingHome
	}

	if c.Monitoring.PlanesURL == "" {
		return errMissingPlanesURL
	}

	return nil
}

// Duration accessors, so callers never convert units themselves.

func (c Config) PollInterval() time.Duration {
	return time.Duration(c.Monitoring.PollIntervalSeconds) * time.Second
}

func (c Config) ProximityTimeout() time.Duration {
	return time.Duration(c.Monitoring.ProximityTimeoutMinutes) * time.Minute
}

func (c Config) ProximityCooldown() time.Duration {
	return time.Duration(c.Monitoring.ProximityCooldownHours) * time.Hour
}

func (c Config) EmergencyStaleTimeout() time.Duration {
	return time.Duration(c.Monitoring.EmergencyStaleSeconds) * time.Second
}

// HomeCoordinates returns the receiver location as Coordinates.
func (c Config) HomeCoordinates() Coordinates {
	return NewCoordinates(c.Home.Lat, c.Home.Lon)
}

// SuppressionThresholds converts the config block to the verifier's type.
func (c Config) SuppressionThresholds() SuppressionThresholds {
	return SuppressionThresholds{
		ApproachAltitudeFt:   c.Suppression.ApproachAltitudeFt,
		ApproachRadiusMiles:  c.Suppression.ApproachRadiusMiles,
		ApproachMinSpeedKt:   c.Suppression.ApproachMinSpeedKt,
		ApproachMaxSpeedKt:   c.Suppression.ApproachMaxSpeedKt,
		CatchAllAltitudeFt:   c.Suppression.CatchAllAltitudeFt,
		CatchAllDescentFtMin: c.Suppression.CatchAllDescentFtMin,
	}
}

package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if got := cfg.PollInterval(); got != 15*time.Second {
		t.Errorf("PollInterval() = %v, want 15s", got)
	}
	if got := cfg.ProximityTimeout(); got != 30*time.Minute {
		t.Errorf("ProximityTimeout() = %v, want 30m", got)
	}
	if got := cfg.ProximityCooldown(); got != 24*time.Hour {
		t.Errorf("ProximityCooldown() = %v, want 24h", got)
	}
	if got := cfg.EmergencyStaleTimeout(); got != 120*time.Second {
		t.Errorf("EmergencyStaleTimeout() = %v, want 120s", got)
	}
	if got := cfg.Monitoring.EmergencySustainPolls; got != 3 {
		t.Errorf("EmergencySustainPolls = %d, want 3", got)
	}

	thresholds := cfg.SuppressionThresholds()
	if thresholds.ApproachAltitudeFt != 10000 || thresholds.CatchAllDescentFtMin != 500 {
		t.Errorf("SuppressionThresholds() = %+v, want the stock landing heuristic values", thresholds)
	}
}

func TestLoadConfigFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := []byte(`
home:
  lat: 35.2271
  lon: -80.8431
monitoring:
  planes_url: http://127.0.0.1:8080/data/aircraft.json
  poll_interval_seconds: 30
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	// Environment wins over the file.
	t.Setenv("POLL_INTERVAL_SECONDS", "60")
	t.Setenv("EMAIL_SENDER", "alerts@example.com")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Home.Lat != 35.2271 {
		t.Errorf("Home.Lat = %v, want value from file", cfg.Home.Lat)
	}
	if got := cfg.PollInterval(); got != 60*time.Second {
		t.Errorf("PollInterval() = %v, want env override of 60s", got)
	}
	if cfg.Email.Sender != "alerts@example.com" {
		t.Errorf("Email.Sender = %q, want env value", cfg.Email.Sender)
	}

	// Unset values keep their defaults.
	if cfg.Monitoring.EmergencySustainPolls != 3 {
		t.Errorf("EmergencySustainPolls = %d, want default 3", cfg.Monitoring.EmergencySustainPolls)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("missing home", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Monitoring.PlanesURL = "http://localhost/aircraft.json"
		if err := cfg.Validate(); err == nil {
			t.Error("Validate() accepted a config without home coordinates")
		}
	})

	t.Run("missing planes url", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Home.Lat, cfg.Home.Lon = 35.0, -80.0
		if err := cfg.Validate(); err == nil {
			t.Error("Validate() accepted a config without a planes_url")
		}
	})
}

// Loading must not reject an incomplete file outright: the home location can
// still arrive via a command line override before validation.
func TestLoadConfigDefersValidation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nohome.yaml")
	content := []byte("monitoring:\n  planes_url: http://localhost/aircraft.json\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v, want the incomplete file loaded", err)
	}

	cfg.Home.Lat, cfg.Home.Lon = 35.0, -80.0
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v after the override supplied the home location", err)
	}
}

func TestEmailConfigEnabled(t *testing.T) {
	cfg := EmailConfig{}
	if cfg.Enabled() {
		t.Error("Enabled() = true for an empty email config")
	}

	cfg.Sender = "alerts@example.com"
	cfg.Recipients = []string{"ops@example.com"}
	if !cfg.Enabled() {
		t.Error("Enabled() = false with a sender and recipient configured")
	}
}

package routeros

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rosctl.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
address = "10.0.0.1:8728"
timeout_ms = 2500
max_pending = 8
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Address != "10.0.0.1:8728" {
		t.Fatalf("address: %q", cfg.Address)
	}
	if cfg.Timeout != 2500*time.Millisecond {
		t.Fatalf("timeout: %v", cfg.Timeout)
	}
	if cfg.ConnectTimeout != DefaultConnectTimeout {
		t.Fatalf("connect timeout default not applied: %v", cfg.ConnectTimeout)
	}
	if cfg.MaxPending != 8 {
		t.Fatalf("max_pending: %d", cfg.MaxPending)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfigFile(t, ""))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Address != DefaultAddress || cfg.Timeout != DefaultTimeout {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoadConfigInvalidAddress(t *testing.T) {
	_, err := LoadConfig(writeConfigFile(t, `address = "not-an-endpoint"`))
	if err == nil || !strings.Contains(err.Error(), "address") {
		t.Fatalf("expected address error, got %v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestConfigValidateNegativeMaxPending(t *testing.T) {
	cfg := Config{MaxPending: -1}.withDefaults()
	if err := cfg.validate(); err == nil {
		t.Fatalf("expected error for negative max_pending")
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoad_FileAndDefaults(t *testing.T) {
	p := writeYAML(t, `
app:
  http:
    port: 9090
jwt:
  secret: s3cret
store:
  driver: sqlite
  dsn: ":memory:"
booking:
  strict_transitions: true
`)
	c, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.App.HTTP.Port != 9090 {
		t.Errorf("port = %d, want 9090", c.App.HTTP.Port)
	}
	if c.App.HTTP.ReadTimeoutSec != 5 {
		t.Errorf("read timeout default = %d, want 5", c.App.HTTP.ReadTimeoutSec)
	}
	if c.Store.Driver != "sqlite" || !c.Booking.StrictTransitions {
		t.Errorf("store/booking not loaded: %+v %+v", c.Store, c.Booking)
	}
	if c.JWT.Issuer != "skillswap" {
		t.Errorf("issuer default = %q", c.JWT.Issuer)
	}
	if c.Redis.Enabled || c.MQ.Enabled || c.Trace.Enabled {
		t.Errorf("optional integrations should default to disabled")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	p := writeYAML(t, "jwt:\n  secret: from-file\n")
	t.Setenv("APP_JWT_SECRET", "from-env")
	t.Setenv("APP_STORE_DRIVER", "memory")
	c, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.JWT.Secret != "from-env" {
		t.Errorf("secret = %q, want from-env", c.JWT.Secret)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing secret", "app:\n  name: x\n", "jwt.secret"},
		{"bad driver", "jwt:\n  secret: x\nstore:\n  driver: oracle\n", "store.driver"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeYAML(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

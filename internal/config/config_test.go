package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoad_ConfigYAML(t *testing.T) {
	path := writeTempConfig(t, `
# test configuration
database:
  host: localhost
  port: 5432
  user: resto
  password: secret
  database: pricing

rabbitmq:
  host: localhost
  port: 5672
  user: guest
  password: guest

pricing:
  port: 3000
  snapshot_ttl_seconds: 60
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("expected database.host localhost, got %q", cfg.Database.Host)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("expected database.port 5432, got %d", cfg.Database.Port)
	}
	if cfg.RabbitMQ.Port != 5672 {
		t.Errorf("expected rabbitmq.port 5672, got %d", cfg.RabbitMQ.Port)
	}
	if cfg.Pricing.Port != 3000 {
		t.Errorf("expected pricing.port 3000, got %d", cfg.Pricing.Port)
	}
	if cfg.Pricing.SnapshotTTLSeconds != 60 {
		t.Errorf("expected pricing.snapshot_ttl_seconds 60, got %d", cfg.Pricing.SnapshotTTLSeconds)
	}
}

func TestLoad_URLs(t *testing.T) {
	path := writeTempConfig(t, `
database:
  host: db.internal
  port: 5433
  user: app
  password: pw
  database: catalog

rabbitmq:
  host: mq.internal
  port: 5672
  user: app
  password: pw
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	wantDB := "postgres://app:pw@db.internal:5433/catalog?sslmode=disable"
	if got := cfg.DatabaseURL(); got != wantDB {
		t.Errorf("DatabaseURL() = %q, want %q", got, wantDB)
	}

	wantMQ := "amqp://app:pw@mq.internal:5672/"
	if got := cfg.RabbitMQURL(); got != wantMQ {
		t.Errorf("RabbitMQURL() = %q, want %q", got, wantMQ)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "unknown section",
			content: `
cache:
  size: 10
`,
		},
		{
			name: "unknown database key",
			content: `
database:
  hostname: localhost
`,
		},
		{
			name: "invalid port",
			content: `
database:
  port: not-a-number
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempConfig(t, tt.content)
			if _, err := Load(path); err == nil {
				t.Errorf("expected error, got nil")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

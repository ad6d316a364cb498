package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"ACCESS_TOKEN_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "5000" {
		t.Errorf("Port = %q, want 5000", cfg.Port)
	}
	if cfg.Mongo.Database != "bistroDb" {
		t.Errorf("Mongo.Database = %q, want bistroDb", cfg.Mongo.Database)
	}
	if cfg.Redis.Addr != "" {
		t.Errorf("Redis.Addr = %q, want empty", cfg.Redis.Addr)
	}
	if cfg.Redis.CacheTTL != 30*time.Second {
		t.Errorf("Redis.CacheTTL = %s, want 30s", cfg.Redis.CacheTTL)
	}
	if cfg.Security.GuardUserAdminOps || cfg.Security.GuardCartWrites {
		t.Errorf("optional guards must default to off")
	}
	if len(cfg.HTTP.AllowedOrigins) != 1 || cfg.HTTP.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v, want [*]", cfg.HTTP.AllowedOrigins)
	}
	if !cfg.IsDevelopment() {
		t.Errorf("expected development by default")
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"ACCESS_TOKEN_SECRET":  "s3cret",
		"PORT":                 "8080",
		"ENV":                  "production",
		"GUARD_USER_ADMIN_OPS": "true",
		"CORS_ALLOWED_ORIGINS": "https://a.example,https://b.example",
		"AUDIT_WORKERS":        "2",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" || cfg.IsDevelopment() {
		t.Errorf("unexpected port/env: %q %q", cfg.Port, cfg.Env)
	}
	if !cfg.Security.GuardUserAdminOps {
		t.Errorf("expected GuardUserAdminOps")
	}
	if len(cfg.HTTP.AllowedOrigins) != 2 {
		t.Errorf("AllowedOrigins = %v", cfg.HTTP.AllowedOrigins)
	}
	if cfg.Audit.Workers != 2 {
		t.Errorf("Audit.Workers = %d, want 2", cfg.Audit.Workers)
	}
}

func TestLoadWith_MissingSecret(t *testing.T) {
	if _, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatalf("expected error when ACCESS_TOKEN_SECRET is unset")
	}
}

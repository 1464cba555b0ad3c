package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.AppURL != "127.0.0.1:8080" {
		t.Errorf("unexpected app url %q", cfg.AppURL)
	}
	if cfg.DatabaseDriver != DriverSQLite {
		t.Errorf("unexpected driver %q", cfg.DatabaseDriver)
	}
	if cfg.RedisAddr != "" {
		t.Errorf("redis should be disabled by default, got %q", cfg.RedisAddr)
	}
	if TxOptions(cfg.DatabaseDriver) != nil {
		t.Error("sqlite should use default transaction options")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DATABASE_DRIVER", DriverPostgres)
	t.Setenv("DATABASE_DSN", "postgres://localhost/tasks")
	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.RedisAddr != "redis:6379" {
		t.Errorf("unexpected redis addr %q", cfg.RedisAddr)
	}
	if cfg.RateLimit != 10 {
		t.Errorf("unexpected rate limit %d", cfg.RateLimit)
	}
	if opts := TxOptions(cfg.DatabaseDriver); opts == nil {
		t.Error("postgres should run serializable transactions")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"missing secret":   {},
		"bad driver":       {"JWT_SECRET": "s", "DATABASE_DRIVER": "mysql"},
		"bad rate limit":   {"JWT_SECRET": "s", "RATE_LIMIT_PER_MINUTE": "fast"},
		"zero rate limit":  {"JWT_SECRET": "s", "RATE_LIMIT_PER_MINUTE": "0"},
		"negative timeout": {"JWT_SECRET": "s", "SHUTDOWN_TIMEOUT_SECONDS": "-1"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "")
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Auth: AuthConfig{
			JWTSecret:         "0123456789abcdef0123456789abcdef",
			Issuer:            "SistemaGestaoCursos",
			Audience:          "clients",
			ExpirationMinutes: 60,
		},
		Cache: CacheConfig{ActiveCoursesTTL: 30 * time.Second},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("有效配置不应报错: %v", err)
	}
}

func TestValidate_ShortSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.JWTSecret = "short"
	if err := cfg.Validate(); err == nil {
		t.Error("过短的 jwt_secret 应报错")
	}
}

func TestValidate_BadExpiration(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.ExpirationMinutes = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expiration_minutes=0 应报错")
	}
}

func TestLoad_FromFileAndDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: 9090
  mode: development
auth:
  jwt_secret: "0123456789abcdef0123456789abcdef"
  expiration_minutes: 15
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("写入临时配置失败: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 失败: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("期望 port=9090，实际=%d", cfg.Server.Port)
	}
	if !cfg.Server.IsDevelopment() {
		t.Error("期望 development 模式")
	}
	if cfg.Auth.TokenTTL() != 15*time.Minute {
		t.Errorf("期望 TokenTTL=15m，实际=%s", cfg.Auth.TokenTTL())
	}
	if cfg.Auth.Issuer != "SistemaGestaoCursos" {
		t.Errorf("期望默认 issuer，实际=%s", cfg.Auth.Issuer)
	}
	if cfg.Cache.ActiveCoursesTTL != 30*time.Second {
		t.Errorf("期望默认缓存 TTL=30s，实际=%s", cfg.Cache.ActiveCoursesTTL)
	}
}

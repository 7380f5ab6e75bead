package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "7710" {
		t.Fatalf("expected default port 7710, got %q", cfg.Port)
	}
	if !cfg.IsDevelopment() {
		t.Fatal("expected development mode by default")
	}
	if len(cfg.UIOrigins) != 1 || cfg.UIOrigins[0] != "http://localhost:5173" {
		t.Fatalf("unexpected default UI origins: %v", cfg.UIOrigins)
	}
}

func TestLoadUIOrigins(t *testing.T) {
	t.Setenv("BARINSTA_UI_ORIGINS", " http://localhost:3000 ,, http://127.0.0.1:3000")
	cfg := Load()
	if len(cfg.UIOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.UIOrigins)
	}
	if cfg.UIOrigins[0] != "http://localhost:3000" || cfg.UIOrigins[1] != "http://127.0.0.1:3000" {
		t.Fatalf("unexpected origins: %v", cfg.UIOrigins)
	}
}

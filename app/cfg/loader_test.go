package cfg

import (
	"testing"
	"time"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}

	version := GetVersion()
	if version != "dev" && version != "unknown" {
		// This is fine, version could be set at build time
		t.Logf("Version: %s", version)
	}
}

func TestConfigFields(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}

	cfg := &Cfg{
		Port:          "8080",
		SourceFile:    "./source.yml",
		LookaheadDays: 7,
		CacheAddr:     "localhost:6379",
		CacheTTL:      300,
		UserAgent:     "Test Agent",
		Timezone:      "America/New_York",
		Debug:         true,
		Version:       "test-version",
		Location:      loc,
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.SourceFile != "./source.yml" {
		t.Errorf("Expected source file './source.yml', got '%s'", cfg.SourceFile)
	}
	if cfg.LookaheadDays != 7 {
		t.Errorf("Expected lookahead days 7, got %d", cfg.LookaheadDays)
	}
	if cfg.CacheAddr != "localhost:6379" {
		t.Errorf("Expected cache addr 'localhost:6379', got '%s'", cfg.CacheAddr)
	}
	if cfg.CacheTTL != 300 {
		t.Errorf("Expected cache TTL 300, got %d", cfg.CacheTTL)
	}
	if cfg.UserAgent != "Test Agent" {
		t.Errorf("Expected user agent 'Test Agent', got '%s'", cfg.UserAgent)
	}
	if cfg.Timezone != "America/New_York" {
		t.Errorf("Expected timezone 'America/New_York', got '%s'", cfg.Timezone)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
	if cfg.Version != "test-version" {
		t.Errorf("Expected version 'test-version', got '%s'", cfg.Version)
	}
	if cfg.Location != loc {
		t.Error("Expected location to match loaded timezone")
	}
}

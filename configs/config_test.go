package configs

import (
	"os"
	"testing"
)

// setupTestEnv sets the environment variables the tests override
func setupTestEnv() {
	os.Setenv("APP_DEBUG", "false")
	os.Setenv("APP_ENV", "test")
	os.Setenv("APP_PORT", "8080")
	os.Setenv("LLAMA_API_URL", "http://llama:8080/v1/chat/completions")
	os.Setenv("LLAMA_MODEL", "test-model")
	os.Setenv("LLAMA_TIMEOUT", "30")
	os.Setenv("LLAMA_SYSTEM_PROMPT", "test prompt")
}

// cleanupTestEnv cleans up environment variables after tests
func cleanupTestEnv() {
	for _, key := range []string{
		"APP_DEBUG", "APP_ENV", "APP_PORT",
		"LLAMA_API_URL", "LLAMA_MODEL", "LLAMA_TIMEOUT", "LLAMA_SYSTEM_PROMPT",
		"LLAMA_SAVE_MESSAGES", "SESSION_STORE", "SESSION_TIMEOUT", "SESSION_MAX_SESSIONS",
		"REDIS_TTL",
	} {
		os.Unsetenv(key)
	}
}

// TestLlamaFieldsFromEnvironment tests that env vars override the config file
func TestLlamaFieldsFromEnvironment(t *testing.T) {
	setupTestEnv()
	defer cleanupTestEnv()

	InitViper(".", "test")
	cfg := GetViper()

	if cfg.Llama.APIURL != "http://llama:8080/v1/chat/completions" {
		t.Errorf("Expected Llama.APIURL from env, got %s", cfg.Llama.APIURL)
	}
	if cfg.Llama.Model != "test-model" {
		t.Errorf("Expected Llama.Model to be test-model, got %s", cfg.Llama.Model)
	}
	if cfg.Llama.Timeout != 30 {
		t.Errorf("Expected Llama.Timeout to be 30, got %d", cfg.Llama.Timeout)
	}
	if cfg.Llama.SystemPrompt != "test prompt" {
		t.Errorf("Expected Llama.SystemPrompt to be test prompt, got %s", cfg.Llama.SystemPrompt)
	}
	if cfg.App.Port != "8080" {
		t.Errorf("Expected App.Port to be 8080, got %s", cfg.App.Port)
	}
}

// TestDefaultsFromConfigFile tests values taken from config.yaml
func TestDefaultsFromConfigFile(t *testing.T) {
	setupTestEnv()
	defer cleanupTestEnv()

	InitViper(".", "test")
	cfg := GetViper()

	if cfg.Llama.Temperature != 0.3 {
		t.Errorf("Expected Llama.Temperature to be 0.3, got %v", cfg.Llama.Temperature)
	}
	if !cfg.Llama.SaveMessages {
		t.Error("Expected Llama.SaveMessages to be true")
	}
	if cfg.Tools.BiasWeight != 100 || cfg.Tools.TokenOffset != 15 {
		t.Errorf("Expected tool bias 100 at offset 15, got %d at %d", cfg.Tools.BiasWeight, cfg.Tools.TokenOffset)
	}
	if cfg.Session.Store != StoreMemory {
		t.Errorf("Expected Session.Store to be memory, got %s", cfg.Session.Store)
	}
	if len(cfg.Tools.AllowedHosts) != 0 {
		t.Errorf("Expected no allowed hosts restriction, got %v", cfg.Tools.AllowedHosts)
	}
}

// TestSessionFieldsFromEnvironment tests the session section
func TestSessionFieldsFromEnvironment(t *testing.T) {
	setupTestEnv()
	defer cleanupTestEnv()

	os.Setenv("SESSION_STORE", "redis")
	os.Setenv("SESSION_TIMEOUT", "45")
	os.Setenv("SESSION_MAX_SESSIONS", "15")
	os.Setenv("REDIS_TTL", "60")
	os.Setenv("LLAMA_SAVE_MESSAGES", "false")

	InitViper(".", "test")
	cfg := GetViper()

	if cfg.Session.Store != StoreRedis {
		t.Errorf("Expected Session.Store to be redis, got %s", cfg.Session.Store)
	}
	if cfg.Session.Timeout != 45 {
		t.Errorf("Expected Session.Timeout to be 45, got %d", cfg.Session.Timeout)
	}
	if cfg.Session.MaxSessions != 15 {
		t.Errorf("Expected Session.MaxSessions to be 15, got %d", cfg.Session.MaxSessions)
	}
	if cfg.Redis.TTL != 60 {
		t.Errorf("Expected Redis.TTL to be 60, got %d", cfg.Redis.TTL)
	}
	if cfg.Llama.SaveMessages {
		t.Error("Expected Llama.SaveMessages to be false")
	}
}

// TestMissingConfigFileUsesDefaults tests that a directory without config.yaml still loads
func TestMissingConfigFileUsesDefaults(t *testing.T) {
	cleanupTestEnv()

	InitViper(t.TempDir(), "")
	cfg := GetViper()

	if cfg.Llama.APIURL == "" {
		t.Error("Expected a default Llama.APIURL")
	}
	if cfg.Session.MaxSessions != 1000 {
		t.Errorf("Expected default Session.MaxSessions 1000, got %d", cfg.Session.MaxSessions)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRequireEnv(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		shouldSet bool
		wantPanic bool
	}{
		{
			name:      "variable set",
			key:       "TEST_VAR",
			value:     "test_value",
			shouldSet: true,
			wantPanic: false,
		},
		{
			name:      "variable not set",
			key:       "TEST_VAR_MISSING",
			shouldSet: false,
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				t.Setenv(tt.key, tt.value)
			}

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("requireEnv() should have panicked")
					}
				}()
			}

			result := requireEnv(tt.key)
			if !tt.wantPanic && result != tt.value {
				t.Errorf("requireEnv() = %v, want %v", result, tt.value)
			}
		})
	}
}

func TestRequireEnvOr(t *testing.T) {
	t.Run("env wins over file value", func(t *testing.T) {
		t.Setenv("TEST_OWNER", "from-env")
		if got := requireEnvOr("TEST_OWNER", "from-file"); got != "from-env" {
			t.Errorf("requireEnvOr() = %v, want from-env", got)
		}
	})

	t.Run("file value fills in", func(t *testing.T) {
		if got := requireEnvOr("TEST_OWNER_UNSET", "from-file"); got != "from-file" {
			t.Errorf("requireEnvOr() = %v, want from-file", got)
		}
	})

	t.Run("both missing panics", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("requireEnvOr() should have panicked")
			}
		}()
		requireEnvOr("TEST_OWNER_UNSET", "")
	})
}

func TestMustDuration(t *testing.T) {
	t.Setenv("TEST_TTL", "30m")
	if got := mustDuration("TEST_TTL", time.Hour); got != 30*time.Minute {
		t.Errorf("mustDuration() = %v, want 30m", got)
	}

	t.Setenv("TEST_TTL", "garbage")
	if got := mustDuration("TEST_TTL", time.Hour); got != time.Hour {
		t.Errorf("mustDuration() with invalid value = %v, want default", got)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "tok")
	t.Setenv("GITHUB_OWNER", "me")
	t.Setenv("GITHUB_REPO", "bookmarks")
	t.Setenv("LINKTRACKER_CONFIG_FILE", "")

	cfg := Load()

	if cfg.GitHubAPI != "https://api.github.com" {
		t.Errorf("GitHubAPI = %v, want default", cfg.GitHubAPI)
	}
	if cfg.CacheTTL != 8*time.Hour {
		t.Errorf("CacheTTL = %v, want 8h", cfg.CacheTTL)
	}
	if cfg.ListenAddr != ":3333" {
		t.Errorf("ListenAddr = %v, want :3333", cfg.ListenAddr)
	}
	if cfg.PerPage != 100 {
		t.Errorf("PerPage = %v, want 100", cfg.PerPage)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linktracker.yaml")
	content := []byte("listen_addr: \":9999\"\ngithub:\n  owner: file-owner\n  repo: file-repo\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv("GITHUB_TOKEN", "tok")
	t.Setenv("LINKTRACKER_CONFIG_FILE", path)
	t.Setenv("GITHUB_OWNER", "env-owner") // env overrides file

	cfg := Load()

	if cfg.GitHubOwner != "env-owner" {
		t.Errorf("GitHubOwner = %v, want env-owner", cfg.GitHubOwner)
	}
	if cfg.GitHubRepo != "file-repo" {
		t.Errorf("GitHubRepo = %v, want file-repo", cfg.GitHubRepo)
	}
	if cfg.ListenAddr != ":9999" {
		t.Errorf("ListenAddr = %v, want :9999", cfg.ListenAddr)
	}
}

func TestLoadMissingTokenPanics(t *testing.T) {
	t.Setenv("GITHUB_OWNER", "me")
	t.Setenv("GITHUB_REPO", "bookmarks")
	t.Setenv("GITHUB_TOKEN", "")

	defer func() {
		if r := recover(); r == nil {
			t.Error("Load() without GITHUB_TOKEN should panic")
		}
	}()
	Load()
}

package main

import (
	"os"
	"path/filepath"
	"testing"
)

// resetFlags restores global flag state after each test.
func resetFlags(t *testing.T) {
	t.Helper()
	orig := struct{ url, fmt string }{flagURL, flagFmt}
	t.Cleanup(func() {
		flagURL = orig.url
		flagFmt = orig.fmt
	})
}

// unsetEnv temporarily unsets an environment variable and restores it on cleanup.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	prev, exists := os.LookupEnv(key)
	os.Unsetenv(key)
	t.Cleanup(func() {
		if exists {
			os.Setenv(key, prev)
		} else {
			os.Unsetenv(key)
		}
	})
}

// writeConfig creates ~/.kindred/config.yaml under a temporary HOME.
func writeConfig(t *testing.T, content string) {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	if content == "" {
		return
	}
	cfgDir := filepath.Join(tmp, ".kindred")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

// TestResolveConfigEnvURL verifies that KINDRED_URL overrides the default URL.
func TestResolveConfigEnvURL(t *testing.T) {
	resetFlags(t)
	t.Setenv("KINDRED_URL", "http://env-server:9090")
	writeConfig(t, "url: http://from-file:8080\n")

	flagURL = defaultURL
	resolveConfig()

	if flagURL != "http://env-server:9090" {
		t.Errorf("flagURL: got %q, want %q", flagURL, "http://env-server:9090")
	}
}

// TestResolveConfigFlagTakesPrecedence verifies that an explicit flag value is
// not overridden by the environment or the config file.
func TestResolveConfigFlagTakesPrecedence(t *testing.T) {
	resetFlags(t)
	t.Setenv("KINDRED_URL", "http://env-server:9090")
	writeConfig(t, "url: http://from-file:8080\n")

	flagURL = "http://explicit-flag:1234"
	resolveConfig()

	if flagURL != "http://explicit-flag:1234" {
		t.Errorf("explicit flag should win; got %q", flagURL)
	}
}

func TestResolveConfigFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"no file", "", defaultURL},
		{"flat", "url: http://from-file:8080\n", "http://from-file:8080"},
		{"active profile", `
active_profile: staging
profiles:
  default:
    url: http://default:3030
  staging:
    url: http://staging:4040
`, "http://staging:4040"},
		{"default profile", `
url: http://flat:1111
profiles:
  default:
    url: http://default-profile:5050
`, "http://default-profile:5050"},
		{"unknown profile falls back to flat", `
url: http://flat:1111
active_profile: prod
profiles:
  default:
    url: http://default-profile:5050
`, "http://flat:1111"},
		{"malformed yaml", "url: [unclosed\n", defaultURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			unsetEnv(t, "KINDRED_URL")
			writeConfig(t, tt.content)

			flagURL = defaultURL
			resolveConfig()

			if flagURL != tt.want {
				t.Errorf("flagURL: got %q, want %q", flagURL, tt.want)
			}
		})
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetEnvString(t *testing.T) {
	key := "TEST_ENV_STRING"
	val := "test_value"
	os.Setenv(key, val)
	defer os.Unsetenv(key)

	if got := getEnvString(key, "default"); got != val {
		t.Errorf("getEnvString() = %q, want %q", got, val)
	}

	if got := getEnvString("NON_EXISTENT", "default"); got != "default" {
		t.Errorf("getEnvString() = %q, want %q", got, "default")
	}
}

func TestGetEnvDuration(t *testing.T) {
	key := "TEST_ENV_DURATION"

	tests := []struct {
		name       string
		envVal     string
		defaultVal time.Duration
		want       time.Duration
	}{
		{"ValidDuration", "1m", time.Second, time.Minute},
		{"ValidSeconds", "60", time.Second, 60 * time.Second},
		{"Invalid", "invalid", time.Second, time.Second},
		{"Empty", "", time.Second, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envVal != "" {
				os.Setenv(key, tt.envVal)
				defer os.Unsetenv(key)
			} else {
				os.Unsetenv(key)
			}

			if got := getEnvDuration(key, tt.defaultVal); got != tt.want {
				t.Errorf("getEnvDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_ENV_BOOL"

	tests := []struct {
		name       string
		envVal     string
		defaultVal bool
		want       bool
	}{
		{"True", "true", false, true},
		{"One", "1", false, true},
		{"False", "false", true, false},
		{"Invalid", "maybe", true, true},
		{"Empty", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envVal != "" {
				os.Setenv(key, tt.envVal)
				defer os.Unsetenv(key)
			} else {
				os.Unsetenv(key)
			}

			if got := getEnvBool(key, tt.defaultVal); got != tt.want {
				t.Errorf("getEnvBool() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnsureDir(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "dir")

	if err := ensureDir(path); err != nil {
		t.Fatalf("ensureDir() failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("directory was not created")
	}

	if err := ensureDir(""); err != nil {
		t.Error("ensureDir(\"\") should not error")
	}
}

func TestGetDefaultPaths(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Skipping test because user home dir cannot be found")
	}

	dbPath := getDefaultDatabasePath()
	expectedDb := filepath.Join(home, ".config", "visitor-dashboard", "events.db")
	if dbPath != expectedDb {
		t.Errorf("getDefaultDatabasePath() = %q, want %q", dbPath, expectedDb)
	}

	importPath := getDefaultImportPath()
	expectedImport := filepath.Join(home, ".config", "visitor-dashboard", "imports")
	if importPath != expectedImport {
		t.Errorf("getDefaultImportPath() = %q, want %q", importPath, expectedImport)
	}
}

func TestGetEnvPaths(t *testing.T) {
	paths := getEnvPaths()
	if len(paths) == 0 {
		t.Error("getEnvPaths() returned empty list")
	}

	// Basic check that it contains current directory
	cwd, _ := os.Getwd()
	found := false
	for _, p := range paths {
		if p == filepath.Join(cwd, ".env") {
			found = true
			break
		}
	}
	if !found {
		t.Error("getEnvPaths() missing current directory .env")
	}
}

func TestLoad(t *testing.T) {
	// Use temp dir for paths to avoid permission issues
	tmpDir := t.TempDir()
	os.Setenv("DATABASE_PATH", filepath.Join(tmpDir, "db.sqlite"))
	os.Setenv("IMPORT_PATH", filepath.Join(tmpDir, "imports"))
	os.Setenv("EXPORT_PATH", filepath.Join(tmpDir, "exports"))
	defer os.Unsetenv("DATABASE_PATH")
	defer os.Unsetenv("IMPORT_PATH")
	defer os.Unsetenv("EXPORT_PATH")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.DatabasePath != filepath.Join(tmpDir, "db.sqlite") {
		t.Errorf("DatabasePath = %q", cfg.DatabasePath)
	}
	if cfg.RefreshInterval != defaultRefreshInterval {
		t.Errorf("RefreshInterval = %v, want %v", cfg.RefreshInterval, defaultRefreshInterval)
	}

	// The import drop directory must exist after Load.
	if _, err := os.Stat(cfg.ImportPath); err != nil {
		t.Errorf("import directory not created: %v", err)
	}
}

func TestLoad_WithEnvFile(t *testing.T) {
	tmpDir := t.TempDir()
	envPath := filepath.Join(tmpDir, ".env")
	content := "DATABASE_PATH=" + filepath.Join(tmpDir, "from-env.db") + "\nINCLUDE_OTHER_GENDER=true"
	if err := os.WriteFile(envPath, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	// Change working directory to tmpDir so Load finds .env
	wd, _ := os.Getwd()
	defer os.Chdir(wd)
	os.Chdir(tmpDir)

	// Ensure no env vars interfere
	os.Unsetenv("DATABASE_PATH")
	os.Unsetenv("INCLUDE_OTHER_GENDER")
	defer os.Unsetenv("DATABASE_PATH")
	defer os.Unsetenv("INCLUDE_OTHER_GENDER")

	// Keep the default import/export paths inside the sandbox.
	os.Setenv("IMPORT_PATH", filepath.Join(tmpDir, "imports"))
	os.Setenv("EXPORT_PATH", filepath.Join(tmpDir, "exports"))
	defer os.Unsetenv("IMPORT_PATH")
	defer os.Unsetenv("EXPORT_PATH")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.DatabasePath != filepath.Join(tmpDir, "from-env.db") {
		t.Errorf("DatabasePath = %q, want value from .env", cfg.DatabasePath)
	}
	if !cfg.IncludeOther {
		t.Error("IncludeOther = false, want true from .env")
	}
}

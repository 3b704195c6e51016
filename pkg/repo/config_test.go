package repo

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	back, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if back.Core.RepositoryFormatVersion != SupportedFormatVersion {
		t.Errorf("version = %d, want %d", back.Core.RepositoryFormatVersion, SupportedFormatVersion)
	}
	if back.Core.FileMode || back.Core.Bare {
		t.Errorf("defaults = %+v, want filemode=false bare=false", back.Core)
	}
}

func TestConfigOnDiskShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "[core]") {
		t.Errorf("config missing [core] section:\n%s", text)
	}
	if !strings.Contains(text, "repositoryformatversion = 0") {
		t.Errorf("config missing version key:\n%s", text)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, ErrNotARepository) {
		t.Errorf("err = %v, want ErrNotARepository", err)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	if err := os.WriteFile(path, []byte("[core\nnot toml"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig of malformed TOML should fail")
	}
}

package repo

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// SupportedFormatVersion is the only repositoryformatversion this
// implementation reads or writes.
const SupportedFormatVersion = 0

// Config is the repository-local configuration stored as TOML in
// .wit/config.
type Config struct {
	Core CoreConfig `toml:"core"`
}

// CoreConfig mirrors the [core] section.
type CoreConfig struct {
	RepositoryFormatVersion int  `toml:"repositoryformatversion"`
	FileMode                bool `toml:"filemode"`
	Bare                    bool `toml:"bare"`
}

// DefaultConfig returns the config written into freshly created
// repositories.
func DefaultConfig() *Config {
	return &Config{
		Core: CoreConfig{
			RepositoryFormatVersion: SupportedFormatVersion,
			FileMode:                false,
			Bare:                    false,
		},
	}
}

// LoadConfig reads and decodes a TOML config file. A missing file is
// reported as ErrNotARepository: an opened repository must carry its
// config.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: missing %s: %w", path, ErrNotARepository)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("read config: decode: %w", err)
	}
	return &cfg, nil
}

// Save atomically writes the config as TOML.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("write config: encode: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".config-tmp-*")
	if err != nil {
		return fmt.Errorf("write config: tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write config: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write config: close: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write config: rename: %w", err)
	}
	return nil
}

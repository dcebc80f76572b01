package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/seqgram/pkg/errors"
	"github.com/matzehuels/seqgram/pkg/pipeline"
	"github.com/matzehuels/seqgram/pkg/seq/layout"
)

// fileConfig is the on-disk configuration shared by render, layout and
// serve. Every key is optional; unset keys keep their defaults.
//
//	format = "text"
//	ascii  = false
//
//	[layout]
//	participant_padding_x = 1
//	box_gap = 2
//
//	[cache]
//	redis_url = "redis://localhost:6379/0"
type fileConfig struct {
	Format string        `toml:"format" yaml:"format"`
	ASCII  bool          `toml:"ascii" yaml:"ascii"`
	Layout layout.Config `toml:"layout" yaml:"layout"`
	Cache  struct {
		Disabled bool   `toml:"disabled" yaml:"disabled"`
		RedisURL string `toml:"redis_url" yaml:"redis_url"`
	} `toml:"cache" yaml:"cache"`
}

func defaultFileConfig() fileConfig {
	return fileConfig{
		Format: pipeline.DefaultFormat,
		Layout: layout.DefaultConfig(),
	}
}

// loadConfig reads path as TOML or YAML depending on its extension. An
// empty path returns the defaults. Unknown keys are rejected so that typos
// do not silently fall back to defaults.
func loadConfig(path string) (fileConfig, error) {
	cfg := defaultFileConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s not found", path)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = decodeTOML(data, &cfg)
	case ".yaml", ".yml":
		err = decodeYAML(data, &cfg)
	default:
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unsupported config extension %q (use .toml, .yaml or .yml)", ext)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	if err := pipeline.ValidateFormat(cfg.Format); err != nil {
		return cfg, err
	}
	if err := cfg.Layout.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func decodeTOML(data []byte, cfg *fileConfig) error {
	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func decodeYAML(data []byte, cfg *fileConfig) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return err
	}
	return nil
}

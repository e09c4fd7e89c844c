package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/qdeck/qdeck/pkg/errors"
	"github.com/qdeck/qdeck/pkg/types"
)

//go:embed embedded/defaults.toml
var defaultSettings []byte

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Settings is the runtime tuning layer, separate from the config tree.
type Settings struct {
	Logging struct {
		Verbosity int `koanf:"verbosity" toml:"verbosity"`
	} `koanf:"logging" toml:"logging"`

	IconCache struct {
		QuotaBytes      int64         `koanf:"quota_bytes" toml:"quota_bytes"`
		CleanupInterval time.Duration `koanf:"cleanup_interval" toml:"cleanup_interval"`
	} `koanf:"icon_cache" toml:"icon_cache"`

	Terminal struct {
		Default string `koanf:"default" toml:"default"`
	} `koanf:"terminal" toml:"terminal"`
}

// EnvPrefix is the prefix for settings environment overrides. A double
// underscore separates nesting levels: QDECK_ICON_CACHE__QUOTA_BYTES
// maps to icon_cache.quota_bytes.
const EnvPrefix = "QDECK_"

// LoadSettings merges embedded defaults, the optional settings file at
// path, and QDECK_ environment variables, in that priority order.
func LoadSettings(path string) (*Settings, error) {
	return LoadSettingsWith(path, nil)
}

// LoadSettingsWith is LoadSettings with an extra highest-priority layer of
// programmatic overrides, keyed by dotted paths (e.g. "logging.verbosity").
func LoadSettingsWith(path string, overrides map[string]interface{}) (*Settings, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultSettings}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load default settings")
	}

	// 2. Settings file, if present
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load settings from %s", path)
			}
		}
	}

	// 3. Environment variables
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load settings from environment")
	}

	// 4. Programmatic overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load settings overrides")
		}
	}

	var s Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		},
	}
	if err := k.UnmarshalWithConf("", &s, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal settings")
	}

	return &s, nil
}

// WriteStarterSettings writes the default settings file if none exists,
// so users have a documented file to edit. Returns true when written.
func WriteStarterSettings(filesystem types.FS, path string) (bool, error) {
	if _, err := filesystem.Stat(path); err == nil {
		return false, nil
	}

	defaults, err := LoadSettings("")
	if err != nil {
		return false, err
	}
	data, err := gotoml.Marshal(defaults)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrConfigSave, "failed to serialize starter settings")
	}
	if err := filesystem.WriteFile(path, data, 0644); err != nil {
		return false, errors.Wrapf(err, errors.ErrConfigSave, "failed to write %s", path)
	}
	return true, nil
}

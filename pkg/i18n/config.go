package i18n

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/magiconair/properties"
)

// Property keys read by ConfigFromProperties.
const (
	PropertyBaseName      = "i18n.baseName"
	PropertyBundlePath    = "i18n.bundlePath"
	PropertyDefaultLocale = "i18n.defaultLocale"
)

// Config holds catalog configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	BaseName      string `env:"I18N_BASE_NAME" envDefault:"I18n"`
	BundlePath    string `env:"I18N_BUNDLE_PATH"`
	DefaultLocale string `env:"I18N_DEFAULT_LOCALE"`
}

// HasBundlePath reports whether a search directory is configured.
func (c Config) HasBundlePath() bool {
	return c.BundlePath != ""
}

// LoadConfig reads Config from the environment. A .env file in the working
// directory is loaded first when present.
func LoadConfig() (Config, error) {
	// The .env file is optional.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// ConfigFromProperties reads Config from flat properties:
//
//	i18n.baseName = Messages
//	i18n.bundlePath = /etc/app/i18n
//	i18n.defaultLocale = en-US
//
// Missing keys keep their defaults.
func ConfigFromProperties(p *properties.Properties) Config {
	return Config{
		BaseName:      p.GetString(PropertyBaseName, DefaultBaseName),
		BundlePath:    p.GetString(PropertyBundlePath, ""),
		DefaultLocale: p.GetString(PropertyDefaultLocale, ""),
	}
}

// LoadConfigFile reads Config from a .properties file.
func LoadConfigFile(filename string) (Config, error) {
	p, err := properties.LoadFile(filename, properties.UTF8)
	if err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	return ConfigFromProperties(p), nil
}

// FromConfig creates a catalog from cfg. Extra options are applied after the
// configured values and may override them.
func FromConfig(cfg Config, opts ...Option) (*Catalog, error) {
	base := []Option{
		WithBaseName(cfg.BaseName),
		WithSearchLocation(cfg.BundlePath),
	}
	if cfg.DefaultLocale != "" {
		tag, err := ParseLocale(cfg.DefaultLocale)
		if err != nil {
			return nil, fmt.Errorf("default locale: %w", err)
		}
		base = append(base, WithFallbackLocale(tag))
	}
	return New(append(base, opts...)...)
}

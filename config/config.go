// Package config loads the changemonger configuration from a config file,
// environment variables (CHANGEMONGER_*) and command line flags.
package config

import (
	"net/url"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/omniscale/changemonger/log"
)

const EnvPrefix = "CHANGEMONGER"

type Config struct {
	APIURL       string  `mapstructure:"api_url"`
	UserAgent    string  `mapstructure:"user_agent"`
	Rate         float64 `mapstructure:"rate"`
	Burst        int     `mapstructure:"burst"`
	CacheSize    int     `mapstructure:"cache_size"`
	Concurrency  int     `mapstructure:"concurrency"`
	Catalog      string  `mapstructure:"catalog"`
	LogLevel     string  `mapstructure:"log_level"`
	Quiet        bool    `mapstructure:"quiet"`
	HTTPProfile  string  `mapstructure:"httpprofile"`
	MemProfile   string  `mapstructure:"memprofile"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
}

const (
	defaultAPIURL      = "https://api.openstreetmap.org/api/0.6"
	defaultRate        = 2.0
	defaultBurst       = 4
	defaultCacheSize   = 1024
	defaultConcurrency = 4
	defaultLogLevel    = "step"
)

// SetDefaults registers all keys with their default values.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api_url", defaultAPIURL)
	v.SetDefault("user_agent", "")
	v.SetDefault("rate", defaultRate)
	v.SetDefault("burst", defaultBurst)
	v.SetDefault("cache_size", defaultCacheSize)
	v.SetDefault("concurrency", defaultConcurrency)
	v.SetDefault("catalog", "")
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("quiet", false)
	v.SetDefault("httpprofile", "")
	v.SetDefault("memprofile", "")
	v.SetDefault("otlp_endpoint", "")
}

// Load reads configFile, or changemonger.yml from the user config
// directory or the working directory if configFile is empty. A missing
// default config file is not an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "changemonger"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("changemonger")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, errors.Wrap(err, "reading config")
		}
	} else {
		log.Printf("[debug] using config %s", v.ConfigFileUsed())
	}

	conf := &Config{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	return conf, nil
}

// Check returns all invalid options.
func (c *Config) Check() []error {
	errs := []error{}
	if u, err := url.Parse(c.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, errors.Errorf("invalid api_url '%s'", c.APIURL))
	}
	if c.Rate < 0 {
		errs = append(errs, errors.New("rate must not be negative"))
	}
	if c.Rate > 0 && c.Burst < 1 {
		errs = append(errs, errors.New("burst needs to be at least 1"))
	}
	if c.Concurrency < 1 {
		errs = append(errs, errors.New("concurrency needs to be at least 1"))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.Catalog != "" {
		if _, err := os.Stat(c.Catalog); err != nil {
			errs = append(errs, errors.Wrap(err, "catalog"))
		}
	}
	return errs
}

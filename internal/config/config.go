// Package config loads the YAML configuration shared by the server and the CLI.
package config

import (
	"os"
	"time"

	"github.com/lodthe/docker-tags/internal/discovery"
	"github.com/lodthe/docker-tags/internal/tagstable"
	"github.com/lodthe/docker-tags/pkg/dockerhub"

	gconfig "github.com/gookit/config/v2"
	gyaml "github.com/gookit/config/v2/yaml"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const DefaultConfigPath = "config.yaml"

type LogFormat string

const (
	JSONLogFormat   LogFormat = "json"
	PrettyLogFormat LogFormat = "pretty"
)

type Config struct {
	API API `mapstructure:"api"`

	PrometheusExportAddress string `mapstructure:"prometheus_address"`

	LogLevel  string    `mapstructure:"log_level"`
	LogFormat LogFormat `mapstructure:"log_format"`

	CatalogPath string `mapstructure:"catalog_path"`

	Registry Registry `mapstructure:"registry"`

	Table tagstable.Options `mapstructure:"table"`
}

type API struct {
	ListeningAddress string        `mapstructure:"address"`
	ServerTimeout    time.Duration `mapstructure:"server_timeout"`
}

type Registry struct {
	// UpstreamURL is where the built-in proxy forwards registry requests.
	UpstreamURL string `mapstructure:"upstream_url"`

	// DiscoveryBaseURL is the proxy base the tag client talks to.
	// Defaults to the proxy of this server's own API address.
	DiscoveryBaseURL string `mapstructure:"discovery_base_url"`

	MaxRPS         int           `mapstructure:"max_rps"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// PathFromEnv returns CONFIG_PATH or the default path.
func PathFromEnv() string {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = DefaultConfigPath
	}

	return path
}

func Load(path string) (*Config, error) {
	c := gconfig.New("docker-tags")
	c.WithOptions(
		gconfig.ParseEnv,
		gconfig.Readonly,
		func(opts *gconfig.Options) {
			opts.DecoderConfig = &mapstructure.DecoderConfig{
				TagName:          "mapstructure",
				WeaklyTypedInput: true,
				DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
			}
		},
	)
	c.AddDriver(gyaml.Driver)

	err := c.LoadFiles(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}

	cfg := new(Config)
	err = c.BindStruct("", cfg)
	if err != nil {
		return nil, errors.Wrap(err, "config binding failed")
	}

	err = cfg.validate()
	if err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := new(Config)
	_ = cfg.validate()

	return cfg
}

// validate verifies the loaded config and sets default values for missed fields.
func (c *Config) validate() error {
	if c.API.ListeningAddress == "" {
		c.API.ListeningAddress = ":9000"
	}
	if c.API.ServerTimeout == 0 {
		c.API.ServerTimeout = 60 * time.Second
	}

	if c.PrometheusExportAddress == "" {
		c.PrometheusExportAddress = ":2112"
	}

	if c.LogLevel == "" {
		c.LogLevel = zerolog.InfoLevel.String()
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(err, "invalid log_level %q", c.LogLevel)
	}

	switch c.LogFormat {
	case "":
		c.LogFormat = JSONLogFormat
	case JSONLogFormat, PrettyLogFormat:
	default:
		return errors.Errorf("unknown log_format %s (supported: %s, %s)", c.LogFormat, JSONLogFormat, PrettyLogFormat)
	}

	if c.CatalogPath == "" {
		c.CatalogPath = "catalog-info.yaml"
	}

	if c.Registry.UpstreamURL == "" {
		c.Registry.UpstreamURL = dockerhub.DockerHubURL
	}
	if c.Registry.DiscoveryBaseURL == "" {
		c.Registry.DiscoveryBaseURL = discovery.ProxyBaseURL(c.API.ListeningAddress)
	}
	if c.Registry.MaxRPS == 0 {
		c.Registry.MaxRPS = dockerhub.DefaultMaxRPS
	}
	if c.Registry.MaxRPS < 0 {
		return errors.New("registry.max_rps must be positive")
	}
	if c.Registry.RequestTimeout == 0 {
		c.Registry.RequestTimeout = 30 * time.Second
	}

	for _, col := range c.Table.Columns {
		switch col {
		case tagstable.ColumnName, tagstable.ColumnUsername, tagstable.ColumnStatus, tagstable.ColumnArchitecture:
		default:
			return errors.Errorf("unknown table column %q", col)
		}
	}
	c.Table = c.Table.WithDefaults()

	return nil
}

// Logger builds the root logger described by the config.
func (c *Config) Logger() zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs

	var logger zerolog.Logger
	if c.LogFormat == PrettyLogFormat {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	return logger.Level(lvl)
}

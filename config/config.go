package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "STOREFRONT_CONFIG_FILE"

const (
	defaultBaseURL  = "https://dummyjson.com"
	defaultPageSize = 30
	defaultTopic    = "storefront-client-events"
)

type api struct {
	BaseURL        string        `mapstructure:"base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type catalog struct {
	PageSize int `mapstructure:"page_size"`
}

type tlsFiles struct {
	CAFile   string `mapstructure:"ca_file"`
	CertFile string `mapstructure:"cert_file"`
	KeyFile  string `mapstructure:"key_file"`
}

type events struct {
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	Topic              string   `mapstructure:"topic"`
	TLS                tlsFiles `mapstructure:"tls"`
}

type Config struct {
	LogLevel slog.Level `mapstructure:"log_level"`
	API      api        `mapstructure:"api"`
	Catalog  catalog    `mapstructure:"catalog"`
	Events   events     `mapstructure:"events"`
}

// EventsEnabled reports whether client events are streamed to Kafka.
func (c Config) EventsEnabled() bool {
	return len(c.Events.SeedBrokers) != 0
}

// TLSEnabled reports whether Kafka and the schema registry are dialed
// over TLS.
func (c Config) TLSEnabled() bool {
	return c.Events.TLS.CAFile != ""
}

// Load reads the file named by STOREFRONT_CONFIG_FILE or --config. Without
// either, defaults are used. The process exits on invalid configuration.
func Load() Config {
	cfg, err := load(getConfigFilepath())
	if err != nil {
		die(err)
	}
	return cfg
}

func load(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("log_level", "info")
	v.SetDefault("api.base_url", defaultBaseURL)
	v.SetDefault("api.request_timeout", "0s")
	v.SetDefault("catalog.page_size", defaultPageSize)
	v.SetDefault("events.seed_brokers", []string{})
	v.SetDefault("events.schema_registry_urls", []string{})
	v.SetDefault("events.topic", defaultTopic)
	v.SetDefault("events.tls.ca_file", "")
	v.SetDefault("events.tls.cert_file", "")
	v.SetDefault("events.tls.key_file", "")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.UnmarshalExact(&cfg, hook); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return errors.New("api.base_url is empty")
	}
	if c.API.RequestTimeout < 0 {
		return errors.New("api.request_timeout is negative")
	}
	if c.Catalog.PageSize <= 0 {
		return errors.New("catalog.page_size must be positive")
	}
	if c.EventsEnabled() {
		if len(c.Events.SchemaRegistryURLs) == 0 {
			return errors.New("events.schema_registry_urls is empty")
		}
		if strings.TrimSpace(c.Events.Topic) == "" {
			return errors.New("events.topic is empty")
		}
	}
	return nil
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	cmdLine.ParseErrorsWhitelist.UnknownFlags = true
	cmdLine.Usage = func() {}
	arg := cmdLine.String("config", "", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q

	API:
	BaseURL=%q
	RequestTimeout=%q

	Catalog:
	PageSize=%d

	Events:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topic=%q
	TLS:
		CAFile=%q
		CertFile=%q
		KeyFile=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.API.BaseURL,
		c.API.RequestTimeout,
		c.Catalog.PageSize,
		c.Events.SeedBrokers,
		c.Events.SchemaRegistryURLs,
		c.Events.Topic,
		c.Events.TLS.CAFile,
		c.Events.TLS.CertFile,
		c.Events.TLS.KeyFile,
	)
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-leadform/pkg/attachment"
	"github.com/goliatone/go-leadform/pkg/locale"
	"github.com/goliatone/go-leadform/pkg/relay"
)

// ErrMissingAccessKey is returned by Validate when no relay key is set.
var ErrMissingAccessKey = errors.New("config: access_key is required")

// Config holds the relay settings and form behaviour. Values come from
// defaults, then the YAML file, then LEADFORM_* environment variables.
type Config struct {
	Endpoint           string            `yaml:"endpoint" env:"LEADFORM_ENDPOINT"`
	AccessKey          string            `yaml:"access_key" env:"LEADFORM_ACCESS_KEY"`
	Subject            string            `yaml:"subject" env:"LEADFORM_SUBJECT"`
	FromName           string            `yaml:"from_name" env:"LEADFORM_FROM_NAME"`
	Metadata           map[string]string `yaml:"metadata" env:"LEADFORM_METADATA"`
	IncludeAttachments bool              `yaml:"include_attachments" env:"LEADFORM_INCLUDE_ATTACHMENTS"`
	MaxAttachmentBytes int64             `yaml:"max_attachment_bytes" env:"LEADFORM_MAX_ATTACHMENT_BYTES"`
	ImagesOnly         bool              `yaml:"images_only" env:"LEADFORM_IMAGES_ONLY"`
	Lang               string            `yaml:"lang" env:"LEADFORM_LANG"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Endpoint:           relay.DefaultEndpoint,
		Subject:            relay.DefaultSubject,
		FromName:           "Otkup vozila",
		MaxAttachmentBytes: attachment.MaxFileSize,
		ImagesOnly:         true,
		Lang:               locale.Default,
	}
}

// Load reads path (when not empty) and applies environment overrides.
func Load(path string) (Config, error) {
	return load(path, nil)
}

// LoadWithEnv is Load with an explicit environment instead of the process
// one.
func LoadWithEnv(path string, environ map[string]string) (Config, error) {
	if environ == nil {
		environ = map[string]string{}
	}
	return load(path, environ)
}

func load(path string, environ map[string]string) (Config, error) {
	cfg := Default()

	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	c.Endpoint = strings.TrimSpace(c.Endpoint)
	if c.Endpoint == "" {
		c.Endpoint = relay.DefaultEndpoint
	}
	c.AccessKey = strings.TrimSpace(c.AccessKey)
	if strings.TrimSpace(c.Subject) == "" {
		c.Subject = relay.DefaultSubject
	}
	if c.MaxAttachmentBytes <= 0 {
		c.MaxAttachmentBytes = attachment.MaxFileSize
	}
	c.Lang = strings.ToLower(strings.TrimSpace(c.Lang))
	if c.Lang == "" {
		c.Lang = locale.Default
	}
}

// Validate checks the settings needed to submit.
func (c Config) Validate() error {
	if c.AccessKey == "" {
		return ErrMissingAccessKey
	}
	if !strings.HasPrefix(c.Endpoint, "http://") && !strings.HasPrefix(c.Endpoint, "https://") {
		return fmt.Errorf("config: endpoint %q must be an http(s) URL", c.Endpoint)
	}
	return nil
}

// RelayOptions maps the configuration onto relay client options.
func (c Config) RelayOptions() []relay.Option {
	opts := []relay.Option{
		relay.WithSubject(c.Subject),
		relay.WithFromName(c.FromName),
	}
	if fields := relay.SortedHiddenFields(c.Metadata); len(fields) > 0 {
		opts = append(opts, relay.WithMetadata(fields...))
	}
	return opts
}

// AttachmentOptions maps the configuration onto attachment set options.
func (c Config) AttachmentOptions() []attachment.Option {
	return []attachment.Option{
		attachment.WithLimit(c.MaxAttachmentBytes),
		attachment.ImagesOnly(c.ImagesOnly),
	}
}

// Package config provides configuration management for modelgraph using
// Viper for flexible loading from files, environment variables, and
// command-line flags.
//
// Configuration is read from .modelgraph.yml with MODELGRAPH_ environment
// overrides following the MODELGRAPH_<SECTION>_<OPTION> pattern. It covers
// storage locations, render defaults, the preview server, the watcher, and
// the publishing and image-rendering collaborators.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`
	Render  RenderConfig  `yaml:"render" mapstructure:"render"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Watch   WatchConfig   `yaml:"watch" mapstructure:"watch"`
	Publish PublishConfig `yaml:"publish" mapstructure:"publish"`
	Imaging ImagingConfig `yaml:"imaging" mapstructure:"imaging"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

type StorageConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

type RenderConfig struct {
	Format            string `yaml:"format" mapstructure:"format"`
	Direction         string `yaml:"direction" mapstructure:"direction"`
	ShowAttributes    bool   `yaml:"show_attributes" mapstructure:"show_attributes"`
	ShowMethods       bool   `yaml:"show_methods" mapstructure:"show_methods"`
	ShowRelationships bool   `yaml:"show_relationships" mapstructure:"show_relationships"`
	IncludeHeader     bool   `yaml:"include_header" mapstructure:"include_header"`
}

type ServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

type WatchConfig struct {
	DebounceMillis int `yaml:"debounce_millis" mapstructure:"debounce_millis"`
}

type PublishConfig struct {
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"`
	SpaceKey string `yaml:"space_key" mapstructure:"space_key"`
	Token    string `yaml:"token" mapstructure:"token"`
}

type ImagingConfig struct {
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	Width    int    `yaml:"width" mapstructure:"width"`
	Height   int    `yaml:"height" mapstructure:"height"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// SetDefaults registers the default values on the given viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("storage.dir", ".modelgraph")
	v.SetDefault("render.format", "mermaid")
	v.SetDefault("render.direction", "TB")
	v.SetDefault("render.show_attributes", true)
	v.SetDefault("render.show_methods", false)
	v.SetDefault("render.show_relationships", true)
	v.SetDefault("render.include_header", true)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8620)
	v.SetDefault("watch.debounce_millis", 300)
	v.SetDefault("imaging.endpoint", "https://kroki.io")
	v.SetDefault("imaging.width", 1600)
	v.SetDefault("imaging.height", 1200)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load unmarshals the global viper state into a Config and validates it.
func Load() (*Config, error) {
	SetDefaults(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the rest of the program cannot work with.
func (c *Config) Validate() error {
	switch c.Render.Format {
	case "mermaid", "plantuml":
	default:
		return fmt.Errorf("render.format must be mermaid or plantuml, got %q", c.Render.Format)
	}

	switch strings.ToUpper(c.Render.Direction) {
	case "TB", "TD", "BT", "LR", "RL":
	default:
		return fmt.Errorf("render.direction must be one of TB, TD, BT, LR, RL, got %q", c.Render.Direction)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Watch.DebounceMillis < 0 {
		return fmt.Errorf("watch.debounce_millis must not be negative: %d", c.Watch.DebounceMillis)
	}
	if c.Storage.Dir == "" {
		return fmt.Errorf("storage.dir must not be empty")
	}
	return nil
}

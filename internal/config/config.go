package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/mhdash/internal/dashboard"
	"github.com/KaramelBytes/mhdash/internal/utils"
)

// Global configuration structure.
type Global struct {
	DataFile              string   `mapstructure:"data_file" yaml:"data_file"`
	ListenAddr            string   `mapstructure:"listen_addr" yaml:"listen_addr"`
	LogLevel              string   `mapstructure:"log_level" yaml:"log_level"`
	DefaultCountries      []string `mapstructure:"default_countries" yaml:"default_countries"`
	DefaultOccupations    []string `mapstructure:"default_occupations" yaml:"default_occupations"`
	FemaleOnlyOccupations []string `mapstructure:"female_only_occupations" yaml:"female_only_occupations"`

	// Chart canvas in pixels
	ChartWidth  int `mapstructure:"chart_width" yaml:"chart_width"`
	ChartHeight int `mapstructure:"chart_height" yaml:"chart_height"`
}

// Keys lists the settable configuration keys in display order.
var Keys = []string{
	"data_file", "listen_addr", "log_level",
	"default_countries", "default_occupations", "female_only_occupations",
	"chart_width", "chart_height",
}

// DashboardOptions maps the page defaults onto dashboard options.
func (c *Global) DashboardOptions() dashboard.Options {
	return dashboard.Options{
		FemaleOnlyOccupations: c.FemaleOnlyOccupations,
		DefaultCountries:      c.DefaultCountries,
		DefaultOccupations:    c.DefaultOccupations,
	}
}

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".mhdash"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.mhdash/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := defaultDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("MHDASH")
	v.AutomaticEnv()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil && !optional(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.ChartWidth <= 0 || c.ChartHeight <= 0 {
		return nil, fmt.Errorf("invalid chart size %dx%d", c.ChartWidth, c.ChartHeight)
	}
	return &c, nil
}

// Defaults returns the built-in configuration, ignoring files and env.
func Defaults() *Global {
	v := viper.New()
	setDefaults(v)
	var c Global
	_ = v.Unmarshal(&c)
	return &c
}

func setDefaults(v *viper.Viper) {
	opt := dashboard.DefaultOptions()
	v.SetDefault("data_file", filepath.Join("data", "mental_health_cleaned.csv"))
	v.SetDefault("listen_addr", ":8501")
	v.SetDefault("log_level", "info")
	v.SetDefault("default_countries", opt.DefaultCountries)
	v.SetDefault("default_occupations", opt.DefaultOccupations)
	v.SetDefault("female_only_occupations", opt.FemaleOnlyOccupations)
	v.SetDefault("chart_width", 1000)
	v.SetDefault("chart_height", 500)
}

// optional reports whether a config read error only means no file exists.
func optional(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf) || errors.Is(err, fs.ErrNotExist)
}

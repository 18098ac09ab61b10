package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Columns maps logical fields onto the header names used by the input tables.
type Columns struct {
	CountryCode    string `mapstructure:"country_code" yaml:"country_code"`
	TimePeriod     string `mapstructure:"time_period" yaml:"time_period"`
	ObsValue       string `mapstructure:"obs_value" yaml:"obs_value"`
	LifeExpectancy string `mapstructure:"life_expectancy" yaml:"life_expectancy"`
	GDPPerCapita   string `mapstructure:"gdp_per_capita" yaml:"gdp_per_capita"`
}

// Global configuration structure.
type Global struct {
	IndicatorPath string `mapstructure:"indicator_path" yaml:"indicator_path"`
	MetadataPath  string `mapstructure:"metadata_path" yaml:"metadata_path"`
	// Sheet selects the worksheet for .xlsx inputs; empty means the first sheet.
	Sheet     string `mapstructure:"sheet" yaml:"sheet"`
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
	// AssetsHost is the CDN base URL the charts load ECharts from.
	AssetsHost     string `mapstructure:"assets_host" yaml:"assets_host"`
	TopN           int    `mapstructure:"top_n" yaml:"top_n"`
	ZeroBase       string `mapstructure:"zero_base" yaml:"zero_base"`
	DedupeMetadata bool   `mapstructure:"dedupe_metadata" yaml:"dedupe_metadata"`
	Snapshots      bool   `mapstructure:"snapshots" yaml:"snapshots"`
	Workbook       string `mapstructure:"workbook" yaml:"workbook"`
	LogLevel       string `mapstructure:"log_level" yaml:"log_level"`

	Columns Columns `mapstructure:"columns" yaml:"columns"`
}

// DefaultAssetsHost serves the ECharts scripts and world map from jsDelivr.
const DefaultAssetsHost = "https://cdn.jsdelivr.net/gh/go-echarts/go-echarts-assets@master/assets/"

// Zero-base policies for growth rates whose first observation is 0.
const (
	ZeroBaseSkip  = "skip"
	ZeroBaseError = "error"
)

// Validate checks values that cannot be defaulted away.
func (c *Global) Validate() error {
	switch c.ZeroBase {
	case ZeroBaseSkip, ZeroBaseError:
	default:
		return fmt.Errorf("invalid zero_base: %q (use %s or %s)", c.ZeroBase, ZeroBaseSkip, ZeroBaseError)
	}
	if c.TopN <= 0 {
		return fmt.Errorf("invalid top_n: %d (must be > 0)", c.TopN)
	}
	if c.IndicatorPath == "" || c.MetadataPath == "" {
		return fmt.Errorf("indicator_path and metadata_path are required")
	}
	return nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.vaxviz/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := configDir()
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
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("VAXVIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("indicator_path", "unicef_indicator_2.csv")
	v.SetDefault("metadata_path", "unicef_metadata.csv")
	v.SetDefault("sheet", "")
	v.SetDefault("output_dir", ".")
	v.SetDefault("assets_host", DefaultAssetsHost)
	v.SetDefault("top_n", 10)
	v.SetDefault("zero_base", ZeroBaseSkip)
	v.SetDefault("dedupe_metadata", false)
	v.SetDefault("snapshots", false)
	v.SetDefault("workbook", "")
	v.SetDefault("log_level", "info")
	// Column names of the UNICEF exports
	v.SetDefault("columns.country_code", "alpha_3_code")
	v.SetDefault("columns.time_period", "time_period")
	v.SetDefault("columns.obs_value", "obs_value")
	v.SetDefault("columns.life_expectancy", "Life expectancy at birth, total (years)")
	v.SetDefault("columns.gdp_per_capita", "GDP per capita (constant 2015 US$)")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		// A missing explicit file is created later by Save.
		if _, err := os.Stat(cfgFile); err == nil {
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
			}
		}
	} else {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".vaxviz"), nil
}

package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config carries the application settings shared by the CLI and the web
// server. Every field has a working default so the tools run without a
// config file.
type Config struct {
	FactorsPath string `mapstructure:"factors_path"`
	SamplePath  string `mapstructure:"sample_path"`
	Currency    string `mapstructure:"currency"`
	Addr        string `mapstructure:"addr"`
}

func Default() Config {
	return Config{
		FactorsPath: "emission_factors.json",
		SamplePath:  "sample_receipt.txt",
		Currency:    "USD",
		Addr:        ":8080",
	}
}

// Load reads the config file at path on top of the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("factors_path", def.FactorsPath)
	v.SetDefault("sample_path", def.SamplePath)
	v.SetDefault("currency", def.Currency)
	v.SetDefault("addr", def.Addr)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

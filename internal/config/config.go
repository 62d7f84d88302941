// internal/config/config.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mkarlsen/cardpress/pkg/models"
)

type Config struct {
	NormalDir    string `yaml:"normal_dir"`
	DoubleDir    string `yaml:"double_dir"`
	BackfacePath string `yaml:"backface_path"`
	OutputDir    string `yaml:"output_dir"`
	DPI          int    `yaml:"dpi"`
	Paper        struct {
		Width  float64 `yaml:"width"`
		Height float64 `yaml:"height"`
	} `yaml:"paper"`
	Card struct {
		Width  float64 `yaml:"width"`
		Height float64 `yaml:"height"`
	} `yaml:"card"`
	BleedMM float64 `yaml:"bleed"`
	Grid    struct {
		Columns int `yaml:"columns"`
		Rows    int `yaml:"rows"`
	} `yaml:"grid"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Default is the configuration used when no config file is present:
// A3+ paper, standard card game size, 4x5 grid at 300 DPI.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.NormalDir == "" {
		cfg.NormalDir = "normal"
	}
	if cfg.DoubleDir == "" {
		cfg.DoubleDir = "double"
	}
	if cfg.BackfacePath == "" {
		cfg.BackfacePath = "backface.jpg"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "output_sheets"
	}
	if cfg.DPI == 0 {
		cfg.DPI = 300
	}
	if cfg.Paper.Width == 0 {
		cfg.Paper.Width = 329
	}
	if cfg.Paper.Height == 0 {
		cfg.Paper.Height = 483
	}
	if cfg.Card.Width == 0 {
		cfg.Card.Width = 63
	}
	if cfg.Card.Height == 0 {
		cfg.Card.Height = 88
	}
	if cfg.BleedMM == 0 {
		cfg.BleedMM = 4
	}
	if cfg.Grid.Columns == 0 {
		cfg.Grid.Columns = 4
	}
	if cfg.Grid.Rows == 0 {
		cfg.Grid.Rows = 5
	}
}

func (c *Config) PhysicalSpec() models.PhysicalSpec {
	return models.PhysicalSpec{
		PaperWidthMM:  c.Paper.Width,
		PaperHeightMM: c.Paper.Height,
		CardWidthMM:   c.Card.Width,
		CardHeightMM:  c.Card.Height,
		BleedMM:       c.BleedMM,
	}
}

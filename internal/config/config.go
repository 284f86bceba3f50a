package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvPath overrides the config file path given on the command line.
const EnvPath = "RTSSIM_CONFIG"

type Config struct {
	Sim       SimConfig       `toml:"sim"`
	Data      DataConfig      `toml:"data"`
	Scripting ScriptingConfig `toml:"scripting"`
	Logging   LoggingConfig   `toml:"logging"`
}

type SimConfig struct {
	TicksPerSecond   int     `toml:"ticks_per_second"`
	TrainQueueMaxLen int     `toml:"train_queue_max_len"`
	TrainSeconds     float64 `toml:"train_seconds"` // used when no Lua rule applies
	RunTicks         uint64  `toml:"run_ticks"`     // 0 = run until signalled
	ReportEvery      uint64  `toml:"report_every"`  // ticks between stat logs, 0 = off
}

// TickDuration is the fixed timestep derived from TicksPerSecond.
func (c SimConfig) TickDuration() time.Duration {
	return time.Second / time.Duration(c.TicksPerSecond)
}

// TrainTicks converts TrainSeconds into whole ticks, at least one.
func (c SimConfig) TrainTicks() int {
	return max(int(c.TrainSeconds*float64(c.TicksPerSecond)), 1)
}

type DataConfig struct {
	MapPath      string `toml:"map_path"`
	UnitList     string `toml:"unit_list"`
	BuildingList string `toml:"building_list"`
	SpawnList    string `toml:"spawn_list"` // optional
}

type ScriptingConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads path over the defaults. When RTSSIM_CONFIG is set it replaces path.
func Load(path string) (*Config, error) {
	if env := os.Getenv(EnvPath); env != "" {
		path = env
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Sim.TicksPerSecond <= 0 {
		return fmt.Errorf("sim.ticks_per_second must be positive, got %d", c.Sim.TicksPerSecond)
	}
	if c.Sim.TickDuration() <= 0 {
		return fmt.Errorf("sim.ticks_per_second %d is too high for a nanosecond timestep", c.Sim.TicksPerSecond)
	}
	if c.Sim.TrainQueueMaxLen <= 0 {
		return fmt.Errorf("sim.train_queue_max_len must be positive, got %d", c.Sim.TrainQueueMaxLen)
	}
	if c.Sim.TrainSeconds < 0 {
		return fmt.Errorf("sim.train_seconds must not be negative, got %g", c.Sim.TrainSeconds)
	}
	if c.Data.MapPath == "" || c.Data.UnitList == "" || c.Data.BuildingList == "" {
		return fmt.Errorf("data.map_path, data.unit_list and data.building_list are required")
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Sim: SimConfig{
			TicksPerSecond:   120,
			TrainQueueMaxLen: 5,
			TrainSeconds:     3.0,
			ReportEvery:      600,
		},
		Data: DataConfig{
			MapPath:      "map/level1.txt",
			UnitList:     "data/yaml/unit_list.yaml",
			BuildingList: "data/yaml/building_list.yaml",
			SpawnList:    "data/yaml/spawn_list.yaml",
		},
		Scripting: ScriptingConfig{
			Enabled: true,
			Dir:     "scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

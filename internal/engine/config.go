package engine

import (
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the engine's tunable parameters, loaded from a TOML
// file so a driver (CLI flags, test fixture) doesn't have to hardcode
// them.
type Config struct {
	HashMB     int    `toml:"hash_mb"`
	Difficulty string `toml:"difficulty"`
	MoveTimeMS int    `toml:"move_time_ms"`
	Depth      int    `toml:"depth"`
	LogLevel   string `toml:"log_level"`
}

// DefaultConfig returns the in-code defaults, used when no config file
// is loaded and as the base LoadConfig fills from a file.
func DefaultConfig() Config {
	return Config{
		HashMB:     64,
		Difficulty: "medium",
		MoveTimeMS: 2000,
		Depth:      0,
		LogLevel:   "INFO",
	}
}

// LoadConfig reads a TOML config file, filling in any field the file
// omits from DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Limits converts the config's move-time/depth settings into a Limits
// value for IterativeDeepen.
func (c Config) Limits() Limits {
	l := Limits{Depth: c.Depth}
	if c.MoveTimeMS > 0 {
		l.MoveTime = time.Duration(c.MoveTimeMS) * time.Millisecond
	}
	return l
}

// DifficultyLevel maps the config's difficulty name to a Difficulty
// constant, defaulting to Medium on an unrecognized name.
func (c Config) DifficultyLevel() Difficulty {
	switch c.Difficulty {
	case "easy":
		return Easy
	case "hard":
		return Hard
	default:
		return Medium
	}
}

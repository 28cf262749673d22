package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Game        GameConfig        `mapstructure:"game"`
	Development DevelopmentConfig `mapstructure:"development"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type GameConfig struct {
	BoardSize         int     `mapstructure:"board_size"`
	FrontlineDistance int     `mapstructure:"frontline_distance"`
	MovementDelay     float64 `mapstructure:"movement_delay"` // seconds; presentation pacing only
	AutoTurns         int     `mapstructure:"auto_turns"`
	StartingPoints    float64 `mapstructure:"starting_points"`
	PointsPerTurn     float64 `mapstructure:"points_per_turn"`
}

type DevelopmentConfig struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Enable environment variables
	viper.SetEnvPrefix("AUTOCHESS")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8765)
	viper.SetDefault("game.board_size", 24)
	viper.SetDefault("game.frontline_distance", 2)
	viper.SetDefault("game.movement_delay", 0.5)
	viper.SetDefault("game.auto_turns", 1)
	viper.SetDefault("game.starting_points", 10)
	viper.SetDefault("game.points_per_turn", 5)
	viper.SetDefault("development.debug", false)
	viper.SetDefault("development.log_level", "info")

	// Read config
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, defaults apply
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate enforces the recognized bounds. An out-of-range value prevents
// session start.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid configuration: server port %d out of range [1,65535]", c.Server.Port)
	}
	if c.Game.BoardSize < 8 || c.Game.BoardSize > 50 {
		return fmt.Errorf("invalid configuration: board size %d out of range [8,50]", c.Game.BoardSize)
	}
	if c.Game.FrontlineDistance < 1 || c.Game.FrontlineDistance > 10 {
		return fmt.Errorf("invalid configuration: frontline distance %d out of range [1,10]", c.Game.FrontlineDistance)
	}
	if c.Game.MovementDelay < 0 || c.Game.MovementDelay > 5 {
		return fmt.Errorf("invalid configuration: movement delay %v out of range [0,5]", c.Game.MovementDelay)
	}
	if c.Game.AutoTurns < 1 {
		return fmt.Errorf("invalid configuration: auto turns %d must be at least 1", c.Game.AutoTurns)
	}
	if c.Game.StartingPoints < 0 {
		return fmt.Errorf("invalid configuration: starting points %v must not be negative", c.Game.StartingPoints)
	}
	if c.Game.PointsPerTurn < 0 {
		return fmt.Errorf("invalid configuration: points per turn %v must not be negative", c.Game.PointsPerTurn)
	}
	return nil
}

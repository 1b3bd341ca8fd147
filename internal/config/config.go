package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application. Loaded once and
// passed explicitly; there is no process-wide config singleton.
type Config struct {
	Game     GameConfig     `mapstructure:"game"`
	RL       RLConfig       `mapstructure:"rl"`
	Training TrainingConfig `mapstructure:"training"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// GameConfig holds game mechanics configuration.
type GameConfig struct {
	Map    MapConfig    `mapstructure:"map"`
	Growth GrowthConfig `mapstructure:"growth"`
}

// MapConfig holds map generation settings.
type MapConfig struct {
	Width         int     `mapstructure:"width"`
	Height        int     `mapstructure:"height"`
	WaterRatio    float64 `mapstructure:"water_ratio"`
	ForestRatio   float64 `mapstructure:"forest_ratio"`
	MountainRatio float64 `mapstructure:"mountain_ratio"`
	StartTroops   int     `mapstructure:"start_troops"`
}

// GrowthConfig holds periodic growth settings. IntervalTicks is the
// number of simulation ticks between growth applications; growth is
// never applied between intervals.
type GrowthConfig struct {
	IntervalTicks    int     `mapstructure:"interval_ticks"`
	TroopBase        int     `mapstructure:"troop_base"`
	GoldBase         int     `mapstructure:"gold_base"`
	GoldPerTerritory float64 `mapstructure:"gold_per_territory"`
	StartGold        int     `mapstructure:"start_gold"`
	BoomChance       float64 `mapstructure:"boom_chance"`
	BoomDurationDays int     `mapstructure:"boom_duration_days"`
}

// RLConfig holds reinforcement learning hyperparameters.
type RLConfig struct {
	EpsilonStart    float64 `mapstructure:"epsilon_start"`
	EpsilonDecay    float64 `mapstructure:"epsilon_decay"`
	EpsilonMin      float64 `mapstructure:"epsilon_min"`
	Gamma           float64 `mapstructure:"gamma"`
	BufferCapacity  int     `mapstructure:"buffer_capacity"`
	BatchSize       int     `mapstructure:"batch_size"`
	TargetSyncEvery int     `mapstructure:"target_sync_every"`
	LearningRate    float64 `mapstructure:"learning_rate"`
}

// TrainingConfig holds self-play training loop settings.
type TrainingConfig struct {
	Episodes          int     `mapstructure:"episodes"`
	MaxTicks          int     `mapstructure:"max_ticks"`
	Players           int     `mapstructure:"players"`
	EpisodesPerUpdate int     `mapstructure:"episodes_per_update"`
	SimSpeed          float64 `mapstructure:"sim_speed"`
	TickDelayMs       int     `mapstructure:"tick_delay_ms"`
	StorePath         string  `mapstructure:"store_path"`
	ModelName         string  `mapstructure:"model_name"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// setDefaults sets all default values using Viper's SetDefault.
func setDefaults(v *viper.Viper) {
	v.SetDefault("game.map.width", 12)
	v.SetDefault("game.map.height", 12)
	v.SetDefault("game.map.water_ratio", 0.08)
	v.SetDefault("game.map.forest_ratio", 0.15)
	v.SetDefault("game.map.mountain_ratio", 0.1)
	v.SetDefault("game.map.start_troops", 10)

	v.SetDefault("game.growth.interval_ticks", 3)
	v.SetDefault("game.growth.troop_base", 5)
	v.SetDefault("game.growth.gold_base", 10)
	v.SetDefault("game.growth.gold_per_territory", 0.5)
	v.SetDefault("game.growth.start_gold", 150)
	v.SetDefault("game.growth.boom_chance", 0.05)
	v.SetDefault("game.growth.boom_duration_days", 3)

	v.SetDefault("rl.epsilon_start", 1.0)
	v.SetDefault("rl.epsilon_decay", 0.995)
	v.SetDefault("rl.epsilon_min", 0.1)
	v.SetDefault("rl.gamma", 0.95)
	v.SetDefault("rl.buffer_capacity", 10000)
	v.SetDefault("rl.batch_size", 32)
	v.SetDefault("rl.target_sync_every", 10)
	v.SetDefault("rl.learning_rate", 0.001)

	v.SetDefault("training.episodes", 200)
	v.SetDefault("training.max_ticks", 500)
	v.SetDefault("training.players", 3)
	v.SetDefault("training.episodes_per_update", 1)
	v.SetDefault("training.sim_speed", 1.0)
	v.SetDefault("training.tick_delay_ms", 0)
	v.SetDefault("training.store_path", "territorial.db")
	v.SetDefault("training.model_name", "dqn")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Load reads configuration from the given path (or the default search
// locations when empty), applies env overrides with the TERR prefix,
// validates, and returns the result.
func Load(configPath string) (*Config, *viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("TERR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath == "" {
			return nil, nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; run on defaults.
	}

	cfg, err := reload(v)
	if err != nil {
		return nil, nil, err
	}
	return cfg, v, nil
}

// Default returns the built-in defaults without touching the filesystem.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		panic("failed to unmarshal default config: " + err.Error())
	}
	return cfg
}

// Watch enables hot reloading of the config file. onChange receives the
// freshly unmarshalled config after every change. Edits that fail to
// decode or validate are rejected and logged; the running config stays
// in effect.
func Watch(v *viper.Viper, logger zerolog.Logger, onChange func(*Config)) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := reload(v)
		if err != nil {
			logger.Warn().Err(err).Str("file", e.Name).Msg("Ignoring config change")
			return
		}
		if onChange != nil {
			onChange(cfg)
		}
	})
}

// reload re-unmarshals and validates the watched state.
func reload(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate validates the configuration values.
func Validate(c *Config) error {
	if c.Game.Map.Width <= 0 || c.Game.Map.Height <= 0 {
		return fmt.Errorf("game.map dimensions must be positive")
	}
	if c.Game.Map.WaterRatio < 0 || c.Game.Map.WaterRatio >= 1 {
		return fmt.Errorf("game.map.water_ratio must be in [0, 1)")
	}
	if c.Game.Map.StartTroops < 1 {
		return fmt.Errorf("game.map.start_troops must be at least 1")
	}
	if c.Game.Growth.IntervalTicks <= 0 {
		return fmt.Errorf("game.growth.interval_ticks must be positive")
	}
	if c.Game.Growth.BoomChance < 0 || c.Game.Growth.BoomChance > 1 {
		return fmt.Errorf("game.growth.boom_chance must be between 0 and 1")
	}
	if c.RL.EpsilonStart < c.RL.EpsilonMin {
		return fmt.Errorf("rl.epsilon_start must be >= rl.epsilon_min")
	}
	if c.RL.EpsilonDecay <= 0 || c.RL.EpsilonDecay > 1 {
		return fmt.Errorf("rl.epsilon_decay must be in (0, 1]")
	}
	if c.RL.Gamma < 0 || c.RL.Gamma > 1 {
		return fmt.Errorf("rl.gamma must be between 0 and 1")
	}
	if c.RL.BufferCapacity <= 0 {
		return fmt.Errorf("rl.buffer_capacity must be positive")
	}
	if c.RL.BatchSize <= 0 || c.RL.BatchSize > c.RL.BufferCapacity {
		return fmt.Errorf("rl.batch_size must be positive and <= buffer capacity")
	}
	if c.RL.TargetSyncEvery <= 0 {
		return fmt.Errorf("rl.target_sync_every must be positive")
	}
	if c.Training.Players < 2 {
		return fmt.Errorf("training.players must be at least 2")
	}
	if c.Training.MaxTicks <= 0 {
		return fmt.Errorf("training.max_ticks must be positive")
	}
	if c.Training.EpisodesPerUpdate <= 0 {
		return fmt.Errorf("training.episodes_per_update must be positive")
	}
	if c.Training.SimSpeed <= 0 {
		return fmt.Errorf("training.sim_speed must be positive")
	}
	return nil
}

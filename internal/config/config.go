package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/teman-edu/advisor-cli/internal/engine"
)

// Config holds the full application configuration.
type Config struct {
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Engine EngineConfig `yaml:"engine" mapstructure:"engine"`
	Rules  RulesConfig  `yaml:"rules" mapstructure:"rules"`
	Batch  BatchConfig  `yaml:"batch" mapstructure:"batch"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// EngineConfig holds the evaluation tunables.
type EngineConfig struct {
	SafeFitMin           float64          `yaml:"safe_fit_min" mapstructure:"safe_fit_min"`
	TargetFitMin         float64          `yaml:"target_fit_min" mapstructure:"target_fit_min"`
	AspirationalFitFloor float64          `yaml:"aspirational_fit_floor" mapstructure:"aspirational_fit_floor"`
	MaxRecommendations   int              `yaml:"max_recommendations" mapstructure:"max_recommendations"`
	Readiness            ReadinessWeights `yaml:"readiness" mapstructure:"readiness"`
}

// ReadinessWeights configures the readiness composite.
type ReadinessWeights struct {
	Academic      float64 `yaml:"academic" mapstructure:"academic"`
	Financial     float64 `yaml:"financial" mapstructure:"financial"`
	Language      float64 `yaml:"language" mapstructure:"language"`
	Timeline      float64 `yaml:"timeline" mapstructure:"timeline"`
	Documentation float64 `yaml:"documentation" mapstructure:"documentation"`
}

// RulesConfig configures spreadsheet import.
type RulesConfig struct {
	SheetName string `yaml:"sheet_name" mapstructure:"sheet_name"`
	Charset   string `yaml:"charset" mapstructure:"charset"`
}

// BatchConfig configures batch evaluation.
type BatchConfig struct {
	MaxConcurrentProfiles int `yaml:"max_concurrent_profiles" mapstructure:"max_concurrent_profiles"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port         int     `yaml:"port" mapstructure:"port"`
	RatePerSec   float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	RateBurst    int     `yaml:"rate_burst" mapstructure:"rate_burst"`
	AllowOrigins string  `yaml:"allow_origins" mapstructure:"allow_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("TEMAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "advisor.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_per_sec", 10.0)
	v.SetDefault("server.rate_burst", 20)
	v.SetDefault("server.allow_origins", "*")
	v.SetDefault("batch.max_concurrent_profiles", 5)
	v.SetDefault("engine.safe_fit_min", engine.DefaultSafeFitMin)
	v.SetDefault("engine.target_fit_min", engine.DefaultTargetFitMin)
	v.SetDefault("engine.aspirational_fit_floor", engine.DefaultAspirationalFitFloor)
	v.SetDefault("engine.max_recommendations", engine.DefaultMaxRecommendations)
	v.SetDefault("engine.readiness.academic", 0.30)
	v.SetDefault("engine.readiness.financial", 0.25)
	v.SetDefault("engine.readiness.language", 0.20)
	v.SetDefault("engine.readiness.timeline", 0.10)
	v.SetDefault("engine.readiness.documentation", 0.15)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// EngineParams converts the engine section to evaluation parameters and
// validates them.
func (c *Config) EngineParams() (engine.Params, error) {
	p := engine.Params{
		SafeFitMin:           c.Engine.SafeFitMin,
		TargetFitMin:         c.Engine.TargetFitMin,
		AspirationalFitFloor: c.Engine.AspirationalFitFloor,
		MaxRecommendations:   c.Engine.MaxRecommendations,
		Readiness: engine.ReadinessWeights{
			Academic:      c.Engine.Readiness.Academic,
			Financial:     c.Engine.Readiness.Financial,
			Language:      c.Engine.Readiness.Language,
			Timeline:      c.Engine.Readiness.Timeline,
			Documentation: c.Engine.Readiness.Documentation,
		},
	}
	if err := p.Validate(); err != nil {
		return engine.Params{}, err
	}
	return p, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

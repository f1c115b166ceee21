package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Settings holds the application-level configuration, separate from the
// per-run input file.
type Settings struct {
	Store StoreSettings `yaml:"store" mapstructure:"store"`
	Log   LogSettings   `yaml:"log" mapstructure:"log"`
}

// StoreSettings configures run persistence.
type StoreSettings struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// LogSettings configures the zap logger.
type LogSettings struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// LoadSettings reads application settings from rothcalc.yaml and the
// ROTHCALC_* environment.
func LoadSettings() (*Settings, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("rothcalc")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("ROTHCALC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.path", "rothcalc.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read settings file")
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal settings")
	}

	return &settings, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogSettings) error {
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

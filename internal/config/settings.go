package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mchmarny/navmenu/pkg/logger"
	"github.com/mchmarny/navmenu/pkg/server"
)

// EnvPrefix prefixes the environment variables read by LoadSettings.
const EnvPrefix = "MENUD"

// Setting keys, also used as flag names.
const (
	KeyPort     = "port"
	KeyFile     = "file"
	KeyLang     = "lang"
	KeyWatch    = "watch"
	KeyLogLevel = "log-level"
)

// DefaultFile is the menu definition read when none is configured.
const DefaultFile = "menu.yaml"

// Settings are the process level options of menud.
type Settings struct {
	Port     int
	File     string
	Lang     string
	Watch    bool
	LogLevel string
}

// LoadSettings resolves settings from flags, MENUD_* environment variables
// and defaults, in that order of precedence. The log level additionally
// honors LOG_LEVEL. flags may be nil.
func LoadSettings(flags *pflag.FlagSet) (Settings, error) {
	v := viper.New()

	v.SetDefault(KeyPort, server.DefaultPort)
	v.SetDefault(KeyFile, DefaultFile)
	v.SetDefault(KeyLang, "")
	v.SetDefault(KeyWatch, false)
	v.SetDefault(KeyLogLevel, "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv(KeyLogLevel, EnvPrefix+"_LOG_LEVEL", logger.EnvVarLogLevel); err != nil {
		return Settings{}, fmt.Errorf("failed to bind log level env: %w", err)
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Settings{}, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	s := Settings{
		Port:     v.GetInt(KeyPort),
		File:     v.GetString(KeyFile),
		Lang:     v.GetString(KeyLang),
		Watch:    v.GetBool(KeyWatch),
		LogLevel: v.GetString(KeyLogLevel),
	}

	if s.Port < 0 || s.Port > 65535 {
		return Settings{}, fmt.Errorf("invalid port %d", s.Port)
	}

	return s, nil
}

package config

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"

	"github.com/nxtrace/qsieve/qs"
)

// configPaths lists where qs_config.yaml is looked for, most specific last.
func configPaths() []string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfigHome == "" && homeDir != "" {
		xdgConfigHome = filepath.Join(homeDir, ".config")
	}

	paths := []string{
		"/etc/qsieve",
		"/usr/local/etc/qsieve",
	}
	if runtime.GOOS == "darwin" {
		paths = append(paths, "/opt/homebrew/etc/qsieve")
	}
	if xdgConfigHome != "" {
		paths = append(paths, filepath.Join(xdgConfigHome, "qsieve"))
	}
	if homeDir != "" {
		paths = append(paths, filepath.Join(homeDir, ".qsieve"))
	}
	return append(paths, ".")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", string(qs.ModeSieve))
	v.SetDefault("bound", 0)
	v.SetDefault("baseSize", 0)
	v.SetDefault("growBy", 0)
	v.SetDefault("maxBaseSize", 0)
	v.SetDefault("searchLimit", 0)
	v.SetDefault("interval", 0)
	v.SetDefault("extraRelations", 0)
	v.SetDefault("maxRounds", 0)
	v.SetDefault("maxCombinations", 0)
	v.SetDefault("timeout", time.Duration(0))
	v.SetDefault("workers", 0)
	v.SetDefault("listen", ":1080")
}

// InitConfig registers the defaults and reads qs_config.yaml from the first
// search path that has one. A missing file is not an error; nothing is
// written to disk.
func InitConfig() {
	viper.SetConfigName(configName)
	viper.SetConfigType("yaml")
	for _, path := range configPaths() {
		viper.AddConfigPath(path)
	}
	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Printf("[config] %s: %v", viper.ConfigFileUsed(), err)
		}
		return
	}
	log.Printf("[config] using %s", viper.ConfigFileUsed())
}

// Tunables returns the sieve parameters held by the global viper instance.
func Tunables() qs.Config {
	return TunablesFrom(viper.GetViper())
}

// TunablesFrom reads the sieve parameters from v. An unknown mode falls back
// to the sieve.
func TunablesFrom(v *viper.Viper) qs.Config {
	mode, ok := qs.ParseMode(v.GetString("mode"))
	if !ok {
		log.Printf("[config] unknown mode %q, using %s", v.GetString("mode"), mode)
	}
	return qs.Config{
		Mode:            mode,
		Bound:           v.GetInt64("bound"),
		BaseSize:        v.GetInt("baseSize"),
		GrowBy:          v.GetInt("growBy"),
		MaxBaseSize:     v.GetInt("maxBaseSize"),
		SearchLimit:     v.GetInt("searchLimit"),
		Interval:        v.GetInt("interval"),
		ExtraRelations:  v.GetInt("extraRelations"),
		MaxRounds:       v.GetInt("maxRounds"),
		MaxCombinations: v.GetInt("maxCombinations"),
		Timeout:         v.GetDuration("timeout"),
		Workers:         v.GetInt("workers"),
	}
}

// ListenAddr is the deploy mode listen address from the config file.
func ListenAddr() string {
	return viper.GetString("listen")
}

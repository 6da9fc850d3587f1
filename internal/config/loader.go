package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the server and data source settings.
type Config struct {
	ListenAddr     string
	DataFile       string
	HeaderRows     int
	AllowedOrigins []string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ListenAddr:     ":8080",
		DataFile:       "All Infrastructure Projects.xlsx",
		HeaderRows:     1,
		AllowedOrigins: []string{"http://localhost:3000"},
	}
}

// Load reads config.yaml from the given path and applies environment
// overrides (INFRABOARD_SERVER_ADDR and friends) on top of the defaults.
func Load(configPath string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AutomaticEnv()
	v.SetEnvPrefix("INFRABOARD")

	v.BindEnv("server.addr")
	v.BindEnv("data.file")
	v.BindEnv("data.header_rows")

	if err := v.ReadInConfig(); err != nil {
		// Config file not found? Just log it, use defaults + env
		fmt.Println("No config.yaml found, using defaults and env vars")
	} else {
		fmt.Println("Loaded config.yaml")
	}

	if v.IsSet("server.addr") {
		cfg.ListenAddr = v.GetString("server.addr")
	}
	if v.IsSet("server.allowed_origins") {
		cfg.AllowedOrigins = v.GetStringSlice("server.allowed_origins")
	}
	if v.IsSet("data.file") {
		cfg.DataFile = v.GetString("data.file")
	}
	if v.IsSet("data.header_rows") {
		cfg.HeaderRows = v.GetInt("data.header_rows")
	}

	return cfg, nil
}

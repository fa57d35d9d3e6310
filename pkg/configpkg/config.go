// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"errors"

	"github.com/spf13/viper"
)

// Environments recognised by the logger.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config stores all configuration of the application.
//
// The values are read by viper fron a config file or environement variables.
type Config struct {
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	ServerName    string `mapstructure:"SERVER_NAME"`
	ServerVersion string `mapstructure:"SERVER_VERSION"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`
	Environement  string `mapstructure:"GO_ENV"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	v.SetDefault("SERVER_NAME", "Bank Data Server")
	v.SetDefault("SERVER_VERSION", "0.1.0")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("GO_ENV", EnvProduction)
}

// Load read configuration from file or environment variables.
//
// A missing app.env file is not an error: defaults and environment variables are used instead.
func Load(path string) (Config, error) {
	var c Config

	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, err
		}
	}

	err = v.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	return c, nil
}

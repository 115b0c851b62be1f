package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/emeraldmart/storefront/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Storage    StorageConfig    `validate:"required"`
	Auth       AuthConfig       `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

// StorageConfig configures the local key-value store backing carts,
// invoices, users and the login session.
type StorageConfig struct {
	Path string `validate:"required"`
}

type AuthConfig struct {
	Secret   string        `validate:"required"`
	TokenTTL time.Duration `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/storefront")

	// Set up environment variables support
	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(types.ModeLocal))
	v.SetDefault("server.address", ":8080")
	v.SetDefault("storage.path", "./data/store.json")
	v.SetDefault("auth.secret", "storefront-dev-secret")
	v.SetDefault("auth.tokenttl", 24*time.Hour)
	v.SetDefault("logging.level", string(types.LogLevelInfo))
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// and tests where no config file is present
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Storage:    StorageConfig{Path: "./data/store.json"},
		Auth:       AuthConfig{Secret: "storefront-dev-secret", TokenTTL: 24 * time.Hour},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
	}
}

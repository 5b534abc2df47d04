package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	DB       DBConfig       `mapstructure:"db"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Firebase FirebaseConfig `mapstructure:"firebase"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Upload   UploadConfig   `mapstructure:"upload"`
	AppHost  string         `mapstructure:"host"`
}

type DBConfig struct {
	Source string `mapstructure:"source"`
}

// Mode wybiera strategię uwierzytelniania: "firebase", "jwt" albo "header".
// "header" ufa surowej wartości nagłówka i służy wyłącznie do testów.
type AuthConfig struct {
	Mode string `mapstructure:"mode"`
}

type FirebaseConfig struct {
	APIKey    string `mapstructure:"api_key"`
	LookupURL string `mapstructure:"lookup_url"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

type StorageConfig struct {
	Path    string `mapstructure:"path"`
	BaseURL string `mapstructure:"base_url"`
}

type UploadConfig struct {
	RequireLocation bool `mapstructure:"require_location"`
}

func Load() (*Config, error) {
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("/configs")
	viper.SetConfigName("settings")
	viper.SetConfigType("yml")

	viper.SetDefault("auth.mode", "firebase")
	viper.SetDefault("firebase.lookup_url", "https://identitytoolkit.googleapis.com/v1/accounts:lookup")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

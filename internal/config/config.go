package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Port     string `mapstructure:"PORT"`
	DBUrl    string `mapstructure:"DB_URL"`
	RedisUrl string `mapstructure:"REDIS_URL"`

	// Identity of the local session. Opaque; issued by the auth
	// collaborator, not interpreted here.
	UserID string `mapstructure:"USER_ID"`

	DirectionsUrl    string `mapstructure:"DIRECTIONS_URL"`
	DirectionsApiKey string `mapstructure:"DIRECTIONS_API_KEY"`
	GeocoderUrl      string `mapstructure:"GEOCODER_URL"`
}

func LoadConfig() (c Config, err error) {
	// Get environment type from ENV variable or use development as default
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Set default values
	viper.SetDefault("PORT", ":8080")
	viper.SetDefault("DIRECTIONS_URL", "https://api.openrouteservice.org/v2/directions/driving-car")
	viper.SetDefault("GEOCODER_URL", "https://nominatim.openstreetmap.org")

	// Load environment file
	viper.SetConfigName(fmt.Sprintf(".env.%s", env))
	viper.SetConfigType("env")
	viper.AddConfigPath(".") // Look in the project root directory

	// Environment variables take precedence over config file
	viper.AutomaticEnv()

	// Try to read config file
	if err := viper.ReadInConfig(); err != nil {
		// Continue even if file is not found
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
	}

	// Map the values to the Config struct
	err = viper.Unmarshal(&c)
	return
}

package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/shareit-marketplace/shareit-backend/internal/pkg/database"
)

// KafkaConfig holds the event-stream settings.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// ServerConfig holds all configuration for the server tier.
type ServerConfig struct {
	Port   string
	AppEnv string
	DB     database.PostgresConfig
	Kafka  KafkaConfig
}

// GatewayConfig holds all configuration for the gateway tier.
type GatewayConfig struct {
	Port      string
	AppEnv    string
	ServerURL string
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("SHAREIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads server-tier configuration from SHAREIT_-prefixed environment
// variables, falling back to development defaults.
func Load() (*ServerConfig, error) {
	v := newViper()
	v.SetDefault("SERVER_PORT", ":9090")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "shareit")
	v.SetDefault("DB_PASSWORD", "shareit")
	v.SetDefault("DB_NAME", "shareit")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_TOPIC", "shareit.booking.events")

	return &ServerConfig{
		Port:   v.GetString("SERVER_PORT"),
		AppEnv: v.GetString("APP_ENV"),
		DB: database.PostgresConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Kafka: KafkaConfig{
			Brokers: strings.Split(v.GetString("KAFKA_BROKERS"), ","),
			Topic:   v.GetString("KAFKA_TOPIC"),
		},
	}, nil
}

// LoadGateway reads gateway-tier configuration.
func LoadGateway() (*GatewayConfig, error) {
	v := newViper()
	v.SetDefault("GATEWAY_PORT", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SERVER_URL", "http://localhost:9090")

	return &GatewayConfig{
		Port:      v.GetString("GATEWAY_PORT"),
		AppEnv:    v.GetString("APP_ENV"),
		ServerURL: v.GetString("SERVER_URL"),
	}, nil
}

package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the GORM/pgx connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// KafkaConfig holds Kafka broker settings.
type KafkaConfig struct {
	Brokers     []string
	GroupPrefix string
}

// ProviderConfig holds external routing/geocoding provider settings.
type ProviderConfig struct {
	MapboxBaseURL  string
	MapboxToken    string
	NavitiaBaseURL string
	NavitiaAPIKey  string
	PhotonBaseURL  string
	TimeoutSeconds int
}

// ServiceConfig holds all configuration for the planner service.
type ServiceConfig struct {
	Port      string
	AppEnv    string
	DB        DatabaseConfig
	Kafka     KafkaConfig
	Providers ProviderConfig
}

// Load reads configuration from PLANNER_-prefixed environment variables with
// development defaults.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("PLANNER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("service_port", ":8080")
	v.SetDefault("app_env", "development")

	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", 5432)
	v.SetDefault("db_user", "planner")
	v.SetDefault("db_password", "planner")
	v.SetDefault("db_name", "planner")
	v.SetDefault("db_sslmode", "disable")

	v.SetDefault("kafka_brokers", "localhost:9092")
	v.SetDefault("kafka_group_prefix", "accessway-")

	v.SetDefault("mapbox_base_url", "https://api.mapbox.com")
	v.SetDefault("navitia_base_url", "https://api.sncf.com")
	v.SetDefault("photon_base_url", "https://photon.komoot.io")
	v.SetDefault("provider_timeout_seconds", 10)

	port := v.GetString("service_port")
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	cfg := &ServiceConfig{
		Port:   port,
		AppEnv: v.GetString("app_env"),
		DB: DatabaseConfig{
			Host:     v.GetString("db_host"),
			Port:     v.GetInt("db_port"),
			User:     v.GetString("db_user"),
			Password: v.GetString("db_password"),
			DBName:   v.GetString("db_name"),
			SSLMode:  v.GetString("db_sslmode"),
		},
		Kafka: KafkaConfig{
			Brokers:     strings.Split(v.GetString("kafka_brokers"), ","),
			GroupPrefix: v.GetString("kafka_group_prefix"),
		},
		Providers: ProviderConfig{
			MapboxBaseURL:  v.GetString("mapbox_base_url"),
			MapboxToken:    v.GetString("mapbox_token"),
			NavitiaBaseURL: v.GetString("navitia_base_url"),
			NavitiaAPIKey:  v.GetString("navitia_api_key"),
			PhotonBaseURL:  v.GetString("photon_base_url"),
			TimeoutSeconds: v.GetInt("provider_timeout_seconds"),
		},
	}

	if cfg.Providers.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("provider timeout must be positive")
	}
	return cfg, nil
}

package cmd

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config carries every deployment setting. Values come from the
// environment, optionally seeded from a .env file.
type Config struct {
	HTTPPort string `envconfig:"HTTP_PORT" default:"8080"`

	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`
	DBSslMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	KafkaBrokers         []string `envconfig:"KAFKA_BROKERS" required:"true"`
	KafkaOrderEventTopic string   `envconfig:"KAFKA_ORDER_EVENT_TOPIC" default:"order-events"`

	SendgridAPIKey string `envconfig:"SENDGRID_API_KEY" required:"true"`
	NotifyFrom     string `envconfig:"NOTIFY_FROM_EMAIL" required:"true"`
	NotifyTo       string `envconfig:"NOTIFY_RECIPIENT_EMAIL" required:"true"`

	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	// Tenants is the list of city areas this deployment serves; the
	// sweeper iterates it.
	Tenants []string `envconfig:"TENANTS" required:"true"`

	// DeliveryFee and TaxRatePercent feed order pricing. The fee is in
	// minor currency units.
	DeliveryFee         int64   `envconfig:"DELIVERY_FEE" default:"3000"`
	TaxRatePercent      float64 `envconfig:"TAX_RATE_PERCENT" default:"5"`
	RiderSearchRadiusKm float64 `envconfig:"RIDER_SEARCH_RADIUS_KM" default:"5"`

	SweepInterval time.Duration `envconfig:"SWEEP_INTERVAL" default:"30s"`
	SweepMaxWait  time.Duration `envconfig:"SWEEP_MAX_WAIT" default:"5m"`
}

// LoadConfig reads the configuration from the environment. A missing
// .env file is not an error; containers set the environment directly.
func LoadConfig() (Config, error) {
	_ = godotenv.Load(".env")

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return Config{}, fmt.Errorf("failed to process config: %w", err)
	}
	return config, nil
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

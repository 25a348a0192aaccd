package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type App struct {
	// HTTP
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`

	// Storage
	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"postgres"`
	DBHost        string `envconfig:"DB_HOST" default:"localhost"`
	DBPort        string `envconfig:"DB_PORT" default:"5432"`
	DBUser        string `envconfig:"DB_USER" default:"postgres"`
	DBPassword    string `envconfig:"DB_PASSWORD"`
	DBName        string `envconfig:"DB_NAME" default:"hotel_booking"`
	DBSSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxConns    int    `envconfig:"DB_MAX_CONNS" default:"25"`

	// Cache, empty disables it
	RedisURL             string        `envconfig:"REDIS_URL"`
	AvailabilityCacheTTL time.Duration `envconfig:"AVAILABILITY_CACHE_TTL" default:"5m"`

	// Collaborators, an empty room URL serves rooms from this process
	RoomServiceURL         string        `envconfig:"ROOM_SERVICE_URL"`
	UserServiceURL         string        `envconfig:"USER_SERVICE_URL"`
	NotificationServiceURL string        `envconfig:"NOTIFICATION_SERVICE_URL"`
	CollaboratorTimeout    time.Duration `envconfig:"COLLABORATOR_TIMEOUT" default:"3s"`

	// Messaging
	RabbitURL       string `envconfig:"RABBIT_URL"`
	BookingExchange string `envconfig:"BOOKING_EXCHANGE" default:"booking.exchange"`
	NotifyWorkers   int    `envconfig:"NOTIFY_WORKERS" default:"4"`
	NotifyBuffer    int    `envconfig:"NOTIFY_BUFFER" default:"256"`

	// Pending expiry, zero disables it
	PendingTTL     time.Duration `envconfig:"PENDING_TTL" default:"24h"`
	ExpiryInterval time.Duration `envconfig:"EXPIRY_INTERVAL" default:"1m"`

	// Observability
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"hotel-booking"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"LOG_FORMAT" default:"json"`
}

// Load reads an optional .env file and then the process environment. Values
// already present in the environment win over the file.
func Load(envFiles ...string) (App, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	_ = godotenv.Load(envFiles...)

	var c App
	if err := envconfig.Process("", &c); err != nil {
		return App{}, err
	}
	if err := c.Validate(); err != nil {
		return App{}, err
	}
	return c, nil
}

func (c App) Validate() error {
	var errs []error

	switch c.StorageDriver {
	case StorageMemory, StoragePostgres:
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StorageMemory, StoragePostgres, c.StorageDriver))
	}
	if c.CollaboratorTimeout <= 0 {
		errs = append(errs, errors.New("COLLABORATOR_TIMEOUT must be positive"))
	}
	if c.PendingTTL > 0 && c.ExpiryInterval <= 0 {
		errs = append(errs, errors.New("EXPIRY_INTERVAL must be positive when PENDING_TTL is set"))
	}
	if c.NotifyWorkers <= 0 {
		errs = append(errs, errors.New("NOTIFY_WORKERS must be positive"))
	}

	return errors.Join(errs...)
}

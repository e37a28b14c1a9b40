package config

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/spf13/viper"
)

// Supported values for STORE_DRIVER.
const (
	StoreDriverRedis    = "redis"
	StoreDriverPostgres = "postgres"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`
	// PublicBaseURL prefixes the follow-up action links returned to clients.
	PublicBaseURL string `mapstructure:"PUBLIC_BASE_URL" default:"http://localhost:8080" required:"true"`

	// Store selects and configures the delivery persistence backend.
	Store StoreConfig `mapstructure:",squash"`

	// Validation tunes the validation gate.
	Validation ValidationConfig `mapstructure:",squash"`

	// Notifications configures the notification queue and its senders.
	Notifications NotificationConfig `mapstructure:",squash"`
}

// StoreConfig holds persistence connection details.
type StoreConfig struct {
	// Driver is either "redis" or "postgres".
	Driver string `mapstructure:"STORE_DRIVER" default:"redis" required:"true"`
	// RedisURL is used by the redis store and by the notification dedupe cache.
	RedisURL string `mapstructure:"REDIS_URL" default:"redis://localhost:6379/0"`
	// DatabaseURL is the lib/pq connection string for the postgres store.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
}

// ValidationConfig holds the validation gate settings.
type ValidationConfig struct {
	// TxTimeout bounds a single validation transaction.
	TxTimeout time.Duration `mapstructure:"VALIDATION_TX_TIMEOUT" default:"5s"`
	// CodeTTL is how long an issued code stays valid. Zero disables expiry.
	CodeTTL time.Duration `mapstructure:"VALIDATION_CODE_TTL" default:"0s"`
	// CommissionRate is the platform's share of the delivery price (0.15 = 15%).
	CommissionRate float64 `mapstructure:"COMMISSION_RATE" default:"0.15"`
}

// NotificationConfig holds the notification dispatcher settings.
type NotificationConfig struct {
	// QueueSize is the buffer of the in-process notification queue.
	QueueSize int `mapstructure:"NOTIFY_QUEUE_SIZE" default:"256"`
	// Workers is the number of dispatcher goroutines.
	Workers int `mapstructure:"NOTIFY_WORKERS" default:"2"`
	// DedupeTTL is how long a delivered event id is remembered.
	DedupeTTL time.Duration `mapstructure:"NOTIFY_DEDUPE_TTL" default:"24h"`
	// WebhookURL enables the webhook sender when set.
	WebhookURL string `mapstructure:"NOTIFY_WEBHOOK_URL"`
	// WebhookSecret signs webhook bodies (HMAC-SHA256).
	WebhookSecret string `mapstructure:"NOTIFY_WEBHOOK_SECRET"`
	// NatsURL enables the NATS sender when set.
	NatsURL string `mapstructure:"NATS_URL"`
	// NatsSubjectPrefix is prepended to the event type to build the subject.
	NatsSubjectPrefix string `mapstructure:"NATS_SUBJECT_PREFIX" default:"ecodeli.notifications"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks settings that depend on each other.
func (c *AppConfig) Validate() error {
	switch c.Store.Driver {
	case StoreDriverRedis:
		if c.Store.RedisURL == "" {
			return fmt.Errorf("missing required configuration: REDIS_URL (STORE_DRIVER=%s)", c.Store.Driver)
		}
	case StoreDriverPostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("missing required configuration: DATABASE_URL (STORE_DRIVER=%s)", c.Store.Driver)
		}
	default:
		return fmt.Errorf("invalid STORE_DRIVER %q: must be %q or %q", c.Store.Driver, StoreDriverRedis, StoreDriverPostgres)
	}

	if c.Validation.TxTimeout <= 0 {
		return errors.New("VALIDATION_TX_TIMEOUT must be positive")
	}
	if c.Validation.CodeTTL < 0 {
		return errors.New("VALIDATION_CODE_TTL must not be negative")
	}
	if c.Validation.CommissionRate < 0 || c.Validation.CommissionRate >= 1 {
		return fmt.Errorf("COMMISSION_RATE must be in [0, 1), got %v", c.Validation.CommissionRate)
	}
	if c.Notifications.QueueSize <= 0 {
		return errors.New("NOTIFY_QUEUE_SIZE must be positive")
	}
	if c.Notifications.Workers <= 0 {
		return errors.New("NOTIFY_WORKERS must be positive")
	}
	if c.Notifications.WebhookURL != "" && c.Notifications.WebhookSecret == "" {
		return errors.New("missing required configuration: NOTIFY_WEBHOOK_SECRET (NOTIFY_WEBHOOK_URL is set)")
	}
	return nil
}

// processTags iterates over the struct fields, binds env keys and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			if err := v.BindEnv(key); err != nil {
				return fmt.Errorf("failed to bind env %s: %w", key, err)
			}
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}

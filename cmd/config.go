package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strconv"
	"time"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/logging"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
)

type Config struct {
	HTTPPort string `envconfig:"HTTP_PORT" default:"8080"`

	DBDriver     string `envconfig:"DB_DRIVER" default:"postgres"`
	DBHost       string `envconfig:"DB_HOST" default:"localhost"`
	DBPort       string `envconfig:"DB_PORT" default:"5432"`
	DBUser       string `envconfig:"DB_USER"`
	DBPassword   string `envconfig:"DB_PASSWORD"`
	DBName       string `envconfig:"DB_NAME"`
	DBSslMode    string `envconfig:"DB_SSLMODE" default:"disable"`
	DBSQLitePath string `envconfig:"DB_SQLITE_PATH" default:"fulfillment.db"`

	RedisURL string        `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
	CartTTL  time.Duration `envconfig:"CART_TTL" default:"168h"`

	JWTSecret         string `envconfig:"JWT_SECRET"`
	ShippingCostCents int64  `envconfig:"SHIPPING_COST_CENTS" default:"599"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	KafkaBrokers           []string `envconfig:"KAFKA_BROKERS"`
	KafkaNotificationTopic string   `envconfig:"KAFKA_NOTIFICATION_TOPIC" default:"fulfillment.notifications"`

	RelaySchedule  string `envconfig:"RELAY_SCHEDULE" default:"*/5 * * * * *"`
	RelayBatchSize int    `envconfig:"RELAY_BATCH_SIZE" default:"100"`
}

// LoadConfig reads the environment after loading an optional .env file.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var problems []error

	if port, err := strconv.Atoi(c.HTTPPort); err != nil || port < 1 || port > 65535 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("HTTP_PORT", c.HTTPPort, 1, 65535))
	}
	switch c.DBDriver {
	case postgres.DriverPostgres:
		if c.DBName == "" {
			problems = append(problems, errs.NewValueIsRequiredError("DB_NAME"))
		}
	case postgres.DriverSQLite:
		if c.DBSQLitePath == "" {
			problems = append(problems, errs.NewValueIsRequiredError("DB_SQLITE_PATH"))
		}
	default:
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("DB_DRIVER",
			fmt.Errorf("%q is not postgres or sqlite", c.DBDriver)))
	}
	if c.RedisURL == "" {
		problems = append(problems, errs.NewValueIsRequiredError("REDIS_URL"))
	} else if _, err := url.Parse(c.RedisURL); err != nil {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("REDIS_URL", err))
	}
	if c.CartTTL <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("CART_TTL", fmt.Errorf("%s is not positive", c.CartTTL)))
	}
	if c.JWTSecret == "" {
		problems = append(problems, errs.NewValueIsRequiredError("JWT_SECRET"))
	}
	if c.ShippingCostCents < 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("SHIPPING_COST_CENTS",
			fmt.Errorf("%d is negative", c.ShippingCostCents)))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", err))
	}
	if c.LogFormat != logging.FormatJSON && c.LogFormat != logging.FormatConsole {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("LOG_FORMAT",
			fmt.Errorf("%q is not json or console", c.LogFormat)))
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaNotificationTopic == "" {
		problems = append(problems, errs.NewValueIsRequiredError("KAFKA_NOTIFICATION_TOPIC"))
	}
	if _, err := cron.NewParser(cronSpec).Parse(c.RelaySchedule); err != nil {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("RELAY_SCHEDULE", err))
	}
	if c.RelayBatchSize < 1 || c.RelayBatchSize > commands.MaxRelayBatchSize {
		problems = append(problems, errs.NewValueIsOutOfRangeError("RELAY_BATCH_SIZE", c.RelayBatchSize, 1, commands.MaxRelayBatchSize))
	}

	return errors.Join(problems...)
}

// cronSpec matches the parser behind cron.WithSeconds.
const cronSpec = cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor

// DatabaseOptions builds the connection settings of the selected driver.
func (c Config) DatabaseOptions() postgres.Options {
	if c.DBDriver == postgres.DriverSQLite {
		return postgres.Options{Driver: postgres.DriverSQLite, DSN: c.DBSQLitePath}
	}
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
	return postgres.Options{Driver: postgres.DriverPostgres, DSN: dsn, MaxOpenConns: 20}
}

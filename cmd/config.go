package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"ordering/internal/pkg/errs"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort                   string
	DBHost                     string
	DBPort                     string
	DBUser                     string
	DBPassword                 string
	DBName                     string
	DBSslMode                  string
	KafkaHost                  string
	KafkaOrderChangedTopic     string
	RedisAddr                  string
	RedisSummaryTTL            time.Duration
	PendingOrderTTL            time.Duration
	PendingOrderExpirySchedule string
}

var defaults = map[string]string{
	"HTTP_PORT":                     "8080",
	"DB_HOST":                       "localhost",
	"DB_PORT":                       "5432",
	"DB_USER":                       "postgres",
	"DB_PASSWORD":                   "postgres",
	"DB_NAME":                       "ordering",
	"DB_SSLMODE":                    "disable",
	"KAFKA_HOST":                    "localhost:9092",
	"KAFKA_ORDER_CHANGED_TOPIC":     "order.changed",
	"REDIS_ADDR":                    "localhost:6379",
	"REDIS_SUMMARY_TTL":             "10m",
	"PENDING_ORDER_TTL":             "30m",
	"PENDING_ORDER_EXPIRY_SCHEDULE": "0 * * * * *",
}

// LoadConfig reads the environment, optionally seeded from envFile.
// A missing envFile is not an error; variables already set in the process win.
func LoadConfig(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	redisTTL, redisErr := durationVariable("REDIS_SUMMARY_TTL")
	pendingTTL, pendingErr := durationVariable("PENDING_ORDER_TTL")
	if err := errors.Join(redisErr, pendingErr); err != nil {
		return Config{}, err
	}

	return Config{
		HTTPPort:                   variable("HTTP_PORT"),
		DBHost:                     variable("DB_HOST"),
		DBPort:                     variable("DB_PORT"),
		DBUser:                     variable("DB_USER"),
		DBPassword:                 variable("DB_PASSWORD"),
		DBName:                     variable("DB_NAME"),
		DBSslMode:                  variable("DB_SSLMODE"),
		KafkaHost:                  variable("KAFKA_HOST"),
		KafkaOrderChangedTopic:     variable("KAFKA_ORDER_CHANGED_TOPIC"),
		RedisAddr:                  variable("REDIS_ADDR"),
		RedisSummaryTTL:            redisTTL,
		PendingOrderTTL:            pendingTTL,
		PendingOrderExpirySchedule: variable("PENDING_ORDER_EXPIRY_SCHEDULE"),
	}, nil
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// KafkaBrokers splits the comma separated KAFKA_HOST value.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func variable(key string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return defaults[key]
}

func durationVariable(key string) (time.Duration, error) {
	raw := variable(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	if d <= 0 {
		return 0, errs.NewValueIsOutOfRangeError(key, raw, "1ns", "unbounded")
	}
	return d, nil
}

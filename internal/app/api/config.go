package api

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"
)

// Config carries environment-driven settings for the API and worker processes.
type Config struct {
	Port              string
	PostgresDSN       string
	RedisAddr         string
	CartTTL           time.Duration
	KafkaBrokers      []string
	OrderEventsTopic  string
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	WhatsAppURL       string
	WhatsAppToken     string
	StoreLocation     *time.Location
	PixKey            string
	PixMerchantName   string
	PixMerchantCity   string
}

// LoadConfig reads a local .env file when present, then environment variables,
// applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		RedisAddr:         strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		CartTTL:           2 * time.Hour,
		KafkaBrokers:      splitList(os.Getenv("KAFKA_BROKERS")),
		OrderEventsTopic:  envDefault("ORDER_EVENTS_TOPIC", "pizzeria.order-events"),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		WhatsAppURL:       strings.TrimSpace(os.Getenv("WHATSAPP_API_URL")),
		WhatsAppToken:     strings.TrimSpace(os.Getenv("WHATSAPP_API_TOKEN")),
		PixKey:            strings.TrimSpace(os.Getenv("PIX_KEY")),
		PixMerchantName:   envDefault("PIX_MERCHANT_NAME", "PIZZARIA"),
		PixMerchantCity:   envDefault("PIX_MERCHANT_CITY", "SAO PAULO"),
	}
	if raw := strings.TrimSpace(os.Getenv("CART_TTL_MINUTES")); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			return Config{}, fmt.Errorf("CART_TTL_MINUTES must be a positive integer")
		}
		cfg.CartTTL = time.Duration(minutes) * time.Minute
	}
	loc, err := time.LoadLocation(envDefault("STORE_TIMEZONE", "America/Sao_Paulo"))
	if err != nil {
		return Config{}, fmt.Errorf("STORE_TIMEZONE: %w", err)
	}
	cfg.StoreLocation = loc
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

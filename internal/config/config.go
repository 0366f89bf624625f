package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppEnv   string `mapstructure:"APP_ENV"`
	Port     string `mapstructure:"PORT"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBSSLMode  string `mapstructure:"DB_SSLMODE"`

	JWTSecret     string        `mapstructure:"JWT_SECRET"`
	JWTTTL        time.Duration `mapstructure:"JWT_TTL"`
	CORSOrigins   string        `mapstructure:"CORS_ORIGINS"`
	FrontendURL   string        `mapstructure:"FRONTEND_URL"`
	PublicBaseURL string        `mapstructure:"PUBLIC_BASE_URL"`

	ReadTimeout  time.Duration `mapstructure:"HTTP_READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"HTTP_WRITE_TIMEOUT"`

	// Payment gateways.
	MomoPartnerCode string `mapstructure:"MOMO_PARTNER_CODE"`
	MomoAccessKey   string `mapstructure:"MOMO_ACCESS_KEY"`
	MomoSecretKey   string `mapstructure:"MOMO_SECRET_KEY"`
	MomoEndpoint    string `mapstructure:"MOMO_ENDPOINT"`

	VNPayTmnCode    string `mapstructure:"VNPAY_TMN_CODE"`
	VNPayHashSecret string `mapstructure:"VNPAY_HASH_SECRET"`
	VNPayURL        string `mapstructure:"VNPAY_URL"`

	ZaloPayAppID    string `mapstructure:"ZALOPAY_APP_ID"`
	ZaloPayKey1     string `mapstructure:"ZALOPAY_KEY1"`
	ZaloPayKey2     string `mapstructure:"ZALOPAY_KEY2"`
	ZaloPayEndpoint string `mapstructure:"ZALOPAY_ENDPOINT"`

	PaymentOrderTTL      time.Duration `mapstructure:"PAYMENT_ORDER_TTL"`
	GatewaySkipSignature bool          `mapstructure:"GATEWAY_SKIP_SIGNATURE"`
	ReturnRatePerMin     int           `mapstructure:"RETURN_RATE_PER_MIN"`

	// Event publishing.
	KafkaBrokers        string        `mapstructure:"KAFKA_BROKERS"`
	PaymentEventsTopic  string        `mapstructure:"PAYMENT_EVENTS_TOPIC"`
	EventPublishTimeout time.Duration `mapstructure:"EVENT_PUBLISH_TIMEOUT"`

	OverdueCron string `mapstructure:"OVERDUE_CRON"`
}

var keys = []string{
	"APP_ENV", "PORT", "LOG_LEVEL",
	"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
	"JWT_SECRET", "JWT_TTL", "CORS_ORIGINS", "FRONTEND_URL", "PUBLIC_BASE_URL",
	"HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT",
	"MOMO_PARTNER_CODE", "MOMO_ACCESS_KEY", "MOMO_SECRET_KEY", "MOMO_ENDPOINT",
	"VNPAY_TMN_CODE", "VNPAY_HASH_SECRET", "VNPAY_URL",
	"ZALOPAY_APP_ID", "ZALOPAY_KEY1", "ZALOPAY_KEY2", "ZALOPAY_ENDPOINT",
	"PAYMENT_ORDER_TTL", "GATEWAY_SKIP_SIGNATURE", "RETURN_RATE_PER_MIN",
	"KAFKA_BROKERS", "PAYMENT_EVENTS_TOPIC", "EVENT_PUBLISH_TIMEOUT",
	"OVERDUE_CRON",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "postgres")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")
	v.SetDefault("FRONTEND_URL", "http://localhost:5173")
	v.SetDefault("PUBLIC_BASE_URL", "http://localhost:8080")
	v.SetDefault("HTTP_READ_TIMEOUT", "15s")
	v.SetDefault("HTTP_WRITE_TIMEOUT", "30s")

	v.SetDefault("MOMO_ENDPOINT", "https://test-payment.momo.vn/v2/gateway/pay")
	v.SetDefault("VNPAY_URL", "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html")
	v.SetDefault("ZALOPAY_ENDPOINT", "https://sb-openapi.zalopay.vn/v2/pay")

	v.SetDefault("PAYMENT_ORDER_TTL", "15m")
	v.SetDefault("GATEWAY_SKIP_SIGNATURE", false)
	v.SetDefault("RETURN_RATE_PER_MIN", 120)

	v.SetDefault("PAYMENT_EVENTS_TOPIC", "payment-events")
	v.SetDefault("EVENT_PUBLISH_TIMEOUT", "3s")
	v.SetDefault("OVERDUE_CRON", "@daily")
}

// Load reads configs/.env (if present) and the process environment.
func Load() (Config, error) {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	// AutomaticEnv only answers Get calls; binding makes Unmarshal see env-only keys.
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.IsProduction() {
		if c.JWTSecret == "" {
			return errors.New("JWT_SECRET is required in production")
		}
		if c.GatewaySkipSignature {
			return errors.New("GATEWAY_SKIP_SIGNATURE cannot be enabled in production")
		}
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + c.DBPort + "/" + c.DBName + "?sslmode=" + c.DBSSLMode
}

// Secret returns the JWT signing key, with a development fallback.
func (c Config) Secret() []byte {
	if c.JWTSecret == "" {
		return []byte("default_super_secret_key") // development only, refused in production by validate
	}
	return []byte(c.JWTSecret)
}

func (c Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c Config) Brokers() []string {
	var out []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

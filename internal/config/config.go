package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	DB      DBConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	JWT     JWTConfig
	Storage StorageConfig
	Report  ReportConfig
}

type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// batas tunggu request yang sedang berjalan saat shutdown
	ShutdownTimeout time.Duration
}

type DBConfig struct {
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	MaxRetries int
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

type RedisConfig struct {
	Addr string
}

type KafkaConfig struct {
	Broker              string
	EmployeeSalaryGroup string
	PayslipGroup        string
	OutboxPollInterval  time.Duration
}

type JWTConfig struct {
	Secret string
}

type StorageConfig struct {
	PayslipDir string
}

type ReportConfig struct {
	CompanyName string
}

func (c AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load membaca konfigurasi dari environment. File .env sudah dimuat oleh godotenv di main.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "go-payroll"),
		},
		HTTP: HTTPConfig{
			Port:            getString(v, "PORT", "3000"),
			ReadTimeout:     getDuration(v, "HTTP_READ_TIMEOUT", 5*time.Second),
			WriteTimeout:    getDuration(v, "HTTP_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:     getDuration(v, "HTTP_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDuration(v, "HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		DB: DBConfig{
			Host:       getString(v, "DB_HOST", "localhost"),
			Port:       getString(v, "DB_PORT", "5432"),
			User:       getString(v, "DB_USER", "postgres"),
			Password:   getString(v, "DB_PASSWORD", ""),
			Name:       getString(v, "DB_NAME", "go_payroll"),
			SSLMode:    getString(v, "DB_SSLMODE", "disable"),
			MaxRetries: getInt(v, "DB_MAX_RETRIES", 5),
		},
		Redis: RedisConfig{
			Addr: getString(v, "REDIS_ADDR", "localhost:6379"),
		},
		Kafka: KafkaConfig{
			Broker:              getString(v, "KAFKA_BROKER", ""),
			EmployeeSalaryGroup: getString(v, "KAFKA_GROUP_EMPLOYEE_SALARY", "go-payroll-employee-salary"),
			PayslipGroup:        getString(v, "KAFKA_GROUP_PAYSLIP", "go-payroll-payslip"),
			OutboxPollInterval:  getDuration(v, "OUTBOX_POLL_INTERVAL", 3*time.Second),
		},
		JWT: JWTConfig{
			Secret: getString(v, "JWT_SECRET", ""),
		},
		Storage: StorageConfig{
			PayslipDir: getString(v, "PAYSLIP_STORAGE_DIR", "storage/payslips"),
		},
		Report: ReportConfig{
			CompanyName: getString(v, "REPORT_COMPANY_NAME", "Company"),
		},
	}

	if cfg.App.IsProduction() && cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required in production")
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) && v.GetString(key) != "" {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if !v.IsSet(key) {
		return def
	}
	n, err := strconv.Atoi(v.GetString(key))
	if err != nil {
		return def
	}
	return n
}

func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return def
	}
	return d
}

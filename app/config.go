package main

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"github.com/sushihentaime/bloglist/internal/common"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	Environment string `mapstructure:"ENVIRONMENT"`
	Version     string `mapstructure:"VERSION"`

	// MigrationsPath is applied on startup when set, e.g. file://migrations.
	MigrationsPath string `mapstructure:"MIGRATIONS_PATH"`

	DB       DBConfig       `mapstructure:",squash"`
	Mail     MailConfig     `mapstructure:",squash"`
	RabbitMQ RabbitMQConfig `mapstructure:",squash"`
	Auth     AuthConfig     `mapstructure:",squash"`
}

type DBConfig struct {
	Host         string        `mapstructure:"POSTGRES_HOST"`
	Port         string        `mapstructure:"POSTGRES_PORT"`
	User         string        `mapstructure:"POSTGRES_USER"`
	Password     string        `mapstructure:"POSTGRES_PASSWORD"`
	Name         string        `mapstructure:"POSTGRES_DB"`
	MaxOpenConns int           `mapstructure:"POSTGRES_MAX_OPEN_CONNS"`
	MaxIdleConns int           `mapstructure:"POSTGRES_MAX_IDLE_CONNS"`
	MaxIdleTime  time.Duration `mapstructure:"POSTGRES_MAX_IDLE_TIME"`
}

type MailConfig struct {
	Host     string `mapstructure:"MAIL_HOST"`
	Port     int    `mapstructure:"MAIL_PORT"`
	User     string `mapstructure:"MAIL_USER"`
	Password string `mapstructure:"MAIL_PASSWORD"`
	Sender   string `mapstructure:"MAIL_SENDER"`
}

type RabbitMQConfig struct {
	Host     string `mapstructure:"RABBITMQ_HOST"`
	Port     string `mapstructure:"RABBITMQ_PORT"`
	User     string `mapstructure:"RABBITMQ_USER"`
	Password string `mapstructure:"RABBITMQ_PASSWORD"`
}

type AuthConfig struct {
	Secret     string        `mapstructure:"JWT_SECRET"`
	TokenTTL   time.Duration `mapstructure:"TOKEN_TTL"`
	LoginRate  float64       `mapstructure:"LOGIN_RATE_LIMIT"`
	LoginBurst int           `mapstructure:"LOGIN_RATE_BURST"`
}

func (c DBConfig) dbConfig() common.DBConfig {
	return common.DBConfig{
		Host:         c.Host,
		Port:         c.Port,
		User:         c.User,
		Password:     c.Password,
		Name:         c.Name,
		MaxOpenConns: c.MaxOpenConns,
		MaxIdleConns: c.MaxIdleConns,
		MaxIdleTime:  c.MaxIdleTime,
	}
}

func (c RabbitMQConfig) URI() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", c.User, c.Password, c.Host, c.Port)
}

var defaults = map[string]any{
	"PORT":                    ":4000",
	"ENVIRONMENT":             "development",
	"VERSION":                 "1.0.0",
	"POSTGRES_PORT":           "5432",
	"POSTGRES_MAX_OPEN_CONNS": 10,
	"POSTGRES_MAX_IDLE_CONNS": 5,
	"POSTGRES_MAX_IDLE_TIME":  "15m",
	"MAIL_PORT":               25,
	"RABBITMQ_PORT":           "5672",
	"TOKEN_TTL":               "1h",
	"LOGIN_RATE_LIMIT":        1,
	"LOGIN_RATE_BURST":        5,
}

// loadConfig reads the .env file at path. Environment variables override the file.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.Auth.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	return &config, nil
}

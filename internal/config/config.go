package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

// TimeZone - таймзона приложения, устанавливается при загрузке конфигурации
var TimeZone *time.Location = time.Local

type ConfigBasicClient struct {
	Username string
	Password string
}

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"Europe/Moscow"`
	}

	HTTP struct {
		Port string `env:"HTTP_SERVER_PORT" envDefault:"8080"`
		Host string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
	}

	ScheduleAPI struct {
		URL      string `env:"SCHEDULE_API_URL"`
		Username string `env:"SCHEDULE_API_USERNAME"`
		Password string `env:"SCHEDULE_API_PASSWORD"`
	}

	Auth struct {
		BasicClientsString string `env:"AUTH_BASIC_CLIENTS" envDefault:"slot_discovery:slot_discovery"`
		BasicClients       []ConfigBasicClient
	}

	RabbitMq struct {
		Enabled bool   `env:"RABBITMQ_ENABLED"`
		AmqpUri string `env:"RABBITMQ_URL"`

		BookingQueueName     string `env:"RABBITMQ_BOOKING_QUEUE" envDefault:"slot-discovery.booking"`
		BookingQueueBind     string `env:"RABBITMQ_BOOKING_QUEUE_BIND" envDefault:"booking.#"`
		BookingQueueExchange string `env:"RABBITMQ_BOOKING_QUEUE_EXCHANGE" envDefault:"scheduling"`
	}

	Cache struct {
		Enabled       bool `env:"CACHE_ENABLED"`
		SlotsSize     int  `env:"CACHE_SLOTS_SIZE" envDefault:"1000"`
		SlotsTTLSec   int  `env:"CACHE_SLOTS_TTL" envDefault:"10"`
		DoctorsTTLSec int  `env:"CACHE_DOCTORS_TTL" envDefault:"60"`
	}
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Приведение окружения к нижнему регистру для унификации
	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))

	// Загружаем таймзону приложения
	if loc, err := time.LoadLocation(cfg.App.Timezone); err == nil {
		TimeZone = loc
	}

	// Разделение клиентов basic-авторизации
	if cfg.Auth.BasicClients == nil {
		cfg.Auth.BasicClients = []ConfigBasicClient{}
	}
	clientPairs := strings.Split(cfg.Auth.BasicClientsString, ",")
	for _, pair := range clientPairs {
		parts := strings.Split(pair, ":")
		if len(parts) == 2 {
			cfg.Auth.BasicClients = append(cfg.Auth.BasicClients, ConfigBasicClient{
				Username: parts[0],
				Password: parts[1],
			})
		}
	}

	return cfg, nil
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}

func (c *Config) SlotsCacheTTL() time.Duration {
	return time.Duration(c.Cache.SlotsTTLSec) * time.Second
}

func (c *Config) DoctorsCacheTTL() time.Duration {
	return time.Duration(c.Cache.DoctorsTTLSec) * time.Second
}

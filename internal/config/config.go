package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server   ServerConfig   `envPrefix:"SERVER_"`
	Database DatabaseConfig `envPrefix:"DATABASE_"`
	Kafka    KafkaConfig    `envPrefix:"KAFKA_"`
	ChatAPI  ChatAPIConfig  `envPrefix:"CHAT_API_"`
	Scraper  ScraperConfig  `envPrefix:"SCRAPER_"`
	Wishlist WishlistConfig `envPrefix:"WISHLIST_"`
}

type ServerConfig struct {
	Addr string `env:"ADDR" envDefault:":8080"`
}

type DatabaseConfig struct {
	Hosts    []string `env:"HOSTS" envDefault:"localhost:27017"`
	Database string   `env:"DATABASE" envDefault:"wishlist"`
	Username string   `env:"USERNAME"`
	Password string   `env:"PASSWORD"`
	AuthDB   string   `env:"AUTH_DB" envDefault:"admin"`
	Direct   bool     `env:"DIRECT" envDefault:"true"`
}

type KafkaConfig struct {
	Enabled bool     `env:"ENABLED" envDefault:"true"`
	Brokers []string `env:"BROKERS" envDefault:"localhost:9092"`
	Topic   string   `env:"TOPIC" envDefault:"chat-events"`
	GroupID string   `env:"GROUP_ID" envDefault:"wishlist-bot"`
}

type ChatAPIConfig struct {
	BaseURL string `env:"BASE_URL,required"`
	Token   string `env:"TOKEN,required"`
	BotID   string `env:"BOT_ID" envDefault:"wishlist-bot"`
}

type ScraperConfig struct {
	Timeout   time.Duration `env:"TIMEOUT" envDefault:"10s"`
	UserAgent string        `env:"USER_AGENT" envDefault:"Mozilla/5.0 (compatible; wishlist-bot/1.0)"`
}

type WishlistConfig struct {
	PageSize     int           `env:"PAGE_SIZE" envDefault:"5"`
	LatestLimit  int           `env:"LATEST_LIMIT" envDefault:"5"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"5m"`
	CommandToken string        `env:"COMMAND_TOKEN" envDefault:"!wishlist"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

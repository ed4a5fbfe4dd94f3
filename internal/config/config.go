package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type AppConfig struct {
	Env string `yaml:"env" env:"APP_ENV" env-default:"prod"`

	// Fallback api credentials; the remote config table wins when set.
	APIID   int    `yaml:"api_id" env:"TELEGRAM_API_ID"`
	APIHash string `yaml:"api_hash" env:"TELEGRAM_API_HASH"`

	BotUsername string `yaml:"bot_username" env:"BOT_USERNAME"`

	LoginTimeout time.Duration `yaml:"login_timeout" env:"LOGIN_TIMEOUT" env-default:"30s"`

	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Device   DeviceConfig   `yaml:"device"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver" env:"DB_DRIVER" env-default:"sqlite3"`
	DSN    string `yaml:"dsn" env:"DB_DSN" env-default:"file:escrowbot.db?_fk=1"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type DeviceConfig struct {
	Model         string `yaml:"model" env:"DEVICE_MODEL"`
	SystemVersion string `yaml:"system_version" env:"DEVICE_SYSTEM_VERSION"`
	AppVersion    string `yaml:"app_version" env:"DEVICE_APP_VERSION"`
}

// Load reads the yaml config when a path is given and falls back to pure
// env otherwise. Missing api credentials are not an error here: they may
// live in the remote config table.
func Load() (*AppConfig, error) {
	var cfg AppConfig

	if path := fetchConfigPath(); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		return &cfg, nil
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env config: %w", err)
	}
	return &cfg, nil
}

// fetchConfigPath fetches config path from command line flag or environment variable.
// Priority: flag > env > default.
// Default value is empty string.
func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}
	return res
}

package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel          string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort          string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort        string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080"`
	Redis             Redis  `yaml:"redis"`
	SQLiteStoragePath string `yaml:"sqlite-storage-path" env:"SQLITE_STORAGE_PATH" env-default:"colorgrid.db"`
	JWTSecretKey      string `yaml:"jwt-secret-key" env:"JWT_SECRET_KEY"`
	AnnounceDelay     string `yaml:"announce-delay" env:"ANNOUNCE_DELAY" env-default:"2s"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// GetAnnounceDelay - the pause between match_found and game_start.
func (that *Config) GetAnnounceDelay() (time.Duration, error) {
	delay, err := time.ParseDuration(that.AnnounceDelay)
	if err != nil {
		return 0, fmt.Errorf("invalid announce-delay: %w", err)
	}

	return delay, nil
}

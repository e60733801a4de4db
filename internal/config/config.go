// Package config предоставялет структуры и функции для парсинга и загрузки конфига.
//
// Конфиг читается из YAML-файла, путь к которому задаётся CONFIG_PATH. Если CONFIG_PATH
// не задан, все значения берутся из переменных окружения. Переменные окружения
// всегда имеют приоритет над файлом.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultJWTSecret используется, когда JWT_SECRET не задан. Подходит только для локальной разработки.
const DefaultJWTSecret = "default-secret-key"

// EnvProd окружение, в котором запуск с DefaultJWTSecret запрещён.
const EnvProd = "prod"

// ErrInsecureSecret возвращается при попытке запуска в prod без JWT_SECRET.
var ErrInsecureSecret = errors.New("JWT_SECRET must be set in prod")

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"DATABASE_URL" env-required:"true"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	Google                  `yaml:"google"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env:"HTTP_TIMEOUT" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET"`
	TokenTTL     time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"720h"`
}

// Google содержит настройки входа через Google. Пустой ClientID отключает проверку id_token.
type Google struct {
	ClientID string `yaml:"client_id" env:"GOOGLE_CLIENT_ID"`
}

// Load читает конфиг из файла (если задан CONFIG_PATH) и переменных окружения.
func Load() (*Config, error) {
	const op = "config.Load"

	var cfg Config
	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: file %s does not exist", op, configPath)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if cfg.JWTSecretKey == "" {
		if cfg.Env == EnvProd {
			return nil, fmt.Errorf("%s: %w", op, ErrInsecureSecret)
		}
		cfg.JWTSecretKey = DefaultJWTSecret
	}
	return &cfg, nil
}

// MustLoad загружает конфиг и завершает процесс при ошибке.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// UsesDefaultSecret сообщает, что токены подписываются ключом по умолчанию.
func (c *Config) UsesDefaultSecret() bool {
	return c.JWTSecretKey == DefaultJWTSecret
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"MigrationsPath: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"JWTToken:\n"+
			"  JWTSecretKey: %s\n"+
			"  TokenTTL: %s\n"+
			"Google:\n"+
			"  ClientID: %s\n",
		c.Env,
		c.MigrationsPath,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		mask(c.JWTSecretKey),
		c.TokenTTL,
		c.ClientID,
	)
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "******"
}

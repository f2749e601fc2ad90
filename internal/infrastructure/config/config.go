package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config contém todas as configurações da aplicação
type Config struct {
	Env      string
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Session  SessionConfig
	Logging  LoggingConfig
	CORS     CORSConfig
	Admin    AdminConfig
	I18n     I18nConfig
}

type ServerConfig struct {
	Port    string
	Host    string
	BaseURL string // URL base da API para construir URIs RFC 7807
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	MinConns    int
	MaxIdleTime int
	AutoMigrate bool
	LogQueries  bool
}

type RedisConfig struct {
	URL             string
	AbilityCacheTTL time.Duration
}

type JWTConfig struct {
	Secret       string
	Issuer       string
	AccessExpiry time.Duration
}

type SessionConfig struct {
	Lifetime     time.Duration
	CookieSecure bool
}

type LoggingConfig struct {
	Level  string
	Format string // json | text
}

type CORSConfig struct {
	AllowedOrigins string
}

// AdminConfig contém os valores fixos usados pelo cadastro de usuários
type AdminConfig struct {
	DefaultAvatar       string
	PlaceholderPassword string
	ListDefaultLimit    int
	ListMaxLimit        int
	RootName            string
	RootEmail           string
	AssetVersion        string
}

type I18nConfig struct {
	LocalesDir      string // vazio usa as traduções embutidas
	DefaultLanguage string
}

// Load carrega as configurações do arquivo .env (se existir) e do ambiente
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile carrega as configurações a partir de path. Variáveis de ambiente
// têm prioridade sobre o arquivo.
func LoadFile(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	config := &Config{
		Env: v.GetString("ENV"),
		Server: ServerConfig{
			Port:    v.GetString("PORT"),
			Host:    v.GetString("HOST"),
			BaseURL: v.GetString("API_BASE_URL"),
		},
		Database: DatabaseConfig{
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetInt("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASS"),
			DBName:      v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSL_MODE"),
			MaxConns:    v.GetInt("DB_MAX_CONNS"),
			MinConns:    v.GetInt("DB_MIN_CONNS"),
			MaxIdleTime: v.GetInt("DB_MAX_IDLE_TIME"),
			AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
			LogQueries:  v.GetBool("DB_LOG_QUERIES"),
		},
		Redis: RedisConfig{
			URL:             v.GetString("REDIS_URL"),
			AbilityCacheTTL: v.GetDuration("ABILITY_CACHE_TTL"),
		},
		JWT: JWTConfig{
			Secret:       v.GetString("JWT_SECRET"),
			Issuer:       v.GetString("JWT_ISSUER"),
			AccessExpiry: v.GetDuration("JWT_ACCESS_EXPIRY"),
		},
		Session: SessionConfig{
			Lifetime:     v.GetDuration("SESSION_LIFETIME"),
			CookieSecure: v.GetBool("SESSION_COOKIE_SECURE"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		CORS: CORSConfig{
			AllowedOrigins: v.GetString("CORS_ALLOWED_ORIGINS"),
		},
		Admin: AdminConfig{
			DefaultAvatar:       v.GetString("DEFAULT_AVATAR"),
			PlaceholderPassword: v.GetString("PLACEHOLDER_PASSWORD"),
			ListDefaultLimit:    v.GetInt("LIST_DEFAULT_LIMIT"),
			ListMaxLimit:        v.GetInt("LIST_MAX_LIMIT"),
			RootName:            v.GetString("ROOT_NAME"),
			RootEmail:           v.GetString("ROOT_EMAIL"),
			AssetVersion:        v.GetString("ASSET_VERSION"),
		},
		I18n: I18nConfig{
			LocalesDir:      v.GetString("LOCALES_DIR"),
			DefaultLanguage: v.GetString("DEFAULT_LANGUAGE"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("API_BASE_URL", "http://localhost:8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "avantpro_admin")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 25)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("DB_MAX_IDLE_TIME", 300)
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("ABILITY_CACHE_TTL", "5m")
	v.SetDefault("JWT_ISSUER", "avantpro-admin")
	v.SetDefault("JWT_ACCESS_EXPIRY", "12h")
	v.SetDefault("SESSION_LIFETIME", "24h")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("DEFAULT_AVATAR", "avatars/default.png")
	v.SetDefault("PLACEHOLDER_PASSWORD", "password")
	v.SetDefault("LIST_DEFAULT_LIMIT", 10)
	v.SetDefault("LIST_MAX_LIMIT", 100)
	v.SetDefault("ROOT_NAME", "Root")
	v.SetDefault("ROOT_EMAIL", "root@avantpro.local")
	v.SetDefault("ASSET_VERSION", "1")
	v.SetDefault("DEFAULT_LANGUAGE", "en")
}

// IsProduction indica ambiente de produção
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate verifica combinações inválidas de configuração
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		if c.Env != "development" && c.Env != "test" {
			return errors.New("JWT_SECRET is required outside development")
		}
		c.JWT.Secret = "development-secret"
	}

	if c.Admin.ListDefaultLimit < 1 {
		return fmt.Errorf("LIST_DEFAULT_LIMIT must be positive, got %d", c.Admin.ListDefaultLimit)
	}

	if c.Admin.ListMaxLimit < c.Admin.ListDefaultLimit {
		return fmt.Errorf("LIST_MAX_LIMIT (%d) must be >= LIST_DEFAULT_LIMIT (%d)", c.Admin.ListMaxLimit, c.Admin.ListDefaultLimit)
	}

	return nil
}

// DSN retorna a connection string do PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

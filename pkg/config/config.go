package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App   AppConfig
	DB    DBConfig
	JWT   JWTConfig
	HTTP  HTTPConfig
	Redis RedisConfig
	Seed  SeedConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env             string // development, staging, production
	Name            string
	LogLevel        string
	LowStockDefault int // umbral de stock bajo para baldosas nuevas sin umbral explícito
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
// Driver "memory" arranca sin base de datos (demo y pruebas manuales; los datos no persisten).
type DBConfig struct {
	Driver         string
	DatabaseURL    string
	Host           string
	Port           int
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MigrateOnStart bool
}

// InMemory indica si se usa el almacenamiento en memoria.
func (c DBConfig) InMemory() bool {
	return strings.EqualFold(strings.TrimSpace(c.Driver), "memory")
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig caché de reportes. Addr vacío desactiva la caché (se usa la implementación Noop).
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	TTLSeconds int
}

// Enabled indica si hay un servidor Redis configurado.
func (c RedisConfig) Enabled() bool {
	return strings.TrimSpace(c.Addr) != ""
}

// TTL duración de las entradas de caché.
func (c RedisConfig) TTL() time.Duration {
	if c.TTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.TTLSeconds) * time.Second
}

// SeedConfig controla la siembra de roles, permisos y cuentas iniciales.
type SeedConfig struct {
	OnStart       bool
	AdminPassword string
	UserPassword  string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, DB_PORT, JWT_SECRET, REDIS_ADDR, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:             getString(v, "APP_ENV", "development"),
			Name:            getString(v, "APP_NAME", "ceramic-erp"),
			LogLevel:        getString(v, "LOG_LEVEL", "info"),
			LowStockDefault: getInt(v, "LOW_STOCK_DEFAULT", 10),
		},
		DB: DBConfig{
			Driver:         getString(v, "DB_DRIVER", "postgres"),
			DatabaseURL:    getString(v, "DATABASE_URL", ""),
			Host:           getString(v, "DB_HOST", "localhost"),
			Port:           getInt(v, "DB_PORT", 5432),
			User:           getString(v, "DB_USER", "postgres"),
			Password:       getString(v, "DB_PASSWORD", ""),
			DBName:         getString(v, "DB_NAME", "ceramic_erp"),
			SSLMode:        getString(v, "DB_SSLMODE", "disable"),
			MigrateOnStart: getBool(v, "DB_MIGRATE_ON_START", true),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "ceramic-erp"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Redis: RedisConfig{
			Addr:       getString(v, "REDIS_ADDR", ""),
			Password:   getString(v, "REDIS_PASSWORD", ""),
			DB:         getInt(v, "REDIS_DB", 0),
			TTLSeconds: getInt(v, "REDIS_TTL_SECONDS", 300),
		},
		Seed: SeedConfig{
			OnStart:       getBool(v, "SEED_ON_START", true),
			AdminPassword: getString(v, "SEED_ADMIN_PASSWORD", "Admin@123"),
			UserPassword:  getString(v, "SEED_USER_PASSWORD", "User@123"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rechaza combinaciones inseguras. En producción el secreto JWT es obligatorio.
func (c *Config) Validate() error {
	if c.App.Env == "production" && strings.TrimSpace(c.JWT.Secret) == "" {
		return errors.New("config: JWT_SECRET es obligatorio en production")
	}
	switch strings.ToLower(strings.TrimSpace(c.DB.Driver)) {
	case "", "postgres", "memory":
	default:
		return fmt.Errorf("config: DB_DRIVER desconocido %q (postgres | memory)", c.DB.Driver)
	}
	if c.App.LowStockDefault < 0 {
		return fmt.Errorf("config: LOW_STOCK_DEFAULT no puede ser negativo (%d)", c.App.LowStockDefault)
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return b
}

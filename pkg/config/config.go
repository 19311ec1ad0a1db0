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

// MinJWTSecretLength largo mínimo aceptado para JWT_SECRET.
const MinJWTSecretLength = 32

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
// Se construye una sola vez en el arranque y se inyecta en cada componente.
type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Security  SecurityConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// IsDevelopment indica si se deben exponer detalles de errores internos.
func (c AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// Drivers de almacenamiento soportados.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
// Driver "memory" levanta el servidor sin base de datos (demos y pruebas manuales).
type DBConfig struct {
	Driver             string
	DatabaseURL        string
	Host               string
	Port               int
	User               string
	Password           string
	DBName             string
	SSLMode            string
	MaxConns           int
	StatementTimeoutMs int
	AutoMigrate        bool
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
	Secret          string
	ExpirationHours int
	Issuer          string
}

// TTL duración de tokens y sesiones.
func (c JWTConfig) TTL() time.Duration {
	return time.Duration(c.ExpirationHours) * time.Hour
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

// CORSConfig orígenes permitidos (FRONTEND_URL, separados por coma).
type CORSConfig struct {
	AllowedOrigins []string
}

// RateLimitConfig límites por IP.
type RateLimitConfig struct {
	Max      int
	LoginMax int
	Window   time.Duration
}

// SecurityConfig parámetros de hashing.
type SecurityConfig struct {
	BcryptCost int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo .env).
// Las env vars tienen prioridad. Devuelve error si la configuración no es utilizable.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "lubricentro-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			Driver:             strings.ToLower(getString(v, "DB_DRIVER", DriverPostgres)),
			DatabaseURL:        getString(v, "DATABASE_URL", ""),
			Host:               getString(v, "DB_HOST", "localhost"),
			Port:               getInt(v, "DB_PORT", 5432),
			User:               getString(v, "DB_USER", "postgres"),
			Password:           getString(v, "DB_PASSWORD", ""),
			DBName:             getString(v, "DB_NAME", "lubricentro"),
			SSLMode:            getString(v, "DB_SSLMODE", "disable"),
			MaxConns:           getInt(v, "DB_MAX_CONNS", 25),
			StatementTimeoutMs: getInt(v, "DB_STATEMENT_TIMEOUT_MS", 15000),
			AutoMigrate:        getBool(v, "DB_AUTO_MIGRATE", false),
		},
		JWT: JWTConfig{
			Secret:          getString(v, "JWT_SECRET", ""),
			ExpirationHours: getInt(v, "JWT_EXPIRATION_HOURS", 24),
			Issuer:          getString(v, "JWT_ISSUER", "lubricentro-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 4485),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getString(v, "FRONTEND_URL", "http://localhost:3000")),
		},
		RateLimit: RateLimitConfig{
			Max:      getInt(v, "RATE_LIMIT_MAX", 100),
			LoginMax: getInt(v, "LOGIN_RATE_LIMIT_MAX", 5),
			Window:   time.Duration(getInt(v, "RATE_LIMIT_WINDOW_MINUTES", 15)) * time.Minute,
		},
		Security: SecurityConfig{
			BcryptCost: getInt(v, "BCRYPT_COST", 12),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate verifica los invariantes de la configuración. Reporta todos los problemas juntos.
func (c *Config) Validate() error {
	var errs []error
	if len(c.JWT.Secret) < MinJWTSecretLength {
		errs = append(errs, fmt.Errorf("JWT_SECRET debe tener al menos %d caracteres", MinJWTSecretLength))
	}
	if c.JWT.ExpirationHours <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRATION_HOURS debe ser mayor a 0"))
	}
	switch c.DB.Driver {
	case DriverPostgres:
		if c.DB.DatabaseURL == "" && (c.DB.Host == "" || c.DB.User == "" || c.DB.DBName == "") {
			errs = append(errs, errors.New("DATABASE_URL o DB_HOST/DB_USER/DB_NAME son requeridos"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER inválido: %q (postgres o memory)", c.DB.Driver))
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("HTTP_PORT inválido: %d", c.HTTP.Port))
	}
	if c.RateLimit.Max <= 0 || c.RateLimit.LoginMax <= 0 || c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("límites de rate limit deben ser positivos"))
	}
	if c.Security.BcryptCost < 4 || c.Security.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("BCRYPT_COST fuera de rango: %d", c.Security.BcryptCost))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
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
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.TrimSuffix(p, "/"))
		}
	}
	return out
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:       AppConfig{Env: "test"},
		DB:        DBConfig{Driver: DriverPostgres, Host: "localhost", User: "postgres", DBName: "lubricentro", Port: 5432, SSLMode: "disable"},
		JWT:       JWTConfig{Secret: "0123456789abcdef0123456789abcdef", ExpirationHours: 24},
		HTTP:      HTTPConfig{Host: "0.0.0.0", Port: 4485},
		RateLimit: RateLimitConfig{Max: 100, LoginMax: 5, Window: 15 * time.Minute},
		Security:  SecurityConfig{BcryptCost: 12},
	}
}

func TestValidate_ConfigCompleta(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_SecretCorto(t *testing.T) {
	cfg := validConfig()
	cfg.JWT.Secret = "corto"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate_ReportaTodosLosProblemas(t *testing.T) {
	cfg := validConfig()
	cfg.JWT.Secret = ""
	cfg.HTTP.Port = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "HTTP_PORT")
}

func TestValidate_Driver(t *testing.T) {
	cfg := validConfig()
	cfg.DB = DBConfig{Driver: DriverMemory}
	require.NoError(t, cfg.Validate(), "memory no necesita datos de conexión")

	cfg.DB.Driver = DriverPostgres
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")

	cfg.DB.Driver = "sqlite"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER")
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "lubricentro", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/lubricentro?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}

func TestLoad_LeeVariablesDeEntorno(t *testing.T) {
	t.Setenv("JWT_SECRET", "una-clave-bastante-larga-para-firmar-tokens")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("FRONTEND_URL", "http://a.local/, http://b.local")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL())
	assert.Equal(t, 12, cfg.Security.BcryptCost)
	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
}

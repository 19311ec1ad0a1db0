package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lubricentro-api/pkg/config"
)

func TestPoolConfig_DesdeParametrosSueltos(t *testing.T) {
	pc, err := poolConfig(config.DBConfig{
		Host: "localhost", Port: 5433, User: "lubri", Password: "p@ss:word",
		DBName: "lubricentro", SSLMode: "disable", StatementTimeoutMs: 5000,
	})
	require.NoError(t, err)

	assert.Equal(t, "localhost", pc.ConnConfig.Host)
	assert.EqualValues(t, 5433, pc.ConnConfig.Port)
	assert.Equal(t, "p@ss:word", pc.ConnConfig.Password)
	assert.Equal(t, "lubricentro", pc.ConnConfig.Database)
	assert.EqualValues(t, defaultMaxConns, pc.MaxConns)
	assert.EqualValues(t, minConns, pc.MinConns)
	assert.Equal(t, time.Hour, pc.MaxConnLifetime)
	assert.Equal(t, "5000", pc.ConnConfig.RuntimeParams["statement_timeout"])
	assert.Equal(t, "UTC", pc.ConnConfig.RuntimeParams["timezone"])
	assert.NotNil(t, pc.AfterConnect)
}

func TestPoolConfig_DatabaseURLYMaxConns(t *testing.T) {
	pc, err := poolConfig(config.DBConfig{
		DatabaseURL: "postgres://u:p@db.example.com:6543/app?sslmode=disable",
		MaxConns:    1,
	})
	require.NoError(t, err)

	assert.Equal(t, "db.example.com", pc.ConnConfig.Host)
	assert.EqualValues(t, 1, pc.MaxConns)
	assert.EqualValues(t, 1, pc.MinConns)
	_, ok := pc.ConnConfig.RuntimeParams["statement_timeout"]
	assert.False(t, ok)
}

func TestPoolConfig_DSNInvalido(t *testing.T) {
	_, err := poolConfig(config.DBConfig{DatabaseURL: "postgres://u:p@host:notaport/db"})
	assert.ErrorContains(t, err, "parse DSN")
}

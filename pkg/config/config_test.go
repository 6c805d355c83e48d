package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dental-inventario/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Report.ExpiringDays)
	assert.Equal(t, 10, cfg.Report.TopN)
	assert.Equal(t, "America/Santiago", cfg.App.Timezone)
	assert.False(t, cfg.DB.Configured(), "sin DATABASE_URL ni DB_HOST se usa el modo demo")
	assert.Equal(t, "America/Santiago", cfg.App.Location().String())
}

func TestLoad_ZonaHorariaInvalida(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("APP_TIMEZONE", "America/Atlantida")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_TIMEZONE")
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_HOST", "db.local")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("REPORT_EXPIRING_DAYS", "15")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.DB.Configured())
	assert.Equal(t, 15, cfg.Report.ExpiringDays)
	assert.Equal(t, "postgres://postgres:@db.local:6543/dental_inventario?sslmode=disable", cfg.DB.DSN())
}

func TestLoad_DemoModeForzado(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("DATABASE_URL", "postgres://u:p@h:5432/db")
	t.Setenv("DEMO_MODE", "true")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.False(t, cfg.DB.Configured())
}

func TestLoad_HorizonteInvalido(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("REPORT_EXPIRING_DAYS", "0")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_ProductionExigeSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

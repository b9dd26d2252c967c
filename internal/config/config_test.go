package config

import (
	"testing"
	"time"

	"github.com/inventorypos/salesdesk/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigReadsFileAndEnv(t *testing.T) {
	t.Setenv("SALESDESK_SALES_INVOICE_PREFIX", "SHOP")
	t.Setenv("SALESDESK_POSTGRES_HOST", "db.internal")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "SHOP", cfg.Sales.InvoicePrefix)
	assert.Equal(t, types.PrintFormatFullA4, cfg.Sales.DefaultPrintFormat)
	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, uint64(5), cfg.Postgres.ConnectRetries)
	assert.Equal(t, 5*time.Minute, cfg.Cache.CustomerTTL)
	assert.True(t, cfg.Events.Enabled)
	assert.Equal(t, 8, cfg.Sales.MaxCounters)
}

func TestValidateRejectsUnknownPrintFormat(t *testing.T) {
	cfg := GetDefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Sales.DefaultPrintFormat = "POSTER"
	assert.Error(t, cfg.Validate())

	cfg = GetDefaultConfig()
	cfg.Sales.InvoicePrefix = ""
	assert.Error(t, cfg.Validate())

	cfg = GetDefaultConfig()
	cfg.Sales.MaxCounters = 0
	assert.Error(t, cfg.Validate())
}

func TestGetDSN(t *testing.T) {
	pg := PostgresConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "salesdesk",
		Password: "secret",
		DBName:   "salesdesk",
		SSLMode:  "disable",
	}
	assert.Equal(t, "user=salesdesk password=secret dbname=salesdesk host=localhost port=5432 sslmode=disable", pg.GetDSN())
}

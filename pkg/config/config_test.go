package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamflow/teamflow-backend/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("crm-service")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "teamflow", cfg.Database.Database)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)

	assert.Equal(t, "teamflow", cfg.JWT.Issuer)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiry)
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	t.Setenv("TEAMFLOW_SERVER_PORT", "9090")
	t.Setenv("TEAMFLOW_DATABASE_HOST", "db.internal")
	t.Setenv("TEAMFLOW_JWT_SECRET", "super-secret")

	cfg, err := config.Load("crm-service")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "super-secret", cfg.JWT.Secret)
}

func TestLoad_DatabaseURLTakesPrecedence(t *testing.T) {
	t.Setenv("TEAMFLOW_DATABASE_URL", "postgres://app:pw@pg.internal:5433/crm?sslmode=require")

	cfg, err := config.Load("crm-service")
	require.NoError(t, err)

	assert.Equal(t, "pg.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "app", cfg.Database.User)
	assert.Equal(t, "crm", cfg.Database.Database)
	assert.Equal(t, "require", cfg.Database.SSLMode)

	dsn := cfg.Database.DSN()
	assert.Contains(t, dsn, "host=pg.internal")
	assert.Contains(t, dsn, "dbname=crm")
	assert.Contains(t, dsn, "sslmode=require")
}

func TestDatabaseConfig_DSN_FromFields(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "teamflow",
		Password: "devpassword",
		Database: "teamflow",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=teamflow password=devpassword dbname=teamflow sslmode=disable",
		cfg.DSN())
}

func TestDatabaseConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.DatabaseConfig
		environment string
		wantErr     bool
	}{
		{
			name:        "localhost allowed in development",
			cfg:         config.DatabaseConfig{Host: "localhost"},
			environment: config.EnvDevelopment,
			wantErr:     false,
		},
		{
			name:        "localhost rejected in production",
			cfg:         config.DatabaseConfig{Host: "localhost"},
			environment: config.EnvProduction,
			wantErr:     true,
		},
		{
			name:        "empty host rejected in staging",
			cfg:         config.DatabaseConfig{},
			environment: config.EnvStaging,
			wantErr:     true,
		},
		{
			name:        "URL satisfies production",
			cfg:         config.DatabaseConfig{URL: "postgres://app:pw@pg.internal/crm"},
			environment: config.EnvProduction,
			wantErr:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate(tt.environment)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadWithValidation_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("TEAMFLOW_SERVER_ENVIRONMENT", "production")
	t.Setenv("TEAMFLOW_DATABASE_HOST", "pg.internal")

	_, err := config.LoadWithValidation("crm-service")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TEAMFLOW_JWT_SECRET")
}

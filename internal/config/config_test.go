package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LLM_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.ChatModel)
	assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta/openai", cfg.LLM.APIBase)
	assert.Equal(t, 10*time.Second, cfg.LLM.CallTimeout())
	assert.Equal(t, 20, cfg.Search.ResultLimit)
	assert.Equal(t, "Shora", cfg.Company.AssistantName)
	assert.Equal(t, "roarrealty.ae", cfg.Company.Name)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LLM_API_BASE", "http://localhost:11434/v1/")
	t.Setenv("LLM_TIMEOUT_SECONDS", "3")
	t.Setenv("APP_ENV", "development")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://roarrealty.ae, https://admin.roarrealty.ae")
	t.Setenv("SEARCH_RESULT_LIMIT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:11434/v1", cfg.LLM.APIBase)
	assert.Equal(t, 3*time.Second, cfg.LLM.CallTimeout())
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, []string{"https://roarrealty.ae", "https://admin.roarrealty.ae"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 20, cfg.Search.ResultLimit)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"Unknown storage driver", "STORAGE_DRIVER", "mongodb"},
		{"Limit above cap", "SEARCH_RESULT_LIMIT", "500"},
		{"Zero timeout", "LLM_TIMEOUT_SECONDS", "0"},
		{"Bad company email", "COMPANY_EMAIL", "not-an-email"},
		{"Unknown environment", "APP_ENV", "qa"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestGetPostgreSQLDSN(t *testing.T) {
	cfg := &Config{PostgreSQL: PostgreSQLConfig{
		Host: "db", Port: 5432, User: "u", Password: "p", Database: "roar", SSLMode: "disable",
	}}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=roar sslmode=disable", cfg.GetPostgreSQLDSN())

	cfg.PostgreSQL.DSN = "postgres://u:p@db/roar"
	assert.Equal(t, "postgres://u:p@db/roar", cfg.GetPostgreSQLDSN())
}

package config

import (
	"testing"

	"github.com/invoiceai/invoiceai/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestGetDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, GetDefaultConfig().Validate())
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(c *Configuration)
		wantErr bool
	}{
		{name: "default", mutate: func(c *Configuration) {}},
		{name: "missing_secret", mutate: func(c *Configuration) { c.Auth.Secret = "" }, wantErr: true},
		{name: "unknown_provider", mutate: func(c *Configuration) { c.Auth.Provider = "ldap" }, wantErr: true},
		{name: "unknown_mode", mutate: func(c *Configuration) { c.Deployment.Mode = "batch" }, wantErr: true},
		{name: "supabase_without_url", mutate: func(c *Configuration) { c.Auth.Provider = types.AuthProviderSupabase }, wantErr: true},
		{
			name: "supabase_with_url",
			mutate: func(c *Configuration) {
				c.Auth.Provider = types.AuthProviderSupabase
				c.Auth.Supabase.BaseURL = "https://project.supabase.co"
			},
		},
		{name: "zero_completion_tokens", mutate: func(c *Configuration) { c.OpenAI.MaxCompletionTokens = 0 }, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			tc.mutate(cfg)
			if tc.wantErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}

func TestIsAdminEmail(t *testing.T) {
	auth := AuthConfig{AdminEmails: []string{" Admin@InvoiceAI.test ", "ops@invoiceai.test"}}

	assert.True(t, auth.IsAdminEmail("admin@invoiceai.test"))
	assert.True(t, auth.IsAdminEmail("OPS@invoiceai.test "))
	assert.False(t, auth.IsAdminEmail("owner@acme.test"))
	assert.False(t, AuthConfig{}.IsAdminEmail("admin@invoiceai.test"))
}

func TestPostgresURLs(t *testing.T) {
	pg := PostgresConfig{
		Host:     "db",
		Port:     5432,
		User:     "invoiceai",
		Password: "secret",
		DBName:   "invoices",
		SSLMode:  "disable",
	}
	assert.Equal(t, "user=invoiceai password=secret dbname=invoices host=db port=5432 sslmode=disable", pg.GetDSN())
	assert.Equal(t, "postgres://invoiceai:secret@db:5432/invoices?sslmode=disable", pg.GetMigrateURL())

	pg.URL = "postgres://u:p@remote:6543/app"
	assert.Equal(t, pg.URL, pg.GetDSN())
	assert.Equal(t, pg.URL, pg.GetMigrateURL())
}

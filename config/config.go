// Package config loads service configuration from the environment.
package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config describes the integrations service configuration.
type Config struct {
	Addr          string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	StateTTL      time.Duration
	CredentialTTL time.Duration
	Providers     map[string]ProviderCredentials
}

// ProviderCredentials holds the OAuth client registration for one provider.
// A provider is only wired into the service when its client id, secret and
// redirect URI are all present.
type ProviderCredentials struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scopes       []string
}

// serviceEnv holds raw env values for the service configuration.
type serviceEnv struct {
	Addr          string        `env:"INTEGRATIONS_ADDR"           envDefault:":8000"`
	RedisAddr     string        `env:"INTEGRATIONS_REDIS_ADDR"     envDefault:"localhost:6379"`
	RedisPassword string        `env:"INTEGRATIONS_REDIS_PASSWORD"`
	RedisDB       int           `env:"INTEGRATIONS_REDIS_DB"       envDefault:"0"`
	StateTTL      time.Duration `env:"INTEGRATIONS_STATE_TTL"      envDefault:"10m"`
	CredentialTTL time.Duration `env:"INTEGRATIONS_CREDENTIAL_TTL" envDefault:"10m"`

	HubSpotClientID     string   `env:"INTEGRATIONS_HUBSPOT_CLIENT_ID"`
	HubSpotClientSecret string   `env:"INTEGRATIONS_HUBSPOT_CLIENT_SECRET"`
	HubSpotRedirectURI  string   `env:"INTEGRATIONS_HUBSPOT_REDIRECT_URI"`
	HubSpotScopes       []string `env:"INTEGRATIONS_HUBSPOT_SCOPES"  envSeparator:","`

	NotionClientID     string   `env:"INTEGRATIONS_NOTION_CLIENT_ID"`
	NotionClientSecret string   `env:"INTEGRATIONS_NOTION_CLIENT_SECRET"`
	NotionRedirectURI  string   `env:"INTEGRATIONS_NOTION_REDIRECT_URI"`
	NotionScopes       []string `env:"INTEGRATIONS_NOTION_SCOPES"   envSeparator:","`

	AirtableClientID     string   `env:"INTEGRATIONS_AIRTABLE_CLIENT_ID"`
	AirtableClientSecret string   `env:"INTEGRATIONS_AIRTABLE_CLIENT_SECRET"`
	AirtableRedirectURI  string   `env:"INTEGRATIONS_AIRTABLE_REDIRECT_URI"`
	AirtableScopes       []string `env:"INTEGRATIONS_AIRTABLE_SCOPES" envSeparator:","`
}

// Load reads the service configuration from environment variables.
func Load() (Config, error) {
	var raw serviceEnv
	if err := env.Parse(&raw); err != nil {
		return Config{}, err
	}

	providers := make(map[string]ProviderCredentials)
	add := func(name, id, secret, redirect string, scopes []string) {
		if id == "" || secret == "" || redirect == "" {
			return
		}
		providers[name] = ProviderCredentials{
			ClientID:     id,
			ClientSecret: secret,
			RedirectURI:  redirect,
			Scopes:       trimCSV(scopes),
		}
	}
	add("hubspot", raw.HubSpotClientID, raw.HubSpotClientSecret, raw.HubSpotRedirectURI, raw.HubSpotScopes)
	add("notion", raw.NotionClientID, raw.NotionClientSecret, raw.NotionRedirectURI, raw.NotionScopes)
	add("airtable", raw.AirtableClientID, raw.AirtableClientSecret, raw.AirtableRedirectURI, raw.AirtableScopes)

	return Config{
		Addr:          raw.Addr,
		RedisAddr:     raw.RedisAddr,
		RedisPassword: raw.RedisPassword,
		RedisDB:       raw.RedisDB,
		StateTTL:      raw.StateTTL,
		CredentialTTL: raw.CredentialTTL,
		Providers:     providers,
	}, nil
}

// trimCSV removes empty entries from a CSV-split slice.
func trimCSV(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	result := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			result = append(result, v)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

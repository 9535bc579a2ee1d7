package airtable

import (
	"golang.org/x/oauth2"

	"github.com/Seann-Moser/integrations/integration"
)

// Provider wires the Airtable OAuth endpoints to the configured client
// application. Airtable's authorization server mandates PKCE, so the flow
// binds a code verifier to the state token.
func Provider(clientID, clientSecret, redirectURI string, scopes []string) *integration.Provider {
	if len(scopes) == 0 {
		scopes = []string{"data.records:read", "schema.bases:read"}
	}
	return &integration.Provider{
		Name: "airtable",
		OAuth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   "https://airtable.com/oauth2/v1/authorize",
				TokenURL:  "https://airtable.com/oauth2/v1/token",
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		PKCE:    true,
		Fetcher: New(),
	}
}

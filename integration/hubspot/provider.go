package hubspot

import (
	"golang.org/x/oauth2"

	"github.com/Seann-Moser/integrations/integration"
)

// Provider wires the HubSpot OAuth endpoints to the configured client
// application.
func Provider(clientID, clientSecret, redirectURI string, scopes []string) *integration.Provider {
	if len(scopes) == 0 {
		scopes = []string{"crm.objects.contacts.read", "oauth"}
	}
	return &integration.Provider{
		Name: "hubspot",
		OAuth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://app.hubspot.com/oauth/authorize",
				TokenURL: "https://api.hubapi.com/oauth/v1/token",
			},
		},
		Fetcher: New(),
	}
}

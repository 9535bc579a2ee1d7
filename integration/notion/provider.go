package notion

import (
	"golang.org/x/oauth2"

	"github.com/Seann-Moser/integrations/integration"
)

// Provider wires the Notion OAuth endpoints to the configured client
// application. Notion authenticates the token request with basic auth and
// requires owner=user on the authorize URL.
func Provider(clientID, clientSecret, redirectURI string, scopes []string) *integration.Provider {
	return &integration.Provider{
		Name: "notion",
		OAuth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   "https://api.notion.com/v1/oauth/authorize",
				TokenURL:  "https://api.notion.com/v1/oauth/token",
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		AuthCodeOptions: []oauth2.AuthCodeOption{
			oauth2.SetAuthURLParam("owner", "user"),
		},
		Fetcher: New(),
	}
}

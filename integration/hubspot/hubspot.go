// Package hubspot fetches CRM objects (contacts, companies, deals) and
// maps them into normalized integration items.
package hubspot

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Seann-Moser/integrations/integration"
)

const (
	defaultBaseURL   = "https://api.hubapi.com"
	defaultAppURL    = "https://app.hubspot.com"
	defaultPageLimit = 100
)

var _ integration.Fetcher = (*Client)(nil)

// Client lists a HubSpot account's CRM objects. The zero value is not
// usable; construct with New.
type Client struct {
	// BaseURL and AppURL are overridable for tests.
	BaseURL    string
	AppURL     string
	HTTPClient *http.Client
	PageLimit  int
}

// New returns a Client against the public HubSpot API.
func New() *Client {
	return &Client{
		BaseURL:   defaultBaseURL,
		AppURL:    defaultAppURL,
		PageLimit: defaultPageLimit,
	}
}

type crmObject struct {
	ID         string            `json:"id"`
	Properties map[string]string `json:"properties"`
	CreatedAt  string            `json:"createdAt"`
	UpdatedAt  string            `json:"updatedAt"`
}

type objectPage struct {
	Results []crmObject `json:"results"`
	Paging  struct {
		Next struct {
			After string `json:"after"`
		} `json:"next"`
	} `json:"paging"`
}

// ListItems fetches contacts, companies and deals and concatenates them.
// A failure on any kind aborts the whole call with no partial result.
func (c *Client) ListItems(ctx context.Context, credentials string) ([]integration.Item, error) {
	token, err := integration.AccessToken(credentials)
	if err != nil {
		return nil, err
	}

	kinds := []struct {
		path string
		kind string
		name func(crmObject) string
	}{
		{"contacts", "Contact", contactName},
		{"companies", "Company", propertyName("name", "Unnamed Company")},
		{"deals", "Deal", propertyName("dealname", "Unnamed Deal")},
	}

	var items []integration.Item
	for _, k := range kinds {
		objects, err := c.listObjects(ctx, token, k.path, k.kind)
		if err != nil {
			return nil, err
		}
		for _, o := range objects {
			items = append(items, integration.Item{
				ID:               o.ID,
				Type:             k.kind,
				Name:             k.name(o),
				CreationTime:     o.CreatedAt,
				LastModifiedTime: o.UpdatedAt,
				URL:              fmt.Sprintf("%s/contacts/%s", c.AppURL, o.ID),
			})
		}
	}
	return items, nil
}

// listObjects pages through one CRM object collection via the after
// cursor.
func (c *Client) listObjects(ctx context.Context, token, path, kind string) ([]crmObject, error) {
	var out []crmObject
	after := ""
	for {
		q := url.Values{}
		q.Set("limit", fmt.Sprint(c.PageLimit))
		if after != "" {
			q.Set("after", after)
		}
		u := fmt.Sprintf("%s/crm/v3/objects/%s?%s", c.BaseURL, path, q.Encode())
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")

		var page objectPage
		if err := integration.DoJSON(c.HTTPClient, req, "hubspot", kind, &page); err != nil {
			return nil, err
		}
		out = append(out, page.Results...)
		if page.Paging.Next.After == "" {
			return out, nil
		}
		after = page.Paging.Next.After
	}
}

func contactName(o crmObject) string {
	return strings.TrimSpace(o.Properties["firstname"] + " " + o.Properties["lastname"])
}

func propertyName(key, fallback string) func(crmObject) string {
	return func(o crmObject) string {
		if v := o.Properties[key]; v != "" {
			return v
		}
		return fallback
	}
}

// Package airtable fetches bases and their tables from the metadata API
// and maps them into normalized integration items. Bases are directories;
// tables carry their base as parent.
package airtable

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Seann-Moser/integrations/integration"
)

const (
	defaultBaseURL = "https://api.airtable.com"
	defaultAppURL  = "https://airtable.com"
)

var _ integration.Fetcher = (*Client)(nil)

// Client lists an Airtable account's bases and tables.
type Client struct {
	BaseURL    string
	AppURL     string
	HTTPClient *http.Client
}

// New returns a Client against the public Airtable API.
func New() *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		AppURL:  defaultAppURL,
	}
}

type base struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type basePage struct {
	Bases  []base `json:"bases"`
	Offset string `json:"offset"`
}

type table struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type tablePage struct {
	Tables []table `json:"tables"`
}

// ListItems fetches every base, then every base's tables. A failure on
// either level aborts the whole call with no partial result.
func (c *Client) ListItems(ctx context.Context, credentials string) ([]integration.Item, error) {
	token, err := integration.AccessToken(credentials)
	if err != nil {
		return nil, err
	}

	bases, err := c.listBases(ctx, token)
	if err != nil {
		return nil, err
	}

	var items []integration.Item
	for _, b := range bases {
		items = append(items, integration.Item{
			ID:        b.ID,
			Type:      "Base",
			Name:      b.Name,
			URL:       fmt.Sprintf("%s/%s", c.AppURL, b.ID),
			Directory: true,
		})
		tables, err := c.listTables(ctx, token, b.ID)
		if err != nil {
			return nil, err
		}
		for _, t := range tables {
			items = append(items, integration.Item{
				ID:         t.ID,
				Type:       "Table",
				Name:       t.Name,
				URL:        fmt.Sprintf("%s/%s/%s", c.AppURL, b.ID, t.ID),
				ParentID:   b.ID,
				ParentName: b.Name,
			})
		}
	}
	return items, nil
}

// listBases pages through the base list via the offset cursor.
func (c *Client) listBases(ctx context.Context, token string) ([]base, error) {
	var out []base
	offset := ""
	for {
		u := c.BaseURL + "/v0/meta/bases"
		if offset != "" {
			u += "?offset=" + url.QueryEscape(offset)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)

		var page basePage
		if err := integration.DoJSON(c.HTTPClient, req, "airtable", "Base", &page); err != nil {
			return nil, err
		}
		out = append(out, page.Bases...)
		if page.Offset == "" {
			return out, nil
		}
		offset = page.Offset
	}
}

func (c *Client) listTables(ctx context.Context, token, baseID string) ([]table, error) {
	u := fmt.Sprintf("%s/v0/meta/bases/%s/tables", c.BaseURL, baseID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	var page tablePage
	if err := integration.DoJSON(c.HTTPClient, req, "airtable", "Table", &page); err != nil {
		return nil, err
	}
	return page.Tables, nil
}

// Package notion fetches workspace objects (pages and databases) via the
// search API and maps them into normalized integration items.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Seann-Moser/integrations/integration"
)

const (
	defaultBaseURL   = "https://api.notion.com"
	notionVersion    = "2022-06-28"
	defaultPageLimit = 100
)

var _ integration.Fetcher = (*Client)(nil)

// Client lists a Notion workspace's pages and databases.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	PageLimit  int
}

// New returns a Client against the public Notion API.
func New() *Client {
	return &Client{
		BaseURL:   defaultBaseURL,
		PageLimit: defaultPageLimit,
	}
}

type richText struct {
	PlainText string `json:"plain_text"`
}

type searchResult struct {
	Object         string     `json:"object"`
	ID             string     `json:"id"`
	CreatedTime    string     `json:"created_time"`
	LastEditedTime string     `json:"last_edited_time"`
	URL            string     `json:"url"`
	Title          []richText `json:"title"`
	Properties     map[string]struct {
		Type  string     `json:"type"`
		Title []richText `json:"title"`
	} `json:"properties"`
	Parent struct {
		Type       string `json:"type"`
		DatabaseID string `json:"database_id"`
		PageID     string `json:"page_id"`
	} `json:"parent"`
}

type searchPage struct {
	Results    []searchResult `json:"results"`
	HasMore    bool           `json:"has_more"`
	NextCursor string         `json:"next_cursor"`
}

// ListItems walks the search endpoint with cursor pagination. Databases
// become directory items; page parents are carried when present.
func (c *Client) ListItems(ctx context.Context, credentials string) ([]integration.Item, error) {
	token, err := integration.AccessToken(credentials)
	if err != nil {
		return nil, err
	}

	var items []integration.Item
	cursor := ""
	for {
		body := map[string]any{"page_size": c.PageLimit}
		if cursor != "" {
			body["start_cursor"] = cursor
		}
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/search", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Notion-Version", notionVersion)
		req.Header.Set("Content-Type", "application/json")

		var page searchPage
		if err := integration.DoJSON(c.HTTPClient, req, "notion", "Search", &page); err != nil {
			return nil, err
		}
		for _, r := range page.Results {
			items = append(items, mapResult(r))
		}
		if !page.HasMore || page.NextCursor == "" {
			return items, nil
		}
		cursor = page.NextCursor
	}
}

func mapResult(r searchResult) integration.Item {
	item := integration.Item{
		ID:               r.ID,
		Type:             objectType(r.Object),
		Name:             title(r),
		CreationTime:     r.CreatedTime,
		LastModifiedTime: r.LastEditedTime,
		URL:              r.URL,
		Directory:        r.Object == "database",
	}
	switch r.Parent.Type {
	case "database_id":
		item.ParentID = r.Parent.DatabaseID
	case "page_id":
		item.ParentID = r.Parent.PageID
	}
	return item
}

func objectType(object string) string {
	if object == "" {
		return "Unknown"
	}
	return strings.ToUpper(object[:1]) + object[1:]
}

// title joins the database-level title when present, otherwise the first
// title-typed property of a page.
func title(r searchResult) string {
	if name := joinPlainText(r.Title); name != "" {
		return name
	}
	for _, p := range r.Properties {
		if p.Type == "title" {
			if name := joinPlainText(p.Title); name != "" {
				return name
			}
		}
	}
	return "Untitled"
}

func joinPlainText(parts []richText) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(p.PlainText)
	}
	return strings.TrimSpace(b.String())
}

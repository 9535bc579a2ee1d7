package hubspot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Seann-Moser/integrations/integration"
)

func testClient(srv *httptest.Server) *Client {
	c := New()
	c.BaseURL = srv.URL
	c.AppURL = "https://app.hubspot.example"
	c.HTTPClient = srv.Client()
	return c
}

const creds = `{"access_token":"tok1","token_type":"bearer"}`

func crmHandler(t *testing.T, pages map[string]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok1" {
			t.Errorf("Authorization = %q, want Bearer tok1", got)
		}
		body, ok := pages[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, body)
	}
}

func TestListItems(t *testing.T) {
	srv := httptest.NewServer(crmHandler(t, map[string]string{
		"/crm/v3/objects/contacts": `{"results":[
			{"id":"1","properties":{"firstname":"Ada","lastname":"Lovelace"},"createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-02-01T00:00:00Z"},
			{"id":"2","properties":{"firstname":"Grace","lastname":"Hopper"},"createdAt":"2024-01-02T00:00:00Z","updatedAt":"2024-02-02T00:00:00Z"}]}`,
		"/crm/v3/objects/companies": `{"results":[
			{"id":"3","properties":{"name":"Initech"},"createdAt":"2024-01-03T00:00:00Z","updatedAt":"2024-02-03T00:00:00Z"}]}`,
		"/crm/v3/objects/deals": `{"results":[]}`,
	}))
	defer srv.Close()

	items, err := testClient(srv).ListItems(context.Background(), creds)
	if err != nil {
		t.Fatalf("ListItems error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	wantTypes := []string{"Contact", "Contact", "Company"}
	for i, it := range items {
		if it.Type != wantTypes[i] {
			t.Errorf("items[%d].Type = %q, want %q", i, it.Type, wantTypes[i])
		}
		if it.URL == "" {
			t.Errorf("items[%d].URL is empty", i)
		}
	}
	if items[0].Name != "Ada Lovelace" {
		t.Errorf("contact name = %q, want Ada Lovelace", items[0].Name)
	}
	if items[2].Name != "Initech" {
		t.Errorf("company name = %q, want Initech", items[2].Name)
	}
	if items[0].CreationTime != "2024-01-01T00:00:00Z" {
		t.Errorf("creation time = %q", items[0].CreationTime)
	}
}

func TestListItemsFallbackNames(t *testing.T) {
	srv := httptest.NewServer(crmHandler(t, map[string]string{
		"/crm/v3/objects/contacts":  `{"results":[]}`,
		"/crm/v3/objects/companies": `{"results":[{"id":"9","properties":{}}]}`,
		"/crm/v3/objects/deals":     `{"results":[{"id":"10","properties":{}}]}`,
	}))
	defer srv.Close()

	items, err := testClient(srv).ListItems(context.Background(), creds)
	if err != nil {
		t.Fatalf("ListItems error: %v", err)
	}
	if items[0].Name != "Unnamed Company" || items[1].Name != "Unnamed Deal" {
		t.Errorf("fallback names = %q, %q", items[0].Name, items[1].Name)
	}
}

func TestListItemsPagination(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/crm/v3/objects/contacts" {
			fmt.Fprint(w, `{"results":[]}`)
			return
		}
		calls++
		if r.URL.Query().Get("after") == "" {
			fmt.Fprint(w, `{"results":[{"id":"1","properties":{"firstname":"A"}}],"paging":{"next":{"after":"cursor-2"}}}`)
			return
		}
		if got := r.URL.Query().Get("after"); got != "cursor-2" {
			t.Errorf("after = %q, want cursor-2", got)
		}
		fmt.Fprint(w, `{"results":[{"id":"2","properties":{"firstname":"B"}}]}`)
	}))
	defer srv.Close()

	items, err := testClient(srv).ListItems(context.Background(), creds)
	if err != nil {
		t.Fatalf("ListItems error: %v", err)
	}
	if calls != 2 {
		t.Errorf("contact pages fetched = %d, want 2", calls)
	}
	if len(items) != 2 {
		t.Errorf("got %d items, want 2", len(items))
	}
}

func TestListItemsFailClosed(t *testing.T) {
	// Second resource kind fails; no partial list may come back.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/crm/v3/objects/contacts":
			fmt.Fprint(w, `{"results":[{"id":"1","properties":{"firstname":"A"}}]}`)
		case "/crm/v3/objects/companies":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			fmt.Fprint(w, `{"results":[]}`)
		}
	}))
	defer srv.Close()

	items, err := testClient(srv).ListItems(context.Background(), creds)
	if items != nil {
		t.Errorf("got partial items: %v", items)
	}
	var ferr *integration.FetchError
	if !errors.As(err, &ferr) {
		t.Fatalf("err = %v, want FetchError", err)
	}
	if ferr.StatusCode != http.StatusInternalServerError || ferr.Kind != "Company" || ferr.Provider != "hubspot" {
		t.Errorf("FetchError = %+v", ferr)
	}
}

func TestListItemsBadCredentials(t *testing.T) {
	c := New()
	for _, blob := range []string{"", "{}", "not-json"} {
		if _, err := c.ListItems(context.Background(), blob); !errors.Is(err, integration.ErrInvalidCredentials) {
			t.Errorf("ListItems(%q) err = %v, want ErrInvalidCredentials", blob, err)
		}
	}
}

func TestProviderEndpoints(t *testing.T) {
	p := Provider("id", "secret", "https://host/integrations/hubspot/oauth2callback", nil)
	if p.Name != "hubspot" || p.PKCE {
		t.Errorf("unexpected provider shape: %+v", p)
	}
	if p.OAuth.Endpoint.TokenURL != "https://api.hubapi.com/oauth/v1/token" {
		t.Errorf("token url = %q", p.OAuth.Endpoint.TokenURL)
	}
	if len(p.OAuth.Scopes) == 0 {
		t.Error("default scopes missing")
	}
}

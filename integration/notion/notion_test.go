package notion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Seann-Moser/integrations/integration"
)

const creds = `{"access_token":"tok1"}`

func TestListItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/search" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Notion-Version"); got != notionVersion {
			t.Errorf("Notion-Version = %q", got)
		}
		fmt.Fprint(w, `{"results":[
			{"object":"database","id":"db1","created_time":"2024-01-01T00:00:00Z","last_edited_time":"2024-02-01T00:00:00Z","url":"https://notion.so/db1","title":[{"plain_text":"Tasks"}]},
			{"object":"page","id":"p1","created_time":"2024-01-02T00:00:00Z","last_edited_time":"2024-02-02T00:00:00Z","url":"https://notion.so/p1",
			 "parent":{"type":"database_id","database_id":"db1"},
			 "properties":{"Name":{"type":"title","title":[{"plain_text":"Ship "},{"plain_text":"it"}]}}},
			{"object":"page","id":"p2","url":"https://notion.so/p2","parent":{"type":"page_id","page_id":"p1"},"properties":{}}
		],"has_more":false}`)
	}))
	defer srv.Close()

	c := New()
	c.BaseURL = srv.URL
	c.HTTPClient = srv.Client()

	items, err := c.ListItems(context.Background(), creds)
	if err != nil {
		t.Fatalf("ListItems error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	db := items[0]
	if db.Type != "Database" || !db.Directory || db.Name != "Tasks" {
		t.Errorf("database item = %+v", db)
	}
	page := items[1]
	if page.Type != "Page" || page.Name != "Ship it" || page.ParentID != "db1" {
		t.Errorf("page item = %+v", page)
	}
	if items[2].Name != "Untitled" || items[2].ParentID != "p1" {
		t.Errorf("untitled item = %+v", items[2])
	}
}

func TestListItemsPagination(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		var body struct {
			StartCursor string `json:"start_cursor"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if calls == 1 {
			if body.StartCursor != "" {
				t.Errorf("first call has cursor %q", body.StartCursor)
			}
			fmt.Fprint(w, `{"results":[{"object":"page","id":"p1","url":"u1"}],"has_more":true,"next_cursor":"c2"}`)
			return
		}
		if body.StartCursor != "c2" {
			t.Errorf("second call cursor = %q, want c2", body.StartCursor)
		}
		fmt.Fprint(w, `{"results":[{"object":"page","id":"p2","url":"u2"}],"has_more":false}`)
	}))
	defer srv.Close()

	c := New()
	c.BaseURL = srv.URL
	c.HTTPClient = srv.Client()

	items, err := c.ListItems(context.Background(), creds)
	if err != nil {
		t.Fatalf("ListItems error: %v", err)
	}
	if calls != 2 || len(items) != 2 {
		t.Errorf("calls = %d, items = %d, want 2 and 2", calls, len(items))
	}
}

func TestListItemsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New()
	c.BaseURL = srv.URL
	c.HTTPClient = srv.Client()

	items, err := c.ListItems(context.Background(), creds)
	if items != nil {
		t.Errorf("got items despite error: %v", items)
	}
	var ferr *integration.FetchError
	if !errors.As(err, &ferr) || ferr.StatusCode != http.StatusUnauthorized {
		t.Errorf("err = %v, want 401 FetchError", err)
	}
}

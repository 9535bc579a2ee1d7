package integration

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// DoJSON executes req and decodes the JSON body into out. Any non-2xx
// response becomes a FetchError tagged with the provider and resource
// kind; the body is drained so the connection can be reused.
func DoJSON(client *http.Client, req *http.Request, provider, kind string, out any) error {
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("integration: %s %s request: %w", provider, kind, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FetchError{Provider: provider, Kind: kind, StatusCode: resp.StatusCode}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("integration: %s %s decode: %w", provider, kind, err)
	}
	return nil
}

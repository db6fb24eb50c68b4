package httputils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// StatusError is returned for non-2xx responses so callers can map
// the upstream status code to their own error taxonomy.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bad status: %d - %s", e.Code, e.Body)
}

func PostJSON(ctx context.Context, client *http.Client, url string, body interface{}, resp interface{}) error {
	if client == nil {
		client = http.DefaultClient
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	r, err := client.Do(req)
	if err != nil {
		return err
	}
	defer r.Body.Close()
	if r.StatusCode < 200 || r.StatusCode > 299 {
		b, _ := io.ReadAll(r.Body)
		return &StatusError{Code: r.StatusCode, Body: string(b)}
	}
	if resp != nil {
		return json.NewDecoder(r.Body).Decode(resp)
	}
	return nil
}

// PostJSONWithAuth is PostJSON plus a Bearer token header.
func PostJSONWithAuth(ctx context.Context, client *http.Client, url, token string, body interface{}, resp interface{}) error {
	if client == nil {
		client = http.DefaultClient
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	r, err := client.Do(req)
	if err != nil {
		return err
	}
	defer r.Body.Close()
	if r.StatusCode < 200 || r.StatusCode > 299 {
		b, _ := io.ReadAll(r.Body)
		return &StatusError{Code: r.StatusCode, Body: string(b)}
	}
	if resp != nil {
		return json.NewDecoder(r.Body).Decode(resp)
	}
	return nil
}

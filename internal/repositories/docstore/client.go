// Package docstore is the HTTP client for the external shared-document
// service. The service exposes exactly two operations per named document:
// fetch the whole document and replace the whole document. There is no
// partial update and no optimistic-lock token, so every mutation here is a
// full read-modify-replace cycle serialized behind an in-process mutex.
package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const accessKeyHeader = "X-Access-Key"

// Client talks to the document store service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient builds a store client for the given base URL and access key.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// getDocument fetches a named document into out. It reports whether the
// document exists; a missing document is not an error so callers can start
// from an empty one.
func (c *Client) getDocument(ctx context.Context, documentID string, out any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.documentURL(documentID), nil)
	if err != nil {
		return false, fmt.Errorf("building read request for document %s: %w", documentID, err)
	}
	req.Header.Set(accessKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("reading document %s: %w", documentID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, fmt.Errorf("reading document %s: store returned status %d", documentID, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("decoding document %s: %w", documentID, err)
	}
	return true, nil
}

// replaceDocument overwrites the named document with the JSON form of in.
func (c *Client) replaceDocument(ctx context.Context, documentID string, in any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoding document %s: %w", documentID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.documentURL(documentID), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building replace request for document %s: %w", documentID, err)
	}
	req.Header.Set(accessKeyHeader, c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("replacing document %s: %w", documentID, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("replacing document %s: store returned status %d", documentID, resp.StatusCode)
	}
	return nil
}

func (c *Client) documentURL(documentID string) string {
	return fmt.Sprintf("%s/documents/%s", c.baseURL, documentID)
}

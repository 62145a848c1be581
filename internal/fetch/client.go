// SPDX-License-Identifier: MIT

// Package fetch retrieves XMLTV guide documents over HTTP.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/epgview/epgview/internal/epg"
)

// ErrStatus marks a non-success HTTP status from the guide source, for
// errors.Is checks at the boundary.
var ErrStatus = errors.New("guide source: unexpected status")

// StatusError carries the HTTP status of a failed guide fetch.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("guide source: unexpected status %d", e.Code)
}

func (e *StatusError) Unwrap() error { return ErrStatus }

// Client fetches one fixed guide document URL.
type Client struct {
	url  string
	http *http.Client
}

// New creates a client for the given guide document URL. A non-positive
// timeout falls back to 30s.
func New(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		url:  url,
		http: &http.Client{Timeout: timeout},
	}
}

// URL returns the configured guide document URL.
func (c *Client) URL() string { return c.url }

// Guide fetches and decodes the guide document. Non-2xx responses yield a
// StatusError so the page boundary can surface the status code.
func (c *Client) Guide(ctx context.Context) (*epg.TV, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build guide request: %w", err)
	}
	req.Header.Set("Accept", "application/xml")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch guide: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &StatusError{Code: res.StatusCode}
	}

	doc, err := epg.Decode(res.Body)
	if err != nil {
		return nil, fmt.Errorf("parse guide: %w", err)
	}
	return doc, nil
}

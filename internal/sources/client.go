// SPDX-License-Identifier: MIT

// Package sources lists guide-source files from a repository contents API.
package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/epgview/epgview/internal/metrics"
)

// File is one listed guide-source file.
type File struct {
	// Name is the raw file name, e.g. "all_in_one.xml".
	Name string `json:"name"`
	// DisplayName is Name without its ".xml" extension.
	DisplayName string `json:"display_name"`
	// DownloadURL is the direct download location, offered for copying.
	DownloadURL string `json:"download_url"`
}

// Client queries a GitHub-style contents API for the configured repository
// paths. Requests are throttled client-side to stay within the listing API's
// unauthenticated rate budget.
type Client struct {
	base    string
	repo    string
	paths   []string
	http    *http.Client
	limiter *rate.Limiter
}

// New creates a listing client. base defaults to the public GitHub API; repo
// is "owner/name"; paths are the repository directories to list, queried in
// order.
func New(base, repo string, paths []string, timeout time.Duration) *Client {
	if base == "" {
		base = "https://api.github.com"
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		base:    strings.TrimRight(base, "/"),
		repo:    strings.Trim(repo, "/"),
		paths:   paths,
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Every(time.Second), 4),
	}
}

// List fetches every configured path and returns the XML files found, in
// path order then listing order. The first failing path aborts the listing.
func (c *Client) List(ctx context.Context) ([]File, error) {
	var out []File
	for _, path := range c.paths {
		files, err := c.listPath(ctx, path)
		if err != nil {
			metrics.RecordSourcesList("failure")
			return nil, fmt.Errorf("list %s: %w", path, err)
		}
		out = append(out, files...)
	}
	metrics.RecordSourcesList("success")
	return out, nil
}

func (c *Client) listPath(ctx context.Context, path string) ([]File, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/repos/%s/contents/%s", c.base, c.repo, strings.Trim(path, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", res.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}

	type entry struct {
		Name        string `json:"name"`
		DownloadURL string `json:"download_url"`
	}
	var entries []entry
	// Single-file paths answer with one object instead of an array.
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '{' {
		var single entry
		if err := json.Unmarshal(raw, &single); err != nil {
			return nil, fmt.Errorf("decode listing: %w", err)
		}
		entries = []entry{single}
	} else if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}

	files := make([]File, 0, len(entries))
	for _, e := range entries {
		if !strings.HasSuffix(strings.ToLower(e.Name), ".xml") {
			continue
		}
		files = append(files, File{
			Name:        e.Name,
			DisplayName: trimXMLExt(e.Name),
			DownloadURL: e.DownloadURL,
		})
	}
	return files, nil
}

func trimXMLExt(name string) string {
	if strings.HasSuffix(strings.ToLower(name), ".xml") {
		return name[:len(name)-len(".xml")]
	}
	return name
}

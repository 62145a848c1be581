// SPDX-License-Identifier: MIT

package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listingServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/acme/epgs/contents/all_in_one":
			// Single-file path answers with one object
			fmt.Fprint(w, `{"name":"all_in_one.xml","download_url":"https://raw.test/all_in_one.xml"}`)
		case "/repos/acme/epgs/contents/channels":
			fmt.Fprint(w, `[
				{"name":"news.XML","download_url":"https://raw.test/news.XML"},
				{"name":"readme.md","download_url":"https://raw.test/readme.md"},
				{"name":"sports.xml","download_url":"https://raw.test/sports.xml"}
			]`)
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestListFiltersAndOrders(t *testing.T) {
	srv := listingServer(t)
	defer srv.Close()

	c := New(srv.URL, "acme/epgs", []string{"all_in_one", "channels"}, 5*time.Second)
	files, err := c.List(context.Background())
	require.NoError(t, err)

	require.Len(t, files, 3)
	assert.Equal(t, "all_in_one.xml", files[0].Name)
	assert.Equal(t, "all_in_one", files[0].DisplayName)
	assert.Equal(t, "https://raw.test/all_in_one.xml", files[0].DownloadURL)

	// Uppercase extension passes the case-insensitive filter, name kept verbatim
	assert.Equal(t, "news.XML", files[1].Name)
	assert.Equal(t, "news", files[1].DisplayName)

	assert.Equal(t, "sports", files[2].DisplayName)
}

func TestListAbortsOnFirstFailure(t *testing.T) {
	srv := listingServer(t)
	defer srv.Close()

	c := New(srv.URL, "acme/epgs", []string{"missing", "channels"}, 5*time.Second)
	_, err := c.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "missing")
}

func TestListEmptyPaths(t *testing.T) {
	c := New("http://unused.test", "acme/epgs", nil, time.Second)
	files, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestTrimXMLExt(t *testing.T) {
	assert.Equal(t, "guide", trimXMLExt("guide.xml"))
	assert.Equal(t, "GUIDE", trimXMLExt("GUIDE.XML"))
	assert.Equal(t, "notes.txt", trimXMLExt("notes.txt"))
}

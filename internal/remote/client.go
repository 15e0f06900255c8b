// Package remote is the boundary to the external sound catalog. The vault
// core never inspects the remote protocol; it only needs the capability of
// producing a client from an API key and a download directory. Search and
// fetch live behind this boundary and are out of the core's scope.
package remote

import (
	"net/http"
	"time"
)

const defaultBaseURL = "https://freesound.org/apiv2"

// Client talks to the remote catalog on behalf of the vault.
type Client struct {
	apiKey      string
	downloadDir string
	baseURL     string
	httpClient  *http.Client
}

// NewClient constructs a catalog client that downloads into the given
// directory.
func NewClient(apiKey, downloadDir string) *Client {
	return &Client{
		apiKey:      apiKey,
		downloadDir: downloadDir,
		baseURL:     defaultBaseURL,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

// DownloadDir returns the directory downloaded sounds are saved to.
func (c *Client) DownloadDir() string {
	return c.downloadDir
}

package prismic

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	customTypesAPIBase = "https://customtypes.prismic.io"
	assetAPIBase       = "https://asset-api.prismic.io"

	// assetPageSize is the page size requested from the asset listing
	// endpoint.
	assetPageSize = 1000
)

// ManagementClient talks to the custom types API and the asset API. Both
// authenticate with the write-capable permanent token carried as a bearer
// credential plus a header naming the repository.
type ManagementClient struct {
	repository string
	token      string

	customTypesURL string
	assetAPIURL    string
	httpClient     *http.Client
}

// NewManagementClient creates a client for the custom types and asset APIs
// of the named repository.
func NewManagementClient(repository, token string) *ManagementClient {
	return &ManagementClient{
		repository:     repository,
		token:          token,
		customTypesURL: customTypesAPIBase,
		assetAPIURL:    assetAPIBase,
		httpClient: &http.Client{
			Timeout: 10 * time.Minute,
		},
	}
}

// get performs an authenticated GET and returns the response body. Any
// non-success status is an error carrying the response body.
func (c *ManagementClient) get(rawurl string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, rawurl, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("repository", c.repository)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}

// GetCustomTypes retrieves every custom type of the repository. The
// payloads are opaque to the backup and kept as raw JSON.
func (c *ManagementClient) GetCustomTypes() ([]json.RawMessage, error) {
	return c.getRawList(c.customTypesURL + "/customtypes")
}

// GetSharedSlices retrieves every shared slice of the repository.
func (c *ManagementClient) GetSharedSlices() ([]json.RawMessage, error) {
	return c.getRawList(c.customTypesURL + "/slices")
}

func (c *ManagementClient) getRawList(rawurl string) ([]json.RawMessage, error) {
	body, err := c.get(rawurl)
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return items, nil
}

// ListAssets retrieves the complete asset listing of the media library. It
// follows the cursor returned with each page until a page carries none.
// Any page that fails aborts the whole listing: a partial list is never
// returned.
func (c *ManagementClient) ListAssets() ([]Asset, error) {
	var all []Asset

	cursor := ""
	for {
		u, err := url.Parse(c.assetAPIURL + "/assets")
		if err != nil {
			return nil, fmt.Errorf("invalid asset API URL: %w", err)
		}
		q := u.Query()
		q.Set("limit", strconv.Itoa(assetPageSize))
		if cursor != "" {
			q.Set("cursor", cursor)
		}
		u.RawQuery = q.Encode()

		body, err := c.get(u.String())
		if err != nil {
			return nil, fmt.Errorf("list assets: %w", err)
		}

		var page AssetPage
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("failed to parse asset listing: %w", err)
		}

		all = append(all, page.Items...)
		if page.Cursor == "" {
			return all, nil
		}
		cursor = page.Cursor
	}
}

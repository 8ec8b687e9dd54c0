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
	contentAPIFormat = "https://%s.cdn.prismic.io/api/v2"

	// documentPageSize is the page size used when searching documents.
	documentPageSize = 100
)

// Client is a content API client for a single repository. It reads
// repository metadata, documents and tags using the read-only access token.
type Client struct {
	repository  string
	accessToken string
	routes      []Route

	baseURL    string
	httpClient *http.Client
}

// NewClient creates a content API client for the named repository. The
// client is configured with connection pooling, disabled HTTP/2 (for large
// payload stability) and a generous timeout so very large document exports
// do not get cut off mid-transfer.
func NewClient(repository, accessToken string, routes []Route) *Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		DisableCompression:  false,
		DisableKeepAlives:   false,
		MaxIdleConnsPerHost: 10,
		// Disable HTTP/2 to avoid stream errors with large payloads
		ForceAttemptHTTP2: false,
	}

	return &Client{
		repository:  repository,
		accessToken: accessToken,
		routes:      routes,
		baseURL:     fmt.Sprintf(contentAPIFormat, repository),
		httpClient: &http.Client{
			Timeout:   10 * time.Minute,
			Transport: transport,
		},
	}
}

// get performs a GET against the content API and returns the response body.
// Any non-success status is an error carrying the response body.
func (c *Client) get(rawurl string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, rawurl, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

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

// GetRepository retrieves the repository metadata (refs, tags, types and
// everything else the endpoint returns, retained verbatim).
func (c *Client) GetRepository() (*Repository, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid repository URL: %w", err)
	}
	q := u.Query()
	if c.accessToken != "" {
		q.Set("access_token", c.accessToken)
	}
	u.RawQuery = q.Encode()

	body, err := c.get(u.String())
	if err != nil {
		return nil, err
	}

	var repo Repository
	if err := json.Unmarshal(body, &repo); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &repo, nil
}

// GetDocuments retrieves every document of the repository. It resolves the
// master ref from the repository metadata, then follows the search
// endpoint's next_page links until the last page, accumulating results.
// The route resolution table, when present, is attached to the first
// request as a JSON query parameter.
func (c *Client) GetDocuments() ([]Document, error) {
	repo, err := c.GetRepository()
	if err != nil {
		return nil, fmt.Errorf("resolve master ref: %w", err)
	}

	ref := repo.MasterRef()
	if ref == "" {
		return nil, fmt.Errorf("repository %s has no refs", c.repository)
	}

	next, err := c.searchURL(ref)
	if err != nil {
		return nil, err
	}

	var docs []Document
	for next != "" {
		body, err := c.get(next)
		if err != nil {
			return nil, err
		}

		var page searchResponse
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}

		docs = append(docs, page.Results...)
		next = page.NextPage
	}

	return docs, nil
}

// searchURL builds the first page URL of the document search endpoint.
func (c *Client) searchURL(ref string) (string, error) {
	u, err := url.Parse(c.baseURL + "/documents/search")
	if err != nil {
		return "", fmt.Errorf("invalid search URL: %w", err)
	}

	q := u.Query()
	q.Set("ref", ref)
	q.Set("pageSize", strconv.Itoa(documentPageSize))
	if c.accessToken != "" {
		q.Set("access_token", c.accessToken)
	}
	if len(c.routes) > 0 {
		routes, err := json.Marshal(c.routes)
		if err != nil {
			return "", fmt.Errorf("failed to encode routes: %w", err)
		}
		q.Set("routes", string(routes))
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// GetTags retrieves the list of tags defined in the repository.
func (c *Client) GetTags() ([]string, error) {
	repo, err := c.GetRepository()
	if err != nil {
		return nil, err
	}
	return repo.Tags, nil
}

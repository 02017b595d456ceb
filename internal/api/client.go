// Package api talks to the remote pattern engine over HTTP.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/catalog"
)

const (
	defaultTimeout = 30 * time.Second
	searchFailed   = "Problem searching the input."
)

// Client is the gateway to the pattern engine
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds every request made by the client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewClient creates a gateway for the engine at baseURL
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the engine address
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchCatalog loads the available languages and pattern types
func (c *Client) FetchCatalog(ctx context.Context) (catalog.Catalog, error) {
	var cat catalog.Catalog
	if err := c.do(ctx, http.MethodGet, "/api/patterns", nil, &cat); err != nil {
		return catalog.Catalog{}, err
	}
	return cat, nil
}

// FetchRows loads the pattern matrix of a selection. The first row of the
// response is the header; each following row is keyed by it.
func (c *Client) FetchRows(ctx context.Context, sel catalog.Selection) (Rows, error) {
	path := patternPath("patterns", sel)

	var matrix [][]string
	if err := c.do(ctx, http.MethodGet, path, nil, &matrix); err != nil {
		return Rows{}, err
	}
	if len(matrix) == 0 {
		return Rows{}, WrapTransportError(http.MethodGet, c.baseURL+path, errors.New("empty pattern matrix"))
	}

	fields := matrix[0]
	records := make([]map[string]string, 0, len(matrix)-1)
	for _, row := range matrix[1:] {
		record := make(map[string]string, len(fields))
		for i, field := range fields {
			if i < len(row) {
				record[field] = row[i]
			} else {
				record[field] = ""
			}
		}
		records = append(records, record)
	}
	return Rows{Fields: fields, Records: records}, nil
}

// SaveRows stores the matrix for a selection. The header row is prepended
// here; callers pass data rows only. A failure is always a *SaveError.
func (c *Client) SaveRows(ctx context.Context, sel catalog.Selection, matrix [][]string) error {
	rows := make([][]string, 0, len(matrix)+1)
	rows = append(rows, append([]string(nil), Header...))
	rows = append(rows, matrix...)

	var resp saveResponse
	err := c.do(ctx, http.MethodPut, patternPath("patterns", sel), saveRequest{Rows: rows}, &resp)
	if err != nil {
		var te *TransportError
		if errors.As(err, &te) && te.Status != 0 {
			// the body of a rejected save may still carry a message
			return WrapSaveError(resp.Message, err)
		}
		return WrapSaveError("", err)
	}
	if !resp.Success {
		return WrapSaveError(resp.Message, nil)
	}
	return nil
}

// Parse matches input against the rows. Failures are reported in the
// result, never as an error.
func (c *Client) Parse(ctx context.Context, sel catalog.Selection, input string, matrix [][]string) ParseResult {
	var resp parseResponse
	err := c.do(ctx, http.MethodPost, patternPath("parse", sel), queryRequest{Input: input, Rows: nonNil(matrix)}, &resp)
	if err != nil {
		log.Printf("parse %s: %v", sel, err)
		return ParseResult{Error: true}
	}

	result := ParseResult{Error: resp.Error}
	if resp.Expression != nil {
		result.Expression = *resp.Expression
	}
	if resp.Evaluated != nil {
		result.Evaluated = *resp.Evaluated
	}
	return result
}

// Search scans a block of text. Failures are reported in the result, never
// as an error.
func (c *Client) Search(ctx context.Context, sel catalog.Selection, input string, matrix [][]string) SearchResult {
	var resp searchResponse
	err := c.do(ctx, http.MethodPost, patternPath("search", sel), queryRequest{Input: input, Rows: nonNil(matrix)}, &resp)
	if err != nil {
		log.Printf("search %s: %v", sel, err)
		if resp.Error {
			if result, derr := resp.decode(); derr == nil && result.Message != "" {
				return result
			}
		}
		return SearchResult{Message: searchFailed, Error: true}
	}

	result, err := resp.decode()
	if err != nil {
		log.Printf("search %s: %v", sel, err)
		return SearchResult{Message: searchFailed, Error: true}
	}
	return result
}

// do performs a JSON request. On a non-success status the body is still
// decoded into out when possible, so callers can read server messages.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := c.baseURL + path

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return WrapTransportError(method, u, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		return WrapTransportError(method, u, err)
	}
	defer res.Body.Close()
	log.Printf("%s %s -> %d (%s)", method, u, res.StatusCode, time.Since(start).Round(time.Millisecond))

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return WrapTransportError(method, u, err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		if out != nil && len(data) > 0 {
			_ = json.Unmarshal(data, out)
		}
		return &TransportError{Op: method, URL: u, Status: res.StatusCode}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return WrapTransportError(method, u, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func patternPath(endpoint string, sel catalog.Selection) string {
	return "/api/" + endpoint + "/" + url.PathEscape(sel.Language) + "/" + url.PathEscape(sel.PatternType)
}

// nonNil keeps an empty matrix encoded as [] rather than null
func nonNil(matrix [][]string) [][]string {
	if matrix == nil {
		return [][]string{}
	}
	return matrix
}

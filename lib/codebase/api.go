// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

package codebase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/unison-tools/uniscope/lib/definition"
	"github.com/unison-tools/uniscope/lib/ref"
)

// defaultTimeout bounds each API request when the caller does not
// supply its own HTTP client. UCM answers from a local codebase, so
// anything slower than this means the server is wedged.
const defaultTimeout = 10 * time.Second

// APIConfig configures an [APISource].
type APIConfig struct {
	// BaseURL is the root of UCM's local API, e.g.
	// "http://127.0.0.1:5858/api". Required.
	BaseURL string

	// HTTPClient is used for all requests. Defaults to a client with
	// a 10 second timeout.
	HTTPClient *http.Client

	// Cache, when set, is consulted before the network and populated
	// after successful fetches. Definitions only; listings and search
	// results are never cached.
	Cache *Cache

	// Logger is used for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// APISource fetches definitions from UCM's local HTTP API.
type APISource struct {
	baseURL    string
	httpClient *http.Client
	cache      *Cache
	logger     *slog.Logger
}

// NewAPISource creates an API source from the given configuration.
func NewAPISource(config APIConfig) (*APISource, error) {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("codebase: API base URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("codebase: invalid API base URL %q: %w", config.BaseURL, err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &APISource{
		baseURL:    baseURL,
		httpClient: httpClient,
		cache:      config.Cache,
		logger:     logger,
	}, nil
}

// Definition fetches one definition, consulting the disk cache first
// when one is configured. The raw response body is cached, not the
// decoded form, so cache entries survive decoder changes that tighten
// validation.
func (source *APISource) Definition(ctx context.Context, reference ref.Reference) (definition.Definition, error) {
	if source.cache != nil {
		if body, ok := source.cache.Get(reference); ok {
			decoded, err := pickDefinition(body, reference)
			if err == nil {
				return decoded, nil
			}
			// A cached body that no longer decodes is a miss, not a
			// failure: fall through to the network.
			source.logger.Debug("discarding undecodable cache entry",
				"ref", reference.String(), "error", err)
		}
	}

	query := url.Values{"names": {reference.String()}}
	body, err := source.get(ctx, "/getDefinition", query)
	if err != nil {
		return nil, err
	}

	decoded, err := pickDefinition(body, reference)
	if err != nil {
		return nil, err
	}
	if source.cache != nil {
		source.cache.Put(reference, body)
	}
	return decoded, nil
}

// pickDefinition decodes a definitions response and selects the entry
// for the requested reference. The server may return several
// definitions for one hash-qualified name; the one whose reference
// matches wins, else the first.
func pickDefinition(body []byte, reference ref.Reference) (definition.Definition, error) {
	definitions, missing, err := definition.Decode(body)
	if err != nil {
		return nil, err
	}
	if len(definitions) == 0 {
		return nil, fmt.Errorf("%w: %s (server reported missing: %v)", ErrNotFound, reference, missing)
	}
	for _, decoded := range definitions {
		if decoded.Reference().Equal(reference) {
			return decoded, nil
		}
	}
	return definitions[0], nil
}

// wireListEntry is one entry of the list endpoint's response. Child
// namespaces carry kind "namespace" and no hash.
type wireListEntry struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
	Hash string `json:"hash,omitempty"`
}

type wireListResponse struct {
	Namespace string          `json:"namespace"`
	Entries   []wireListEntry `json:"entries"`
}

// Browse lists the direct children of a namespace.
func (source *APISource) Browse(ctx context.Context, namespace ref.Name) (NamespaceListing, error) {
	query := url.Values{}
	if !namespace.IsZero() {
		query.Set("namespace", namespace.String())
	}
	body, err := source.get(ctx, "/list", query)
	if err != nil {
		return NamespaceListing{}, err
	}

	var response wireListResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return NamespaceListing{}, fmt.Errorf("codebase: decoding list response: %w", err)
	}

	listing := NamespaceListing{Path: namespace}
	for _, entry := range response.Entries {
		if entry.Kind == "namespace" {
			listing.Entries = append(listing.Entries, NamespaceEntry{
				Name:      entry.Name,
				Namespace: true,
			})
			continue
		}
		kind, err := ref.ParseKind(entry.Kind)
		if err != nil {
			return NamespaceListing{}, fmt.Errorf("codebase: list entry %q: %w", entry.Name, err)
		}
		qualified, err := qualifiedName(namespace, entry.Name)
		if err != nil {
			return NamespaceListing{}, fmt.Errorf("codebase: list entry %q: %w", entry.Name, err)
		}
		reference, err := ref.ParseReference(kind, qualified+entry.Hash)
		if err != nil {
			return NamespaceListing{}, fmt.Errorf("codebase: list entry %q: %w", entry.Name, err)
		}
		listing.Entries = append(listing.Entries, NamespaceEntry{
			Name: entry.Name,
			Ref:  reference,
		})
	}
	return listing, nil
}

// qualifiedName joins a namespace path and a relative entry name.
func qualifiedName(namespace ref.Name, entry string) (string, error) {
	if namespace.IsZero() {
		return entry, nil
	}
	child, err := namespace.Child(entry)
	if err != nil {
		return "", err
	}
	return child.String(), nil
}

type wireFindResult struct {
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	Hash      string `json:"hash"`
	Signature string `json:"signature,omitempty"`
}

type wireFindResponse struct {
	Results []wireFindResult `json:"results"`
}

// Find searches definitions by name.
func (source *APISource) Find(ctx context.Context, query string, limit int) ([]FindResult, error) {
	values := url.Values{"query": {query}}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	body, err := source.get(ctx, "/find", values)
	if err != nil {
		return nil, err
	}

	var response wireFindResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("codebase: decoding find response: %w", err)
	}

	results := make([]FindResult, 0, len(response.Results))
	for _, hit := range response.Results {
		kind, err := ref.ParseKind(hit.Kind)
		if err != nil {
			return nil, fmt.Errorf("codebase: find result %q: %w", hit.Name, err)
		}
		reference, err := ref.ParseReference(kind, hit.Name+hit.Hash)
		if err != nil {
			return nil, fmt.Errorf("codebase: find result %q: %w", hit.Name, err)
		}
		results = append(results, FindResult{Ref: reference, Signature: hit.Signature})
	}
	return results, nil
}

// get executes a GET request against the API and returns the response
// body. Non-2xx responses become an *APIError.
func (source *APISource) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	requestURL := source.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		requestURL += "?" + encoded
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("codebase: creating request: %w", err)
	}
	request.Header.Set("Accept", "application/json")

	response, err := source.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("codebase: GET %s: %w", path, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("codebase: reading response body: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: response.StatusCode,
			Path:       path,
			Body:       strings.TrimSpace(string(body)),
		}
	}
	return body, nil
}

// APIError is a non-2xx response from the codebase server.
type APIError struct {
	StatusCode int
	Path       string
	Body       string
}

func (err *APIError) Error() string {
	if err.Body == "" {
		return fmt.Sprintf("codebase server: %s: HTTP %d", err.Path, err.StatusCode)
	}
	return fmt.Sprintf("codebase server: %s: HTTP %d: %s", err.Path, err.StatusCode, err.Body)
}

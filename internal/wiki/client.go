// Package wiki talks to the MediaWiki query API for article search and
// summary lookup.
package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultBaseURL is the English Wikipedia query endpoint.
	DefaultBaseURL = "https://en.wikipedia.org/w/api.php"

	wikiLoggerName = "wiki"
	userAgent      = "cognitus (https://github.com/cognitus/cognitus)"

	defaultRequestTimeout = 10 * time.Second
)

// SearchResult is one search hit.
type SearchResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// TermSummary pairs a search term with its resolved article.
type TermSummary struct {
	Term    string `json:"term"`
	Title   string `json:"title"`
	Extract string `json:"extract"`
}

// Client queries a MediaWiki API endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient builds a client. An empty base URL selects English Wikipedia, a
// nil HTTP client gets a timeout-bounded default, and a nil logger disables
// logging.
func NewClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger.Named(wikiLoggerName),
	}
}

type searchResponse struct {
	Query struct {
		Search []struct {
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
		} `json:"search"`
	} `json:"query"`
}

type lookupResponse struct {
	Query struct {
		Pages []struct {
			Title   string `json:"title"`
			Extract string `json:"extract"`
			Missing bool   `json:"missing"`
		} `json:"pages"`
	} `json:"query"`
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// Search returns up to limit articles matching the term. Snippets arrive
// with highlight markup and are returned as plain text.
func (client *Client) Search(ctx context.Context, term string, limit int) ([]SearchResult, error) {
	if limit < 1 {
		return nil, fmt.Errorf("search limit must be at least 1, got %d", limit)
	}

	parameters := url.Values{}
	parameters.Set("action", "query")
	parameters.Set("list", "search")
	parameters.Set("format", "json")
	parameters.Set("formatversion", "2")
	parameters.Set("srwhat", "text")
	parameters.Set("srprop", "snippet")
	parameters.Set("srsearch", term)
	parameters.Set("srlimit", strconv.Itoa(limit))

	client.logger.Debug("searching articles", zap.String("term", term), zap.Int("limit", limit))

	var decoded searchResponse
	if requestError := client.get(ctx, parameters, &decoded); requestError != nil {
		return nil, fmt.Errorf("search %q: %w", term, requestError)
	}

	results := make([]SearchResult, 0, len(decoded.Query.Search))
	for _, hit := range decoded.Query.Search {
		results = append(results, SearchResult{
			Title:   hit.Title,
			Snippet: stripHTMLTags(hit.Snippet),
		})
	}
	return results, nil
}

// Lookup returns the plain-text opening of the titled article, capped at
// the requested sentence count.
func (client *Client) Lookup(ctx context.Context, title string, sentences int) (string, error) {
	if sentences < 1 {
		return "", fmt.Errorf("sentence count must be at least 1, got %d", sentences)
	}

	parameters := url.Values{}
	parameters.Set("action", "query")
	parameters.Set("prop", "extracts")
	parameters.Set("exlimit", "1")
	parameters.Set("explaintext", "1")
	parameters.Set("formatversion", "2")
	parameters.Set("format", "json")
	parameters.Set("titles", title)
	parameters.Set("exsentences", strconv.Itoa(sentences))

	client.logger.Debug("looking up article", zap.String("title", title), zap.Int("sentences", sentences))

	var decoded lookupResponse
	if requestError := client.get(ctx, parameters, &decoded); requestError != nil {
		return "", fmt.Errorf("lookup %q: %w", title, requestError)
	}
	if len(decoded.Query.Pages) == 0 {
		return "", fmt.Errorf("lookup %q: response carries no pages", title)
	}
	page := decoded.Query.Pages[0]
	if page.Missing || page.Extract == "" {
		return "", fmt.Errorf("lookup %q: no article found", title)
	}
	return page.Extract, nil
}

// SearchAndLookup searches for the term and returns the top hit's title and
// summary.
func (client *Client) SearchAndLookup(ctx context.Context, term string, sentences int) (string, string, error) {
	results, searchError := client.Search(ctx, term, 1)
	if searchError != nil {
		return "", "", searchError
	}
	if len(results) == 0 {
		return "", "", fmt.Errorf("search %q: no results", term)
	}

	title := results[0].Title
	extract, lookupError := client.Lookup(ctx, title, sentences)
	if lookupError != nil {
		return "", "", lookupError
	}
	return title, extract, nil
}

// SearchMany resolves several terms concurrently. Summaries keep input
// order; the first failure cancels the remaining requests.
func (client *Client) SearchMany(ctx context.Context, terms []string, sentences int) ([]TermSummary, error) {
	group, groupCtx := errgroup.WithContext(ctx)
	summaries := make([]TermSummary, len(terms))

	for index, term := range terms {
		index, term := index, term
		group.Go(func() error {
			title, extract, lookupError := client.SearchAndLookup(groupCtx, term, sentences)
			if lookupError != nil {
				return lookupError
			}
			summaries[index] = TermSummary{Term: term, Title: title, Extract: extract}
			return nil
		})
	}

	if waitError := group.Wait(); waitError != nil {
		return nil, waitError
	}
	return summaries, nil
}

func (client *Client) get(ctx context.Context, parameters url.Values, target any) error {
	requestURL := client.baseURL + "?" + parameters.Encode()
	request, requestError := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if requestError != nil {
		return fmt.Errorf("build request: %w", requestError)
	}
	request.Header.Set("User-Agent", userAgent)

	response, responseError := client.httpClient.Do(request)
	if responseError != nil {
		return fmt.Errorf("request failed: %w", responseError)
	}
	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", response.Status)
	}
	if decodeError := json.NewDecoder(response.Body).Decode(target); decodeError != nil {
		return fmt.Errorf("decode response: %w", decodeError)
	}
	return nil
}

func stripHTMLTags(snippet string) string {
	return html.UnescapeString(htmlTagPattern.ReplaceAllString(snippet, ""))
}

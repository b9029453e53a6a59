package wiki_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/cognitus/cognitus/internal/wiki"
)

const (
	searchResponseBody = `{"query":{"search":[` +
		`{"title":"Go (programming language)","snippet":"a &quot;<span class=\"searchmatch\">compiled</span>&quot; language"},` +
		`{"title":"Goroutine","snippet":"lightweight <span>thread</span>"}]}}`
	extractResponseBody = `{"query":{"pages":[{"title":"Go (programming language)","extract":"Go is a programming language."}]}}`
	missingResponseBody = `{"query":{"pages":[{"title":"Nonexistent","missing":true}]}}`
)

// newQueryServer dispatches fake MediaWiki responses on the list and prop
// request parameters.
func newQueryServer(t *testing.T, searchBody string, extractBody string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		query := request.URL.Query()
		switch {
		case query.Get("list") == "search":
			fmt.Fprint(responseWriter, searchBody)
		case query.Get("prop") == "extracts":
			fmt.Fprint(responseWriter, extractBody)
		default:
			http.NotFound(responseWriter, request)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestSearchStripsSnippetMarkup(t *testing.T) {
	server := newQueryServer(t, searchResponseBody, extractResponseBody)
	client := wiki.NewClient(server.URL, server.Client(), nil)

	results, searchError := client.Search(context.Background(), "go", 5)
	if searchError != nil {
		t.Fatalf("Search error: %v", searchError)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, expected 2", len(results))
	}
	if results[0].Title != "Go (programming language)" {
		t.Errorf("title = %q", results[0].Title)
	}
	if results[0].Snippet != `a "compiled" language` {
		t.Errorf("snippet = %q, expected markup stripped and entities unescaped", results[0].Snippet)
	}
	if results[1].Snippet != "lightweight thread" {
		t.Errorf("snippet = %q, expected markup stripped", results[1].Snippet)
	}
}

func TestSearchRejectsNonPositiveLimit(t *testing.T) {
	client := wiki.NewClient("http://127.0.0.1:0", nil, nil)
	if _, searchError := client.Search(context.Background(), "go", 0); searchError == nil {
		t.Fatal("expected error for zero limit, got nil")
	}
}

func TestLookupReturnsExtract(t *testing.T) {
	server := newQueryServer(t, searchResponseBody, extractResponseBody)
	client := wiki.NewClient(server.URL, server.Client(), nil)

	extract, lookupError := client.Lookup(context.Background(), "Go (programming language)", 2)
	if lookupError != nil {
		t.Fatalf("Lookup error: %v", lookupError)
	}
	if extract != "Go is a programming language." {
		t.Errorf("extract = %q", extract)
	}
}

func TestLookupMissingPage(t *testing.T) {
	server := newQueryServer(t, searchResponseBody, missingResponseBody)
	client := wiki.NewClient(server.URL, server.Client(), nil)

	_, lookupError := client.Lookup(context.Background(), "Nonexistent", 2)
	if lookupError == nil {
		t.Fatal("expected error for missing page, got nil")
	}
	if !strings.Contains(lookupError.Error(), "no article found") {
		t.Fatalf("unexpected error: %v", lookupError)
	}
}

func TestLookupRejectsNonPositiveSentences(t *testing.T) {
	client := wiki.NewClient("http://127.0.0.1:0", nil, nil)
	if _, lookupError := client.Lookup(context.Background(), "Go", 0); lookupError == nil {
		t.Fatal("expected error for zero sentences, got nil")
	}
}

func TestSearchAndLookupResolvesTopHit(t *testing.T) {
	server := newQueryServer(t, searchResponseBody, extractResponseBody)
	client := wiki.NewClient(server.URL, server.Client(), nil)

	title, extract, lookupError := client.SearchAndLookup(context.Background(), "go", 2)
	if lookupError != nil {
		t.Fatalf("SearchAndLookup error: %v", lookupError)
	}
	if title != "Go (programming language)" {
		t.Errorf("title = %q", title)
	}
	if extract != "Go is a programming language." {
		t.Errorf("extract = %q", extract)
	}
}

func TestSearchAndLookupNoResults(t *testing.T) {
	server := newQueryServer(t, `{"query":{"search":[]}}`, extractResponseBody)
	client := wiki.NewClient(server.URL, server.Client(), nil)

	_, _, lookupError := client.SearchAndLookup(context.Background(), "nothing", 2)
	if lookupError == nil {
		t.Fatal("expected error for empty search, got nil")
	}
	if !strings.Contains(lookupError.Error(), "no results") {
		t.Fatalf("unexpected error: %v", lookupError)
	}
}

func TestSearchManyKeepsInputOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		query := request.URL.Query()
		switch {
		case query.Get("list") == "search":
			term := query.Get("srsearch")
			fmt.Fprintf(responseWriter, `{"query":{"search":[{"title":"%s Article","snippet":""}]}}`, term)
		case query.Get("prop") == "extracts":
			title := query.Get("titles")
			fmt.Fprintf(responseWriter, `{"query":{"pages":[{"title":"%s","extract":"About %s."}]}}`, title, title)
		default:
			http.NotFound(responseWriter, request)
		}
	}))
	t.Cleanup(server.Close)
	client := wiki.NewClient(server.URL, server.Client(), nil)

	terms := []string{"charlie", "alpha", "bravo"}
	summaries, lookupError := client.SearchMany(context.Background(), terms, 1)
	if lookupError != nil {
		t.Fatalf("SearchMany error: %v", lookupError)
	}
	if len(summaries) != len(terms) {
		t.Fatalf("got %d summaries, expected %d", len(summaries), len(terms))
	}
	for index, term := range terms {
		if summaries[index].Term != term {
			t.Errorf("summaries[%d].Term = %q, expected %q", index, summaries[index].Term, term)
		}
		expectedTitle := term + " Article"
		if summaries[index].Title != expectedTitle {
			t.Errorf("summaries[%d].Title = %q, expected %q", index, summaries[index].Title, expectedTitle)
		}
		expectedExtract := fmt.Sprintf("About %s Article.", term)
		if summaries[index].Extract != expectedExtract {
			t.Errorf("summaries[%d].Extract = %q, expected %q", index, summaries[index].Extract, expectedExtract)
		}
	}
}

func TestSearchManyPropagatesFirstFailure(t *testing.T) {
	var requestCount atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		requestCount.Add(1)
		query := request.URL.Query()
		if query.Get("srsearch") == "broken" {
			http.Error(responseWriter, "upstream failure", http.StatusInternalServerError)
			return
		}
		switch {
		case query.Get("list") == "search":
			fmt.Fprint(responseWriter, `{"query":{"search":[{"title":"Fine","snippet":""}]}}`)
		case query.Get("prop") == "extracts":
			fmt.Fprint(responseWriter, `{"query":{"pages":[{"title":"Fine","extract":"Fine."}]}}`)
		default:
			http.NotFound(responseWriter, request)
		}
	}))
	t.Cleanup(server.Close)
	client := wiki.NewClient(server.URL, server.Client(), nil)

	_, lookupError := client.SearchMany(context.Background(), []string{"fine", "broken"}, 1)
	if lookupError == nil {
		t.Fatal("expected error from failing term, got nil")
	}
	if !strings.Contains(lookupError.Error(), "unexpected status") {
		t.Fatalf("unexpected error: %v", lookupError)
	}
	if requestCount.Load() == 0 {
		t.Fatal("expected at least one request")
	}
}

func TestSearchReportsUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		http.Error(responseWriter, "service unavailable", http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)
	client := wiki.NewClient(server.URL, server.Client(), nil)

	_, searchError := client.Search(context.Background(), "go", 1)
	if searchError == nil {
		t.Fatal("expected error for 503 response, got nil")
	}
	if !strings.Contains(searchError.Error(), "unexpected status") {
		t.Fatalf("unexpected error: %v", searchError)
	}
}

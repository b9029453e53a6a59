package output_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/cognitus/cognitus/internal/output"
	"github.com/cognitus/cognitus/internal/types"
)

// structureRawExpected defines the expected raw rendering of a nested structure.
const structureRawExpected = "--- Directory Structure: /repo ---\n" +
	"docs\n" +
	"  guides\n" +
	"src\n"

// structureRawMultipleExpected defines the expected raw rendering for two roots.
const structureRawMultipleExpected = structureRawExpected +
	"\n" +
	"--- Directory Structure: /tmp/empty ---\n"

// structureJSONExpected defines the expected JSON rendering of a single root.
const structureJSONExpected = "{\n" +
	"  \"path\": \"/repo\",\n" +
	"  \"name\": \"repo\",\n" +
	"  \"children\": [\n" +
	"    {\n" +
	"      \"path\": \"/repo/docs\",\n" +
	"      \"name\": \"docs\"\n" +
	"    }\n" +
	"  ]\n" +
	"}"

// structureXMLExpected defines the expected XML rendering of a single root.
const structureXMLExpected = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
	"<directory path=\"/repo\" name=\"repo\">\n" +
	"  <children>\n" +
	"    <directory path=\"/repo/docs\" name=\"docs\"></directory>\n" +
	"  </children>\n" +
	"</directory>"

// renderJSONErrorMessage defines the error message for JSON rendering failures.
const renderJSONErrorMessage = "render json error"

// renderXMLErrorMessage defines the error message for XML rendering failures.
const renderXMLErrorMessage = "render xml error"

func sampleStructure() *types.StructureNode {
	return &types.StructureNode{
		Path: "/repo",
		Name: "repo",
		Children: []*types.StructureNode{
			{
				Path: "/repo/docs",
				Name: "docs",
				Children: []*types.StructureNode{
					{Path: "/repo/docs/guides", Name: "guides"},
				},
			},
			{Path: "/repo/src", Name: "src"},
		},
	}
}

// TestRenderStructuresRaw verifies the header line and two-space indentation
// per nesting level.
func TestRenderStructuresRaw(testingInstance *testing.T) {
	actual := output.RenderStructuresRaw([]*types.StructureNode{sampleStructure()})
	if actual != structureRawExpected {
		testingInstance.Errorf("unexpected output: %q", actual)
	}
}

// TestRenderStructuresRawMultipleRoots verifies one header per root with a
// blank line between listings, and that an empty root renders only its header.
func TestRenderStructuresRawMultipleRoots(testingInstance *testing.T) {
	roots := []*types.StructureNode{
		sampleStructure(),
		{Path: "/tmp/empty", Name: "empty"},
	}
	actual := output.RenderStructuresRaw(roots)
	if actual != structureRawMultipleExpected {
		testingInstance.Errorf("unexpected output: %q", actual)
	}
}

// TestRenderStructuresRawIndentDepth verifies that indentation grows by two
// spaces for every additional level.
func TestRenderStructuresRawIndentDepth(testingInstance *testing.T) {
	deepest := &types.StructureNode{Path: "/r/a/b/c", Name: "c"}
	middle := &types.StructureNode{Path: "/r/a/b", Name: "b", Children: []*types.StructureNode{deepest}}
	first := &types.StructureNode{Path: "/r/a", Name: "a", Children: []*types.StructureNode{middle}}
	root := &types.StructureNode{Path: "/r", Name: "r", Children: []*types.StructureNode{first}}

	actual := output.RenderStructuresRaw([]*types.StructureNode{root})
	lines := strings.Split(strings.TrimSuffix(actual, "\n"), "\n")
	expectedLines := []string{"--- Directory Structure: /r ---", "a", "  b", "    c"}
	if len(lines) != len(expectedLines) {
		testingInstance.Fatalf("expected %d lines, got %d: %q", len(expectedLines), len(lines), actual)
	}
	for lineIndex, expectedLine := range expectedLines {
		if lines[lineIndex] != expectedLine {
			testingInstance.Errorf("line %d: expected %q, got %q", lineIndex, expectedLine, lines[lineIndex])
		}
	}
}

// TestRenderStructuresJSON verifies that a single root renders as an object.
func TestRenderStructuresJSON(testingInstance *testing.T) {
	root := &types.StructureNode{
		Path: "/repo",
		Name: "repo",
		Children: []*types.StructureNode{
			{Path: "/repo/docs", Name: "docs"},
		},
	}
	actual, renderJSONError := output.RenderStructuresJSON([]*types.StructureNode{root})
	if renderJSONError != nil {
		testingInstance.Fatalf("%s: %v", renderJSONErrorMessage, renderJSONError)
	}
	if actual != structureJSONExpected {
		testingInstance.Errorf("unexpected output: %q", actual)
	}
}

// TestRenderStructuresJSONMultipleRoots verifies that multiple roots render as
// an array.
func TestRenderStructuresJSONMultipleRoots(testingInstance *testing.T) {
	roots := []*types.StructureNode{
		{Path: "/a", Name: "a"},
		{Path: "/b", Name: "b"},
	}
	actual, renderJSONError := output.RenderStructuresJSON(roots)
	if renderJSONError != nil {
		testingInstance.Fatalf("%s: %v", renderJSONErrorMessage, renderJSONError)
	}
	var parsed []struct {
		Path string `json:"path"`
		Name string `json:"name"`
	}
	if jsonDecodeError := json.Unmarshal([]byte(actual), &parsed); jsonDecodeError != nil {
		testingInstance.Fatalf("json decode error: %v", jsonDecodeError)
	}
	if len(parsed) != 2 || parsed[0].Path != "/a" || parsed[1].Path != "/b" {
		testingInstance.Errorf("unexpected decoded roots: %+v", parsed)
	}
}

// TestRenderStructuresXML verifies the XML document for a single root.
func TestRenderStructuresXML(testingInstance *testing.T) {
	root := &types.StructureNode{
		Path: "/repo",
		Name: "repo",
		Children: []*types.StructureNode{
			{Path: "/repo/docs", Name: "docs"},
		},
	}
	actual, renderXMLError := output.RenderStructuresXML([]*types.StructureNode{root})
	if renderXMLError != nil {
		testingInstance.Fatalf("%s: %v", renderXMLErrorMessage, renderXMLError)
	}
	if actual != structureXMLExpected {
		testingInstance.Errorf("unexpected output: %q", actual)
	}
}

// TestRenderStructuresXMLMultipleRoots verifies that multiple roots share a
// results wrapper element.
func TestRenderStructuresXMLMultipleRoots(testingInstance *testing.T) {
	roots := []*types.StructureNode{
		{Path: "/a", Name: "a"},
		{Path: "/b", Name: "b"},
	}
	actual, renderXMLError := output.RenderStructuresXML(roots)
	if renderXMLError != nil {
		testingInstance.Fatalf("%s: %v", renderXMLErrorMessage, renderXMLError)
	}
	if !strings.HasPrefix(actual, "<?xml") {
		testingInstance.Errorf("expected XML declaration, got %q", actual)
	}
	if !strings.Contains(actual, "<results>") || !strings.Contains(actual, "</results>") {
		testingInstance.Errorf("expected results wrapper in XML output: %q", actual)
	}
	if strings.Count(actual, "<directory ") != 2 {
		testingInstance.Errorf("expected two directory elements, got %q", actual)
	}
}

// processReportRawExpected defines the expected raw rendering of a processed
// message report.
const processReportRawExpected = "--- Processed Message: conversation.json ---\n" +
	"Role: assistant\n" +
	"Finish Reason: stop (success, usable)\n" +
	"Prompt: 24 characters, 6 tokens\n" +
	"Completion: 18 characters, 5 tokens\n" +
	"Total: 42 characters, 11 tokens (model gpt-4o)\n" +
	"Modifications: whitespace_clean (20 -> 18)\n" +
	"Content:\n" +
	"Hello there.\n"

// processReportRetryExpected defines the expected raw rendering of a report
// that needs another attempt.
const processReportRetryExpected = "--- Processed Message: tool.json ---\n" +
	"Role: function\n" +
	"Name: lookup_weather\n" +
	"Function Call: {\"name\":\"lookup_weather\",\"arguments\":{}}\n" +
	"Finish Reason: length (truncated, requires retry)\n" +
	"Prompt: 10 characters\n" +
	"Completion: 0 characters\n" +
	"Total: 10 characters\n" +
	"Modifications: (none)\n" +
	"Content:\n" +
	"\n"

// TestRenderProcessReportsRaw verifies the raw report section layout.
func TestRenderProcessReportsRaw(testingInstance *testing.T) {
	report := types.ProcessReport{
		Source:               "conversation.json",
		Role:                 "assistant",
		Content:              "Hello there.",
		FinishReason:         "stop",
		CompletionType:       "success",
		IsUsable:             true,
		PromptCharacters:     24,
		PromptTokens:         6,
		CompletionCharacters: 18,
		CompletionTokens:     5,
		TotalCharacters:      42,
		TotalTokens:          11,
		TokenModel:           "gpt-4o",
		Modifications: []types.ProcessModification{
			{Stage: "whitespace_clean", OriginalLength: 20, ModifiedLength: 18},
		},
	}
	actual := output.RenderProcessReportsRaw([]types.ProcessReport{report})
	if actual != processReportRawExpected {
		testingInstance.Errorf("unexpected output: %q", actual)
	}
}

// TestRenderProcessReportsRawRetry verifies name, function call, and retry
// annotations.
func TestRenderProcessReportsRawRetry(testingInstance *testing.T) {
	report := types.ProcessReport{
		Source:           "tool.json",
		Role:             "function",
		Name:             "lookup_weather",
		FunctionCall:     "{\"name\":\"lookup_weather\",\"arguments\":{}}",
		FinishReason:     "length",
		CompletionType:   "truncated",
		RequiresRetry:    true,
		PromptCharacters: 10,
		TotalCharacters:  10,
	}
	actual := output.RenderProcessReportsRaw([]types.ProcessReport{report})
	if actual != processReportRetryExpected {
		testingInstance.Errorf("unexpected output: %q", actual)
	}
}

// TestRenderProcessReportsJSON verifies that a single report renders as an
// object with its modification history.
func TestRenderProcessReportsJSON(testingInstance *testing.T) {
	report := types.ProcessReport{
		Source:         "conversation.json",
		Role:           "user",
		RawContent:     "hi   there",
		Content:        "hi there",
		FinishReason:   "stop",
		CompletionType: "success",
		IsUsable:       true,
		Modifications: []types.ProcessModification{
			{Stage: "whitespace_clean", OriginalLength: 10, ModifiedLength: 8},
		},
	}
	actual, renderJSONError := output.RenderProcessReportsJSON([]types.ProcessReport{report})
	if renderJSONError != nil {
		testingInstance.Fatalf("%s: %v", renderJSONErrorMessage, renderJSONError)
	}
	if !strings.HasPrefix(actual, "{") {
		testingInstance.Fatalf("expected object output, got %q", actual)
	}
	var parsed types.ProcessReport
	if jsonDecodeError := json.Unmarshal([]byte(actual), &parsed); jsonDecodeError != nil {
		testingInstance.Fatalf("json decode error: %v", jsonDecodeError)
	}
	if parsed.Content != "hi there" || len(parsed.Modifications) != 1 {
		testingInstance.Errorf("unexpected decoded report: %+v", parsed)
	}
	if parsed.Modifications[0].Stage != "whitespace_clean" {
		testingInstance.Errorf("unexpected modification stage: %+v", parsed.Modifications)
	}
}

// articleSummariesExpected defines the expected raw rendering of resolved
// articles.
const articleSummariesExpected = "--- Article: Go (programming language) ---\n" +
	"Term: golang\n" +
	"Go is a statically typed language.\n" +
	"\n" +
	"--- Article: Wikipedia ---\n" +
	"Wikipedia is a free encyclopedia.\n"

// TestRenderArticleSummariesRaw verifies article sections and that the term
// line is omitted when it matches the title.
func TestRenderArticleSummariesRaw(testingInstance *testing.T) {
	summaries := []types.ArticleSummary{
		{Term: "golang", Title: "Go (programming language)", Extract: "Go is a statically typed language."},
		{Term: "Wikipedia", Title: "Wikipedia", Extract: "Wikipedia is a free encyclopedia."},
	}
	actual := output.RenderArticleSummariesRaw(summaries)
	if actual != articleSummariesExpected {
		testingInstance.Errorf("unexpected output: %q", actual)
	}
}

// articleSearchesExpected defines the expected raw rendering of search
// listings, including a term with no results.
const articleSearchesExpected = "--- Search: go ---\n" +
	"1. Go (programming language)\n" +
	"   Statically typed language designed at Google.\n" +
	"2. Go (game)\n" +
	"\n" +
	"--- Search: zzzz ---\n" +
	"(no results)\n"

// TestRenderArticleSearchesRaw verifies numbered matches with optional
// snippets and the empty-result placeholder.
func TestRenderArticleSearchesRaw(testingInstance *testing.T) {
	searches := []types.ArticleSearch{
		{
			Term: "go",
			Matches: []types.ArticleMatch{
				{Title: "Go (programming language)", Snippet: "Statically typed language designed at Google."},
				{Title: "Go (game)"},
			},
		},
		{Term: "zzzz"},
	}
	actual := output.RenderArticleSearchesRaw(searches)
	if actual != articleSearchesExpected {
		testingInstance.Errorf("unexpected output: %q", actual)
	}
}

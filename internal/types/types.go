// Package types defines every cross-package data structure used by the cognitus CLI.
package types

import "encoding/xml"

const (
	CommandTree    = "tree"
	CommandProcess = "process"
	CommandWiki    = "wiki"

	FormatRaw  = "raw"
	FormatJSON = "json"
	FormatXML  = "xml"
)

// ValidatedPath is an absolute input path that already passed existence checks.
type ValidatedPath struct {
	AbsolutePath string
	IsDir        bool
}

// StructureNode represents one directory in the structure produced by the tree command.
// Files never appear in the structure; children hold subdirectories only.
type StructureNode struct {
	XMLName  xml.Name         `json:"-" xml:"directory"`
	Path     string           `json:"path" xml:"path,attr"`
	Name     string           `json:"name" xml:"name,attr"`
	Children []*StructureNode `json:"children,omitempty" xml:"children>directory,omitempty"`
}

// DirectoryCount reports how many directories a structure node contains,
// the node itself excluded.
func (node *StructureNode) DirectoryCount() int {
	if node == nil {
		return 0
	}
	total := 0
	for _, child := range node.Children {
		total += 1 + child.DirectoryCount()
	}
	return total
}

// ProcessModification summarizes one pipeline stage that changed message text.
type ProcessModification struct {
	Stage          string `json:"stage"`
	OriginalLength int    `json:"original_length"`
	ModifiedLength int    `json:"modified_length"`
}

// ProcessReport is the output record produced by the process command for one
// input source.
type ProcessReport struct {
	Source        string                `json:"source"`
	Role          string                `json:"role"`
	Name          string                `json:"name,omitempty"`
	FunctionCall  string                `json:"function_call,omitempty"`
	RawContent    string                `json:"raw_content"`
	Content       string                `json:"content"`
	ReceivedAt    string                `json:"received_at"`
	Modifications []ProcessModification `json:"modifications,omitempty"`

	FinishReason   string `json:"finish_reason"`
	CompletionType string `json:"completion_type"`
	IsUsable       bool   `json:"is_usable"`
	RequiresRetry  bool   `json:"requires_retry"`

	PromptCharacters     int    `json:"prompt_characters"`
	PromptTokens         int    `json:"prompt_tokens,omitempty"`
	CompletionCharacters int    `json:"completion_characters"`
	CompletionTokens     int    `json:"completion_tokens,omitempty"`
	TotalCharacters      int    `json:"total_characters"`
	TotalTokens          int    `json:"total_tokens,omitempty"`
	TokenModel           string `json:"token_model,omitempty"`
}

// ArticleSummary pairs a search term with the article extract it resolved to.
type ArticleSummary struct {
	Term    string `json:"term"`
	Title   string `json:"title"`
	Extract string `json:"extract"`
}

// ArticleMatch is one search hit for a term.
type ArticleMatch struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// ArticleSearch groups the search hits returned for one term.
type ArticleSearch struct {
	Term    string         `json:"term"`
	Matches []ArticleMatch `json:"matches"`
}

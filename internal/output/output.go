// Package output renders command results in raw, JSON, and XML formats.
package output

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/cognitus/cognitus/internal/types"
)

const (
	indentPrefix = ""
	indentSpacer = "  "

	structureHeaderFormat = "--- Directory Structure: %s ---\n"
	processHeaderFormat   = "--- Processed Message: %s ---\n"
	articleHeaderFormat   = "--- Article: %s ---\n"
	searchHeaderFormat    = "--- Search: %s ---\n"

	noModificationsLabel = "(none)"

	xmlHeader = xml.Header
)

// WriteStructureRaw renders one directory structure to the provided writer:
// a header line identifying the root, then each reachable subdirectory name
// indented two spaces per nesting level. The root itself appears only in the
// header, so an empty directory produces nothing but the header line.
func WriteStructureRaw(writer io.Writer, node *types.StructureNode) {
	if node == nil {
		return
	}
	fmt.Fprintf(writer, structureHeaderFormat, node.Path)
	writeStructureLevel(writer, node, indentPrefix)
}

// writeStructureLevel prints the children of node at the given indent and
// recurses with the indent extended by one spacer.
func writeStructureLevel(writer io.Writer, node *types.StructureNode, indent string) {
	for _, child := range node.Children {
		fmt.Fprintf(writer, "%s%s\n", indent, child.Name)
		writeStructureLevel(writer, child, indent+indentSpacer)
	}
}

// RenderStructuresRaw renders one listing per root node, separated by blank
// lines.
func RenderStructuresRaw(nodes []*types.StructureNode) string {
	var buffer bytes.Buffer
	for index, node := range nodes {
		if index > 0 {
			buffer.WriteString("\n")
		}
		WriteStructureRaw(&buffer, node)
	}
	return buffer.String()
}

// RenderStructuresJSON marshals structure nodes to JSON. A single root
// renders as an object, multiple roots as an array.
func RenderStructuresJSON(nodes []*types.StructureNode) (string, error) {
	if len(nodes) == 0 {
		return "[]", nil
	}
	if len(nodes) == 1 {
		encoded, jsonEncodeError := json.MarshalIndent(nodes[0], indentPrefix, indentSpacer)
		return string(encoded), jsonEncodeError
	}
	encoded, jsonEncodeError := json.MarshalIndent(nodes, indentPrefix, indentSpacer)
	return string(encoded), jsonEncodeError
}

// RenderStructuresXML marshals structure nodes to an XML document. A single
// root becomes the document element; multiple roots are wrapped in a results
// element.
func RenderStructuresXML(nodes []*types.StructureNode) (string, error) {
	if len(nodes) == 1 {
		encoded, xmlMarshalError := xml.MarshalIndent(nodes[0], indentPrefix, indentSpacer)
		if xmlMarshalError != nil {
			return "", xmlMarshalError
		}
		return xmlHeader + string(encoded), nil
	}
	wrapper := struct {
		XMLName xml.Name               `xml:"results"`
		Nodes   []*types.StructureNode `xml:"directory"`
	}{Nodes: nodes}
	encoded, xmlMarshalError := xml.MarshalIndent(wrapper, indentPrefix, indentSpacer)
	if xmlMarshalError != nil {
		return "", xmlMarshalError
	}
	return xmlHeader + string(encoded), nil
}

// WriteProcessReportRaw renders one processed-message report to the writer.
func WriteProcessReportRaw(writer io.Writer, report types.ProcessReport) {
	fmt.Fprintf(writer, processHeaderFormat, report.Source)
	fmt.Fprintf(writer, "Role: %s\n", report.Role)
	if report.Name != "" {
		fmt.Fprintf(writer, "Name: %s\n", report.Name)
	}
	if report.FunctionCall != "" {
		fmt.Fprintf(writer, "Function Call: %s\n", report.FunctionCall)
	}
	fmt.Fprintf(writer, "Finish Reason: %s (%s)\n", report.FinishReason, completionSummary(report))
	fmt.Fprintf(writer, "Prompt: %s\n", lengthSummary(report.PromptCharacters, report.PromptTokens))
	fmt.Fprintf(writer, "Completion: %s\n", lengthSummary(report.CompletionCharacters, report.CompletionTokens))
	totalLine := lengthSummary(report.TotalCharacters, report.TotalTokens)
	if report.TokenModel != "" {
		totalLine += fmt.Sprintf(" (model %s)", report.TokenModel)
	}
	fmt.Fprintf(writer, "Total: %s\n", totalLine)
	fmt.Fprintf(writer, "Modifications: %s\n", modificationSummary(report.Modifications))
	fmt.Fprintln(writer, "Content:")
	fmt.Fprintln(writer, report.Content)
}

// completionSummary folds the category fields into a short annotation.
func completionSummary(report types.ProcessReport) string {
	parts := []string{report.CompletionType}
	if report.IsUsable {
		parts = append(parts, "usable")
	}
	if report.RequiresRetry {
		parts = append(parts, "requires retry")
	}
	return strings.Join(parts, ", ")
}

// lengthSummary renders a character count with an optional token count.
func lengthSummary(characterCount int, tokenCount int) string {
	if tokenCount > 0 {
		return fmt.Sprintf("%d characters, %d tokens", characterCount, tokenCount)
	}
	return fmt.Sprintf("%d characters", characterCount)
}

// modificationSummary lists each stage with its length transition.
func modificationSummary(modifications []types.ProcessModification) string {
	if len(modifications) == 0 {
		return noModificationsLabel
	}
	entries := make([]string, 0, len(modifications))
	for _, modification := range modifications {
		entries = append(entries, fmt.Sprintf("%s (%d -> %d)",
			modification.Stage, modification.OriginalLength, modification.ModifiedLength))
	}
	return strings.Join(entries, ", ")
}

// RenderProcessReportsRaw renders one report section per input source,
// separated by blank lines.
func RenderProcessReportsRaw(reports []types.ProcessReport) string {
	var buffer bytes.Buffer
	for index, report := range reports {
		if index > 0 {
			buffer.WriteString("\n")
		}
		WriteProcessReportRaw(&buffer, report)
	}
	return buffer.String()
}

// RenderProcessReportsJSON marshals reports to JSON. A single report renders
// as an object, multiple reports as an array.
func RenderProcessReportsJSON(reports []types.ProcessReport) (string, error) {
	if len(reports) == 0 {
		return "[]", nil
	}
	if len(reports) == 1 {
		encoded, jsonEncodeError := json.MarshalIndent(reports[0], indentPrefix, indentSpacer)
		return string(encoded), jsonEncodeError
	}
	encoded, jsonEncodeError := json.MarshalIndent(reports, indentPrefix, indentSpacer)
	return string(encoded), jsonEncodeError
}

// RenderArticleSummariesRaw renders resolved article extracts, one section
// per term.
func RenderArticleSummariesRaw(summaries []types.ArticleSummary) string {
	var buffer bytes.Buffer
	for index, summary := range summaries {
		if index > 0 {
			buffer.WriteString("\n")
		}
		fmt.Fprintf(&buffer, articleHeaderFormat, summary.Title)
		if summary.Term != "" && summary.Term != summary.Title {
			fmt.Fprintf(&buffer, "Term: %s\n", summary.Term)
		}
		fmt.Fprintln(&buffer, summary.Extract)
	}
	return buffer.String()
}

// RenderArticleSearchesRaw renders search listings, one numbered section per
// term.
func RenderArticleSearchesRaw(searches []types.ArticleSearch) string {
	var buffer bytes.Buffer
	for index, search := range searches {
		if index > 0 {
			buffer.WriteString("\n")
		}
		fmt.Fprintf(&buffer, searchHeaderFormat, search.Term)
		if len(search.Matches) == 0 {
			fmt.Fprintln(&buffer, "(no results)")
			continue
		}
		for position, match := range search.Matches {
			fmt.Fprintf(&buffer, "%d. %s\n", position+1, match.Title)
			if match.Snippet != "" {
				fmt.Fprintf(&buffer, "   %s\n", match.Snippet)
			}
		}
	}
	return buffer.String()
}

package ui

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"goresample/domain/resample"
)

var errNoStore = errors.New("no study store configured")

// RenderReportMarkdown formats a persisted study artifact as a markdown report
func RenderReportMarkdown(artifact *resample.StudyArtifact) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Study %s\n\n", artifact.ID)
	fmt.Fprintf(&b, "- **Kind**: %s\n", artifact.Kind)
	fmt.Fprintf(&b, "- **Seed**: %d\n", artifact.Seed)
	fmt.Fprintf(&b, "- **Trials**: %d\n", artifact.Trials)
	fmt.Fprintf(&b, "- **Created**: %s\n\n", artifact.CreatedAt)

	if len(artifact.Payload) > 0 {
		b.WriteString("## Results\n\n")
		b.WriteString("| Field | Value |\n|---|---|\n")

		keys := make([]string, 0, len(artifact.Payload))
		for k := range artifact.Payload {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "| %s | %v |\n", k, artifact.Payload[k])
		}
	}
	return b.String()
}

// RenderReportHTML renders the markdown report to HTML
func RenderReportHTML(artifact *resample.StudyArtifact) []byte {
	md := RenderReportMarkdown(artifact)
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(md), p, renderer)
}

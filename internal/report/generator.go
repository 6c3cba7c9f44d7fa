package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Vinuhub-vinuchain/vinuchain-lists/internal/finding"
	"github.com/Vinuhub-vinuchain/vinuchain-lists/internal/registry"
)

// Report couples one run's summary with its findings for rendering and
// persistence.
type Report struct {
	RunID    string
	Summary  *registry.Summary
	Findings []finding.Finding
}

type Generator interface {
	Generate(report *Report) (string, error)
}

type MarkdownGenerator struct{}

func NewMarkdownGenerator() *MarkdownGenerator {
	return &MarkdownGenerator{}
}

func (g *MarkdownGenerator) Generate(report *Report) (string, error) {
	var b strings.Builder

	b.WriteString("# Registry Validation Report\n\n")
	fmt.Fprintf(&b, "**Run ID**: %s\n", report.RunID)
	fmt.Fprintf(&b, "**Started**: %s\n", report.Summary.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**Finished**: %s\n", report.Summary.FinishedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**Verdict**: %s\n\n", report.Summary.Verdict)

	b.WriteString("## Statistics\n\n")
	fmt.Fprintf(&b, "- **Tokens validated**: %d\n", report.Summary.Tokens)
	fmt.Fprintf(&b, "- **Projects validated**: %d\n", report.Summary.Projects)
	fmt.Fprintf(&b, "- **Contracts validated**: %d\n", report.Summary.Contracts)
	fmt.Fprintf(&b, "- **Unique addresses**: %d\n", report.Summary.UniqueAddresses)
	fmt.Fprintf(&b, "- **Errors**: %d\n", report.Summary.Errors)
	fmt.Fprintf(&b, "- **Warnings**: %d\n\n", report.Summary.Warnings)

	if dist := kindDistribution(report.Findings); len(dist) > 0 {
		b.WriteString("## Finding Distribution\n\n")
		kinds := make([]string, 0, len(dist))
		for k := range dist {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		for _, k := range kinds {
			fmt.Fprintf(&b, "- **%s**: %d\n", k, dist[k])
		}
		b.WriteString("\n")
	}

	if len(report.Findings) > 0 {
		b.WriteString("## Findings\n\n")
		for _, f := range report.Findings {
			fmt.Fprintf(&b, "- `%s` **%s** %s: %s\n", f.Severity, f.Kind, f.Subject, f.Message)
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

func kindDistribution(findings []finding.Finding) map[string]int {
	dist := make(map[string]int)
	for _, f := range findings {
		dist[string(f.Kind)]++
	}
	return dist
}

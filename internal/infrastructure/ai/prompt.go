package ai

import (
	"strings"
	"unicode/utf8"

	"github.com/doeshing/gitme-go/internal/domain"
)

// TruncationMarker is appended to a diff cut at the per-file budget.
const TruncationMarker = "\n... [diff truncated]"

const promptHeader = `Analyze the following git diff and generate a concise, informative commit message.
The commit message should:
1. Start with a verb in present tense (e.g., Add, Update, Fix, Remove)
2. Keep the first line (the summary) under 72 characters
3. Clearly describe what changed and why (if apparent)
4. After the summary, leave one blank line, then list each changed file as a bullet ("- path: what changed")

Git diff:
`

const promptFooter = `
Generate only the commit message, nothing else:`

// PromptBuilder renders a FileChangeSet into a single bounded prompt.
type PromptBuilder struct {
	MaxDiffChars int
}

// NewPromptBuilder returns a builder keeping at most maxDiffChars characters of each diff.
func NewPromptBuilder(maxDiffChars int) PromptBuilder {
	if maxDiffChars <= 0 {
		maxDiffChars = domain.DefaultMaxDiffChars
	}
	return PromptBuilder{MaxDiffChars: maxDiffChars}
}

// Build renders one block per file in path order inside the instruction template.
// An empty set still yields the full template.
func (b PromptBuilder) Build(changes domain.FileChangeSet) string {
	limit := b.MaxDiffChars
	if limit <= 0 {
		limit = domain.DefaultMaxDiffChars
	}

	blocks := make([]string, 0, len(changes))
	for _, path := range changes.Paths() {
		var block strings.Builder
		block.WriteString("File: ")
		block.WriteString(path)
		block.WriteString("\nChanges:\n")
		block.WriteString(truncate(changes[path], limit))
		blocks = append(blocks, block.String())
	}

	var builder strings.Builder
	builder.WriteString(promptHeader)
	builder.WriteString(strings.Join(blocks, "\n"))
	builder.WriteString("\n")
	builder.WriteString(promptFooter)
	return builder.String()
}

// truncate keeps the first limit runes of s, appending the marker when anything was cut.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i] + TruncationMarker
		}
		count++
	}
	return s
}

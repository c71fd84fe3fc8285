package integration

import (
	"fmt"
	"strings"

	"github.com/ueser-furina/noote-website/internal/entity"
)

const defaultInstruction = `You are a professional study assistant who excels at organizing and consolidating lecture notes.

Several notes need to be merged into one. Read them all carefully, then:

1. **Deduplicate overlapping content**: merge passages on the same topic instead of repeating them
2. **Build a clear structure**: organize the material under hierarchical headings with a logical outline
3. **Preserve important details**: keep every key concept, definition, formula and example
4. **Cross-link related topics**: connect themes across notes to expose the overall context
5. **Use Markdown formatting**: headings, lists, bold, italics and code blocks where appropriate
6. **Prepend a summary**: start with a short overview of the whole document

Produce a single complete, well-structured document that is easy to review.

The notes to integrate follow:`

// BuildPrompt renders the ordered notes into one prompt string. The output
// is deterministic: identical notes and instruction always yield identical
// bytes. No truncation is applied.
func BuildPrompt(notes []entity.Note, instruction string) string {
	if instruction == "" {
		instruction = defaultInstruction
	}

	sections := make([]string, 0, len(notes))
	for i, n := range notes {
		title := n.Title
		if title == "" {
			title = fmt.Sprintf("Note %d", i+1)
		}

		sections = append(sections, fmt.Sprintf(
			"\n## Note %d: %s\n\n%s\n\n---\n", i+1, title, n.Content,
		))
	}

	return instruction + "\n\n" + strings.Join(sections, "\n")
}

package llm

import "strings"

// The instruction template is fixed: the user never edits it, and the
// request always carries the full raw content plus the latest highlighted
// excerpt.
const blogPostInstructions = "You are a skilled writer turning source material into a publishable blog post.\n" +
	"Write a complete post in markdown: a compelling title as a top-level heading, an introduction, " +
	"well-structured sections, and a short conclusion.\n" +
	"The highlighted excerpt marks what the author cares about most; build the post's thesis around it " +
	"while drawing supporting detail from the full text.\n" +
	"Return only the markdown of the post, with no commentary before or after."

func buildPostPrompt(rawContent, excerpt string) string {
	var b strings.Builder
	b.WriteString(blogPostInstructions)
	b.WriteString("\n\nFull text:\n")
	b.WriteString(clipText(rawContent, maxContentChars))
	excerpt = clipText(excerpt, maxExcerptChars)
	if excerpt != "" {
		b.WriteString("\n\nHighlighted excerpt:\n")
		b.WriteString(excerpt)
	}
	return b.String()
}

func clipText(text string, limit int) string {
	text = strings.TrimSpace(text)
	if limit <= 0 || len(text) <= limit {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

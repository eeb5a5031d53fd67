package prompt

import (
	"strings"

	"github.com/stellarlinkco/rag-eval/internal/task"
)

// Template is an immutable prompt pattern with {{QUERY}} and {{DOCUMENT}} slots.
type Template struct {
	Task task.Task
	Text string
}

const summarizationTemplate = `You are an assistant that writes faithful news summaries.

Read the following news article and summarize the event it reports. Cover who,
what, when, where and why, and do not add information that is not in the article.

Article:
{{DOCUMENT}}

Think through the key points first, then wrap your final summary in
<response></response> tags.`

const questionAnsweringTemplate = `You are an assistant that answers questions strictly from the given news context.

Context:
{{DOCUMENT}}

Question:
{{QUERY}}

Answer using only the context above. If the context does not contain the answer,
say so. Wrap your final answer in <response></response> tags.`

const continuationTemplate = `You are an assistant that continues news articles.

Here is the beginning of an article:
{{DOCUMENT}}

Write the most plausible continuation, matching the style and topic of the
beginning. Wrap your continuation in <response></response> tags.`

// Select maps a task to its prompt template. hallucinated_modified has no
// template: that task is usable for field extraction only and cannot proceed
// to prompt-driven generation.
func Select(t task.Task) (*Template, error) {
	switch t {
	case task.Summarization:
		return &Template{Task: t, Text: summarizationTemplate}, nil
	case task.QuestionAnswering:
		return &Template{Task: t, Text: questionAnsweringTemplate}, nil
	case task.Continuation:
		return &Template{Task: t, Text: continuationTemplate}, nil
	default:
		return nil, &task.UnsupportedError{Task: string(t)}
	}
}

// Render fills the template slots. Pure string substitution, no I/O.
func (t *Template) Render(query, document string) string {
	if t == nil {
		return ""
	}
	out := strings.ReplaceAll(t.Text, "{{QUERY}}", query)
	out = strings.ReplaceAll(out, "{{DOCUMENT}}", document)
	return out
}

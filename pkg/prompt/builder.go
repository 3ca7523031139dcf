package prompt

import "strings"

// DefaultWarnThreshold is a rough heuristic for the model's context
// window; payloads above it risk truncation.
const DefaultWarnThreshold = 28000

// Builder assembles the outbound chat payload. When a statement is
// loaded, the user's question is wrapped in a fixed instruction
// template embedding the full document text; otherwise the question is
// sent verbatim.
type Builder struct {
	warnThreshold int
}

func NewBuilder(warnThreshold int) *Builder {
	if warnThreshold <= 0 {
		warnThreshold = DefaultWarnThreshold
	}
	return &Builder{warnThreshold: warnThreshold}
}

// Build creates the payload for one send. documentText is nil when no
// statement has been processed for the session.
func (b *Builder) Build(documentText *string, question string) string {
	if documentText == nil {
		return question
	}

	var p strings.Builder
	p.WriteString("Based on the following bank statement text, please answer the user's question.\n\n")
	p.WriteString("--- BANK STATEMENT TEXT START ---\n")
	p.WriteString(*documentText)
	p.WriteString("\n--- BANK STATEMENT TEXT END ---\n\n")
	p.WriteString("User's Question: ")
	p.WriteString(question)
	return p.String()
}

// TooLong reports whether a built payload exceeds the configured
// truncation-risk threshold. The send is still attempted either way;
// callers surface this as a non-fatal warning.
func (b *Builder) TooLong(payload string) bool {
	return len(payload) > b.warnThreshold
}

// WarningMessage is shown to the user when TooLong triggers.
const WarningMessage = "The PDF content combined with your question is very long. " +
	"The answer might be truncated or an error might occur. " +
	"Consider asking about specific parts or using a smaller PDF."

package query

import (
	"fmt"
	"strings"

	"github.com/sitedock/assist/internal/domain"
)

const preamble = "You are the assistant of a site-operations management company. " +
	"You answer questions about projects, inventory, clients, subcontractors, " +
	"orders, progress, expenses and tasks."

var rules = []string{
	"Answer only from the context above; never invent facts.",
	"Be precise and keep the answer short.",
	"If the context does not contain the requested information, say so explicitly.",
	"Use consistent number and currency formatting (two decimals, EUR).",
}

// buildContext renders retrieved chunks as numbered source blocks in the
// similarity-sorted order they were returned (top relevance first).
func buildContext(sources []domain.Scored) string {
	var b strings.Builder
	for i, s := range sources {
		fmt.Fprintf(&b, "Source %d (%s: %s):\n%s\n\n",
			i+1, s.Chunk.Metadata.Type, s.Chunk.Metadata.EntityName, s.Chunk.Content)
	}
	return strings.TrimRight(b.String(), "\n")
}

// buildPrompt combines the fixed preamble, the assembled context, the
// question, and the fixed rule list.
func buildPrompt(contextBlock, question string) string {
	var b strings.Builder
	b.WriteString(preamble)
	b.WriteString("\n\nContext:\n")
	b.WriteString(contextBlock)
	b.WriteString("\n\nQuestion: ")
	b.WriteString(question)
	b.WriteString("\n\nRules:\n")
	for _, r := range rules {
		b.WriteString("- ")
		b.WriteString(r)
		b.WriteString("\n")
	}
	return b.String()
}

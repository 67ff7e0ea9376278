package service

import (
	"fmt"
	"strings"

	"github.com/repochat/repochat/internal/selector"
)

// systemPreamble opens every codebase chat. Hardcoded as a named constant —
// prompt iteration is high-frequency and a constant is easy to find.
const systemPreamble = `You are an expert software engineer and code assistant.
You are analyzing a Git repository codebase.
Your task is to help the user understand the code, answer questions about it, and provide insights.
Be thorough, accurate, and helpful in your responses.

The following files from the repository are available for your analysis:
`

const answerGuidelines = `
When answering questions:
1. Reference specific files and line numbers when relevant
2. Explain code patterns and architecture decisions
3. Provide code examples when helpful
4. If you're unsure about something, acknowledge the uncertainty
`

// AnalysisQuestion is the fixed user message sent by the analyze command.
const AnalysisQuestion = `Please provide a high-level analysis of this codebase. Include:
1. The main purpose and functionality
2. Key components and their relationships
3. Technologies and frameworks used
4. Code organization and architecture
5. Any notable patterns or design decisions`

// BuildSystemPrompt assembles the system prompt from the selected files:
// preamble, file list, then one "--- path ---" block per file in inclusion
// order. Sentinel placeholders pass through as-is, so the model sees why a
// file's content is missing.
func BuildSystemPrompt(files []selector.SelectedFile) string {
	var sb strings.Builder
	sb.WriteString(systemPreamble)

	for _, f := range files {
		fmt.Fprintf(&sb, "- %s\n", f.Path)
	}

	sb.WriteString("\nHere are the contents of these files:\n\n")

	for _, f := range files {
		fmt.Fprintf(&sb, "--- %s ---\n%s\n\n", f.Path, f.Content)
	}

	sb.WriteString(answerGuidelines)
	return sb.String()
}

package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/assistant.txt
	assistantRaw string

	//go:embed template/summary.txt
	summaryRaw string
)

// PromptSet holds loaded prompt content.
type PromptSet struct {
	Assistant string
	Summary   string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings.
// Safe to call from any goroutine.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Assistant: strings.TrimSpace(assistantRaw),
		Summary:   strings.TrimSpace(summaryRaw),
	}
}

package core

import (
	"strings"
	"time"
)

// Category is the triage label assigned to an email.
type Category string

const (
	// CategoryProductive marks an email that requires a follow-up action.
	CategoryProductive Category = "Produtivo"
	// CategoryUnproductive marks a social or informational email with no action needed.
	CategoryUnproductive Category = "Improdutivo"
	// CategoryUndefined is the fallback for labels outside the closed set.
	CategoryUndefined Category = "Indefinido"
)

// ParseCategory coerces a raw model label into the closed category set.
// Anything that is not exactly one of the two known labels maps to
// CategoryUndefined.
func ParseCategory(raw string) Category {
	switch label := strings.TrimSpace(raw); {
	case strings.EqualFold(label, string(CategoryProductive)):
		return CategoryProductive
	case strings.EqualFold(label, string(CategoryUnproductive)):
		return CategoryUnproductive
	default:
		return CategoryUndefined
	}
}

// TriageInput represents the content submitted for triage. Exactly one of
// Text or (Filename, FileData) is expected to carry content.
type TriageInput struct {
	Text     string
	Filename string
	FileData []byte
}

// HasFile reports whether the input carries an uploaded file.
func (in TriageInput) HasFile() bool {
	return in.Filename != "" && len(in.FileData) > 0
}

// TriageResult represents the outcome of classifying one email
type TriageResult struct {
	Category       Category
	SuggestedReply string
	ExtractedText  string
	ModelUsed      string
	AnalyzedAt     time.Time
}

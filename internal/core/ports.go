package core

import (
	"context"
)

// LLMClient defines the interface for interacting with LLM services
type LLMClient interface {
	// ClassifyEmail classifies normalized email text and suggests a reply
	ClassifyEmail(ctx context.Context, text string) (*TriageResult, error)
}

// TextExtractor defines the interface for turning uploaded file bytes into
// plain text based on the declared filename.
type TextExtractor interface {
	Extract(filename string, content []byte) (string, error)
}

// TextNormalizer defines the interface for the pre-classification text cleanup
type TextNormalizer interface {
	Normalize(text string) string
}

// MailSender defines the interface for delivering a single outbound message.
// The boolean is the only result the caller observes; failures are logged.
type MailSender interface {
	Send(ctx context.Context, recipient, subject, body string) bool
}

package core

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

const excerptLimit = 500

// TriageService is the core service for email triage. It runs the
// extract -> validate -> normalize -> classify -> compose pipeline for one
// request-scoped input at a time.
type TriageService struct {
	llmClient  LLMClient
	extractor  TextExtractor
	normalizer TextNormalizer
	logger     *zap.Logger
	llmTimeout time.Duration
}

// NewTriageService creates a new triage service
func NewTriageService(
	llmClient LLMClient,
	extractor TextExtractor,
	normalizer TextNormalizer,
	logger *zap.Logger,
	llmTimeout time.Duration,
) *TriageService {
	return &TriageService{
		llmClient:  llmClient,
		extractor:  extractor,
		normalizer: normalizer,
		logger:     logger,
		llmTimeout: llmTimeout,
	}
}

// Process classifies one submitted email and returns the suggested reply.
// Typed text takes precedence over an uploaded file.
func (s *TriageService) Process(ctx context.Context, input TriageInput) (*TriageResult, error) {
	text := input.Text

	if strings.TrimSpace(text) == "" {
		if !input.HasFile() {
			return nil, &ValidationError{Detail: "Nenhum texto ou arquivo foi enviado para processamento."}
		}

		extracted, err := s.extractor.Extract(input.Filename, input.FileData)
		if err != nil {
			return nil, err
		}
		text = extracted
		s.logger.Debug("Extracted text from uploaded file",
			zap.String("filename", input.Filename),
			zap.Int("size", len(text)))
	}

	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Detail: "O conteúdo do email está vazio ou não pôde ser lido."}
	}

	normalized := s.normalizer.Normalize(text)

	cctx, cancel := context.WithTimeout(ctx, s.llmTimeout)
	defer cancel()

	result, err := s.llmClient.ClassifyEmail(cctx, normalized)
	if err != nil {
		return nil, s.mapClassifierError(err)
	}

	if strings.TrimSpace(result.SuggestedReply) == "" {
		result.SuggestedReply = ComposeReply(result.Category)
	}
	result.ExtractedText = excerpt(normalized)

	s.logger.Info("Email classified",
		zap.String("category", string(result.Category)),
		zap.String("model", result.ModelUsed),
		zap.Int("text_size", len(normalized)))

	return result, nil
}

// mapClassifierError folds transport failures into the service error
// taxonomy. Configuration and timeout errors keep their identity so the
// HTTP layer can map them to distinct status codes.
func (s *TriageService) mapClassifierError(err error) error {
	var cfgErr *ConfigurationError
	if errors.As(err, &cfgErr) {
		return err
	}
	var timeoutErr *ClassifierTimeoutError
	if errors.As(err, &timeoutErr) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &ClassifierTimeoutError{Timeout: s.llmTimeout}
	}
	var clsErr *ClassifierError
	if errors.As(err, &clsErr) {
		return err
	}
	return &ClassifierError{Detail: "falha inesperada", Cause: err}
}

// excerpt bounds the extracted text echoed back in the response payload
func excerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= excerptLimit {
		return text
	}
	return string(runes[:excerptLimit])
}

package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/samu/email-triage/internal/core"
	"github.com/samu/email-triage/internal/textproc"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIClient is an implementation of the LLMClient interface using OpenAI
type OpenAIClient struct {
	client        *openai.Client
	apiKey        string
	modelName     string
	maxTokens     int
	temperature   float32
	topP          float32
	maxBodySize   int
	logger        *zap.Logger
	textProcessor *textproc.TextProcessor
	systemPrompt  string
}

// triageResponse represents the structured response expected from the LLM
type triageResponse struct {
	Categoria        string `json:"categoria"`
	RespostaSugerida string `json:"resposta_sugerida"`
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(
	client *openai.Client,
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *textproc.TextProcessor,
) *OpenAIClient {
	return &OpenAIClient{
		client:        client,
		apiKey:        apiKey,
		modelName:     modelName,
		maxTokens:     maxTokens,
		temperature:   temperature,
		topP:          topP,
		maxBodySize:   maxBodySize,
		logger:        logger,
		textProcessor: textProcessor,
		systemPrompt: `Você é um assistente de IA especialista em analisar e responder emails.
Sua tarefa é:
1. Classificar o email como 'Produtivo' ou 'Improdutivo'. Um email 'Produtivo' requer uma ação. Um email 'Improdutivo' é social, informativo ou um agradecimento.
2. Gerar uma resposta curta e profissional baseada no conteúdo do email.
3. Sua resposta final DEVE ser um objeto JSON com duas chaves: "categoria" e "resposta_sugerida".`,
	}
}

// ClassifyEmail classifies normalized email text and suggests a reply
func (c *OpenAIClient) ClassifyEmail(ctx context.Context, text string) (*core.TriageResult, error) {
	if c.apiKey == "" {
		return nil, &core.ConfigurationError{Detail: "Chave da API da OpenAI não configurada."}
	}

	// Bound the text sent to the model
	processedText := c.textProcessor.ProcessText(text, c.maxBodySize)

	req := openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: c.systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: processedText,
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		TopP:        c.topP,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return nil, &core.ClassifierError{
				Detail: fmt.Sprintf("OpenAI respondeu com status %d", apiErr.HTTPStatusCode),
				Cause:  err,
			}
		}
		return nil, &core.ClassifierError{Detail: "falha na chamada à API da OpenAI", Cause: err}
	}

	if len(resp.Choices) == 0 {
		return nil, &core.ClassifierError{Detail: "resposta vazia da OpenAI"}
	}

	responseText := resp.Choices[0].Message.Content

	triage, err := parseTriageResponse(responseText)
	if err != nil {
		return nil, &core.ClassifierError{Detail: "resposta da OpenAI não é um JSON válido", Cause: err}
	}

	return &core.TriageResult{
		Category:       core.ParseCategory(triage.Categoria),
		SuggestedReply: triage.RespostaSugerida,
		ModelUsed:      c.modelName,
		AnalyzedAt:     time.Now(),
	}, nil
}

// parseTriageResponse parses the model's JSON reply, falling back to the
// first brace-delimited object when the model wraps it in prose.
func parseTriageResponse(responseText string) (*triageResponse, error) {
	var triage triageResponse
	if err := json.Unmarshal([]byte(responseText), &triage); err == nil {
		return &triage, nil
	}

	jsonStart := -1
	jsonEnd := -1
	for i := 0; i < len(responseText); i++ {
		if responseText[i] == '{' {
			jsonStart = i
			break
		}
	}
	for i := len(responseText) - 1; i >= 0; i-- {
		if responseText[i] == '}' {
			jsonEnd = i + 1
			break
		}
	}

	if jsonStart < 0 || jsonEnd <= jsonStart {
		return nil, fmt.Errorf("no JSON object in model response")
	}
	if err := json.Unmarshal([]byte(responseText[jsonStart:jsonEnd]), &triage); err != nil {
		return nil, err
	}
	return &triage, nil
}

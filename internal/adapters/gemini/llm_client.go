package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/samu/email-triage/internal/core"
	"github.com/samu/email-triage/internal/textproc"
	"go.uber.org/zap"
)

// GeminiClient is an implementation of the LLMClient interface using Google Gemini
type GeminiClient struct {
	client        *genai.Client
	model         *genai.GenerativeModel
	modelName     string
	maxBodySize   int
	logger        *zap.Logger
	textProcessor *textproc.TextProcessor
	promptFormat  string
}

// triageResponse represents the structured response expected from the LLM
type triageResponse struct {
	Categoria        string `json:"categoria"`
	RespostaSugerida string `json:"resposta_sugerida"`
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(
	client *genai.Client,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *textproc.TextProcessor,
) *GeminiClient {
	var model *genai.GenerativeModel
	if client != nil {
		model = client.GenerativeModel(modelName)
		model.SetTemperature(temperature)
		model.SetTopP(topP)
		model.SetMaxOutputTokens(int32(maxTokens))
	}

	return &GeminiClient{
		client:        client,
		model:         model,
		modelName:     modelName,
		maxBodySize:   maxBodySize,
		logger:        logger,
		textProcessor: textProcessor,
		promptFormat: `Você é um assistente de IA especialista em analisar e responder emails.
Sua tarefa é:
1. Classificar o email como 'Produtivo' ou 'Improdutivo'. Um email 'Produtivo' requer uma ação. Um email 'Improdutivo' é social, informativo ou um agradecimento.
2. Gerar uma resposta curta e profissional baseada no conteúdo do email.
3. Sua resposta final DEVE ser um objeto JSON com duas chaves: "categoria" e "resposta_sugerida".

Email:
%s

Responda apenas com o objeto JSON e nada mais.`,
	}
}

// Close closes the Gemini client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// ClassifyEmail classifies normalized email text and suggests a reply
func (c *GeminiClient) ClassifyEmail(ctx context.Context, text string) (*core.TriageResult, error) {
	if c.client == nil {
		return nil, &core.ConfigurationError{Detail: "Chave da API do Gemini não configurada."}
	}

	processedText := c.textProcessor.ProcessText(text, c.maxBodySize)
	prompt := fmt.Sprintf(c.promptFormat, processedText)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, &core.ClassifierError{Detail: "falha na chamada à API do Gemini", Cause: err}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, &core.ClassifierError{Detail: "resposta vazia do Gemini"}
	}

	responseText, err := partText(resp.Candidates[0].Content.Parts[0])
	if err != nil {
		return nil, err
	}

	triage, err := parseTriageResponse(responseText)
	if err != nil {
		return nil, &core.ClassifierError{Detail: "resposta do Gemini não é um JSON válido", Cause: err}
	}

	return &core.TriageResult{
		Category:       core.ParseCategory(triage.Categoria),
		SuggestedReply: triage.RespostaSugerida,
		ModelUsed:      c.modelName,
		AnalyzedAt:     time.Now(),
	}, nil
}

// partText returns the textual payload of a candidate part. Only genai.Text
// parts carry a classification; anything else (blobs, function calls) is a
// malformed answer.
func partText(part genai.Part) (string, error) {
	switch p := part.(type) {
	case genai.Text:
		return string(p), nil
	default:
		return "", &core.ClassifierError{Detail: fmt.Sprintf("resposta do Gemini com parte inesperada %T", p)}
	}
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

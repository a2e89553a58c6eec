package bedrock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/samu/email-triage/internal/core"
	"github.com/samu/email-triage/internal/textproc"
	"go.uber.org/zap"
)

// BedrockClient is an implementation of the LLMClient interface using Amazon Bedrock
type BedrockClient struct {
	client        *bedrockruntime.Client
	modelID       string
	maxTokens     int
	temperature   float32
	topP          float32
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

// NewBedrockClient creates a new Bedrock client
func NewBedrockClient(
	client *bedrockruntime.Client,
	modelID string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *textproc.TextProcessor,
) *BedrockClient {
	return &BedrockClient{
		client:        client,
		modelID:       modelID,
		maxTokens:     maxTokens,
		temperature:   temperature,
		topP:          topP,
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

// ClassifyEmail classifies normalized email text and suggests a reply
func (c *BedrockClient) ClassifyEmail(ctx context.Context, text string) (*core.TriageResult, error) {
	processedText := c.textProcessor.ProcessText(text, c.maxBodySize)
	prompt := fmt.Sprintf(c.promptFormat, processedText)

	// Build the request payload for the model family
	var payload []byte
	var err error

	if c.isAnthropicModel() {
		payload, err = json.Marshal(map[string]interface{}{
			"prompt":               prompt,
			"max_tokens_to_sample": c.maxTokens,
			"temperature":          c.temperature,
			"top_p":                c.topP,
		})
	} else if c.isAmazonTitanModel() {
		payload, err = json.Marshal(map[string]interface{}{
			"inputText": prompt,
			"textGenerationConfig": map[string]interface{}{
				"maxTokenCount": c.maxTokens,
				"temperature":   c.temperature,
				"topP":          c.topP,
			},
		})
	} else {
		payload, err = json.Marshal(map[string]interface{}{
			"prompt":      prompt,
			"max_tokens":  c.maxTokens,
			"temperature": c.temperature,
			"top_p":       c.topP,
		})
	}

	if err != nil {
		return nil, &core.ClassifierError{Detail: "falha ao montar o payload do Bedrock", Cause: err}
	}

	resp, err := c.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     &c.modelID,
		Body:        payload,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, &core.ClassifierError{Detail: "falha na chamada ao Bedrock", Cause: err}
	}

	responseText, err := c.responseText(resp.Body)
	if err != nil {
		return nil, &core.ClassifierError{Detail: "resposta do Bedrock não pôde ser lida", Cause: err}
	}

	triage, err := parseTriageResponse(responseText)
	if err != nil {
		return nil, &core.ClassifierError{Detail: "resposta do Bedrock não é um JSON válido", Cause: err}
	}

	return &core.TriageResult{
		Category:       core.ParseCategory(triage.Categoria),
		SuggestedReply: triage.RespostaSugerida,
		ModelUsed:      c.modelID,
		AnalyzedAt:     time.Now(),
	}, nil
}

// responseText pulls the generated text out of the model-family-specific
// response envelope
func (c *BedrockClient) responseText(body []byte) (string, error) {
	if c.isAnthropicModel() {
		var claudeResp struct {
			Completion string `json:"completion"`
		}
		if err := json.Unmarshal(body, &claudeResp); err != nil {
			return "", fmt.Errorf("failed to unmarshal Claude response: %w", err)
		}
		return claudeResp.Completion, nil
	}

	if c.isAmazonTitanModel() {
		var titanResp struct {
			Results []struct {
				OutputText string `json:"outputText"`
			} `json:"results"`
		}
		if err := json.Unmarshal(body, &titanResp); err != nil {
			return "", fmt.Errorf("failed to unmarshal Titan response: %w", err)
		}
		if len(titanResp.Results) == 0 {
			return "", fmt.Errorf("empty response from Titan model")
		}
		return titanResp.Results[0].OutputText, nil
	}

	var genericResp struct {
		Output   string `json:"output"`
		Text     string `json:"text"`
		Response string `json:"response"`
	}
	if err := json.Unmarshal(body, &genericResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal generic response: %w", err)
	}
	switch {
	case genericResp.Output != "":
		return genericResp.Output, nil
	case genericResp.Text != "":
		return genericResp.Text, nil
	case genericResp.Response != "":
		return genericResp.Response, nil
	default:
		return string(body), nil
	}
}

// isAnthropicModel checks if the model is an Anthropic Claude model
func (c *BedrockClient) isAnthropicModel() bool {
	return strings.HasPrefix(c.modelID, "anthropic.claude")
}

// isAmazonTitanModel checks if the model is an Amazon Titan model
func (c *BedrockClient) isAmazonTitanModel() bool {
	return strings.HasPrefix(c.modelID, "amazon.titan")
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

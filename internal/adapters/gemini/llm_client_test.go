package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/samu/email-triage/internal/core"
	"github.com/samu/email-triage/internal/textproc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClassifyEmailWithoutAPIKey(t *testing.T) {
	client := NewGeminiClient(nil, "gemini-1.5-flash", 500, 0.1, 0.9, 10000,
		zap.NewNop(), textproc.NewTextProcessor(zap.NewNop()))

	_, err := client.ClassifyEmail(context.Background(), "Preciso de ajuda com meu pedido.")

	var configErr *core.ConfigurationError
	require.True(t, errors.As(err, &configErr))
}

func TestPartTextAcceptsText(t *testing.T) {
	text, err := partText(genai.Text(`{"categoria": "Produtivo"}`))

	require.NoError(t, err)
	assert.Equal(t, `{"categoria": "Produtivo"}`, text)
}

func TestPartTextRejectsNonTextParts(t *testing.T) {
	_, err := partText(genai.Blob{MIMEType: "image/png", Data: []byte{0x89}})

	var classifierErr *core.ClassifierError
	require.True(t, errors.As(err, &classifierErr))
}

func TestParseTriageResponseWrappedInProse(t *testing.T) {
	triage, err := parseTriageResponse("Claro! Aqui está: {\"categoria\": \"Improdutivo\", \"resposta_sugerida\": \"Obrigado!\"} Espero ter ajudado.")

	require.NoError(t, err)
	assert.Equal(t, "Improdutivo", triage.Categoria)
	assert.Equal(t, "Obrigado!", triage.RespostaSugerida)
}

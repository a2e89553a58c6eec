package textproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestNormalizer() *Normalizer {
	return NewNormalizer("portuguese", zap.NewNop())
}

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	n := newTestNormalizer()

	got := n.Normalize("Olá.   Tudo bem?\n\nPreciso   de ajuda.")

	assert.Equal(t, "Olá. Tudo bem? Preciso de ajuda.", got)
}

func TestNormalizeTextWithoutPunctuation(t *testing.T) {
	n := newTestNormalizer()

	got := n.Normalize("  apenas um texto sem pontuação  ")

	assert.Equal(t, "apenas um texto sem pontuação", got)
}

func TestNormalizeKeepsAbbreviations(t *testing.T) {
	n := newTestNormalizer()

	got := n.Normalize("Falei com o Sr. Silva ontem. Ele confirmou.")

	assert.Equal(t, "Falei com o Sr. Silva ontem. Ele confirmou.", got)
}

func TestNormalizeKeepsDecimalNumbers(t *testing.T) {
	n := newTestNormalizer()

	got := n.Normalize("O valor é 3.14 conforme combinado.")

	assert.Equal(t, "O valor é 3.14 conforme combinado.", got)
}

func TestNormalizeIsDeterministic(t *testing.T) {
	n := newTestNormalizer()
	input := "Primeira frase. Segunda frase!\nTerceira?   Quarta..."

	first := n.Normalize(input)
	second := n.Normalize(input)

	assert.Equal(t, first, second)
}

func TestSplitSentences(t *testing.T) {
	n := newTestNormalizer()

	sentences := n.SplitSentences("Primeira frase. Segunda frase! Terceira?")

	assert.Len(t, sentences, 3)
}

func TestSplitSentencesEmptyInput(t *testing.T) {
	n := newTestNormalizer()

	sentences := n.SplitSentences("")

	assert.Len(t, sentences, 1)
}

func TestTextProcessorTruncate(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	short := tp.TruncateText("curto", 100)
	assert.Equal(t, "curto", short)

	long := tp.TruncateText("aaaaaaaaaa", 5)
	assert.Contains(t, long, "aaaaa")
	assert.Contains(t, long, "truncado")
}

func TestTextProcessorSanitizeUTF8(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	clean := tp.SanitizeUTF8("texto válido")
	assert.Equal(t, "texto válido", clean)

	dirty := tp.SanitizeUTF8(string([]byte{'o', 'i', 0xff}))
	assert.Equal(t, "oi", dirty)
}

package textproc

import (
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// Portuguese abbreviations that end with a period without ending a sentence.
var ptAbbreviations = map[string]struct{}{
	"sr":    {},
	"sra":   {},
	"srta":  {},
	"dr":    {},
	"dra":   {},
	"prof":  {},
	"profa": {},
	"eng":   {},
	"av":    {},
	"etc":   {},
	"ex":    {},
	"obs":   {},
	"tel":   {},
	"cia":   {},
	"ltda":  {},
	"pag":   {},
	"pags":  {},
	"ref":   {},
}

// Normalizer performs the lightweight text cleanup applied before
// classification: sentence segmentation plus whitespace collapsing.
type Normalizer struct {
	language string
	logger   *zap.Logger
}

// NewNormalizer creates a new normalizer for the given language
func NewNormalizer(language string, logger *zap.Logger) *Normalizer {
	return &Normalizer{
		language: language,
		logger:   logger,
	}
}

// Normalize splits text into sentences, trims each one and rejoins them
// with single spaces. Text without sentence-ending punctuation comes back
// as one trimmed sentence. The result is deterministic for a given input.
func (n *Normalizer) Normalize(text string) string {
	text = norm.NFC.String(text)

	sentences := n.SplitSentences(text)
	cleaned := make([]string, 0, len(sentences))
	for _, sentence := range sentences {
		sentence = collapseWhitespace(strings.TrimSpace(sentence))
		if sentence != "" {
			cleaned = append(cleaned, sentence)
		}
	}

	result := strings.Join(cleaned, " ")
	n.logger.Debug("Text normalized",
		zap.String("language", n.language),
		zap.Int("sentences", len(cleaned)),
		zap.Int("original_size", len(text)),
		zap.Int("normalized_size", len(result)))

	return result
}

// SplitSentences segments text at sentence-ending punctuation followed by
// whitespace, guarding against common Portuguese abbreviations, initials
// and decimal numbers.
func (n *Normalizer) SplitSentences(text string) []string {
	runes := []rune(text)
	var sentences []string
	start := 0

	for i := 0; i < len(runes); i++ {
		if !isTerminator(runes[i]) {
			continue
		}

		// Swallow runs of terminators ("...", "?!")
		end := i
		for end+1 < len(runes) && isTerminator(runes[end+1]) {
			end++
		}

		if runes[i] == '.' && end == i && n.insideToken(runes, start, i) {
			continue
		}

		// A boundary needs trailing whitespace or end of text
		if end+1 < len(runes) && !unicode.IsSpace(runes[end+1]) {
			i = end
			continue
		}

		sentences = append(sentences, string(runes[start:end+1]))
		i = end
		start = end + 1
	}

	if start < len(runes) {
		sentences = append(sentences, string(runes[start:]))
	}
	if len(sentences) == 0 {
		sentences = []string{text}
	}
	return sentences
}

// insideToken reports whether the period at position i belongs to an
// abbreviation, a single-letter initial or a decimal number rather than a
// sentence boundary.
func (n *Normalizer) insideToken(runes []rune, start, i int) bool {
	// Decimal number: digit on both sides
	if i > 0 && i+1 < len(runes) && unicode.IsDigit(runes[i-1]) && unicode.IsDigit(runes[i+1]) {
		return true
	}

	// Collect the word immediately before the period
	w := i
	for w > start && (unicode.IsLetter(runes[w-1]) || unicode.IsDigit(runes[w-1])) {
		w--
	}
	word := strings.ToLower(string(runes[w:i]))
	if word == "" {
		return false
	}
	if len([]rune(word)) == 1 && unicode.IsLetter([]rune(word)[0]) {
		return true
	}
	_, ok := ptAbbreviations[word]
	return ok
}

func isTerminator(r rune) bool {
	switch r {
	case '.', '!', '?', '…':
		return true
	}
	return false
}

// collapseWhitespace folds any run of whitespace into a single space
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

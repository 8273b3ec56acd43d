package persona

import "strings"

// Small fixed lexicons. Word choice barely matters; what matters is that
// the estimates are deterministic functions of the answer text.
var positiveWords = map[string]bool{
	"love": true, "enjoy": true, "value": true, "cherish": true, "proud": true,
	"happy": true, "excited": true, "strong": true, "confident": true,
	"trust": true, "hope": true, "curious": true, "grateful": true,
	"admire": true, "calm": true, "embrace": true,
}

var negativeWords = map[string]bool{
	"fear": true, "hate": true, "avoid": true, "regret": true, "afraid": true,
	"anxious": true, "angry": true, "weak": true, "doubt": true,
	"distrust": true, "lonely": true, "ashamed": true, "resent": true,
	"struggle": true, "lost": true, "refuse": true,
}

var hedgeWords = map[string]bool{
	"maybe": true, "perhaps": true, "possibly": true, "unsure": true,
	"might": true, "guess": true, "sometimes": true, "depends": true,
}

// EstimateValence maps answer text to an affective weight in [-1, 1].
func EstimateValence(text string) float64 {
	var pos, neg int
	for _, w := range tokenize(text) {
		if positiveWords[w] {
			pos++
		}
		if negativeWords[w] {
			neg++
		}
	}
	return float64(pos-neg) / float64(pos+neg+1)
}

// EstimateConfidence maps answer text to an epistemic confidence in [0, 1].
// Hedging language lowers it.
func EstimateConfidence(text string) float64 {
	words := tokenize(text)
	if len(words) == 0 {
		return 0.5
	}
	var hedges int
	for _, w := range words {
		if hedgeWords[w] {
			hedges++
		}
	}
	c := 0.9 - 0.15*float64(hedges)
	if c < 0.1 {
		c = 0.1
	}
	return c
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z')
	})
}

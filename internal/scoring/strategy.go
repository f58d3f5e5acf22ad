package scoring

import "strings"

// TextScorer scores a single piece of review text. The keyword heuristics
// below implement it today; a real sentiment model can replace them
// without touching aggregation or scaling.
type TextScorer interface {
	Score(text string) float64
}

// KeywordSentiment estimates polarity by counting keyword occurrences.
// Counts are substring counts, not word-boundary aware.
type KeywordSentiment struct {
	Positive []string
	Negative []string
}

// NewKeywordSentiment returns the default Korean keyword sentiment scorer.
func NewKeywordSentiment() *KeywordSentiment {
	return &KeywordSentiment{Positive: positiveKeywords, Negative: negativeKeywords}
}

// Score returns (pos-neg)/(pos+neg), naturally bounded to [-1, 1].
// Text with no keyword hits scores exactly 0.
func (s *KeywordSentiment) Score(text string) float64 {
	if text == "" {
		return 0
	}
	var pos, neg int
	for _, kw := range s.Positive {
		pos += strings.Count(text, kw)
	}
	for _, kw := range s.Negative {
		neg += strings.Count(text, kw)
	}
	if pos+neg == 0 {
		return 0
	}
	return float64(pos-neg) / float64(pos+neg)
}

// ContentTrust is a length-and-cliche heuristic for how much a review's
// text can be trusted. Longer, non-generic text is weakly correlated
// with authenticity; this is a floor/ceiling heuristic, not a classifier.
type ContentTrust struct {
	Generic []string
}

// NewContentTrust returns the default content trust scorer.
func NewContentTrust() *ContentTrust {
	return &ContentTrust{Generic: genericKeywords}
}

// Score buckets text into {0.1, 0.2, 0.5, 0.9}. Lengths are measured in
// runes so Korean text is not penalized for its UTF-8 byte width.
func (s *ContentTrust) Score(text string) float64 {
	n := len([]rune(text))
	if n < 10 {
		return 0.1
	}
	if n < 50 {
		for _, kw := range s.Generic {
			if strings.Contains(text, kw) {
				return 0.2
			}
		}
	}
	if n > 100 {
		return 0.9
	}
	return 0.5
}

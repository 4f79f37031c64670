package bias

import (
	"fmt"
	"strings"

	"nyayasetu-backend/models"
)

// Scorer scans query text against the bias lexicon. It is pure and
// deterministic: identical input always produces identical output, so a
// single Scorer is safely shared across concurrent requests.
type Scorer struct {
	lexicon *Lexicon
}

// NewScorer creates a scorer backed by the built-in lexicon
func NewScorer() *Scorer {
	return &Scorer{lexicon: NewLexicon()}
}

// categoryMatch is one bias category found in the text
type categoryMatch struct {
	Type     models.BiasType
	Keywords []string
	Severity float64
}

// Detect scans text for bias patterns and discrimination keywords and
// reports the primary bias category with an overall confidence percentage.
func (s *Scorer) Detect(text string, language models.Language) models.BiasDetection {
	lowered := strings.ToLower(text)

	var matches []categoryMatch
	for _, entry := range s.lexicon.categories {
		found := matchKeywords(lowered, entry.Keywords)
		if len(found) == 0 {
			continue
		}
		matches = append(matches, categoryMatch{
			Type:     entry.Type,
			Keywords: found,
			Severity: s.severity(lowered, len(found)),
		})
	}

	discriminationFound := matchKeywords(lowered, s.lexicon.discriminationKeywords)

	if len(matches) == 0 && len(discriminationFound) == 0 {
		return models.BiasDetection{
			Detected:    false,
			Confidence:  "0%",
			Explanation: noBiasExplanation,
		}
	}

	// Primary category is the one with the highest severity; ties resolve
	// to the earliest category in lexicon declaration order.
	primary := categoryMatch{Type: models.BiasTypeGeneral, Severity: 0.5}
	if len(matches) > 0 {
		primary = matches[0]
		for _, m := range matches[1:] {
			if m.Severity > primary.Severity {
				primary = m
			}
		}
	}

	biasTypes := make([]models.BiasType, 0, len(matches))
	for _, m := range matches {
		biasTypes = append(biasTypes, m.Type)
	}

	return models.BiasDetection{
		Detected:    true,
		Type:        primary.Type,
		Confidence:  fmt.Sprintf("%d%%", s.confidence(len(matches), len(discriminationFound))),
		Explanation: s.explanation(primary.Type, len(matches), language),
		Details: &models.BiasDetails{
			BiasTypes:       biasTypes,
			MatchedKeywords: discriminationFound,
			Severity:        primary.Severity,
		},
	}
}

// severity scores one category: 0.2 per matched keyword, +0.3 when more
// than two keywords matched, +0.2 per intensity indicator, capped at 1.0.
func (s *Scorer) severity(lowered string, matchCount int) float64 {
	severity := float64(matchCount) * 0.2
	if matchCount > 2 {
		severity += 0.3
	}

	indicators := matchKeywords(lowered, s.lexicon.intensityIndicators)
	severity += float64(len(indicators)) * 0.2

	if severity > 1.0 {
		severity = 1.0
	}
	return severity
}

// confidence aggregates category and keyword evidence into a 0-95 score
func (s *Scorer) confidence(categoriesMatched, discriminationCount int) int {
	confidence := 30
	confidence += categoriesMatched * 15
	confidence += discriminationCount * 10
	if categoriesMatched > 1 {
		confidence += 20
	}
	if discriminationCount > 0 {
		confidence += 15
	}

	if confidence > 95 {
		confidence = 95
	}
	return confidence
}

// explanation selects a fixed template for the primary category and language
func (s *Scorer) explanation(primary models.BiasType, categoriesMatched int, language models.Language) string {
	lang := models.LanguageEnglish
	if language == models.LanguageHindi {
		lang = models.LanguageHindi
	}

	if categoriesMatched == 0 {
		// Only discrimination keywords matched
		if lang == models.LanguageHindi {
			return keywordsOnlyExplanationHI
		}
		return keywordsOnlyExplanationEN
	}

	if text, ok := explanations[lang][primary]; ok {
		return text
	}
	return explanations[lang][models.BiasTypeGeneral]
}

// PreventionSuggestions returns the fixed advice list for a bias type.
// Hindi lists exist for the most common types; English is the fallback.
func (s *Scorer) PreventionSuggestions(biasType models.BiasType, language models.Language) []string {
	lang := models.LanguageEnglish
	if language == models.LanguageHindi {
		lang = models.LanguageHindi
	}

	if suggestions, ok := preventionSuggestions[lang][biasType]; ok {
		return suggestions
	}
	if suggestions, ok := preventionSuggestions[models.LanguageEnglish][biasType]; ok {
		return suggestions
	}
	return preventionSuggestions[models.LanguageEnglish][models.BiasTypeGender]
}

// matchKeywords returns the keywords present in the lowered text, preserving
// keyword declaration order
func matchKeywords(lowered string, keywords []string) []string {
	var found []string
	for _, keyword := range keywords {
		if strings.Contains(lowered, strings.ToLower(keyword)) {
			found = append(found, keyword)
		}
	}
	return found
}

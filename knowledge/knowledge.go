package knowledge

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"nyayasetu-backend/models"
)

// Base is the static legal knowledge base. All lookups are read-only over
// immutable tables, so a single Base is shared across concurrent requests
// without locking.
type Base struct{}

// NewBase creates a knowledge base over the built-in statute table
func NewBase() *Base {
	return &Base{}
}

// maxSuggestedLaws caps the statutes attached to one analysis
const maxSuggestedLaws = 5

// maxSearchResults caps ad-hoc search output
const maxSearchResults = 10

// FindRelevantLaws returns up to five statutes for a category plus any
// statute from another category whose text mentions a detected issue,
// sorted by descending relevance.
func (b *Base) FindRelevantLaws(issues []string, category models.Category) []models.SuggestedLaw {
	relevant := make([]models.SuggestedLaw, 0, maxSuggestedLaws)
	relevant = append(relevant, statutesByCategory[category]...)

	for _, issue := range issues {
		issueLower := strings.ToLower(issue)

		// Scan every category for statutes mentioning this issue
		for _, cat := range models.Categories {
			for _, law := range statutesByCategory[cat] {
				if !lawMentions(law, issueLower) {
					continue
				}
				if containsSection(relevant, law.Section) {
					continue
				}
				scored := law
				scored.Relevance = issueRelevance(issueLower, law)
				relevant = append(relevant, scored)
			}
		}
	}

	sort.SliceStable(relevant, func(i, j int) bool {
		return relevanceValue(relevant[i].Relevance) > relevanceValue(relevant[j].Relevance)
	})

	if len(relevant) > maxSuggestedLaws {
		relevant = relevant[:maxSuggestedLaws]
	}
	return relevant
}

// SearchResult is one statute matched by a free-text search
type SearchResult struct {
	models.SuggestedLaw
	Category models.Category `json:"category"`
}

// SearchLaws performs ad-hoc statute lookup. A nil category searches every
// category. Results are ranked by phrase match, per-word overlap and
// section-number match, capped at ten.
func (b *Base) SearchLaws(query string, category *models.Category) []SearchResult {
	queryLower := strings.ToLower(query)

	categories := models.Categories
	if category != nil {
		categories = []models.Category{*category}
	}

	var results []SearchResult
	for _, cat := range categories {
		for _, law := range statutesByCategory[cat] {
			if !lawMentions(law, queryLower) {
				continue
			}
			scored := law
			scored.Relevance = searchRelevance(queryLower, law)
			results = append(results, SearchResult{SuggestedLaw: scored, Category: cat})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return relevanceValue(results[i].Relevance) > relevanceValue(results[j].Relevance)
	})

	if len(results) > maxSearchResults {
		results = results[:maxSearchResults]
	}
	return results
}

// Categories returns the curated category descriptors
func (b *Base) Categories() []CategoryInfo {
	return categoryInfos
}

// EmergencyContacts returns the national helpline directory
func (b *Base) EmergencyContacts() map[string]EmergencyContact {
	return emergencyContacts
}

// LegalAidInfo returns the legal services authority for a state, falling
// back to the national authority for unknown states.
func (b *Base) LegalAidInfo(state string) LegalAidContact {
	if contact, ok := legalAidContacts[strings.ToLower(state)]; ok {
		return contact
	}
	return nationalLegalAid
}

// lawMentions reports whether any statute text contains the lowered needle
func lawMentions(law models.SuggestedLaw, needle string) bool {
	text := strings.ToLower(law.Section + " " + law.Description + " " + law.Details)
	return strings.Contains(text, needle)
}

// issueRelevance scores a cross-category statute against one issue:
// base 50, +10 per matching word longer than three characters, +20 for an
// exact phrase match, capped at 95.
func issueRelevance(issueLower string, law models.SuggestedLaw) string {
	lawText := strings.ToLower(law.Section + " " + law.Description + " " + law.Details)

	relevance := 50
	for _, word := range strings.Fields(issueLower) {
		if len(word) > 3 && strings.Contains(lawText, word) {
			relevance += 10
		}
	}
	if strings.Contains(lawText, issueLower) {
		relevance += 20
	}

	if relevance > 95 {
		relevance = 95
	}
	return fmt.Sprintf("%d%%", relevance)
}

// searchRelevance scores a statute against a free-text query: +50 for an
// exact phrase match, up to +30 for per-word overlap, +20 for a section
// match, capped at 95.
func searchRelevance(queryLower string, law models.SuggestedLaw) string {
	lawText := strings.ToLower(law.Section + " " + law.Description)

	score := 0.0
	if strings.Contains(lawText, queryLower) {
		score += 50
	}

	var queryWords []string
	for _, word := range strings.Fields(queryLower) {
		if len(word) > 2 {
			queryWords = append(queryWords, word)
		}
	}
	if len(queryWords) > 0 {
		matching := 0
		for _, word := range queryWords {
			if strings.Contains(lawText, word) {
				matching++
			}
		}
		score += float64(matching) / float64(len(queryWords)) * 30
	}

	if strings.Contains(strings.ToLower(law.Section), queryLower) {
		score += 20
	}

	if score > 95 {
		score = 95
	}
	return strconv.FormatFloat(score, 'f', -1, 64) + "%"
}

// relevanceValue parses a "95%" style string for sorting
func relevanceValue(relevance string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSuffix(relevance, "%"), 64)
	if err != nil {
		return 0
	}
	return value
}

// containsSection reports whether a statute is already in the result set
func containsSection(laws []models.SuggestedLaw, section string) bool {
	for _, law := range laws {
		if law.Section == section {
			return true
		}
	}
	return false
}

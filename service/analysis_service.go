// Package service contains the business logic for query analysis, case
// management, and document generation.
package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"nyayasetu-backend/bias"
	"nyayasetu-backend/gemini"
	"nyayasetu-backend/knowledge"
	"nyayasetu-backend/models"

	"go.uber.org/zap"
)

// ErrEmptyQuery is returned when a query has no analyzable content
var ErrEmptyQuery = errors.New("query is empty")

// TextIntelligence is the probabilistic text capability backing the
// pipeline. Deterministic stages never depend on it.
type TextIntelligence interface {
	CleanQuery(ctx context.Context, query string, language models.Language) (string, error)
	ClassifyQuery(ctx context.Context, query string, language models.Language) (*models.Classification, error)
	GenerateRecommendations(ctx context.Context, classification *models.Classification, laws []models.SuggestedLaw, biasDetection *models.BiasDetection) ([]string, error)
	Translate(ctx context.Context, text, from, to string) (string, error)
}

const maxConfidence = 95.0

// defaultClassification is used when the classify stage is unavailable.
// The analysis still succeeds with this generic result.
func defaultClassification() *models.Classification {
	return &models.Classification{
		DetectedIssues: []string{"General Legal Issue"},
		Category:       models.CategoryOther,
		Subcategory:    "general",
	}
}

var defaultRecommendations = []string{
	"Consult with a qualified lawyer",
	"Gather all relevant documents",
	"File a complaint with appropriate authorities",
	"Seek legal aid if needed",
}

// AnalysisService runs the legal query analysis pipeline
type AnalysisService struct {
	intelligence TextIntelligence
	scorer       *bias.Scorer
	knowledge    *knowledge.Base
	log          *zap.Logger
}

// AnalysisServiceOption is a functional option for AnalysisService
type AnalysisServiceOption func(*AnalysisService)

// WithTextIntelligence sets the text intelligence backend
func WithTextIntelligence(ti TextIntelligence) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.intelligence = ti
	}
}

// WithBiasScorer sets the bias scorer
func WithBiasScorer(scorer *bias.Scorer) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.scorer = scorer
	}
}

// WithKnowledgeBase sets the legal knowledge base
func WithKnowledgeBase(kb *knowledge.Base) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.knowledge = kb
	}
}

// WithAnalysisLogger sets the logger
func WithAnalysisLogger(log *zap.Logger) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.log = log
	}
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(opts ...AnalysisServiceOption) *AnalysisService {
	s := &AnalysisService{
		scorer:    bias.NewScorer(),
		knowledge: knowledge.NewBase(),
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AnalyzeRequest is the input for query analysis
type AnalyzeRequest struct {
	Query    string
	Language models.Language
}

// AnalyzeResult is the output of query analysis
type AnalyzeResult struct {
	Analysis       *models.AnalysisResult
	Classification *models.Classification
}

// Analyze runs the full pipeline: clean, classify, bias scan, statute
// lookup, recommendations, confidence. The probabilistic stages degrade to
// defaults when the upstream is unavailable; only an empty query fails.
func (s *AnalysisService) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResult, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	language := req.Language
	if !language.Valid() {
		language = models.LanguageEnglish
	}

	cleaned := s.cleanQuery(ctx, query, language)
	classification := s.classifyQuery(ctx, cleaned, language)
	biasDetection := s.scorer.Detect(cleaned, language)
	laws := s.knowledge.FindRelevantLaws(classification.DetectedIssues, classification.Category)
	recommendations := s.recommendActions(ctx, classification, laws, &biasDetection)

	analysis := &models.AnalysisResult{
		CleanedQuery:       cleaned,
		OriginalQuery:      query,
		Language:           language,
		DetectedIssues:     classification.DetectedIssues,
		Category:           classification.Category,
		Subcategory:        classification.Subcategory,
		SuggestedLaws:      laws,
		BiasDetection:      biasDetection,
		RecommendedActions: recommendations,
		Confidence:         aggregateConfidence(classification, laws, biasDetection),
		ProcessedAt:        time.Now().UTC(),
	}

	return &AnalyzeResult{Analysis: analysis, Classification: classification}, nil
}

func (s *AnalysisService) cleanQuery(ctx context.Context, query string, language models.Language) string {
	if s.intelligence == nil {
		return query
	}
	cleaned, err := s.intelligence.CleanQuery(ctx, query, language)
	if err != nil || cleaned == "" {
		s.log.Warn("clean stage degraded to raw query", zap.Error(err))
		return query
	}
	return cleaned
}

func (s *AnalysisService) classifyQuery(ctx context.Context, query string, language models.Language) *models.Classification {
	if s.intelligence == nil {
		return defaultClassification()
	}
	classification, err := s.intelligence.ClassifyQuery(ctx, query, language)
	if err != nil || classification == nil {
		s.log.Warn("classify stage degraded to default classification", zap.Error(err))
		return defaultClassification()
	}
	if len(classification.DetectedIssues) == 0 {
		classification.DetectedIssues = []string{"General Legal Issue"}
	}
	if !classification.Category.Valid() {
		classification.Category = models.CategoryOther
	}
	return classification
}

func (s *AnalysisService) recommendActions(
	ctx context.Context,
	classification *models.Classification,
	laws []models.SuggestedLaw,
	biasDetection *models.BiasDetection,
) []string {
	if s.intelligence == nil {
		return defaultRecommendations
	}
	recommendations, err := s.intelligence.GenerateRecommendations(ctx, classification, laws, biasDetection)
	if err != nil || len(recommendations) == 0 {
		s.log.Warn("recommendation stage degraded to defaults", zap.Error(err))
		return defaultRecommendations
	}
	return recommendations
}

// Translate converts text between languages via the intelligence backend
func (s *AnalysisService) Translate(ctx context.Context, text, from, to string) (string, error) {
	if s.intelligence == nil {
		return "", gemini.ErrUpstreamUnavailable
	}
	return s.intelligence.Translate(ctx, text, from, to)
}

// Knowledge exposes the underlying knowledge base for the read-only
// catalogue endpoints
func (s *AnalysisService) Knowledge() *knowledge.Base {
	return s.knowledge
}

// aggregateConfidence scores how grounded the analysis is. The score
// starts at 50 and earns credit for detected issues, matched statutes, a
// specific category, and bias evidence, capped at 95.
func aggregateConfidence(classification *models.Classification, laws []models.SuggestedLaw, biasDetection models.BiasDetection) string {
	confidence := 50.0

	if len(classification.DetectedIssues) > 0 {
		confidence += 20
	}
	if len(laws) > 0 {
		confidence += 15
	}
	if classification.Category != models.CategoryOther {
		confidence += 10
	}
	if biasDetection.Detected {
		bonus := percentValue(biasDetection.Confidence) / 10
		if bonus > 5 {
			bonus = 5
		}
		confidence += bonus
	}

	if confidence > maxConfidence {
		confidence = maxConfidence
	}
	return strconv.FormatFloat(confidence, 'f', -1, 64) + "%"
}

// percentValue parses a "95%" style string back into its numeric value
func percentValue(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0
	}
	return v
}

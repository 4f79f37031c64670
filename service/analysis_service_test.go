package service

import (
	"context"
	"errors"
	"testing"

	"nyayasetu-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeIntelligence scripts the probabilistic stages for pipeline tests
type fakeIntelligence struct {
	cleaned        string
	cleanErr       error
	classification *models.Classification
	classifyErr    error
	recs           []string
	recsErr        error
	translated     string
	translateErr   error
}

func (f *fakeIntelligence) CleanQuery(ctx context.Context, query string, language models.Language) (string, error) {
	return f.cleaned, f.cleanErr
}

func (f *fakeIntelligence) ClassifyQuery(ctx context.Context, query string, language models.Language) (*models.Classification, error) {
	return f.classification, f.classifyErr
}

func (f *fakeIntelligence) GenerateRecommendations(ctx context.Context, classification *models.Classification, laws []models.SuggestedLaw, biasDetection *models.BiasDetection) ([]string, error) {
	return f.recs, f.recsErr
}

func (f *fakeIntelligence) Translate(ctx context.Context, text, from, to string) (string, error) {
	return f.translated, f.translateErr
}

var errUpstream = errors.New("upstream unavailable")

func TestAnalyzeEmptyQuery(t *testing.T) {
	svc := NewAnalysisService()

	_, err := svc.Analyze(context.Background(), AnalyzeRequest{Query: "   "})
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestAnalyzeFullPipeline(t *testing.T) {
	intelligence := &fakeIntelligence{
		cleaned: "My husband beats me and threatens me at home",
		classification: &models.Classification{
			DetectedIssues: []string{"domestic violence", "physical abuse"},
			Category:       models.CategoryDomesticViolence,
			Subcategory:    "physical_violence",
			UrgencyLevel:   9,
			SuggestedTitle: "Domestic Violence Complaint",
		},
		recs: []string{"File a complaint under the Domestic Violence Act"},
	}
	svc := NewAnalysisService(WithTextIntelligence(intelligence))

	result, err := svc.Analyze(context.Background(), AnalyzeRequest{
		Query:    "my husband is beating me and giving threats",
		Language: models.LanguageEnglish,
	})
	require.NoError(t, err)

	analysis := result.Analysis
	assert.Equal(t, intelligence.cleaned, analysis.CleanedQuery)
	assert.Equal(t, "my husband is beating me and giving threats", analysis.OriginalQuery)
	assert.Equal(t, models.CategoryDomesticViolence, analysis.Category)
	assert.Equal(t, []string{"domestic violence", "physical abuse"}, analysis.DetectedIssues)
	assert.NotEmpty(t, analysis.SuggestedLaws)
	assert.Equal(t, "IPC Section 498A", analysis.SuggestedLaws[0].Section)
	assert.True(t, analysis.BiasDetection.Detected)
	assert.Equal(t, models.BiasTypeGender, analysis.BiasDetection.Type)
	assert.Equal(t, intelligence.recs, analysis.RecommendedActions)
	assert.False(t, analysis.ProcessedAt.IsZero())

	// Issues, laws, specific category and detected bias all contribute,
	// so the score hits the 95 cap.
	assert.Equal(t, "95%", analysis.Confidence)
}

func TestAnalyzeClassifyFailureDegradesToDefault(t *testing.T) {
	intelligence := &fakeIntelligence{
		cleaned:     "cleaned query",
		classifyErr: errUpstream,
		recsErr:     errUpstream,
	}
	svc := NewAnalysisService(WithTextIntelligence(intelligence))

	result, err := svc.Analyze(context.Background(), AnalyzeRequest{
		Query:    "some vague legal trouble",
		Language: models.LanguageEnglish,
	})
	require.NoError(t, err, "degraded classification must still succeed")

	analysis := result.Analysis
	assert.Equal(t, []string{"General Legal Issue"}, analysis.DetectedIssues)
	assert.Equal(t, models.CategoryOther, analysis.Category)
	assert.Equal(t, "general", analysis.Subcategory)
	assert.Equal(t, defaultRecommendations, analysis.RecommendedActions)
}

func TestAnalyzeCleanFailureKeepsRawQuery(t *testing.T) {
	intelligence := &fakeIntelligence{
		cleanErr: errUpstream,
		classification: &models.Classification{
			DetectedIssues: []string{"wage theft"},
			Category:       models.CategoryLaborRights,
		},
		recs: []string{"Contact the labor commissioner"},
	}
	svc := NewAnalysisService(WithTextIntelligence(intelligence))

	result, err := svc.Analyze(context.Background(), AnalyzeRequest{
		Query:    "employer not paying salary",
		Language: models.LanguageEnglish,
	})
	require.NoError(t, err)

	assert.Equal(t, "employer not paying salary", result.Analysis.CleanedQuery)
}

func TestAnalyzeWithoutIntelligence(t *testing.T) {
	svc := NewAnalysisService()

	result, err := svc.Analyze(context.Background(), AnalyzeRequest{
		Query:    "I need help with a property paper",
		Language: models.LanguageEnglish,
	})
	require.NoError(t, err)

	analysis := result.Analysis
	assert.Equal(t, "I need help with a property paper", analysis.CleanedQuery)
	assert.Equal(t, models.CategoryOther, analysis.Category)
	assert.Equal(t, defaultRecommendations, analysis.RecommendedActions)
}

func TestAnalyzeInvalidLanguageDefaultsToEnglish(t *testing.T) {
	svc := NewAnalysisService()

	result, err := svc.Analyze(context.Background(), AnalyzeRequest{
		Query:    "consumer complaint about defective phone",
		Language: models.Language("klingon"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.LanguageEnglish, result.Analysis.Language)
}

func TestAnalyzeHindiDomesticViolence(t *testing.T) {
	intelligence := &fakeIntelligence{
		cleaned: "पति द्वारा घरेलू हिंसा की शिकायत",
		classification: &models.Classification{
			DetectedIssues: []string{"domestic violence"},
			Category:       models.CategoryDomesticViolence,
			UrgencyLevel:   8,
		},
		recs: []string{"महिला हेल्पलाइन 1091 पर कॉल करें"},
	}
	svc := NewAnalysisService(WithTextIntelligence(intelligence))

	result, err := svc.Analyze(context.Background(), AnalyzeRequest{
		Query:    "मेरे पति मुझे धमकी देते हैं",
		Language: models.LanguageHindi,
	})
	require.NoError(t, err)

	analysis := result.Analysis
	assert.Equal(t, models.LanguageHindi, analysis.Language)
	assert.True(t, analysis.BiasDetection.Detected)
	assert.Equal(t, models.BiasTypeGender, analysis.BiasDetection.Type)
	assert.Equal(t, "IPC Section 498A", analysis.SuggestedLaws[0].Section)
}

func TestAggregateConfidence(t *testing.T) {
	tests := []struct {
		name           string
		classification *models.Classification
		laws           []models.SuggestedLaw
		bias           models.BiasDetection
		want           string
	}{
		{
			name:           "floor with nothing detected",
			classification: &models.Classification{Category: models.CategoryOther},
			want:           "50%",
		},
		{
			name: "issues only",
			classification: &models.Classification{
				DetectedIssues: []string{"x"},
				Category:       models.CategoryOther,
			},
			want: "70%",
		},
		{
			name: "issues and laws",
			classification: &models.Classification{
				DetectedIssues: []string{"x"},
				Category:       models.CategoryOther,
			},
			laws: []models.SuggestedLaw{{Section: "IPC 420"}},
			want: "85%",
		},
		{
			name: "bias bonus is fractional",
			classification: &models.Classification{
				DetectedIssues: []string{"x"},
				Category:       models.CategoryOther,
			},
			bias: models.BiasDetection{Detected: true, Confidence: "45%"},
			want: "74.5%",
		},
		{
			name: "bias bonus capped at five",
			classification: &models.Classification{
				DetectedIssues: []string{"x"},
				Category:       models.CategoryOther,
			},
			bias: models.BiasDetection{Detected: true, Confidence: "95%"},
			want: "75%",
		},
		{
			name: "everything caps at 95",
			classification: &models.Classification{
				DetectedIssues: []string{"x"},
				Category:       models.CategoryLaborRights,
			},
			laws: []models.SuggestedLaw{{Section: "Minimum Wages Act"}},
			bias: models.BiasDetection{Detected: true, Confidence: "95%"},
			want: "95%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := aggregateConfidence(tt.classification, tt.laws, tt.bias)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTranslateWithoutIntelligence(t *testing.T) {
	svc := NewAnalysisService()

	_, err := svc.Translate(context.Background(), "hello", "english", "hindi")
	assert.Error(t, err)
}

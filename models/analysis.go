package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Language represents the language of a legal query
type Language string

const (
	LanguageHindi    Language = "hindi"
	LanguageEnglish  Language = "english"
	LanguageHinglish Language = "hinglish"
)

// Valid reports whether the language is one of the supported values
func (l Language) Valid() bool {
	switch l {
	case LanguageHindi, LanguageEnglish, LanguageHinglish:
		return true
	}
	return false
}

// Category represents a legal issue category
type Category string

const (
	CategoryDomesticViolence     Category = "domestic_violence"
	CategoryWomenRights          Category = "women_rights"
	CategoryLaborRights          Category = "labor_rights"
	CategoryPropertyDispute      Category = "property_dispute"
	CategoryConsumerProtection   Category = "consumer_protection"
	CategoryCriminalLaw          Category = "criminal_law"
	CategoryFamilyLaw            Category = "family_law"
	CategoryConstitutionalRights Category = "constitutional_rights"
	CategoryCasteDiscrimination  Category = "caste_discrimination"
	CategoryOther                Category = "other"
)

// Categories lists every legal category in declaration order
var Categories = []Category{
	CategoryDomesticViolence,
	CategoryWomenRights,
	CategoryLaborRights,
	CategoryPropertyDispute,
	CategoryConsumerProtection,
	CategoryCriminalLaw,
	CategoryFamilyLaw,
	CategoryConstitutionalRights,
	CategoryCasteDiscrimination,
	CategoryOther,
}

// Valid reports whether the category belongs to the closed set
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// BiasType represents a category of detected bias
type BiasType string

const (
	BiasTypeGender   BiasType = "gender"
	BiasTypeCaste    BiasType = "caste"
	BiasTypeReligion BiasType = "religion"
	BiasTypeEconomic BiasType = "economic"
	BiasTypeRegional BiasType = "regional"
	BiasTypeGeneral  BiasType = "general"
)

// Classification is the output of the classify stage of the analysis pipeline
type Classification struct {
	DetectedIssues []string `json:"detectedIssues"`
	Category       Category `json:"category"`
	Subcategory    string   `json:"subcategory"`
	UrgencyLevel   int      `json:"urgencyLevel"`
	SuggestedTitle string   `json:"suggestedTitle"`
	KeyTerms       []string `json:"keyTerms"`
}

// SuggestedLaw is a statute reference with a textual relevance percentage
// such as "95%". Downstream consumers depend on the percentage-string form.
type SuggestedLaw struct {
	Section     string `json:"section"`
	Description string `json:"description"`
	Relevance   string `json:"relevance"`
	Details     string `json:"details,omitempty"`
}

// BiasDetails carries the raw evidence behind a bias detection
type BiasDetails struct {
	BiasTypes       []BiasType `json:"biasTypes"`
	MatchedKeywords []string   `json:"matchedKeywords"`
	Severity        float64    `json:"severity"`
}

// BiasDetection is the result of scanning a query against the bias lexicon
type BiasDetection struct {
	Detected    bool         `json:"detected"`
	Type        BiasType     `json:"type,omitempty"`
	Confidence  string       `json:"confidence"`
	Explanation string       `json:"explanation"`
	Details     *BiasDetails `json:"details,omitempty"`
}

// AnalysisResult is the immutable output of the analysis pipeline.
// Confidence and relevance values are percentage strings capped at "95%".
type AnalysisResult struct {
	CleanedQuery       string         `json:"cleanedQuery"`
	OriginalQuery      string         `json:"originalQuery"`
	Language           Language       `json:"language"`
	DetectedIssues     []string       `json:"detectedIssues"`
	Category           Category       `json:"category"`
	Subcategory        string         `json:"subcategory,omitempty"`
	SuggestedLaws      []SuggestedLaw `json:"suggestedLaws"`
	BiasDetection      BiasDetection  `json:"biasDetection"`
	RecommendedActions []string       `json:"recommendedActions"`
	Confidence         string         `json:"confidence"`
	ProcessedAt        time.Time      `json:"processedAt"`
}

// Value implements driver.Valuer for JSONB
func (a AnalysisResult) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Scan implements sql.Scanner for JSONB
func (a *AnalysisResult) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	if len(bytes) == 0 {
		return nil
	}

	return json.Unmarshal(bytes, a)
}

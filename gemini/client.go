// Package gemini implements the text-intelligence capability (query
// cleaning, classification, recommendations, translation) on top of the
// Gemini API.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"nyayasetu-backend/models"

	"github.com/google/generative-ai-go/genai"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// ErrUpstreamUnavailable is returned when the Gemini API stays unreachable
// past the retry budget. Callers are expected to degrade rather than fail.
var ErrUpstreamUnavailable = errors.New("text intelligence service unavailable")

const (
	defaultModel      = "gemini-1.5-flash"
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 2
	initialBackoff    = time.Second
)

// Client calls Gemini for the probabilistic stages of the analysis pipeline
type Client struct {
	genai      *genai.Client
	model      string
	timeout    time.Duration
	maxRetries int
	cache      *cache.Cache
	log        *zap.Logger
}

// Option is a functional option for Client
type Option func(*Client)

// WithModel overrides the generation model
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// WithTimeout bounds each individual API call
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithMaxRetries sets the per-request retry budget
func WithMaxRetries(retries int) Option {
	return func(c *Client) {
		c.maxRetries = retries
	}
}

// WithLogger sets the logger
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a Gemini-backed client. Clean and translate responses
// are memoized in-process since they are pure functions of their input.
func NewClient(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	genaiClient, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	c := &Client{
		genai:      genaiClient,
		model:      defaultModel,
		timeout:    defaultTimeout,
		maxRetries: defaultMaxRetries,
		cache:      cache.New(1*time.Hour, 10*time.Minute),
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Close releases the underlying API client
func (c *Client) Close() error {
	return c.genai.Close()
}

// CleanQuery standardizes a raw legal query without changing its meaning
func (c *Client) CleanQuery(ctx context.Context, query string, language models.Language) (string, error) {
	cacheKey := "clean|" + string(language) + "|" + query
	if cached, found := c.cache.Get(cacheKey); found {
		return cached.(string), nil
	}

	prompt := fmt.Sprintf(`Clean and standardize this legal query in %s.
Remove unnecessary words, correct spelling, and make it clear and concise.
Preserve the original meaning and legal context.

Query: %q

Return only the cleaned query without any additional text.`, language, query)

	cleaned, err := c.generate(ctx, prompt, 0.3)
	if err != nil {
		return "", err
	}

	cleaned = strings.TrimSpace(cleaned)
	c.cache.Set(cacheKey, cleaned, cache.DefaultExpiration)
	return cleaned, nil
}

// ClassifyQuery detects legal issues and assigns a category and subcategory
func (c *Client) ClassifyQuery(ctx context.Context, query string, language models.Language) (*models.Classification, error) {
	prompt := fmt.Sprintf(`Analyze this legal query and provide a structured response in JSON format:

Query: %q
Language: %s

Analyze for Indian legal context and return JSON with:
{
  "detectedIssues": ["issue1", "issue2"],
  "category": "primary_category",
  "subcategory": "specific_subcategory",
  "urgencyLevel": 1,
  "suggestedTitle": "Brief case title",
  "keyTerms": ["term1", "term2"]
}

urgencyLevel is an integer from 1 to 10.
Categories: domestic_violence, women_rights, labor_rights, property_dispute,
consumer_protection, criminal_law, family_law, constitutional_rights,
caste_discrimination, other`, query, language)

	raw, err := c.generate(ctx, prompt, 0.2)
	if err != nil {
		return nil, err
	}

	var classification models.Classification
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &classification); err != nil {
		return nil, fmt.Errorf("failed to parse classification response: %w", err)
	}

	// The model occasionally invents categories outside the closed set
	if !classification.Category.Valid() {
		classification.Category = models.CategoryOther
	}
	return &classification, nil
}

// GenerateRecommendations produces actionable next steps from the combined
// analysis context
func (c *Client) GenerateRecommendations(
	ctx context.Context,
	classification *models.Classification,
	laws []models.SuggestedLaw,
	biasDetection *models.BiasDetection,
) ([]string, error) {
	sections := make([]string, 0, len(laws))
	for _, law := range laws {
		sections = append(sections, law.Section)
	}

	biasDetected := "No"
	if biasDetection != nil && biasDetection.Detected {
		biasDetected = "Yes"
	}

	prompt := fmt.Sprintf(`Based on this legal analysis, generate specific actionable recommendations:

Issues: %s
Category: %s
Relevant Laws: %s
Bias Detected: %s

Provide 4-6 specific, actionable recommendations for Indian legal context.
Focus on immediate steps the person can take.

Return as JSON array: ["recommendation1", "recommendation2", ...]`,
		strings.Join(classification.DetectedIssues, ", "),
		classification.Category,
		strings.Join(sections, ", "),
		biasDetected,
	)

	raw, err := c.generate(ctx, prompt, 0.4)
	if err != nil {
		return nil, err
	}

	var recommendations []string
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &recommendations); err != nil {
		return nil, fmt.Errorf("failed to parse recommendations response: %w", err)
	}
	return recommendations, nil
}

// Translate converts text between Hindi and English, preserving legal
// terminology
func (c *Client) Translate(ctx context.Context, text, from, to string) (string, error) {
	cacheKey := "translate|" + from + "|" + to + "|" + text
	if cached, found := c.cache.Get(cacheKey); found {
		return cached.(string), nil
	}

	prompt := fmt.Sprintf(`Translate the following text from %s to %s.
Maintain legal terminology accuracy and cultural context.

Text: %q

Return only the translation without any additional text.`, from, to, text)

	translated, err := c.generate(ctx, prompt, 0.2)
	if err != nil {
		return "", err
	}

	translated = strings.TrimSpace(translated)
	c.cache.Set(cacheKey, translated, cache.DefaultExpiration)
	return translated, nil
}

// generate runs one prompt with a bounded per-attempt timeout and
// exponential backoff between attempts
func (c *Client) generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	model := c.genai.GenerativeModel(c.model)
	model.SetTemperature(temperature)

	var lastErr error
	backoff := initialBackoff
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			backoff *= 2
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := model.GenerateContent(attemptCtx, genai.Text(prompt))
		cancel()
		if err != nil {
			lastErr = err
			c.log.Warn("gemini call failed",
				zap.Int("attempt", attempt+1),
				zap.Error(err))
			continue
		}

		text := responseText(resp)
		if text != "" {
			return text, nil
		}
		lastErr = errors.New("gemini returned empty content")
	}

	return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, lastErr)
}

// responseText concatenates the text parts of every candidate
func responseText(resp *genai.GenerateContentResponse) string {
	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				builder.WriteString(string(text))
			}
		}
	}
	return builder.String()
}

// stripCodeFence removes a surrounding markdown code fence from a model
// response so the JSON inside can be parsed
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lankacraft/marketapi/internal/config"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	apiKeyPrefix    = "AIza"
	apiKeyMinLength = 35
	placeholderKey  = "YOUR_ACTUAL_API_KEY_HERE"
)

// ShopProfile is the generated shop profile. Field names match the JSON
// shape requested in the prompt.
type ShopProfile struct {
	ShopName      string `json:"shopName"`
	Description   string `json:"description"`
	Specialties   string `json:"specialties"`
	BusinessHours string `json:"businessHours"`
}

type Client struct {
	apiKey          string
	model           string
	timeout         time.Duration
	temperature     float64
	maxOutputTokens int
	baseURL         string
	httpClient      *http.Client
	logger          *zap.Logger
}

// NewClient creates a new generative-language API client
func NewClient(cfg config.GeminiConfig, logger *zap.Logger) *Client {
	return &Client{
		apiKey:          strings.TrimSpace(cfg.APIKey),
		model:           cfg.Model,
		timeout:         cfg.Timeout,
		temperature:     cfg.Temperature,
		maxOutputTokens: cfg.MaxOutputTokens,
		baseURL:         defaultBaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// ValidateAPIKey checks the configured key's shape without calling the API.
func (c *Client) ValidateAPIKey() error {
	switch {
	case c.apiKey == "":
		return fmt.Errorf("%w: no API key provided", ErrConfig)
	case c.apiKey == placeholderKey:
		return fmt.Errorf("%w: placeholder API key has not been replaced", ErrConfig)
	case !strings.HasPrefix(c.apiKey, apiKeyPrefix):
		return fmt.Errorf("%w: API key should start with %q", ErrConfig, apiKeyPrefix)
	case len(c.apiKey) < apiKeyMinLength:
		return fmt.Errorf("%w: API key appears to be too short", ErrConfig)
	default:
		return nil
	}
}

type generateRequest struct {
	Contents         []requestContent `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type requestContent struct {
	Parts []requestPart `json:"parts"`
}

type requestPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateShopProfile asks the model for a shop profile built from free-form
// seller input. One attempt per call; on failure the caller decides whether
// to fall back to the canned generator.
func (c *Client) GenerateShopProfile(ctx context.Context, shopInfo string) (*ShopProfile, error) {
	if err := c.ValidateAPIKey(); err != nil {
		return nil, err
	}

	reqBody := generateRequest{
		Contents: []requestContent{
			{Parts: []requestPart{{Text: buildPrompt(shopInfo)}}},
		},
		GenerationConfig: generationConfig{
			Temperature:     c.temperature,
			MaxOutputTokens: c.maxOutputTokens,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrNetwork, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(resp.StatusCode, string(body))
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	text := candidateText(genResp)
	if text == "" {
		return nil, fmt.Errorf("%w: no candidate text in response", ErrParse)
	}

	profile, err := parseShopProfile(text)
	if err != nil {
		c.logger.Warn("Failed to parse generated profile", zap.Error(err), zap.String("raw", text))
		return nil, err
	}

	return profile, nil
}

func candidateText(resp generateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return strings.TrimSpace(b.String())
}

// parseShopProfile pulls a profile out of free model text: strips markdown
// fences, extracts the first balanced JSON object, and requires all four
// fields to be present and non-empty.
func parseShopProfile(text string) (*ShopProfile, error) {
	clean := strings.ReplaceAll(text, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)

	obj, ok := firstJSONObject(clean)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object in model output", ErrParse)
	}

	var profile ShopProfile
	if err := json.Unmarshal([]byte(obj), &profile); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	if profile.ShopName == "" || profile.Description == "" ||
		profile.Specialties == "" || profile.BusinessHours == "" {
		return nil, fmt.Errorf("%w: missing required fields in model output", ErrParse)
	}

	return &profile, nil
}

// firstJSONObject returns the first balanced {...} substring.
func firstJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

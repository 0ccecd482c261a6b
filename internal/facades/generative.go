package facades

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sylesh7/medinnovate/internal/logger"
)

const (
	defaultGenerativeBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultGenerativeModel   = "gemini-pro"
)

// EmptyResponseWarning is returned in place of a reply when the upstream
// model produced no usable content.
const EmptyResponseWarning = "No valid response from the AI. Try rephrasing your request."

// GenerativeFacade wraps the Gemini generateContent endpoint. An empty or
// malformed upstream response normalizes to EmptyResponseWarning rather
// than an error; only transport and API failures are errors.
type GenerativeFacade struct {
	baseURL string
	model   string
	apiKey  string
	client  *http.Client
}

// GenerativeOpt configures a GenerativeFacade.
type GenerativeOpt func(*GenerativeFacade)

// WithGenerativeBaseURL overrides the API base URL.
func WithGenerativeBaseURL(u string) GenerativeOpt {
	return func(f *GenerativeFacade) { f.baseURL = u }
}

// WithGenerativeModel overrides the model name.
func WithGenerativeModel(m string) GenerativeOpt {
	return func(f *GenerativeFacade) { f.model = m }
}

// WithGenerativeHTTPClient overrides the HTTP client.
func WithGenerativeHTTPClient(c *http.Client) GenerativeOpt {
	return func(f *GenerativeFacade) { f.client = c }
}

// NewGenerativeFacade creates a facade authenticated with the given API key.
func NewGenerativeFacade(apiKey string, opts ...GenerativeOpt) *GenerativeFacade {
	f := &GenerativeFacade{
		baseURL: defaultGenerativeBaseURL,
		model:   defaultGenerativeModel,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

type generateRequest struct {
	Contents []generateContent `json:"contents"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generatePart struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
}

// Generate sends the prompt and returns the first candidate's text.
func (f *GenerativeFacade) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", f.baseURL, f.model, f.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := f.client.Do(req)
	if err != nil {
		logger.Log.Errorw("generate request failed", "error", err)
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		logger.Log.Errorw("generate request rejected", "status", res.StatusCode)
		return "", fmt.Errorf("text generation: status %d", res.StatusCode)
	}

	var apiResp generateResponse
	if err := json.NewDecoder(res.Body).Decode(&apiResp); err != nil {
		return EmptyResponseWarning, nil
	}

	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 ||
		apiResp.Candidates[0].Content.Parts[0].Text == "" {
		return EmptyResponseWarning, nil
	}

	return apiResp.Candidates[0].Content.Parts[0].Text, nil
}

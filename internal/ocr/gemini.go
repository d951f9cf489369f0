package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// GeminiProvider extracts answers with the Gemini generateContent API.
type GeminiProvider struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

// NewGeminiProvider creates a Gemini-backed vision provider.
func NewGeminiProvider(apiKey, model, endpoint string, timeout time.Duration) *GeminiProvider {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	if endpoint == "" {
		endpoint = "https://generativelanguage.googleapis.com/v1beta"
	}
	return &GeminiProvider{
		apiKey:   apiKey,
		model:    model,
		endpoint: strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (p *GeminiProvider) Name() string { return "gemini" }

const extractPrompt = `Read the answers a student wrote on this answer sheet image.

Total questions: %d

Rules:
1. For each question number (1, 2, 3...) transcribe the student's answer exactly as written.
2. Use an empty string ("") when an answer is blank or unreadable.
3. Do not grade. Only transcribe the written text.

Response format (JSON array):
[
  { "questionNumber": 1, "userAnswer": "transcribed answer" },
  { "questionNumber": 2, "userAnswer": "transcribed answer" }
]

Respond with JSON only, no other explanation.`

// ExtractAnswers sends the image to Gemini and parses the transcription.
func (p *GeminiProvider) ExtractAnswers(ctx context.Context, image []byte, mimeType string, questionCount int) ([]Result, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{Text: fmt.Sprintf(extractPrompt, questionCount)},
				{InlineData: &geminiInlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(image),
				}},
			},
		}},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.endpoint, p.model, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call gemini: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini returned %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	text, err := extractText(body)
	if err != nil {
		return nil, err
	}

	var results []Result
	if err := json.Unmarshal([]byte(stripFences(text)), &results); err != nil {
		return nil, fmt.Errorf("parse extraction: %w", err)
	}
	return results, nil
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func extractText(body []byte) (string, error) {
	var gr geminiResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates in gemini response")
	}
	return gr.Candidates[0].Content.Parts[0].Text, nil
}

// stripFences removes markdown code fences the model sometimes wraps
// around its JSON output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "```") {
		return s
	}
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Package ai wraps the best-effort Gemini collaborator. Every call is
// bounded by a client timeout and callers fall back to fixed text when
// it fails; nothing in the core waits on it.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"civicpulse/internal/models"
	"civicpulse/internal/observability"
)

// Fallback values used when the collaborator is unavailable.
const (
	FallbackNoIssues = "No significant issues reported this week."
	FallbackNoKey    = "AI summary unavailable. Please configure your API key."
	FallbackError    = "Unable to generate summary at this time."
)

// Collaborator is the external AI interface: prose summaries of top
// issues and a duplicate-likelihood judgment for new titles.
type Collaborator interface {
	WeeklySummary(ctx context.Context, issues []*models.Issue) (string, error)
	IsDuplicate(ctx context.Context, title string, existingTitles []string) (bool, error)
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

// Gemini talks to the Google generative language REST API.
type Gemini struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGemini creates a Gemini collaborator. The client timeout bounds
// every call so a slow backend cannot stall core operations.
func NewGemini(apiKey, model string) *Gemini {
	return &Gemini{
		apiKey:  apiKey,
		model:   model,
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// WithBaseURL overrides the API endpoint. Used by tests.
func (g *Gemini) WithBaseURL(u string) *Gemini {
	g.baseURL = u
	return g
}

// WeeklySummary asks the model for a city-manager-style update covering
// the given issues.
func (g *Gemini) WeeklySummary(ctx context.Context, issues []*models.Issue) (string, error) {
	var sb strings.Builder
	for _, i := range issues {
		fmt.Fprintf(&sb, "- %s: %s (%d upvotes)\n", i.Title, i.Description, i.UpvoteCount)
	}

	prompt := fmt.Sprintf(
		"Act as a City Manager. Summarize the following top issues reported by residents "+
			"this week into a professional but empathetic update for the City Council. "+
			"Highlight trends and priorities based on upvotes.\n\nIssues:\n%s", sb.String())

	text, err := g.generate(ctx, prompt)
	if err != nil {
		observability.AIRequests.WithLabelValues("summary", "error").Inc()
		return "", err
	}
	observability.AIRequests.WithLabelValues("summary", "ok").Inc()
	return text, nil
}

// IsDuplicate asks the model whether a candidate title likely duplicates
// one of the existing titles. Failures read as "not a duplicate".
func (g *Gemini) IsDuplicate(ctx context.Context, title string, existingTitles []string) (bool, error) {
	if len(existingTitles) == 0 {
		return false, nil
	}

	prompt := fmt.Sprintf(
		"New issue title: %q\nExisting issues: %s\n"+
			"Is the new issue likely a duplicate of any existing ones? "+
			"Answer STRICTLY with JSON: {\"is_duplicate\": true/false}",
		title, strings.Join(existingTitles, ", "))

	text, err := g.generate(ctx, prompt)
	if err != nil {
		observability.AIRequests.WithLabelValues("duplicate", "error").Inc()
		return false, err
	}

	text = strings.TrimSpace(text)
	text = strings.Trim(text, "`")
	text = strings.TrimPrefix(text, "json")
	text = strings.TrimSpace(text)

	var result struct {
		IsDuplicate bool `json:"is_duplicate"`
	}
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		observability.AIRequests.WithLabelValues("duplicate", "error").Inc()
		return false, fmt.Errorf("decode duplicate verdict: %w", err)
	}
	observability.AIRequests.WithLabelValues("duplicate", "ok").Inc()
	return result.IsDuplicate, nil
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", err
	}
	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}

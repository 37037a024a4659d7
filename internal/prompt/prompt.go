// Package prompt turns a free-text mood check-in into a short wellness
// activity suggestion via an external text-generation API. The capture flow
// must always get some prompt, so every failure resolves to Fallback.
package prompt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	// Fallback is shown whenever generation fails for any reason.
	Fallback = "Take a deep breath"

	// DefaultMaxWords caps the suggestion length.
	DefaultMaxWords = 8
)

// Generator calls a Cohere-style /v1/generate endpoint.
type Generator struct {
	baseURL  string
	apiKey   string
	maxWords int
	http     *http.Client
}

func NewGenerator(baseURL, apiKey string, maxWords int) *Generator {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}
	// Accept base URLs given with or without the /v1 suffix; the request
	// path below already carries it.
	base := strings.TrimRight(baseURL, "/")
	base = strings.TrimSuffix(base, "/v1")
	return &Generator{
		baseURL:  base,
		apiKey:   apiKey,
		maxWords: maxWords,
		http:     &http.Client{Timeout: 20 * time.Second},
	}
}

type generateRequest struct {
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	K           int     `json:"k"`
	P           float64 `json:"p"`
}

type generateResponse struct {
	Generations []struct {
		Text string `json:"text"`
	} `json:"generations"`
}

// Suggest produces a short activity suggestion for the given feelings text.
// It never returns an error: any failure yields Fallback.
func (g *Generator) Suggest(ctx context.Context, feelings string) string {
	instruction := fmt.Sprintf(
		"Based on the following feelings, provide a very short, lighthearted, and direct "+
			"wellness activity suggestion that one could take a picture of (maximum %d words total):\n\n"+
			"%q\n\n"+
			"Only return the suggestion with no explanation, context or quotation marks. "+
			"Responses must be visible activities, places, or objects.",
		g.maxWords, feelings,
	)

	payload, err := json.Marshal(generateRequest{
		Prompt:      instruction,
		MaxTokens:   20,
		Temperature: 0.7,
		P:           0.75,
	})
	if err != nil {
		return Fallback
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/generate", bytes.NewReader(payload))
	if err != nil {
		return Fallback
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.http.Do(req)
	if err != nil {
		return Fallback
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Fallback
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Fallback
	}
	if len(out.Generations) == 0 {
		return Fallback
	}
	text := strings.TrimSpace(out.Generations[0].Text)
	if text == "" {
		return Fallback
	}
	return Truncate(text, g.maxWords)
}

// Truncate limits s to at most maxWords whitespace-separated words.
func Truncate(s string, maxWords int) string {
	words := strings.Fields(s)
	if len(words) <= maxWords {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:maxWords], " ")
}

// Package gemini is a minimal client for the Google generative-language REST
// API. Only the generateContent call is used; the rest of the surface is out
// of scope for this service.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Config holds the connection settings for the generative-text collaborator.
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

// GenerationConfig tunes a single generation request.
type GenerationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

// Client produces free text for a prompt. Implementations must be safe for
// concurrent use.
type Client interface {
	GenerateContent(ctx context.Context, prompt string, cfg *GenerationConfig) (string, error)
}

// ErrNoAPIKey is returned by NewClient when no key is configured. Callers
// treat the collaborator as unavailable and fall back.
var ErrNoAPIKey = errors.New("gemini: api key not configured")

type httpClient struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a Client backed by the REST API with retrying transport.
func NewClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	retryClient.Logger = nil

	return &httpClient{cfg: cfg, http: retryClient.StandardClient()}, nil
}

// Wire shapes of the generateContent call.

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *httpClient) GenerateContent(ctx context.Context, prompt string, genCfg *GenerationConfig) (string, error) {
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.cfg.BaseURL, c.cfg.Model, url.QueryEscape(c.cfg.APIKey))

	body, err := json.Marshal(generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: genCfg,
	})
	if err != nil {
		return "", errors.Wrap(err, "encoding request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "calling generateContent")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", errors.Wrap(err, "reading response")
	}

	log.Debug().
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Str("model", c.cfg.Model).
		Msg("generateContent call finished")

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("generateContent returned status %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", errors.Wrap(err, "decoding response")
	}
	if parsed.Error != nil {
		return "", errors.Errorf("generateContent error %d: %s", parsed.Error.Code, parsed.Error.Message)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("generateContent returned no candidates")
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

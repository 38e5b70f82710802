// Package gemini implements the ports.Oracle contract against the Gemini
// API. Each operation builds one natural-language instruction, declares the
// JSON reply shape as a structured-output schema, and treats the reply body
// as untrusted text: trim, parse, validate. Transport failures, unparseable
// replies and schema mismatches all collapse into domain.ErrOracle with the
// cause wrapped. No retries happen here.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/synchromap/synchromap-go/internal/domain"
	"github.com/synchromap/synchromap-go/internal/metrics"
	"github.com/synchromap/synchromap-go/internal/ports"
)

// Client implements ports.Oracle via the Gemini generateContent API.
type Client struct {
	genai  *genai.Client
	model  string
	logger *slog.Logger
}

// NewClient builds a Gemini-backed oracle. baseURL is normally empty; tests
// and proxies point it at a stand-in server. The httpClient carries the
// transport timeout.
func NewClient(ctx context.Context, apiKey, baseURL, model string, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if baseURL != "" {
		cfg.HTTPOptions.BaseURL = baseURL
	}

	gc, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{
		genai:  gc,
		model:  model,
		logger: logger,
	}, nil
}

func (c *Client) GenerateBlueprint(ctx context.Context, req ports.BlueprintRequest) (domain.BirthBlueprint, error) {
	if err := req.Validate(); err != nil {
		return domain.BirthBlueprint{}, err
	}

	start := time.Now()
	raw, err := c.generate(ctx, blueprintPrompt(req), blueprintSchema())
	metrics.ObserveOracle("blueprint", start, err)
	if err != nil {
		return domain.BirthBlueprint{}, err
	}

	var bp domain.BirthBlueprint
	if err := json.Unmarshal([]byte(raw), &bp); err != nil {
		return domain.BirthBlueprint{}, fmt.Errorf("%w: parse blueprint reply: %w", domain.ErrOracle, err)
	}
	// All ten fields or nothing.
	if err := bp.Validate(); err != nil {
		return domain.BirthBlueprint{}, fmt.Errorf("%w: %w", domain.ErrOracle, err)
	}

	return bp, nil
}

func (c *Client) InterpretLog(ctx context.Context, kind domain.LogKind, description string, bp domain.BirthBlueprint) (domain.Interpretation, error) {
	if _, err := domain.ParseLogKind(string(kind)); err != nil {
		return domain.Interpretation{}, err
	}
	if strings.TrimSpace(description) == "" {
		return domain.Interpretation{}, domain.ErrEmptyDescription
	}

	start := time.Now()
	raw, err := c.generate(ctx, logPrompt(kind, description, bp), interpretationSchema())
	metrics.ObserveOracle("log_"+string(kind), start, err)
	if err != nil {
		return domain.Interpretation{}, err
	}

	return parseInterpretation(raw)
}

func (c *Client) InterpretFacet(ctx context.Context, facet domain.Facet, bp domain.BirthBlueprint) (domain.Interpretation, error) {
	prompt, err := facetPrompt(facet, bp)
	if err != nil {
		return domain.Interpretation{}, err
	}

	start := time.Now()
	raw, err := c.generate(ctx, prompt, interpretationSchema())
	metrics.ObserveOracle("facet_"+string(facet), start, err)
	if err != nil {
		return domain.Interpretation{}, err
	}

	return parseInterpretation(raw)
}

// generate sends one structured-output request and returns the trimmed
// reply body.
func (c *Client) generate(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return "", fmt.Errorf("%w: generate content: %w", domain.ErrOracle, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		c.logger.WarnContext(ctx, "empty reply from model", "model", c.model)
		return "", fmt.Errorf("%w: empty reply", domain.ErrOracle)
	}
	return text, nil
}

func parseInterpretation(raw string) (domain.Interpretation, error) {
	var out domain.Interpretation
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return domain.Interpretation{}, fmt.Errorf("%w: parse interpretation reply: %w", domain.ErrOracle, err)
	}
	if out.Summary == "" || out.FullInterpretation == "" {
		return domain.Interpretation{}, fmt.Errorf("%w: interpretation reply missing fields", domain.ErrOracle)
	}
	return out, nil
}

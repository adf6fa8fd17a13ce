// Package openai provides a classifier backed by an OpenAI-compatible
// embedding API. The model artifact is a descriptor file naming the
// embedding model and one prototype text per label; documents are scored
// by cosine similarity between the document embedding and the label
// prototype embeddings.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/textclass/internal/classifier"
	"github.com/kailas-cloud/textclass/internal/domain"
	"github.com/kailas-cloud/textclass/internal/logger"
)

// descriptor is the model artifact format.
type descriptor struct {
	Model     string  `yaml:"model"`
	BaseURL   string  `yaml:"base_url"`
	APIKeyEnv string  `yaml:"api_key_env"`
	Labels    []label `yaml:"labels"`
}

type label struct {
	Name      string `yaml:"name"`
	Prototype string `yaml:"prototype"`
}

// embedFunc embeds one text. Split out so scoring is testable without the
// API client.
type embedFunc func(ctx context.Context, text string) ([]float32, error)

// Classifier scores token sequences against embedded label prototypes.
type Classifier struct {
	labels     []string
	prototypes [][]float32
	embed      embedFunc
}

// Load reads a descriptor artifact, builds the API client and embeds the
// label prototypes once. Prototype embedding failures are load failures,
// not per-record conditions.
func Load(ctx context.Context, path string) (classifier.Classifier, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read descriptor %s: %w", path, err)
	}

	var d descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse descriptor %s: %w: %w", path, err, domain.ErrBadModel)
	}
	if d.Model == "" {
		return nil, fmt.Errorf("descriptor %s: model is required: %w", path, domain.ErrBadModel)
	}
	if len(d.Labels) == 0 {
		return nil, fmt.Errorf("descriptor %s has no labels: %w", path, domain.ErrBadModel)
	}
	for _, l := range d.Labels {
		if l.Name == "" || l.Prototype == "" {
			return nil, fmt.Errorf("descriptor %s: every label needs name and prototype: %w",
				path, domain.ErrBadModel)
		}
	}

	apiKeyEnv := d.APIKeyEnv
	if apiKeyEnv == "" {
		apiKeyEnv = "OPENAI_API_KEY"
	}
	clientCfg := openai.DefaultConfig(os.Getenv(apiKeyEnv))
	if d.BaseURL != "" {
		clientCfg.BaseURL = d.BaseURL
	}
	client := openai.NewClientWithConfig(clientCfg)
	model := openai.EmbeddingModel(d.Model)

	c, err := newClassifier(ctx, d, func(ctx context.Context, text string) ([]float32, error) {
		return embedText(ctx, client, model, text)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func newClassifier(ctx context.Context, d descriptor, embed embedFunc) (*Classifier, error) {
	log := logger.FromContext(ctx)
	c := &Classifier{
		labels:     make([]string, len(d.Labels)),
		prototypes: make([][]float32, len(d.Labels)),
		embed:      embed,
	}
	for i, l := range d.Labels {
		vec, err := embed(ctx, l.Prototype)
		if err != nil {
			return nil, fmt.Errorf("embed prototype for label %q: %w", l.Name, err)
		}
		c.labels[i] = l.Name
		c.prototypes[i] = vec
		log.Debug("label prototype embedded",
			zap.String("label", l.Name),
			zap.Int("dimensions", len(vec)),
		)
	}
	return c, nil
}

// Labels returns the label set in score order.
func (c *Classifier) Labels() []string { return c.labels }

// Classify embeds the joined token sequence and scores each label by
// cosine similarity with its prototype.
func (c *Classifier) Classify(ctx context.Context, tokens []string) ([]float64, error) {
	vec, err := c.embed(ctx, strings.Join(tokens, " "))
	if err != nil {
		return nil, fmt.Errorf("embed document: %w", err)
	}

	scores := make([]float64, len(c.prototypes))
	for i, proto := range c.prototypes {
		scores[i] = cosine(vec, proto)
	}
	return scores, nil
}

func embedText(
	ctx context.Context, client *openai.Client, model openai.EmbeddingModel, text string,
) ([]float32, error) {
	resp, err := client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:          []string{text},
		Model:          model,
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
	})
	if err != nil {
		return nil, parseAPIError(err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("empty embedding response: %w", domain.ErrProviderError)
	}
	return resp.Data[0].Embedding, nil
}

func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrProviderError.
func parseAPIError(err error) error {
	wrap := domain.ErrProviderError

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail != "" {
			return fmt.Errorf("embedding API error %d: %s: %w",
				reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("embedding API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("embedding API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("embedding request failed: %v: %w", err, wrap)
}

// extractDetail extracts the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}

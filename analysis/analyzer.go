// Package analysis sends a textual outline of a page to an OpenAI-compatible
// chat endpoint and returns the model's review of the electrical design.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"sld/diagram"
)

const systemPrompt = `You are an electrical engineer reviewing a single-line
diagram. The user sends an indented outline of the distribution tree, where
"feeds from" lines mark redundant or alternate sources. Point out missing
protection, overload risks, single points of failure and unusual topology.
Be specific and reference components by name.`

// ErrNoAPIKey is returned when the analyzer is constructed without a key.
var ErrNoAPIKey = errors.New("analysis: no API key configured")

// Config carries the endpoint settings for an Analyzer.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Analyzer reviews pages through a chat completion API.
type Analyzer struct {
	client *openai.Client
	model  string
	log    *slog.Logger
}

// New builds an analyzer. BaseURL may point at any OpenAI-compatible server;
// empty means the default endpoint.
func New(cfg Config, log *slog.Logger) (*Analyzer, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	if log == nil {
		log = slog.Default()
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Analyzer{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		log:    log,
	}, nil
}

// Analyze reviews a single page and returns the model's commentary.
func (a *Analyzer) Analyze(ctx context.Context, page *diagram.Page) (string, error) {
	prompt := BuildPrompt(page)
	a.log.Debug("requesting analysis", "page", page.ID, "model", a.model)

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("analysis request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("analysis: empty response from model")
	}
	return resp.Choices[0].Message.Content, nil
}

// BuildPrompt renders the page as an indented outline the model can read.
func BuildPrompt(page *diagram.Page) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Page: %s\n\n", page.Name)
	for _, root := range page.Items {
		writeNode(&b, root, 0)
	}
	return b.String()
}

func writeNode(b *strings.Builder, n *diagram.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(b, "%s- %s (%s", indent, n.Name, string(n.Type))
	if n.Voltage != "" {
		fmt.Fprintf(b, ", %s", n.Voltage)
	}
	if n.Amperage != "" {
		fmt.Fprintf(b, ", %s", n.Amperage)
	}
	if n.KVA != "" {
		fmt.Fprintf(b, ", %s kVA", n.KVA)
	}
	b.WriteString(")")
	if n.ComponentNumber != "" {
		fmt.Fprintf(b, " [%s]", n.ComponentNumber)
	}
	b.WriteString("\n")
	for _, feed := range n.ExtraConnections {
		fmt.Fprintf(b, "%s  feeds from: %s\n", indent, feed)
	}
	for _, child := range n.Children {
		writeNode(b, child, depth+1)
	}
}

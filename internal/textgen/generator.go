// Package textgen produces short song descriptions via an OpenAI-compatible
// completion endpoint, with a templated fallback when the endpoint is
// unavailable. Descriptions feed the embedding and lexical indexes.
package textgen

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/melodia-app/melodia/internal/catalog"
	"github.com/melodia-app/melodia/internal/logger"
)

// completionClient is the slice of the OpenAI client the generator uses.
type completionClient interface {
	CreateCompletion(ctx context.Context, req openai.CompletionRequest) (openai.CompletionResponse, error)
}

// Generator ensures songs have a textual description.
type Generator struct {
	cfg    *Config
	client completionClient
	log    *logger.Logger
}

// NewGenerator constructs a Generator. Without an API key the generator only
// serves templated fallbacks; that is a supported degraded mode.
func NewGenerator(cfg *Config, log *logger.Logger) *Generator {
	var client completionClient
	if cfg.APIKey != "" {
		clientConfig := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientConfig.BaseURL = cfg.BaseURL
		}
		clientConfig.HTTPClient = &http.Client{
			Timeout: time.Duration(cfg.HTTPTimeoutS) * time.Second,
		}
		client = openai.NewClientWithConfig(clientConfig)
	} else {
		log.Warn("no text-generation API key configured, using templated descriptions only", nil, nil)
	}

	return &Generator{cfg: cfg, client: client, log: log}
}

// EnsureDescription returns the song's description, generating one when it is
// missing. The second return value reports whether the description was newly
// generated and should be persisted by the caller. It never fails: any
// endpoint problem degrades to the templated description.
func (g *Generator) EnsureDescription(ctx context.Context, song *catalog.Song) (string, bool) {
	if song.Description != "" {
		return song.Description, false
	}

	if g.client == nil {
		return templateDescription(song), true
	}

	resp, err := g.client.CreateCompletion(ctx, openai.CompletionRequest{
		Model:       g.cfg.Model,
		Prompt:      descriptionPrompt(song),
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
		Stop:        []string{"\n\n"},
	})
	if err != nil {
		g.log.Warn("description generation failed, using template", err, map[string]interface{}{
			"song_id": song.ID,
		})
		return templateDescription(song), true
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Text) == "" {
		return templateDescription(song), true
	}

	return strings.TrimSpace(resp.Choices[0].Text), true
}

// descriptionPrompt embeds the song metadata into a short, mood-and-energy
// focused instruction.
func descriptionPrompt(song *catalog.Song) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Describe the mood and energy of the song %q by %s", song.Title, song.Artist.Name)
	if song.Album != nil && song.Album.Title != "" {
		fmt.Fprintf(&sb, " from the album %q", song.Album.Title)
	}
	if song.Genre != "" {
		fmt.Fprintf(&sb, " (%s)", song.Genre)
	}
	sb.WriteString(" in one sentence of at most 30 words.")
	return sb.String()
}

// templateDescription is the deterministic fallback.
func templateDescription(song *catalog.Song) string {
	if song.Genre != "" {
		return fmt.Sprintf("A %s song by %s.", song.Genre, song.Artist.Name)
	}
	return fmt.Sprintf("A song by %s.", song.Artist.Name)
}

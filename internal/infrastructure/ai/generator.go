package ai

import (
	"context"
	"strings"

	"github.com/doeshing/gitme-go/internal/domain"
	"github.com/doeshing/gitme-go/internal/ports"
)

// Generator produces commit messages through one provider. Each call is
// independent and Generate never returns an error: an empty change set yields
// domain.MessageNoChanges and any provider failure yields domain.MessageGenerationFailed.
type Generator struct {
	provider ports.Provider
	builder  PromptBuilder
	logger   ports.Logger
}

// NewGenerator wires a provider, prompt builder and error channel.
func NewGenerator(provider ports.Provider, builder PromptBuilder, logger ports.Logger) *Generator {
	return &Generator{provider: provider, builder: builder, logger: logger}
}

// Provider exposes the backing provider for history metadata.
func (g *Generator) Provider() ports.Provider {
	return g.provider
}

// Generate implements ports.MessageGenerator.
func (g *Generator) Generate(ctx context.Context, changes domain.FileChangeSet) string {
	if len(changes) == 0 {
		return domain.MessageNoChanges
	}

	prompt := g.builder.Build(changes)
	if g.logger != nil {
		g.logger.Debug("calling provider", map[string]interface{}{
			"provider":     g.provider.Name(),
			"model":        g.provider.Model(),
			"files":        len(changes),
			"prompt_chars": len(prompt),
		})
	}

	message, err := g.provider.Complete(ctx, prompt)
	if err != nil {
		if g.logger != nil {
			g.logger.Error("error generating commit message", err, map[string]interface{}{
				"provider": g.provider.Name(),
				"model":    g.provider.Model(),
			})
		}
		return domain.MessageGenerationFailed
	}
	return strings.TrimSpace(message)
}

var _ ports.MessageGenerator = (*Generator)(nil)

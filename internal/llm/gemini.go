package llm

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
)

// GeminiProvider - провайдер для Google Gemini через Genkit
type GeminiProvider struct {
	model  string
	apiKey string
}

func NewGeminiProvider(model, apiKey string) *GeminiProvider {
	return &GeminiProvider{
		model:  model,
		apiKey: apiKey,
	}
}

// GenerateAnalysis выполняет один синхронный вызов Gemini.
// Genkit инициализируется на каждый вызов: API ключ живёт только в рамках запроса
func (p *GeminiProvider) GenerateAnalysis(ctx context.Context, prompt string) (string, error) {
	genkitApp := genkit.Init(
		ctx, genkit.WithPlugins(
			&googlegenai.GoogleAI{
				APIKey: p.apiKey,
			},
		),
	)

	resp, err := genkit.Generate(
		ctx,
		genkitApp,
		ai.WithModelName("googleai/"+p.model),
		ai.WithSystem(securityAnalystSystem),
		ai.WithPrompt(prompt),
	)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	return resp.Text(), nil
}

func (p *GeminiProvider) GetName() string {
	return "gemini"
}

func (p *GeminiProvider) GetModel() string {
	return p.model
}

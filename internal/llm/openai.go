package llm

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/compat_oai"
	"github.com/openai/openai-go/option"
)

// OpenAIProvider - провайдер для GPT-семейства через OpenAI-совместимый плагин Genkit
type OpenAIProvider struct {
	model  string
	apiKey string
}

func NewOpenAIProvider(model, apiKey string) *OpenAIProvider {
	return &OpenAIProvider{
		model:  model,
		apiKey: apiKey,
	}
}

// GenerateAnalysis выполняет один синхронный вызов OpenAI.
// Без retry и без стриминга: ждём полный ответ и отдаём его текст как есть
func (p *OpenAIProvider) GenerateAnalysis(ctx context.Context, prompt string) (string, error) {
	genkitApp := genkit.Init(
		ctx, genkit.WithPlugins(
			&compat_oai.OpenAICompatible{
				Provider: "openai",
				Opts:     []option.RequestOption{option.WithAPIKey(p.apiKey)},
			},
		),
	)

	resp, err := genkit.Generate(
		ctx,
		genkitApp,
		ai.WithModelName("openai/"+p.model),
		ai.WithSystem(securityAnalystSystem),
		ai.WithPrompt(prompt),
	)
	if err != nil {
		return "", fmt.Errorf("openai generation failed: %w", err)
	}

	return resp.Text(), nil
}

func (p *OpenAIProvider) GetName() string {
	return "openai"
}

func (p *OpenAIProvider) GetModel() string {
	return p.model
}

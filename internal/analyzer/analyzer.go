package analyzer

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shadsidd/akamai-config-validator/internal/llm"
)

// providerFactory подменяется в тестах, чтобы не ходить в сеть
type providerFactory func(model, apiKey string) (llm.Provider, error)

// ConfigAnalyzer - диспетчер анализа: собирает промпт из конфигурации и правил
// и выполняет ровно один блокирующий вызов выбранного провайдера
type ConfigAnalyzer struct {
	newProvider providerFactory
}

func New() *ConfigAnalyzer {
	return &ConfigAnalyzer{
		newProvider: llm.NewProvider,
	}
}

// Analyze выполняет полный цикл: выбор провайдера → промпт → один вызов модели.
// config должен быть уже распарсенным JSON значением - за Malformed-Input
// отвечает вызывающая сторона. Любая ошибка после выбора провайдера
// возвращается одним обёрнутым сообщением, без различения подтипов
func (a *ConfigAnalyzer) Analyze(
	ctx context.Context,
	config any,
	rules []string,
	model, apiKey string,
) (string, error) {
	provider, err := a.newProvider(model, apiKey)
	if err != nil {
		return "", err
	}

	prompt, err := llm.BuildConfigAnalysisPrompt(config, rules)
	if err != nil {
		return "", fmt.Errorf("analysis failed: %w", err)
	}

	start := time.Now()
	log.Printf("🔍 Анализ конфигурации: провайдер %s, модель %s, правил %d",
		provider.GetName(), provider.GetModel(), len(rules))

	text, err := provider.GenerateAnalysis(ctx, prompt)
	if err != nil {
		log.Printf("❌ Анализ не удался (%s): %v", provider.GetName(), err)
		return "", fmt.Errorf("analysis failed: %w", err)
	}

	log.Printf("✅ Анализ завершён за %v (%d символов ответа)", time.Since(start), len(text))
	return text, nil
}

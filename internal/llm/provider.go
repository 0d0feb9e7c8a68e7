package llm

import "context"

// Provider - интерфейс для любого LLM провайдера.
// Это простая абстракция, которая позволяет легко переключаться между разными моделями
type Provider interface {
	// GenerateAnalysis - единственный рабочий метод: промпт на вход, текст анализа на выход.
	// Ответ модели не парсится и возвращается как есть.
	GenerateAnalysis(ctx context.Context, prompt string) (string, error)

	// GetName возвращает название провайдера (для логирования)
	GetName() string

	// GetModel возвращает используемую модель
	GetModel() string
}

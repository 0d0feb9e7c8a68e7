package llm

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedModel возвращается до любого сетевого вызова,
// если идентификатор модели не относится ни к одному поддерживаемому семейству
var ErrUnsupportedModel = errors.New("unsupported model")

// NewProvider выбирает провайдер по идентификатору модели.
// Матчинг - case-insensitive substring: "gpt" → OpenAI, "gemini" → Google.
// Например "GPT-4", "gpt-4o-mini" и "Gemini-Pro" все валидны.
func NewProvider(model, apiKey string) (Provider, error) {
	lower := strings.ToLower(model)

	switch {
	case strings.Contains(lower, "gpt"):
		return NewOpenAIProvider(model, apiKey), nil
	case strings.Contains(lower, "gemini"):
		return NewGeminiProvider(model, apiKey), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedModel, model)
	}
}

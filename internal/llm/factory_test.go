package llm

import (
	"errors"
	"testing"
)

func TestNewProvider_SubstringMatch(t *testing.T) {
	tests := []struct {
		model    string
		wantName string
	}{
		{"gpt-4", "openai"},
		{"GPT-4", "openai"},
		{"gpt-4o-mini", "openai"},
		{"my-Custom-GPT", "openai"},
		{"gemini-pro", "gemini"},
		{"Gemini-Pro", "gemini"},
		{"GEMINI-1.5-FLASH", "gemini"},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			p, err := NewProvider(tt.model, "test-key")
			if err != nil {
				t.Fatalf("NewProvider(%q) вернул ошибку: %v", tt.model, err)
			}
			if p.GetName() != tt.wantName {
				t.Errorf("NewProvider(%q) = %s, ожидали %s", tt.model, p.GetName(), tt.wantName)
			}
			if p.GetModel() != tt.model {
				t.Errorf("GetModel() = %q, ожидали исходный идентификатор %q", p.GetModel(), tt.model)
			}
		})
	}
}

func TestNewProvider_Unsupported(t *testing.T) {
	for _, model := range []string{"claude-3", "llama-3.1", "", "gp-t4"} {
		p, err := NewProvider(model, "test-key")
		if p != nil {
			t.Errorf("NewProvider(%q) не должен возвращать провайдер", model)
		}
		if !errors.Is(err, ErrUnsupportedModel) {
			t.Errorf("NewProvider(%q): ожидали ErrUnsupportedModel, получили %v", model, err)
		}
	}
}

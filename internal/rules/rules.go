package rules

// defaultRules - встроенный набор проверок безопасности Akamai.
// Набор фиксированный, порядок важен: он всегда идёт первым в итоговом списке.
var defaultRules = []string{
	"WAF_ENABLED: Ensure WAF is enabled for all endpoints",
	"RATE_LIMIT: Verify rate limiting is configured for API endpoints",
	"GEO_BLOCKING: Check geo-blocking configuration for sensitive regions",
	"TLS_VERSION: Validate TLS 1.2+ enforcement",
	"BOT_MANAGEMENT: Review bot management rules",
	"DDOS_PROTECTION: Confirm DDoS protection settings",
}

// Defaults возвращает копию встроенных правил
func Defaults() []string {
	out := make([]string, len(defaultRules))
	copy(out, defaultRules)
	return out
}

// Set - пользовательские правила одной сессии.
// Текст правила не валидируется: любая непустая строка принимается как есть.
// Set не потокобезопасен - блокировка лежит на владельце (session storage).
type Set struct {
	custom []string
}

func NewSet() *Set {
	return &Set{custom: make([]string, 0)}
}

// Add добавляет правило в конец списка. Пустая строка игнорируется.
func (s *Set) Add(text string) {
	if text == "" {
		return
	}
	s.custom = append(s.custom, text)
}

// Remove удаляет правило по индексу. Индекс вне границ - no-op.
func (s *Set) Remove(i int) {
	if i < 0 || i >= len(s.custom) {
		return
	}
	s.custom = append(s.custom[:i], s.custom[i+1:]...)
}

// Custom возвращает копию пользовательских правил в порядке добавления
func (s *Set) Custom() []string {
	out := make([]string, len(s.custom))
	copy(out, s.custom)
	return out
}

// Effective возвращает итоговый список: встроенные правила, затем
// пользовательские, порядок сохранён, дубликаты не схлопываются
func (s *Set) Effective() []string {
	out := make([]string, 0, len(defaultRules)+len(s.custom))
	out = append(out, defaultRules...)
	out = append(out, s.custom...)
	return out
}
